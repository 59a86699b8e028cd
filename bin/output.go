package main

import (
	"fmt"
	"io"

	"github.com/Velocidex/ordereddict"
	"www.velocidex.com/golang/sqlpager/json"
	"www.velocidex.com/golang/sqlpager/reporting"
)

var output_formats = []string{"text", "json", "jsonl"}

func writeJSON(out io.Writer, value interface{}) error {
	serialized, err := json.MarshalIndent(value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(serialized))
	return err
}

func writeRows(out io.Writer, format string,
	rows []*ordereddict.Dict, columns []string) error {
	switch format {
	case "text":
		reporting.OutputRowsToTable(rows, columns, out).Render()
		return nil

	case "json":
		return writeJSON(out, rows)

	case "jsonl":
		return json.WriteJsonl(out, rows)
	}
	return fmt.Errorf("Unknown output format %v", format)
}
