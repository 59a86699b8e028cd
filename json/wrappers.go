package json

import (
	"bytes"
	"io"

	"github.com/Velocidex/json"
	"github.com/Velocidex/ordereddict"
)

func MarshalWithOptions(v interface{}, opts *json.EncOpts) ([]byte, error) {
	if opts == nil {
		return json.Marshal(v)
	}
	return json.MarshalWithOptions(v, opts)
}

func Marshal(v interface{}) ([]byte, error) {
	return json.MarshalWithOptions(v, NewEncOpts())
}

func MustMarshalString(v interface{}) string {
	result, err := Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(result)
}

func MarshalIndent(v interface{}) ([]byte, error) {
	b, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = json.Indent(&buf, b, "", " ")
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// One JSON object per line.
func WriteJsonl(out io.Writer, rows []*ordereddict.Dict) error {
	options := NewEncOpts()
	for _, row := range rows {
		serialized, err := json.MarshalWithOptions(row, options)
		if err != nil {
			return err
		}
		_, err = out.Write(append(serialized, '\n'))
		if err != nil {
			return err
		}
	}
	return nil
}

func Unmarshal(b []byte, v interface{}) error {
	return json.Unmarshal(b, v)
}
