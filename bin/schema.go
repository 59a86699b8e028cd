package main

import (
	"context"
	"fmt"

	humanize "github.com/dustin/go-humanize"
	"www.velocidex.com/golang/sqlpager/meta"
	"www.velocidex.com/golang/sqlpager/paging"
	"www.velocidex.com/golang/sqlpager/reporting"
)

var (
	tables_command = app.Command("tables", "List the tables of a schema.")
	tables_schema  = tables_command.Arg("schema", "The schema to list.").
			Required().String()
	tables_keyword = tables_command.Flag("keyword",
		"Only list tables whose name contains this.").String()
	tables_page = tables_command.Flag("page", "The page to show (1 based).").
			Default("1").Int64()
	tables_page_size = tables_command.Flag("page_size",
		"Tables per page. Defaults to the config.").Int64()
	tables_format = tables_command.Flag("format", "Output format to use.").
			Default("text").Enum(output_formats...)

	describe_command = app.Command("describe", "Show the columns of a table.")
	describe_schema  = describe_command.Arg("schema", "The schema of the table.").
				Required().String()
	describe_table = describe_command.Arg("table", "The table to describe.").
			Required().String()
	describe_reload = describe_command.Flag("reload",
		"Ignore any cached metadata.").Bool()
	describe_format = describe_command.Flag("format", "Output format to use.").
			Default("text").Enum(output_formats...)

	test_command = app.Command("test", "Test the connection to a schema.")
	test_schema  = test_command.Arg("schema", "The schema to test.").
			Required().String()
)

func runTables(ctx context.Context, cc *commandContext, schema_id string,
	query paging.PagingQuery, format string) error {
	if query.PageSize <= 0 {
		query.PageSize = cc.config_obj.GetPager().GetDefaultPageSize()
	}

	sub_ctx, cancel := cc.withTimeout(ctx)
	defer cancel()

	tables, err := cc.manager.ListTables(sub_ctx, schema_id)
	if err != nil {
		return err
	}

	data := paging.Paginate(tables, query, meta.FindTablesByKeyword)

	switch format {
	case "text":
		reporting.OutputSimpleTablesToTable(data.Items, cc.out).Render()
		fmt.Fprintf(cc.out, "Page %d of %d (%s tables)\n",
			data.Page, data.Pages, humanize.Comma(data.Total))
		return nil

	case "jsonl":
		for _, table := range data.Items {
			err := writeJSON(cc.out, table)
			if err != nil {
				return err
			}
		}
		return nil
	}
	return writeJSON(cc.out, data)
}

func runDescribe(ctx context.Context, cc *commandContext,
	schema_id, table_name string, reload bool, format string) error {
	sub_ctx, cancel := cc.withTimeout(ctx)
	defer cancel()

	table, err := cc.manager.GetTable(sub_ctx, schema_id, table_name, reload)
	if err != nil {
		return err
	}

	if format == "text" {
		reporting.OutputTableToTable(table, cc.out).Render()
		return nil
	}
	return writeJSON(cc.out, table)
}

func runTest(ctx context.Context, cc *commandContext, schema_id string) error {
	sub_ctx, cancel := cc.withTimeout(ctx)
	defer cancel()

	err := cc.manager.TestConnection(sub_ctx, schema_id)
	if err != nil {
		return err
	}

	fmt.Fprintf(cc.out, "Connection to schema %v OK\n", schema_id)
	return nil
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case tables_command.FullCommand():
			FatalIfError(tables_command, func() error {
				return withCommandContext(
					func(ctx context.Context, cc *commandContext) error {
						return runTables(ctx, cc, *tables_schema,
							paging.NewPagingQuery(*tables_page,
								*tables_page_size, *tables_keyword),
							*tables_format)
					})
			})

		case describe_command.FullCommand():
			FatalIfError(describe_command, func() error {
				return withCommandContext(
					func(ctx context.Context, cc *commandContext) error {
						return runDescribe(ctx, cc, *describe_schema,
							*describe_table, *describe_reload, *describe_format)
					})
			})

		case test_command.FullCommand():
			FatalIfError(test_command, func() error {
				return withCommandContext(
					func(ctx context.Context, cc *commandContext) error {
						return runTest(ctx, cc, *test_schema)
					})
			})

		default:
			return false
		}
		return true
	})
}
