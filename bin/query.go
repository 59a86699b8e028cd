package main

import (
	"context"
	"fmt"
	"time"

	humanize "github.com/dustin/go-humanize"
	"www.velocidex.com/golang/sqlpager/meta"
	"www.velocidex.com/golang/sqlpager/persistence"
)

var (
	query        = app.Command("query", "Page through the result of a query.")
	query_schema = query.Arg("schema", "The schema to run the query on.").
			Required().String()
	query_sql = query.Arg("sql", "The query to run.").Required().String()

	query_start = query.Flag("start", "First row to return (1 based).").
			Default("1").Int()
	query_count = query.Flag("count", "Number of rows to return, -1 for all.").
			Default("-1").Int()
	query_mode = query.Flag("mode",
		"Result mode (streamed or materialized). Defaults to the config.").
		String()
	query_table = query.Flag("table",
		"Map the rows using the metadata of this table.").String()
	query_format = query.Flag("format", "Output format to use.").
			Default("text").Enum(output_formats...)

	count_command = app.Command("count", "Run a count query.")
	count_schema  = count_command.Arg("schema", "The schema to run the query on.").
			Required().String()
	count_sql = count_command.Arg("sql", "The count query to run.").
			Required().String()

	exec_command = app.Command("exec", "Run a statement that returns no rows.")
	exec_schema  = exec_command.Arg("schema", "The schema to run the statement on.").
			Required().String()
	exec_sql = exec_command.Arg("sql", "The statement to run.").
			Required().String()
)

type queryArgs struct {
	Schema    string
	Statement string
	Start     int
	Count     int
	Mode      string
	Table     string
	Format    string
}

func runQuery(ctx context.Context, cc *commandContext, args *queryArgs) error {
	mode, err := cc.resultMode(args.Mode)
	if err != nil {
		return err
	}

	handle, err := cc.manager.GetHandle(args.Schema)
	if err != nil {
		return err
	}

	sub_ctx, cancel := cc.withTimeout(ctx)
	defer cancel()

	var table *meta.Table
	var columns []string
	if args.Table != "" {
		table, err = cc.manager.GetTable(sub_ctx, args.Schema, args.Table, false)
		if err != nil {
			return err
		}
		columns = table.ColumnNames()
	}

	start := time.Now()
	rows, err := cc.support.ExecuteListQuery(sub_ctx, handle, table,
		persistence.NewSql(args.Statement), mode,
		persistence.NewPagingWindow(args.Start, args.Count), nil)
	if err != nil {
		return err
	}

	err = writeRows(cc.out, args.Format, rows, columns)
	if err != nil {
		return err
	}

	if args.Format == "text" {
		fmt.Fprintf(cc.out, "%s rows (%v) in %v\n",
			humanize.Comma(int64(len(rows))),
			persistence.NewPagingWindow(args.Start, args.Count),
			time.Since(start).Round(time.Millisecond))
	}
	return nil
}

func runCount(ctx context.Context, cc *commandContext,
	schema_id, statement string) error {
	handle, err := cc.manager.GetHandle(schema_id)
	if err != nil {
		return err
	}

	sub_ctx, cancel := cc.withTimeout(ctx)
	defer cancel()

	count, err := cc.support.ExecuteCountQuery(sub_ctx, handle,
		persistence.NewSql(statement))
	if err != nil {
		return err
	}

	fmt.Fprintf(cc.out, "%d\n", count)
	return nil
}

func runExec(ctx context.Context, cc *commandContext,
	schema_id, statement string) error {
	handle, err := cc.manager.GetHandle(schema_id)
	if err != nil {
		return err
	}

	sub_ctx, cancel := cc.withTimeout(ctx)
	defer cancel()

	affected, err := cc.support.ExecuteUpdate(sub_ctx, handle,
		persistence.NewSql(statement))
	if err != nil {
		return err
	}

	fmt.Fprintf(cc.out, "%s rows affected\n", humanize.Comma(affected))
	return nil
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case query.FullCommand():
			FatalIfError(query, func() error {
				return withCommandContext(
					func(ctx context.Context, cc *commandContext) error {
						return runQuery(ctx, cc, &queryArgs{
							Schema:    *query_schema,
							Statement: *query_sql,
							Start:     *query_start,
							Count:     *query_count,
							Mode:      *query_mode,
							Table:     *query_table,
							Format:    *query_format,
						})
					})
			})

		case count_command.FullCommand():
			FatalIfError(count_command, func() error {
				return withCommandContext(
					func(ctx context.Context, cc *commandContext) error {
						return runCount(ctx, cc, *count_schema, *count_sql)
					})
			})

		case exec_command.FullCommand():
			FatalIfError(exec_command, func() error {
				return withCommandContext(
					func(ctx context.Context, cc *commandContext) error {
						return runExec(ctx, cc, *exec_schema, *exec_sql)
					})
			})

		default:
			return false
		}
		return true
	})
}
