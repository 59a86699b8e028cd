/*
   sqlpager - generic result set paging
   Copyright (C) 2019 Velocidex Innovations.

   This program is free software: you can redistribute it and/or modify
   it under the terms of the GNU Affero General Public License as published
   by the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   This program is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
   GNU Affero General Public License for more details.

   You should have received a copy of the GNU Affero General Public License
   along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/Velocidex/ordereddict"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	config_proto "www.velocidex.com/golang/sqlpager/config/proto"
	"www.velocidex.com/golang/sqlpager/logging"
	"www.velocidex.com/golang/sqlpager/meta"
)

// A connection like handle: *sql.DB, *sql.Conn and *sql.Tx all
// satisfy this.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Executes statements and pages their results. Holds no per query
// state so one instance can serve concurrent callers.
type PersistenceSupport struct {
	config_obj *config_proto.Config
	mapper     RowMapper
}

func NewPersistenceSupport(config_obj *config_proto.Config) *PersistenceSupport {
	return &PersistenceSupport{
		config_obj: config_obj,
		mapper:     NewDefaultRowMapper(),
	}
}

// Replace the mapper used when callers do not pass one.
func (self *PersistenceSupport) WithDefaultMapper(mapper RowMapper) *PersistenceSupport {
	return &PersistenceSupport{config_obj: self.config_obj, mapper: mapper}
}

func (self *PersistenceSupport) logger() *logging.LogContext {
	return logging.GetLogger(self.config_obj, &logging.PersistenceComponent)
}

// Run a query and return a cursor over its result. The caller owns
// the cursor and must Close() it.
func (self *PersistenceSupport) ExecuteQuery(
	ctx context.Context, cn Queryer, query *Sql, mode ResultMode) (*Cursor, error) {
	metricQueries.Inc()

	args, err := query.Args()
	if err != nil {
		metricExecutionFailures.Inc()
		return nil, NewExecutionError(query.Statement, err)
	}

	rows, err := cn.QueryContext(ctx, query.Statement, args...)
	if err != nil {
		metricExecutionFailures.Inc()
		return nil, NewExecutionError(query.Statement, err)
	}

	if mode == ResultMaterialized {
		memory_rows, err := materializeRows(rows)
		if err != nil {
			metricExecutionFailures.Inc()
			var release_err *ReleaseError
			if errors.As(err, &release_err) {
				return nil, err
			}
			return nil, NewExecutionError(query.Statement, err)
		}
		return NewCursor(memory_rows), nil
	}

	return NewCursor(rows), nil
}

// Run a count query: the first column of the first row. An empty
// result counts as 0.
func (self *PersistenceSupport) ExecuteCountQuery(
	ctx context.Context, cn Queryer, query *Sql) (count int64, err error) {
	cursor, err := self.ExecuteQuery(ctx, cn, query, ResultStreamed)
	if err != nil {
		return 0, err
	}
	defer self.release(cursor, query, &err)

	if !cursor.Next() {
		err = cursor.Err()
		if err != nil {
			return 0, NewExecutionError(query.Statement, err)
		}
		return 0, nil
	}

	values, err := cursor.Values()
	if err != nil {
		return 0, NewExecutionError(query.Statement, err)
	}

	if len(values) == 0 {
		return 0, NewExecutionError(query.Statement,
			conversionError(nil, "count (no columns)"))
	}

	value, err := ColumnTypeResolver{}.Normalize(values[0], meta.Integer)
	if err != nil {
		return 0, NewExecutionError(query.Statement, err)
	}

	if value == nil {
		return 0, nil
	}
	return value.(int64), nil
}

// Run a statement that returns no rows. Returns the affected rows.
func (self *PersistenceSupport) ExecuteUpdate(
	ctx context.Context, cn Queryer, query *Sql) (int64, error) {
	metricQueries.Inc()

	args, err := query.Args()
	if err != nil {
		metricExecutionFailures.Inc()
		return 0, NewExecutionError(query.Statement, err)
	}

	result, err := cn.ExecContext(ctx, query.Statement, args...)
	if err != nil {
		metricExecutionFailures.Inc()
		return 0, NewExecutionError(query.Statement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, NewExecutionError(query.Statement, err)
	}
	return affected, nil
}

// Execute a query and page its result. The cursor is released before
// returning on every path. If table is nil the table is described from
// the result columns.
func (self *PersistenceSupport) ExecuteListQuery(
	ctx context.Context, cn Queryer,
	table *meta.Table, query *Sql, mode ResultMode,
	window PagingWindow, mapper RowMapper) ([]*ordereddict.Dict, error) {
	start := time.Now()
	query_id := uuid.New().String()

	cursor, err := self.ExecuteQuery(ctx, cn, query, mode)
	if err != nil {
		self.logger().WithFields(logrus.Fields{
			"query_id":  query_id,
			"statement": query.Statement,
		}).Error(err.Error())
		return nil, err
	}

	result, err := self.pageCursor(cursor, table, query, window, mapper)
	if err != nil {
		self.logger().WithFields(logrus.Fields{
			"query_id":  query_id,
			"statement": query.Statement,
			"window":    window.String(),
		}).Error(err.Error())
		return nil, err
	}

	self.logger().WithFields(logrus.Fields{
		"query_id":  query_id,
		"statement": query.Statement,
		"window":    window.String(),
		"mode":      mode.String(),
		"rows":      len(result),
		"duration":  time.Since(start).String(),
	}).Debug("ExecuteListQuery")

	return result, nil
}

// Page the cursor then release it. No records are returned if the
// release fails.
func (self *PersistenceSupport) pageCursor(cursor *Cursor, table *meta.Table,
	query *Sql, window PagingWindow,
	mapper RowMapper) (result []*ordereddict.Dict, err error) {
	defer func() {
		self.release(cursor, query, &err)
		if err != nil {
			result = nil
		}
	}()

	if table == nil {
		table, err = cursor.Table("")
		if err != nil {
			return nil, NewExecutionError(query.Statement, err)
		}
	}

	return self.MapToRows(cursor, table, window, mapper)
}

// Page an already open cursor. The caller keeps ownership of the
// cursor.
func (self *PersistenceSupport) MapToRows(cursor *Cursor, table *meta.Table,
	window PagingWindow, mapper RowMapper) ([]*ordereddict.Dict, error) {
	if mapper == nil {
		mapper = self.mapper
	}
	return MapToRows(cursor, table, window, mapper)
}

// Close the cursor. A failure here only becomes the operation's error
// if nothing else failed first; otherwise it is logged.
func (self *PersistenceSupport) release(cursor *Cursor, query *Sql, err *error) {
	close_err := cursor.Close()
	if close_err == nil {
		return
	}

	if *err != nil {
		self.logger().WithFields(logrus.Fields{
			"statement": query.Statement,
			"primary":   (*err).Error(),
		}).Error(close_err.Error())
		return
	}
	*err = close_err
}
