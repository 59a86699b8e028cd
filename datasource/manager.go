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
package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	config_proto "www.velocidex.com/golang/sqlpager/config/proto"
	"www.velocidex.com/golang/sqlpager/constants"
	"www.velocidex.com/golang/sqlpager/logging"
	"www.velocidex.com/golang/sqlpager/meta"
	"www.velocidex.com/golang/sqlpager/utils"
)

// Holds the configured schemas and one *sql.DB per schema, opened on
// first use. Table metadata of a schema is cached in the TableCache
// and dropped whenever the schema starts pointing at another
// database.
type Manager struct {
	mu sync.Mutex

	config_obj *config_proto.Config
	schemas    map[string]*config_proto.SchemaConfig
	handles    map[string]*sql.DB

	cache *meta.TableCache
}

func NewManager(config_obj *config_proto.Config) *Manager {
	result := &Manager{
		config_obj: config_obj,
		schemas:    make(map[string]*config_proto.SchemaConfig),
		handles:    make(map[string]*sql.DB),
		cache:      meta.NewTableCache(config_obj),
	}

	for _, schema := range config_obj.GetSchemas() {
		result.schemas[schema.Id] = schema
	}
	return result
}

func (self *Manager) TableCache() *meta.TableCache {
	return self.cache
}

func (self *Manager) Schema(id string) (*config_proto.SchemaConfig, error) {
	self.mu.Lock()
	defer self.mu.Unlock()

	schema, pres := self.schemas[id]
	if !pres {
		return nil, fmt.Errorf("Schema %v: %w", id, utils.NotFoundError)
	}
	return schema, nil
}

// All schemas ordered by id.
func (self *Manager) Schemas() []*config_proto.SchemaConfig {
	self.mu.Lock()
	defer self.mu.Unlock()

	result := make([]*config_proto.SchemaConfig, 0, len(self.schemas))
	for _, schema := range self.schemas {
		result = append(result, schema)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Id < result[j].Id
	})
	return result
}

// Get the handle of a schema, opening it if needed. The handle is
// owned by the manager; callers must not close it.
func (self *Manager) GetHandle(id string) (*sql.DB, error) {
	self.mu.Lock()
	defer self.mu.Unlock()

	handle, pres := self.handles[id]
	if pres {
		return handle, nil
	}

	schema, pres := self.schemas[id]
	if !pres {
		return nil, fmt.Errorf("Schema %v: %w", id, utils.NotFoundError)
	}

	dsn, err := DataSourceName(schema)
	if err != nil {
		return nil, err
	}

	handle, err = sql.Open(schema.Driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "Schema %v", id)
	}

	max_open := int(schema.MaxOpenConns)
	if max_open == 0 {
		max_open = constants.DEFAULT_MAX_OPEN
	}
	handle.SetMaxOpenConns(max_open)
	handle.SetMaxIdleConns(max_open)

	if schema.Driver == constants.DRIVER_MYSQL {
		// Important settings according to mysql driver README
		handle.SetConnMaxLifetime(time.Minute * 3)
	}

	logger := logging.GetLogger(self.config_obj, &logging.DatasourceComponent)
	logger.Info("Opened schema %v (%v %v)", id, schema.Driver, redacted(schema))

	self.handles[id] = handle
	return handle, nil
}

func (self *Manager) TestConnection(ctx context.Context, id string) error {
	handle, err := self.GetHandle(id)
	if err != nil {
		return err
	}

	err = handle.PingContext(ctx)
	if err != nil {
		return errors.Wrapf(err, "Schema %v", id)
	}
	return nil
}

func (self *Manager) Resolver(id string) (*meta.Resolver, error) {
	schema, err := self.Schema(id)
	if err != nil {
		return nil, err
	}
	return meta.NewResolver(schema.Driver), nil
}

// Table metadata through the cache. With reload the cached entry is
// dropped first.
func (self *Manager) GetTable(ctx context.Context,
	id, table_name string, reload bool) (*meta.Table, error) {
	if reload {
		self.cache.InvalidateTable(id, table_name)
	}

	resolver, err := self.Resolver(id)
	if err != nil {
		return nil, err
	}

	handle, err := self.GetHandle(id)
	if err != nil {
		return nil, err
	}

	return self.cache.GetOrLoad(ctx, id, table_name,
		func(ctx context.Context, table_name string) (*meta.Table, error) {
			return resolver.GetTable(ctx, handle, table_name)
		})
}

func (self *Manager) ListTables(
	ctx context.Context, id string) ([]*meta.SimpleTable, error) {
	resolver, err := self.Resolver(id)
	if err != nil {
		return nil, err
	}

	handle, err := self.GetHandle(id)
	if err != nil {
		return nil, err
	}

	return resolver.ListTables(ctx, handle)
}

// Add or replace a schema. Any open handle is closed when the
// connection settings change. Cached metadata is only dropped when the
// schema now identifies a different database.
func (self *Manager) Update(schema *config_proto.SchemaConfig) error {
	if schema == nil || schema.Id == "" {
		return errors.New("Schema id is required")
	}

	self.mu.Lock()
	old, pres := self.schemas[schema.Id]
	self.schemas[schema.Id] = schema

	if pres && (!old.SameIdentity(schema) || old.Password != schema.Password ||
		old.MaxOpenConns != schema.MaxOpenConns) {
		self.closeHandle(schema.Id)
	}
	self.mu.Unlock()

	if pres && !old.SameIdentity(schema) {
		self.cache.Invalidate(schema.Id)
	}
	return nil
}

func (self *Manager) Remove(id string) {
	self.mu.Lock()
	delete(self.schemas, id)
	self.closeHandle(id)
	self.mu.Unlock()

	self.cache.Invalidate(id)
}

// Must be called with the lock held.
func (self *Manager) closeHandle(id string) {
	handle, pres := self.handles[id]
	if !pres {
		return
	}
	delete(self.handles, id)

	err := handle.Close()
	if err != nil {
		logger := logging.GetLogger(self.config_obj, &logging.DatasourceComponent)
		logger.Error("Closing schema %v: %v", id, err)
	}
}

func (self *Manager) Close() {
	self.mu.Lock()
	for id := range self.handles {
		self.closeHandle(id)
	}
	self.mu.Unlock()

	self.cache.Close()
}
