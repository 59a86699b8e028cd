package meta

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Velocidex/ttlcache/v2"
	"github.com/pkg/errors"
	config_proto "www.velocidex.com/golang/sqlpager/config/proto"
	"www.velocidex.com/golang/sqlpager/constants"
	"www.velocidex.com/golang/sqlpager/logging"
)

// Loads a table when it is not cached.
type TableLoader func(ctx context.Context, table_name string) (*Table, error)

// Caches table metadata per schema. Entries expire after the
// configured TTL and the least recently used entries are evicted once
// the cache is full.
type TableCache struct {
	// Serializes loads and invalidations. Concurrent misses for the
	// same table only hit the database once.
	mu  sync.Mutex
	lru *ttlcache.Cache

	config_obj *config_proto.Config
}

func NewTableCache(config_obj *config_proto.Config) *TableCache {
	result := &TableCache{
		lru:        ttlcache.NewCache(),
		config_obj: config_obj,
	}

	ttl := config_obj.GetCache().GetTtl()
	if ttl == 0 {
		ttl = constants.DEFAULT_CACHE_TTL
	}
	_ = result.lru.SetTTL(time.Duration(ttl) * time.Second)

	size := config_obj.GetCache().GetMaxTables()
	if size <= 0 {
		size = constants.DEFAULT_CACHE_SIZE
	}
	result.lru.SetCacheSizeLimit(int(size))

	return result
}

// Schema ids never contain NUL so the key can be split again.
func cacheKey(schema_id, table_name string) string {
	return schema_id + "\x00" + table_name
}

func (self *TableCache) Get(schema_id, table_name string) (*Table, bool) {
	value, err := self.lru.Get(cacheKey(schema_id, table_name))
	if err != nil {
		return nil, false
	}

	table, ok := value.(*Table)
	return table, ok
}

func (self *TableCache) Set(schema_id string, table *Table) {
	if table == nil {
		return
	}
	_ = self.lru.Set(cacheKey(schema_id, table.Name), table)
}

// Invalidations wait for any load in progress so a stale load can not
// be cached after them.
func (self *TableCache) InvalidateTable(schema_id, table_name string) {
	self.mu.Lock()
	defer self.mu.Unlock()

	_ = self.lru.Remove(cacheKey(schema_id, table_name))
}

// Drop every table of the schema.
func (self *TableCache) Invalidate(schema_id string) {
	self.mu.Lock()
	defer self.mu.Unlock()

	prefix := cacheKey(schema_id, "")
	count := 0
	for _, key := range self.lru.GetKeys() {
		if strings.HasPrefix(key, prefix) {
			_ = self.lru.Remove(key)
			count++
		}
	}

	logger := logging.GetLogger(self.config_obj, &logging.CacheComponent)
	logger.Debug("Invalidated %v tables of schema %v", count, schema_id)
}

// The cached tables of a schema.
func (self *TableCache) Tables(schema_id string) []string {
	prefix := cacheKey(schema_id, "")
	result := []string{}
	for _, key := range self.lru.GetKeys() {
		if strings.HasPrefix(key, prefix) {
			result = append(result, strings.TrimPrefix(key, prefix))
		}
	}
	return result
}

// Return the cached table or load and cache it.
func (self *TableCache) GetOrLoad(ctx context.Context,
	schema_id, table_name string, loader TableLoader) (*Table, error) {
	table, ok := self.Get(schema_id, table_name)
	if ok {
		return table, nil
	}

	self.mu.Lock()
	defer self.mu.Unlock()

	// Someone else may have loaded it while we waited.
	table, ok = self.Get(schema_id, table_name)
	if ok {
		return table, nil
	}

	table, err := loader(ctx, table_name)
	if err != nil {
		return nil, errors.Wrapf(err, "While loading %v.%v", schema_id, table_name)
	}

	if table == nil {
		return nil, errors.Errorf("No metadata for %v.%v", schema_id, table_name)
	}

	logger := logging.GetLogger(self.config_obj, &logging.CacheComponent)
	logger.Debug("Loaded table %v.%v with %v columns",
		schema_id, table_name, len(table.Columns))

	_ = self.lru.Set(cacheKey(schema_id, table_name), table)
	return table, nil
}

func (self *TableCache) Close() {
	self.lru.Close()
}
