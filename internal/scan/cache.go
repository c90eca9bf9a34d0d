package scan

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/apidoc/internal/extract"
)

// DefaultCacheCapacity is the number of source files a UnitCache holds.
const DefaultCacheCapacity = 10_000

// UnitCache keeps the records of successfully scanned files between runs.
// An entry is reused only while the file's size and modification time match.
type UnitCache struct {
	cache otter.Cache[string, cachedUnit]
}

type cachedUnit struct {
	modTime time.Time
	size    int64
	records []*extract.Record
}

// NewUnitCache creates a cache holding up to capacity files.
func NewUnitCache(capacity int) (*UnitCache, error) {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}

	cache, err := otter.MustBuilder[string, cachedUnit](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create unit cache: %w", err)
	}

	return &UnitCache{cache: cache}, nil
}

// Get returns the cached records for path if info still describes the cached version.
func (c *UnitCache) Get(path string, info fs.FileInfo) ([]*extract.Record, bool) {
	unit, ok := c.cache.Get(path)
	if !ok || unit.size != info.Size() || !unit.modTime.Equal(info.ModTime()) {
		return nil, false
	}
	return unit.records, true
}

// Put stores the records scanned from path at the version described by info.
func (c *UnitCache) Put(path string, info fs.FileInfo, records []*extract.Record) {
	c.cache.Set(path, cachedUnit{
		modTime: info.ModTime(),
		size:    info.Size(),
		records: records,
	})
}

// Len returns the number of cached files.
func (c *UnitCache) Len() int {
	return c.cache.Size()
}

// Close releases the cache's background resources.
func (c *UnitCache) Close() {
	c.cache.Close()
}
