package excel

import (
	"log"
	"os"
	"sync"
	"time"

	"goeval/domain/indicator"
)

// TableCache shares loaded indicator tables across submissions as immutable
// read-only structures. It is an explicit injectable object rather than
// module-level state: entries are keyed by (path, level) and invalidated
// when the workbook's mtime changes, so tests stay deterministic and a
// replaced source file is picked up without a restart.
type TableCache struct {
	reader *IndicatorReader

	mu      sync.RWMutex
	entries map[string]tableEntry
}

type tableEntry struct {
	defs    []indicator.Definition
	modTime time.Time
}

// NewTableCache wraps a reader with mtime-keyed caching.
func NewTableCache(reader *IndicatorReader) *TableCache {
	return &TableCache{
		reader:  reader,
		entries: make(map[string]tableEntry),
	}
}

// Load returns the indicator set for a level, reading the workbook only when
// the cached copy is absent or stale.
func (c *TableCache) Load(levelKey string) ([]indicator.Definition, error) {
	modTime := c.sourceModTime()

	c.mu.RLock()
	entry, ok := c.entries[levelKey]
	c.mu.RUnlock()
	if ok && entry.modTime.Equal(modTime) {
		return entry.defs, nil
	}

	defs, err := c.reader.Load(levelKey)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[levelKey] = tableEntry{defs: defs, modTime: modTime}
	c.mu.Unlock()
	if ok {
		log.Printf("[TableCache] reloaded level %q after source change (%d indicators)", levelKey, len(defs))
	}
	return defs, nil
}

// Invalidate drops all cached tables.
func (c *TableCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]tableEntry)
}

func (c *TableCache) sourceModTime() time.Time {
	info, err := os.Stat(c.reader.FilePath())
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
