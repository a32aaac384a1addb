package market

import (
	"sync"

	"farm-manager/internal/models"
)

// DatasetCache caches cleaned price datasets keyed by file path for the
// lifetime of the process. Concurrent first use of the same path loads
// the file exactly once.
type DatasetCache struct {
	mu      sync.Mutex
	entries map[string]*datasetEntry
}

type datasetEntry struct {
	once   sync.Once
	points []models.PricePoint
	err    error
}

// NewDatasetCache creates an empty dataset cache.
func NewDatasetCache() *DatasetCache {
	return &DatasetCache{entries: make(map[string]*datasetEntry)}
}

// Get returns the cleaned dataset for path, loading it on first use.
// Callers must treat the returned slice as read-only.
func (c *DatasetCache) Get(path string) ([]models.PricePoint, error) {
	c.mu.Lock()
	e, ok := c.entries[path]
	if !ok {
		e = &datasetEntry{}
		c.entries[path] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.points, e.err = LoadDataset(path)
	})

	return e.points, e.err
}

// Invalidate drops the cached entry for path. The next Get reloads it.
func (c *DatasetCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}
