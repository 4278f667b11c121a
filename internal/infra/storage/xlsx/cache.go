package xlsx

import (
	"os"
	"sync"
	"time"

	"lynx/internal/domain/workbook"
)

// Cache keeps the last normalized copy of each workbook file. An entry is
// reused while the file's modification time and size are unchanged, so an
// edit made outside the service is picked up on the next load.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	snap    workbook.Snapshot
	modTime time.Time
	size    int64
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Get returns a private copy of the cached snapshot for path, calling load on a
// miss. Concurrent misses for the same file load once.
func (c *Cache) Get(path string, load func() (workbook.Snapshot, error)) (workbook.Snapshot, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, statErr := os.Stat(path)
	if e, ok := c.entries[path]; ok && statErr == nil && e.modTime.Equal(info.ModTime()) && e.size == info.Size() {
		return copySnapshot(e.snap), true, nil
	}
	snap, err := load()
	if err != nil {
		delete(c.entries, path)
		return workbook.Snapshot{}, false, err
	}
	if statErr == nil {
		c.entries[path] = cacheEntry{snap: copySnapshot(snap), modTime: info.ModTime(), size: info.Size()}
	}
	return snap, false, nil
}

// Invalidate drops the cached copy of path.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Len reports how many files are cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func copySnapshot(s workbook.Snapshot) workbook.Snapshot {
	rep := s.Report
	rep.MissingSheets = append([]string(nil), s.Report.MissingSheets...)
	return workbook.Snapshot{Workbook: s.Workbook.Clone(), Report: rep}
}
