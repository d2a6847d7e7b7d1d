// Package jsoncache keeps parsed JSON files in memory and drops them as soon
// as the file on disk changes.
package jsoncache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of files kept when no size is given.
const DefaultSize = 256

// ErrNotFound is returned by Load when the file does not exist.
var ErrNotFound = errors.New("json file not found")

// entries are keyed by path and modification time, so a rewritten file
// misses the cache instead of serving stale data
type key struct {
	path    string
	modTime int64
	size    int64
}

// Cache is safe for concurrent use.
type Cache struct {
	entries  *lru.Cache[key, json.RawMessage]
	capacity int
	hits     atomic.Int64
	misses   atomic.Int64
}

// Info describes cache usage.
type Info struct {
	Hits     int64 `json:"hits"`
	Misses   int64 `json:"misses"`
	Size     int   `json:"size"`
	Capacity int   `json:"capacity"`
}

// New creates a cache holding up to size files. Non-positive sizes use
// DefaultSize.
func New(size int) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[key, json.RawMessage](size)
	if err != nil {
		// only reachable with a non-positive size
		panic(err)
	}
	return &Cache{entries: entries, capacity: size}
}

// Load returns the contents of the JSON file at path.
func (c *Cache) Load(path string) (json.RawMessage, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	k := key{path: abs, modTime: info.ModTime().UnixNano(), size: info.Size()}
	if data, ok := c.entries.Get(k); ok {
		c.hits.Add(1)
		return data, nil
	}
	c.misses.Add(1)

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !json.Valid(data) {
		var v any
		syntaxErr := json.Unmarshal(data, &v)
		return nil, fmt.Errorf("invalid JSON in %s: %v", path, syntaxErr)
	}

	c.entries.Add(k, json.RawMessage(data))
	return data, nil
}

// LoadOrDefault is Load, except a missing file yields def.
func (c *Cache) LoadOrDefault(path string, def json.RawMessage) (json.RawMessage, error) {
	data, err := c.Load(path)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	return data, err
}

// Clear drops every cached file and resets the counters.
func (c *Cache) Clear() {
	c.entries.Purge()
	c.hits.Store(0)
	c.misses.Store(0)
}

func (c *Cache) Info() Info {
	return Info{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Size:     c.entries.Len(),
		Capacity: c.capacity,
	}
}

// BenchmarkResult compares a cold load with warm loads of the same file.
type BenchmarkResult struct {
	FirstLoad  time.Duration `json:"first_load"`
	AvgCached  time.Duration `json:"avg_cached"`
	Speedup    float64       `json:"speedup"`
	Iterations int           `json:"iterations"`
}

// Benchmark clears the cache, loads path once cold and then iterations
// times warm.
func (c *Cache) Benchmark(path string, iterations int) (BenchmarkResult, error) {
	if iterations <= 0 {
		iterations = 100
	}
	c.Clear()

	start := time.Now()
	if _, err := c.Load(path); err != nil {
		return BenchmarkResult{}, err
	}
	first := time.Since(start)

	start = time.Now()
	for i := 0; i < iterations; i++ {
		if _, err := c.Load(path); err != nil {
			return BenchmarkResult{}, err
		}
	}
	avg := time.Since(start) / time.Duration(iterations)

	result := BenchmarkResult{
		FirstLoad:  first,
		AvgCached:  avg,
		Iterations: iterations,
	}
	if avg > 0 {
		result.Speedup = float64(first) / float64(avg)
	}
	return result, nil
}
