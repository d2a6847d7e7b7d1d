package jsoncache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCachesFile(t *testing.T) {
	path := writeJSON(t, t.TempDir(), "happy.json", `{"name":"happy","sub":["joyful"]}`)
	cache := New(0)

	first, err := cache.Load(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"happy","sub":["joyful"]}`, string(first))

	second, err := cache.Load(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	info := cache.Info()
	assert.Equal(t, int64(1), info.Hits)
	assert.Equal(t, int64(1), info.Misses)
	assert.Equal(t, 1, info.Size)
	assert.Equal(t, DefaultSize, info.Capacity)
}

func TestLoadReloadsChangedFile(t *testing.T) {
	path := writeJSON(t, t.TempDir(), "sad.json", `{"v":1}`)
	cache := New(8)

	data, err := cache.Load(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(data))

	require.NoError(t, os.WriteFile(path, []byte(`{"v":2}`), 0o644))
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))

	data, err = cache.Load(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(data))
	assert.Equal(t, int64(2), cache.Info().Misses)
}

func TestLoadMissingFile(t *testing.T) {
	cache := New(8)
	missing := filepath.Join(t.TempDir(), "nope.json")

	_, err := cache.Load(missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "nope.json")

	data, err := cache.LoadOrDefault(missing, json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeJSON(t, t.TempDir(), "broken.json", `{"name":`)
	cache := New(8)

	_, err := cache.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON in")
	assert.Contains(t, err.Error(), "broken.json")

	// invalid files are not defaulted
	_, err = cache.LoadOrDefault(path, json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Equal(t, 0, cache.Info().Size)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	dir := t.TempDir()
	a := writeJSON(t, dir, "a.json", `1`)
	b := writeJSON(t, dir, "b.json", `2`)
	cache := New(1)

	_, err := cache.Load(a)
	require.NoError(t, err)
	_, err = cache.Load(b)
	require.NoError(t, err)
	_, err = cache.Load(a)
	require.NoError(t, err)

	info := cache.Info()
	assert.Equal(t, 1, info.Size)
	assert.Equal(t, int64(3), info.Misses)
	assert.Equal(t, int64(0), info.Hits)
}

func TestClear(t *testing.T) {
	path := writeJSON(t, t.TempDir(), "calm.json", `{}`)
	cache := New(8)

	_, err := cache.Load(path)
	require.NoError(t, err)
	_, err = cache.Load(path)
	require.NoError(t, err)

	cache.Clear()
	assert.Equal(t, Info{Capacity: 8}, cache.Info())
}

func TestConcurrentLoads(t *testing.T) {
	path := writeJSON(t, t.TempDir(), "fear.json", `{"name":"fear"}`)
	cache := New(8)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := cache.Load(path)
			assert.NoError(t, err)
			assert.JSONEq(t, `{"name":"fear"}`, string(data))
		}()
	}
	wg.Wait()

	info := cache.Info()
	assert.Equal(t, int64(16), info.Hits+info.Misses)
	assert.Equal(t, 1, info.Size)
}

func TestBenchmark(t *testing.T) {
	path := writeJSON(t, t.TempDir(), "scales.json", `{"scales":["ionian","dorian","phrygian"]}`)
	cache := New(8)

	result, err := cache.Benchmark(path, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Iterations)
	assert.Positive(t, result.FirstLoad)

	info := cache.Info()
	assert.Equal(t, int64(1), info.Misses)
	assert.Equal(t, int64(10), info.Hits)

	_, err = cache.Benchmark(filepath.Join(t.TempDir(), "missing.json"), 10)
	assert.ErrorIs(t, err, ErrNotFound)
}
