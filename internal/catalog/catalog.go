// Package catalog serves the emotion thesaurus from a directory of JSON
// files, one file per base emotion.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Conceptual-Machines/musicbrain-api/internal/jsoncache"
)

const fileExt = ".json"

var emptyObject = json.RawMessage(`{}`)

// Catalog reads <dir>/<emotion>.json through a shared JSON cache.
type Catalog struct {
	dir   string
	cache *jsoncache.Cache
}

func New(dir string, cache *jsoncache.Cache) *Catalog {
	if cache == nil {
		cache = jsoncache.New(jsoncache.DefaultSize)
	}
	return &Catalog{dir: dir, cache: cache}
}

// Dir returns the thesaurus directory.
func (c *Catalog) Dir() string {
	return c.dir
}

// Names lists the emotions in the thesaurus, sorted.
func (c *Catalog) Names() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("emotion catalog unavailable: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		// skips hidden files such as macOS "._sad.json" and a bare ".json"
		name := strings.TrimSuffix(entry.Name(), fileExt)
		if !validName(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Emotion returns one emotion's data. A missing file yields an empty object.
func (c *Catalog) Emotion(name string) (json.RawMessage, error) {
	if !validName(name) {
		return nil, fmt.Errorf("invalid emotion name %q", name)
	}
	return c.cache.LoadOrDefault(filepath.Join(c.dir, name+fileExt), emptyObject)
}

// All returns {"emotions": {name: data, ...}} for every emotion file.
func (c *Catalog) All(ctx context.Context) (json.RawMessage, error) {
	names, err := c.Names()
	if err != nil {
		return nil, err
	}

	emotions := make(map[string]json.RawMessage, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := c.Emotion(name)
		if err != nil {
			return nil, err
		}
		emotions[name] = data
	}

	out, err := json.Marshal(map[string]any{"emotions": emotions})
	if err != nil {
		return nil, errors.New("failed to encode emotion catalog")
	}
	return out, nil
}

func validName(name string) bool {
	return name != "" && name == filepath.Base(name) && !strings.HasPrefix(name, ".")
}
