package directory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/civicdataworks/lane-swim-tracker/snapshot"
)

// Cache persists the candidate facility list between runs so a refresh can
// skip the directory re-fetch when asked to.
type Cache struct {
	path string
}

// NewCache creates a candidate cache backed by the file at path.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Exists reports whether a cached candidate list is present.
func (c *Cache) Exists() bool {
	_, err := os.Stat(c.path)
	return err == nil
}

// Save writes the candidate list, replacing any previous one.
func (c *Cache) Save(candidates []snapshot.Facility) error {
	data, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("marshal candidates: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create candidates dir: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write candidates temp file: %w", err)
	}
	return os.Rename(tmp, c.path)
}

// Load reads the cached candidate list.
func (c *Cache) Load() ([]snapshot.Facility, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, err
	}
	var candidates []snapshot.Facility
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("parse candidates %s: %w", c.path, err)
	}
	return candidates, nil
}
