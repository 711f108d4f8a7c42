package facecache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Entry is the serialisable form of a cached face.
type Entry struct {
	ID     int            `json:"id"`
	Hash   string         `json:"hash"`
	Base   bool           `json:"base"`
	BaseID int            `json:"base_id"`
	Attrs  map[string]any `json:"attrs"`
}

// Snapshot is a dump of a cache's contents.
type Snapshot struct {
	Surface string  `json:"surface"`
	Faces   []Entry `json:"faces"`
}

// Snapshot captures the current contents of the cache.
func (c *Cache) Snapshot() Snapshot {
	faces := c.Faces()
	out := Snapshot{Surface: c.name, Faces: make([]Entry, 0, len(faces))}
	for _, f := range faces {
		out.Faces = append(out.Faces, Entry{
			ID:     f.ID,
			Hash:   strconv.FormatUint(f.Hash, 16),
			Base:   f.Base,
			BaseID: f.BaseID,
			Attrs:  f.Attrs.Plain(),
		})
	}
	return out
}

// WriteFile writes the snapshot as indented JSON, replacing path atomically.
func (s Snapshot) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

// ReadSnapshot loads a snapshot written by WriteFile.
func ReadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return s, nil
}
