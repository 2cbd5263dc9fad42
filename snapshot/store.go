package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Store persists the full facility list as a single JSON file. Each write
// replaces the previous snapshot wholesale; readers never observe a partial
// file because the new content is written to a temp file and renamed over
// the old one.
type Store struct {
	path   string
	logger zerolog.Logger
}

// NewStore creates a snapshot store backed by the file at path.
func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger.With().Str("component", "snapshot").Logger(),
	}
}

// Path returns the snapshot file location.
func (s *Store) Path() string { return s.path }

// Write replaces the snapshot with the given facilities. Facilities with no
// sessions are dropped: a location without qualifying lane-swim data this
// cycle is treated as not offering lane swim at all.
func (s *Store) Write(facilities []Facility) error {
	kept := make([]Facility, 0, len(facilities))
	for _, f := range facilities {
		if len(f.Sessions) == 0 {
			continue
		}
		kept = append(kept, f)
	}

	data, err := json.MarshalIndent(kept, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	s.logger.Info().
		Int("facilities", len(kept)).
		Int("dropped_empty", len(facilities)-len(kept)).
		Str("path", s.path).
		Msg("snapshot written")
	return nil
}

// Load reads the current snapshot. The file is re-read on every call; the
// refresh task may swap it at any time.
func (s *Store) Load() ([]Facility, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var facilities []Facility
	if err := json.Unmarshal(data, &facilities); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", s.path, err)
	}
	return facilities, nil
}
