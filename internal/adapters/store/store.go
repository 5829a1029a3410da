// Package store persists benchmark measurements as a flat JSON file.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/faststring/internal/core/domain"
	"go.trai.ch/faststring/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.ResultStore. Each file holds a JSON object keyed by
// scenario name.
type Store struct {
	mu sync.Mutex
}

// NewStore creates a new result store.
func NewStore() *Store {
	return &Store{}
}

var _ ports.ResultStore = (*Store)(nil)

// Load returns the measurements saved at path.
func (s *Store) Load(path string) (map[string]domain.Measurement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return load(filepath.Clean(path))
}

// Save merges ms into the measurements saved at path, replacing entries of
// the same scenario.
func (s *Store) Save(path string, ms []domain.Measurement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path = filepath.Clean(path)
	results, err := load(path)
	if err != nil {
		return err
	}
	for _, m := range ms {
		results[m.Scenario] = m
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal results")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for results"), "path", path)
	}

	// Written beside the target, then renamed into place.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write results"), "path", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace results"), "path", path)
	}
	return nil
}

func load(path string) (map[string]domain.Measurement, error) {
	results := make(map[string]domain.Measurement)

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return results, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read results"), "path", path)
	}
	if len(data) == 0 {
		return results, nil
	}

	if err := json.Unmarshal(data, &results); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to unmarshal results"), "path", path)
	}
	return results, nil
}
