// Package store persists one named collection of records as a JSON array on
// disk. Every save rewrites the whole file; readers see either the previous
// or the new complete version. Identifiers are recomputed from current
// contents, never from an independent counter.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is any entity with a positive integer identifier.
type Record interface {
	RecordID() int
}

// Store reads and writes one collection file.
type Store[T Record] struct {
	path string
}

// New creates a store backed by the given file path. The file is not touched
// until the first Load or Save.
func New[T Record](path string) *Store[T] {
	return &Store[T]{path: path}
}

// Path returns the backing file path.
func (s *Store[T]) Path() string { return s.path }

// Load reads the full collection. A missing file is an empty collection, not
// an error. Corrupt contents surface as a *ParseError.
func (s *Store[T]) Load() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return s.parse(data)
}

func (s *Store[T]) parse(data []byte) ([]T, error) {
	if len(data) == 0 {
		return []T{}, nil
	}
	var recs []T
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}

// Save overwrites the collection file with the given records.
func (s *Store[T]) Save(recs []T) error {
	if recs == nil {
		recs = []T{}
	}
	data, err := json.MarshalIndent(recs, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// Update loads the collection, applies fn, and saves the result. When fn
// returns an error nothing is written.
func (s *Store[T]) Update(fn func([]T) ([]T, error)) error {
	recs, err := s.Load()
	if err != nil {
		return err
	}
	recs, err = fn(recs)
	if err != nil {
		return err
	}
	return s.Save(recs)
}

// Init creates the collection file as an empty array if it does not exist.
func (s *Store[T]) Init() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	return s.Save(nil)
}

// NextID returns max(existing ids)+1, or 1 for an empty collection. Deleting
// the highest-numbered record frees its id for reuse.
func NextID[T Record](recs []T) int {
	max := 0
	for _, r := range recs {
		if id := r.RecordID(); id > max {
			max = id
		}
	}
	return max + 1
}

// FindByID returns the record with the given id and whether it was found.
func FindByID[T Record](recs []T, id int) (T, bool) {
	for _, r := range recs {
		if r.RecordID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}
