package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// DocStore reads and writes whole JSON documents under a base directory.
// Writes go through a temp file + rename so readers never see a torn file.
type DocStore struct{ base string }

func NewDocStore(base string) (*DocStore, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &DocStore{base: base}, nil
}

func (s *DocStore) Path(name string) string {
	return filepath.Join(s.base, filepath.Clean(name))
}

// Load unmarshals the named document into v. Returns os.ErrNotExist if the
// file is absent; callers decide whether to seed it.
func (s *DocStore) Load(name string, v interface{}) error {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Save marshals v and atomically replaces the named document.
func (s *DocStore) Save(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	dst := s.Path(name)
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

// Exists reports whether the named document is present on disk.
func (s *DocStore) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return !errors.Is(err, os.ErrNotExist)
}
