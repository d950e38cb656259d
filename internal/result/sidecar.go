package result

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/examtrack/examtrack/internal/scoring"
	"github.com/examtrack/examtrack/internal/storage"
)

const sidecarDoc = "errors.json"

// Sidecar maps result ids (as strings) to ordered error notes, persisted as
// one JSON document that is rewritten whole on every mutation. Reads degrade
// to an empty list on any failure; writes propagate their errors so a caller
// never mistakes a lost note list for a durable one. Mutations are serialized
// with a mutex; the read-modify-write cycle is not safe across processes.
type Sidecar struct {
	mu   sync.Mutex
	docs *storage.DocStore
}

func NewSidecar(docs *storage.DocStore) *Sidecar {
	return &Sidecar{docs: docs}
}

// load reads the whole document. A missing file is created empty so later
// reads are well-formed; a corrupt file is logged and treated as empty rather
// than blocking the primary path.
func (s *Sidecar) load() (map[string][]scoring.ErrorNote, error) {
	m := map[string][]scoring.ErrorNote{}
	err := s.docs.Load(sidecarDoc, &m)
	switch {
	case err == nil:
		return m, nil
	case errors.Is(err, os.ErrNotExist):
		if err := s.docs.Save(sidecarDoc, map[string][]scoring.ErrorNote{}); err != nil {
			return nil, fmt.Errorf("init error sidecar: %w", err)
		}
		return map[string][]scoring.ErrorNote{}, nil
	default:
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			// parse failure: keep serving, notes for existing entries are lost
			log.Printf("error sidecar unreadable, treating as empty: %v", err)
			return map[string][]scoring.ErrorNote{}, nil
		}
		return nil, fmt.Errorf("read error sidecar: %w", err)
	}
}

func (s *Sidecar) save(m map[string][]scoring.ErrorNote) error {
	if err := s.docs.Save(sidecarDoc, m); err != nil {
		return fmt.Errorf("write error sidecar: %w", err)
	}
	return nil
}

// SetErrors stores the note list for a result, replacing any previous list.
// A nil list is stored as empty.
func (s *Sidecar) SetErrors(id int64, list []scoring.ErrorNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return err
	}
	if list == nil {
		list = []scoring.ErrorNote{}
	}
	m[fmt.Sprint(id)] = list
	return s.save(m)
}

// GetErrors never fails: any load problem degrades to an empty list.
func (s *Sidecar) GetErrors(id int64) []scoring.ErrorNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		log.Printf("error sidecar read for result %d degraded: %v", id, err)
		return []scoring.ErrorNote{}
	}
	if list, ok := m[fmt.Sprint(id)]; ok && list != nil {
		return list
	}
	return []scoring.ErrorNote{}
}

// RemoveErrors deletes the note list for a result. Removing an absent key is
// a no-op that skips the file rewrite.
func (s *Sidecar) RemoveErrors(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return err
	}
	key := fmt.Sprint(id)
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return s.save(m)
}
