package question

import (
	"errors"
	"fmt"
	"os"

	"github.com/examtrack/examtrack/internal/storage"
)

type Question struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	MaxPoints int    `json:"maxPoints"`
}

const catalogDoc = "questions.json"

var defaultCatalog = []Question{
	{ID: 1, Text: "Jakie są podstawowe zasady bezpieczeństwa w sieci?", MaxPoints: 2},
	{ID: 2, Text: "Wymień trzy najważniejsze protokoły sieciowe.", MaxPoints: 3},
}

// FileStore serves the static question catalog from a JSON document,
// seeding it with the defaults on first run.
type FileStore struct {
	docs *storage.DocStore
}

func NewFileStore(docs *storage.DocStore) (*FileStore, error) {
	s := &FileStore{docs: docs}
	if !docs.Exists(catalogDoc) {
		if err := docs.Save(catalogDoc, defaultCatalog); err != nil {
			return nil, fmt.Errorf("seed question catalog: %w", err)
		}
	}
	return s, nil
}

func (s *FileStore) All() ([]Question, error) {
	var qs []Question
	if err := s.docs.Load(catalogDoc, &qs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Question{}, nil
		}
		return nil, fmt.Errorf("read question catalog: %w", err)
	}
	return qs, nil
}
