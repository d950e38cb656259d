package question

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/examtrack/examtrack/internal/storage"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	docs, err := storage.NewDocStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewFileStore(docs)
	if err != nil {
		t.Fatal(err)
	}
	return s, dir
}

func TestSeedsDefaultCatalog(t *testing.T) {
	s, dir := newTestStore(t)

	if _, err := os.Stat(filepath.Join(dir, "questions.json")); err != nil {
		t.Fatalf("catalog not seeded: %v", err)
	}
	qs, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 2 {
		t.Fatalf("len = %d, want 2 defaults", len(qs))
	}
	if qs[0].ID != 1 || qs[0].MaxPoints != 2 || qs[1].MaxPoints != 3 {
		t.Errorf("catalog = %+v", qs)
	}
}

func TestExistingCatalogIsNotOverwritten(t *testing.T) {
	dir := t.TempDir()
	docs, err := storage.NewDocStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	custom := []Question{{ID: 7, Text: "Własne pytanie", MaxPoints: 5}}
	if err := docs.Save("questions.json", custom); err != nil {
		t.Fatal(err)
	}

	s, err := NewFileStore(docs)
	if err != nil {
		t.Fatal(err)
	}
	qs, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 1 || qs[0].ID != 7 {
		t.Errorf("catalog = %+v, want the pre-existing one", qs)
	}
}

func TestAllToleratesMissingDocument(t *testing.T) {
	s, dir := newTestStore(t)
	if err := os.Remove(filepath.Join(dir, "questions.json")); err != nil {
		t.Fatal(err)
	}
	qs, err := s.All()
	if err != nil {
		t.Fatalf("missing catalog: %v", err)
	}
	if len(qs) != 0 {
		t.Errorf("qs = %+v, want empty", qs)
	}
}
