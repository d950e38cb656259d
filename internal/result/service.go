package result

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/examtrack/examtrack/internal/audit"
)

// ErrSidecarWrite marks a partial success on the create path: the result row
// committed and carries an id, but its error notes may not have persisted.
var ErrSidecarWrite = errors.New("error descriptions not persisted")

// Service composes the results store with the error sidecar so every result
// leaving this package carries its errorsList. The row write and the sidecar
// write are not atomic; a crash between the two leaves a row without notes.
type Service struct {
	store   Store
	sidecar *Sidecar
	events  *audit.EventRepo // optional
}

func NewService(store Store, sidecar *Sidecar, events *audit.EventRepo) *Service {
	return &Service{store: store, sidecar: sidecar, events: events}
}

// Create inserts the row, records its error notes in the sidecar, and returns
// the stored record enriched for the response. When only the sidecar write
// fails, the returned result is still valid and the error wraps
// ErrSidecarWrite; callers should treat that as partial success, not roll
// back the row.
func (s *Service) Create(ctx context.Context, in ExamResult) (ExamResult, error) {
	notes := in.ErrorsList
	id, err := s.store.Insert(ctx, in)
	if err != nil {
		return ExamResult{}, err
	}

	// Always write the sidecar entry, even for exam types that submit no
	// notes, so every row has a well-formed (possibly empty) entry.
	var sidecarErr error
	if err := s.sidecar.SetErrors(id, notes); err != nil {
		log.Printf("result %d: sidecar write failed: %v", id, err)
		sidecarErr = fmt.Errorf("%w: %v", ErrSidecarWrite, err)
	}

	s.logEvent(ctx, audit.EventResultCreated, id, map[string]interface{}{
		"nick": in.Nick, "examType": in.ExamType, "passed": in.Passed,
	})

	created, err := s.Get(ctx, id)
	if err != nil {
		return ExamResult{}, err
	}
	return created, sidecarErr
}

func (s *Service) ListAll(ctx context.Context) ([]ExamResult, error) {
	rows, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.enrich(rows), nil
}

func (s *Service) ListByType(ctx context.Context, t ExamType) ([]ExamResult, error) {
	rows, err := s.store.FetchByType(ctx, t)
	if err != nil {
		return nil, err
	}
	return s.enrich(rows), nil
}

func (s *Service) Get(ctx context.Context, id int64) (ExamResult, error) {
	r, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return ExamResult{}, err
	}
	r.ErrorsList = s.sidecar.GetErrors(r.ID)
	return r, nil
}

// Delete removes the row and its sidecar entry. Deleting an unknown id
// returns ErrNotFound without touching the sidecar.
func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.logEvent(ctx, audit.EventResultDeleted, id, nil)
	return s.sidecar.RemoveErrors(id)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.store.Stats(ctx)
}

func (s *Service) enrich(rows []ExamResult) []ExamResult {
	for i := range rows {
		rows[i].ErrorsList = s.sidecar.GetErrors(rows[i].ID)
	}
	return rows
}

func (s *Service) logEvent(ctx context.Context, typ string, id int64, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Append(ctx, typ, fmt.Sprint(id), data); err != nil {
		log.Printf("event log append %s %d: %v", typ, id, err)
	}
}
