package result

import (
	"context"
	"errors"
)

// ErrNotFound reports an operation addressed a result that does not exist.
var ErrNotFound = errors.New("result not found")

// ValidationError reports a missing or invalid required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// Store is durable CRUD for exam result rows. Rows carry no error notes;
// the Service merges those in from the sidecar.
type Store interface {
	Insert(ctx context.Context, r ExamResult) (int64, error)
	FetchAll(ctx context.Context) ([]ExamResult, error)
	FetchByType(ctx context.Context, t ExamType) ([]ExamResult, error)
	FetchByID(ctx context.Context, id int64) (ExamResult, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Stats(ctx context.Context) (Stats, error)
}
