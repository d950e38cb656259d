package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

const (
	EventResultCreated = "ResultCreated"
	EventResultDeleted = "ResultDeleted"
)

type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// Append records an event. data is marshaled to JSON; a nil payload is
// stored as an empty object.
func (r *EventRepo) Append(ctx context.Context, typ, key string, data interface{}) error {
	payload := "{}"
	if data != nil {
		buf, err := json.Marshal(data)
		if err != nil {
			return err
		}
		payload = string(buf)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4)`,
		typ, key, payload, time.Now().Unix())
	return err
}
