package result

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/examtrack/examtrack/internal/scoring"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

const resultColumns = `id, nick, date, attempt, total_points, max_points, percentage, passed,
	timestamp, exam_type, errors, bonus_points, notes, conductor_name, conductor_id, question_results`

func (s *SQLStore) Insert(ctx context.Context, r ExamResult) (int64, error) {
	if strings.TrimSpace(r.Nick) == "" {
		return 0, &ValidationError{Field: "nick", Reason: "required"}
	}
	if !r.ExamType.Valid() {
		return 0, &ValidationError{Field: "examType", Reason: fmt.Sprintf("unknown exam type %q", r.ExamType)}
	}

	var qrJSON sql.NullString
	if r.QuestionResults != nil {
		buf, err := json.Marshal(r.QuestionResults)
		if err != nil {
			return 0, fmt.Errorf("marshal question results: %w", err)
		}
		qrJSON = sql.NullString{String: string(buf), Valid: true}
	}

	ts := r.Timestamp
	if ts == "" {
		ts = time.Now().UTC().Format(time.RFC3339)
	}

	const insert = `INSERT INTO exam_results (
		nick, date, attempt, total_points, max_points, percentage, passed,
		timestamp, exam_type, errors, bonus_points, notes, conductor_name, conductor_id, question_results
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`

	args := []interface{}{
		r.Nick, nullStr(r.Date), nullIntPtr(r.Attempt),
		r.TotalPoints, r.MaxPoints, r.Percentage, boolToInt(r.Passed),
		ts, string(r.ExamType), nullIntPtr(r.Errors), nullIntPtr(r.BonusPoints),
		nullStr(r.Notes), nullStr(r.ConductorName), nullStr(r.ConductorID), qrJSON,
	}

	if s.driver == "postgres" {
		var id int64
		if err := s.db.QueryRowContext(ctx, insert+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert result: %w", err)
		}
		return id, nil
	}
	res, err := s.db.ExecContext(ctx, insert, args...)
	if err != nil {
		return 0, fmt.Errorf("insert result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert result id: %w", err)
	}
	return id, nil
}

func (s *SQLStore) FetchAll(ctx context.Context) ([]ExamResult, error) {
	return s.query(ctx, `SELECT `+resultColumns+` FROM exam_results ORDER BY timestamp DESC, id DESC`)
}

// FetchByType rejects unknown exam types with a ValidationError rather than
// returning an empty list, so typos surface as 400s instead of silence.
func (s *SQLStore) FetchByType(ctx context.Context, t ExamType) ([]ExamResult, error) {
	if !t.Valid() {
		return nil, &ValidationError{Field: "examType", Reason: fmt.Sprintf("unknown exam type %q", t)}
	}
	return s.query(ctx,
		`SELECT `+resultColumns+` FROM exam_results WHERE exam_type=$1 ORDER BY timestamp DESC, id DESC`,
		string(t))
}

func (s *SQLStore) FetchByID(ctx context.Context, id int64) (ExamResult, error) {
	rows, err := s.query(ctx, `SELECT `+resultColumns+` FROM exam_results WHERE id=$1`, id)
	if err != nil {
		return ExamResult{}, err
	}
	if len(rows) == 0 {
		return ExamResult{}, ErrNotFound
	}
	return rows[0], nil
}

func (s *SQLStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM exam_results WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete result %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLStore) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT exam_type, passed, COUNT(*) FROM exam_results GROUP BY exam_type, passed`)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	defer rows.Close()

	var st Stats
	for rows.Next() {
		var typ string
		var passed, count int
		if err := rows.Scan(&typ, &passed, &count); err != nil {
			return Stats{}, err
		}
		st.Total += count
		if passed != 0 {
			st.Passed += count
		} else {
			st.Failed += count
		}
		switch ExamType(typ) {
		case TypeChecking:
			st.ByType.Checking += count
		case TypeSpelling:
			st.ByType.Spelling += count
		case TypeDocuments:
			st.ByType.Documents += count
		}
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}
	if st.Total > 0 {
		st.PassRate = int(math.Round(float64(st.Passed) / float64(st.Total) * 100))
	}
	return st, nil
}

func (s *SQLStore) query(ctx context.Context, q string, args ...interface{}) ([]ExamResult, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	out := []ExamResult{}
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanResult(rows *sql.Rows) (ExamResult, error) {
	var r ExamResult
	var (
		date, notes, condName, condID, qrJSON sql.NullString
		attempt, errCount, bonus              sql.NullInt64
		passed                                int
	)
	if err := rows.Scan(&r.ID, &r.Nick, &date, &attempt, &r.TotalPoints, &r.MaxPoints,
		&r.Percentage, &passed, &r.Timestamp, &r.ExamType, &errCount, &bonus,
		&notes, &condName, &condID, &qrJSON); err != nil {
		return ExamResult{}, err
	}
	r.Passed = passed != 0
	r.Date = date.String
	r.Notes = notes.String
	r.ConductorName = condName.String
	r.ConductorID = condID.String
	r.Attempt = intPtr(attempt)
	r.Errors = intPtr(errCount)
	r.BonusPoints = intPtr(bonus)
	if qrJSON.Valid && qrJSON.String != "" {
		var qr []scoring.QuestionResult
		if err := json.Unmarshal([]byte(qrJSON.String), &qr); err != nil {
			// a corrupt blob must not block the read path
			log.Printf("result %d: bad question_results blob: %v", r.ID, err)
		} else {
			r.QuestionResults = qr
		}
	}
	return r, nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullIntPtr(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
