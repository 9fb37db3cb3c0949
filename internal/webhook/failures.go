package webhook

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// FailureStore keeps verified events that could not be reconciled. The money
// has already moved for these, so they must survive for manual replay
// instead of disappearing into a log line.
type FailureStore interface {
	Record(sessionID, eventType string, payload []byte, cause error) error
}

const insertFailureQuery = `
	INSERT INTO webhook_failures (failure_id, session_id, event_type, payload, error, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
`

type PostgresFailureStore struct {
	db *sql.DB
}

func NewPostgresFailureStore(db *sql.DB) *PostgresFailureStore {
	return &PostgresFailureStore{db: db}
}

func (s *PostgresFailureStore) Record(sessionID, eventType string, payload []byte, cause error) error {
	_, err := s.db.Exec(
		insertFailureQuery,
		uuid.NewString(),
		sessionID,
		eventType,
		string(payload),
		cause.Error(),
		time.Now().UTC(),
	)
	return err
}
