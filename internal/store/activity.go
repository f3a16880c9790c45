package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Levels and categories recorded in the activity log.
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelError   = "error"

	CategoryAuth     = "auth"
	CategoryCustomer = "customer"
	CategoryOrder    = "order"
	CategoryImport   = "import"
)

// ActivityEvent is one audit-trail entry: something an operator did through
// the dashboard, or tried to.
type ActivityEvent struct {
	ID        int64     `json:"id"`
	Operator  string    `json:"operator"`
	Category  string    `json:"category"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityStore persists activity events to SQLite.
type ActivityStore struct {
	db *sql.DB
}

// NewActivityStore creates an ActivityStore.
func NewActivityStore(db *sql.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// Log records an event. Failures are returned, not fatal: an unrecordable
// audit entry must never block the operation it describes.
func (s *ActivityStore) Log(operator, category, level, message string) error {
	_, err := s.db.Exec(`
		INSERT INTO activity (operator, category, level, message, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		operator, category, level, message, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Recent returns the newest n events, newest first.
func (s *ActivityStore) Recent(n int) ([]ActivityEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, operator, category, level, message, created_at
		FROM activity ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var events []ActivityEvent
	for rows.Next() {
		var e ActivityEvent
		if err := rows.Scan(&e.ID, &e.Operator, &e.Category, &e.Level, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Count returns the total number of recorded events.
func (s *ActivityStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM activity").Scan(&count); err != nil {
		return 0, fmt.Errorf("count activity: %w", err)
	}
	return count, nil
}
