package store

import (
	"database/sql"
	"fmt"

	"pm-tutor-bot/internal/db"
)

// DatabaseStore persists session topics in PostgreSQL so they survive restarts.
type DatabaseStore struct {
	db *db.DB
}

// NewDatabaseStore creates a new database-backed session store
func NewDatabaseStore(database *db.DB) *DatabaseStore {
	return &DatabaseStore{db: database}
}

// LastTopic retrieves the last selected topic for a session key. Returns ""
// when the key has never been seen.
func (ds *DatabaseStore) LastTopic(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("session key is required")
	}

	var topic string
	query := `SELECT last_topic FROM tutor_sessions WHERE session_key = $1`
	err := ds.db.QueryRow(query, key).Scan(&topic)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session topic: %w", err)
	}
	return topic, nil
}

// SetLastTopic saves or updates the last selected topic for a session key.
func (ds *DatabaseStore) SetLastTopic(key, topic string) error {
	if key == "" || topic == "" {
		return fmt.Errorf("session key and topic are required")
	}

	query := `
		INSERT INTO tutor_sessions (session_key, last_topic, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (session_key)
		DO UPDATE SET
			last_topic = EXCLUDED.last_topic,
			updated_at = NOW()
	`
	if _, err := ds.db.Exec(query, key, topic); err != nil {
		return fmt.Errorf("failed to save session topic: %w", err)
	}
	return nil
}
