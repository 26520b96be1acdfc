package model

import (
	"time"
	"venue/shared/model"
)

const (
	TableName  = "table_sessions"
	EntityName = "session"

	FieldID        = "id"
	FieldTableID   = "table_id"
	FieldGameID    = "game_id"
	FieldStartedAt = "started_at"
	FieldEndedAt   = "ended_at"
)

// Session is a table occupancy record. At most one session per table may
// have a null EndedAt at any instant; the reconciler enforces this in code
// and a partial unique index backs it in the store.
type Session struct {
	ID        string     `db:"id"`
	TableID   string     `db:"table_id"`
	GameID    *string    `db:"game_id"`
	StartedAt time.Time  `db:"started_at"`
	EndedAt   *time.Time `db:"ended_at"`
	model.Metadata
}

// IsActive reports whether the session still occupies its table.
func (s *Session) IsActive() bool {
	return s.ID != "" && s.EndedAt == nil
}

// IsStale reports whether an active session has outlived the staleness
// threshold and should be presumed abandoned.
func (s *Session) IsStale(now time.Time, threshold time.Duration) bool {
	return s.IsActive() && now.Sub(s.StartedAt) > threshold
}
