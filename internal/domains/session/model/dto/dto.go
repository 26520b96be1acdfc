package dto

import (
	"venue/internal/domains/session/model"
	"venue/shared/constant"
)

type StartSessionRequest struct {
	GameID string `json:"game_id" validate:"omitempty"`
}

type SessionResponse struct {
	ID        string `json:"id"`
	TableID   string `json:"table_id"`
	GameID    string `json:"game_id,omitempty"`
	StartedAt string `json:"started_at"`
	EndedAt   string `json:"ended_at,omitempty"`
	Active    bool   `json:"active"`
}

func (r *SessionResponse) FromModel(model model.Session) {
	r.ID = model.ID
	r.TableID = model.TableID

	if model.GameID != nil {
		r.GameID = *model.GameID
	}

	r.StartedAt = model.StartedAt.Format(constant.DateFormat)

	if model.EndedAt != nil {
		r.EndedAt = model.EndedAt.Format(constant.DateFormat)
	}

	r.Active = model.EndedAt == nil
}

// TableSessionResponse is the guest-facing view of a table's occupancy. The
// Pointer field is the value the client should hold after this call: the
// authoritative session id, or empty when any client-held pointer must be
// discarded.
type TableSessionResponse struct {
	TableID string           `json:"table_id"`
	Session *SessionResponse `json:"session,omitempty"`
	Pointer string           `json:"-"`
}

// StartSessionResponse reports the session the guest now belongs to. Joined
// is true when an existing live session was returned instead of creating a
// duplicate.
type StartSessionResponse struct {
	Session SessionResponse `json:"session"`
	Joined  bool            `json:"joined"`
}

// EndSessionResponse is benign on a double end: Ended is false and Message
// explains, but the call succeeds.
type EndSessionResponse struct {
	Ended   bool   `json:"ended"`
	Message string `json:"message,omitempty"`
}
