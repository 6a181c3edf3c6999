package repository

import (
	"context"

	"scam-honeypot-agent/internal/domain/model"
)

// -----------------------------
// Session store
// -----------------------------

// SessionRepository is the keyed session store. Work on one session id is
// serialized by the store itself (per-key exclusion); distinct ids proceed in
// parallel. Idle expiry of sessions is the store's concern, not the caller's.
type SessionRepository interface {
	// Mutate runs fn on the session for id under that session's exclusive
	// lock, creating the session on first use of the id. The returned state is
	// a snapshot taken after fn ran; callers must not retain pointers into it
	// across calls.
	Mutate(ctx context.Context, id string, fn func(*model.SessionState) error) (*model.SessionState, error)

	// Find returns a snapshot of an existing session, or domain.ErrNotFound.
	Find(ctx context.Context, id string) (*model.SessionState, error)
}
