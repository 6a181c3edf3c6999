// File: internal/infra/memstore/session_repo.go
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"scam-honeypot-agent/internal/domain"
	"scam-honeypot-agent/internal/domain/model"
	"scam-honeypot-agent/internal/domain/ports/repository"
)

// Compile-time check
var _ repository.SessionRepository = (*SessionRepo)(nil)

const defaultSweepInterval = time.Minute

// SnapshotMirror receives post-mutation session snapshots. Satisfied by the
// redis session cache; writes are best effort.
type SnapshotMirror interface {
	StoreSnapshot(ctx context.Context, s *model.SessionState) error
}

// SessionRepo is the in-memory session store. Each session carries its own
// lock, so Mutate serializes work per session id while distinct sessions
// proceed in parallel. Sessions idle past the TTL are swept lazily.
type SessionRepo struct {
	mu        sync.Mutex
	entries   map[string]*sessionEntry
	idleTTL   time.Duration
	lastSweep time.Time
	mirror    SnapshotMirror
	log       *zerolog.Logger
}

type sessionEntry struct {
	mu    sync.Mutex
	state *model.SessionState

	// lastTouch is guarded by SessionRepo.mu, not by the entry lock. Mutate
	// refreshes it during lookup, before the entry lock is taken, so the sweep
	// never inspects state a concurrent mutation owns.
	lastTouch time.Time
}

func NewSessionRepo(idleTTL time.Duration, mirror SnapshotMirror, logger *zerolog.Logger) *SessionRepo {
	if idleTTL <= 0 {
		idleTTL = time.Hour
	}
	return &SessionRepo{
		entries:   make(map[string]*sessionEntry),
		idleTTL:   idleTTL,
		lastSweep: time.Now(),
		mirror:    mirror,
		log:       logger,
	}
}

func (r *SessionRepo) Mutate(ctx context.Context, id string, fn func(*model.SessionState) error) (*model.SessionState, error) {
	if id == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	r.mu.Lock()
	r.maybeSweepLocked(now)
	e, ok := r.entries[id]
	if !ok {
		e = &sessionEntry{state: model.NewSessionState(id)}
		r.entries[id] = e
	}
	e.lastTouch = now
	r.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := fn(e.state); err != nil {
		return nil, err
	}
	snap := snapshot(e.state)
	if r.mirror != nil {
		if err := r.mirror.StoreSnapshot(ctx, snap); err != nil {
			r.log.Debug().Err(err).Str("session_id", id).Msg("snapshot mirror write failed")
		}
	}
	return snap, nil
}

func (r *SessionRepo) Find(ctx context.Context, id string) (*model.SessionState, error) {
	r.mu.Lock()
	e, ok := r.entries[id]
	r.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.state), nil
}

// Len reports the number of live sessions. Used by tests and admin endpoints.
func (r *SessionRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// maybeSweepLocked drops sessions idle past the TTL. Called with r.mu held,
// rate limited so the map scan does not run on every Mutate.
func (r *SessionRepo) maybeSweepLocked(now time.Time) {
	if now.Sub(r.lastSweep) < defaultSweepInterval {
		return
	}
	r.lastSweep = now
	cutoff := now.Add(-r.idleTTL)
	dropped := 0
	for id, e := range r.entries {
		if e.lastTouch.Before(cutoff) {
			delete(r.entries, id)
			dropped++
		}
	}
	if dropped > 0 {
		r.log.Debug().Int("dropped", dropped).Msg("idle sessions swept")
	}
}

// snapshot deep-copies the mutable parts of a session so callers can read the
// result without holding the entry lock.
func snapshot(s *model.SessionState) *model.SessionState {
	out := *s
	out.Messages = append([]model.Message(nil), s.Messages...)
	out.NormalizedTexts = append([]string(nil), s.NormalizedTexts...)
	out.Artifacts = append([]string(nil), s.Artifacts...)
	out.Velocity.Timestamps = append([]time.Time(nil), s.Velocity.Timestamps...)
	if s.LatestBreakdown != nil {
		b := *s.LatestBreakdown
		b.MatchedRuleCategories = append([]string(nil), s.LatestBreakdown.MatchedRuleCategories...)
		b.MatchedIntentSignals = append([]string(nil), s.LatestBreakdown.MatchedIntentSignals...)
		out.LatestBreakdown = &b
	}
	return &out
}
