package model

import (
	"strings"
	"time"
)

// Velocity thresholds. A rate violation is more messages than the threshold
// inside the rolling window; same for bursts on a much shorter window.
const (
	RateWindow     = 5 * time.Minute
	RateThreshold  = 10
	BurstWindow    = 30 * time.Second
	BurstThreshold = 5

	// A financial signal inside the first messages of a session is a
	// contextual red flag on its own.
	earlyWindowMessages = 2
)

// VelocityState holds the sliding message-frequency counters for one session.
// Timestamps is pruned to the rate window on every append; the burst window is
// derived from its tail.
type VelocityState struct {
	Timestamps     []time.Time
	RateViolation  bool
	BurstViolation bool
}

// Violated reports whether either sliding-window threshold is currently exceeded.
func (v VelocityState) Violated() bool {
	return v.RateViolation || v.BurstViolation
}

// ContextualFlags are cross-turn behavioral signals.
type ContextualFlags struct {
	EarlyFinancialRequest bool
	RepetitionCount       int
}

// SessionState is the aggregate root for one tracked conversation.
type SessionState struct {
	ID                  string
	Messages            []Message
	NormalizedTexts     []string // normalized form of each message, for repetition matching
	LatestBreakdown     *RiskBreakdown
	CumulativeRiskLevel RiskLevel
	Velocity            VelocityState
	Flags               ContextualFlags
	Artifacts           []string // distinct normalized artifact values, insertion order
	TotalMessages       int
	CallbackSent        bool
	AgentNotes          string
	CreatedAt           time.Time
	LastUpdatedAt       time.Time
}

func NewSessionState(id string) *SessionState {
	now := time.Now()
	return &SessionState{
		ID:                  id,
		Messages:            make([]Message, 0, 8),
		CumulativeRiskLevel: RiskSafe,
		CreatedAt:           now,
		LastUpdatedAt:       now,
	}
}

// Append records one accepted message: history, counters, velocity windows and
// the repetition counter. normalizedText must be the evasion-normalized form of
// msg.Text; now is the ingest instant used for the velocity windows.
func (s *SessionState) Append(msg Message, normalizedText string, now time.Time) {
	for _, prior := range s.NormalizedTexts {
		if normalizedText != "" && prior == normalizedText {
			s.Flags.RepetitionCount++
			break
		}
	}

	s.Messages = append(s.Messages, msg)
	s.NormalizedTexts = append(s.NormalizedTexts, normalizedText)
	s.TotalMessages++
	s.updateVelocity(now)
	s.LastUpdatedAt = now
}

func (s *SessionState) updateVelocity(now time.Time) {
	rateCutoff := now.Add(-RateWindow)
	kept := s.Velocity.Timestamps[:0]
	for _, ts := range s.Velocity.Timestamps {
		if ts.After(rateCutoff) {
			kept = append(kept, ts)
		}
	}
	s.Velocity.Timestamps = append(kept, now)

	burstCutoff := now.Add(-BurstWindow)
	burstCount := 0
	for _, ts := range s.Velocity.Timestamps {
		if ts.After(burstCutoff) {
			burstCount++
		}
	}
	s.Velocity.RateViolation = len(s.Velocity.Timestamps) > RateThreshold
	s.Velocity.BurstViolation = burstCount > BurstThreshold
}

// NoteFinancialSignal sets the early-financial flag when a financial-entity
// signal shows up within the opening messages. Once set it is never cleared.
func (s *SessionState) NoteFinancialSignal() {
	if s.TotalMessages <= earlyWindowMessages {
		s.Flags.EarlyFinancialRequest = true
	}
}

// ObserveBreakdown stores the latest per-message breakdown and folds its risk
// level into the monotone cumulative level.
func (s *SessionState) ObserveBreakdown(b RiskBreakdown) {
	s.LatestBreakdown = &b
	s.CumulativeRiskLevel = MaxRiskLevel(s.CumulativeRiskLevel, b.RiskLevel)
}

// AddArtifacts merges extracted evidence values, deduplicating on the
// normalized value, and returns how many were new.
func (s *SessionState) AddArtifacts(values []string) int {
	added := 0
	for _, v := range values {
		norm := strings.ToLower(strings.TrimSpace(v))
		if norm == "" {
			continue
		}
		dup := false
		for _, have := range s.Artifacts {
			if have == norm {
				dup = true
				break
			}
		}
		if !dup {
			s.Artifacts = append(s.Artifacts, norm)
			added++
		}
	}
	return added
}

// ArtifactCount is the number of distinct evidence artifacts seen so far.
func (s *SessionState) ArtifactCount() int { return len(s.Artifacts) }

// ScamDetected reports whether the session ever reached the scam level.
func (s *SessionState) ScamDetected() bool { return s.CumulativeRiskLevel == RiskScam }

// MarkCallbackSent flips the one-shot reporting guard. It returns false when
// the callback was already sent, so callers can refuse a second finalize.
func (s *SessionState) MarkCallbackSent() bool {
	if s.CallbackSent {
		return false
	}
	s.CallbackSent = true
	return true
}
