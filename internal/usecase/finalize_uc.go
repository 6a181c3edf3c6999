// File: internal/usecase/finalize_uc.go
package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"scam-honeypot-agent/internal/domain"
	"scam-honeypot-agent/internal/domain/model"
	"scam-honeypot-agent/internal/domain/ports/adapter"
	"scam-honeypot-agent/internal/domain/ports/repository"
)

// Callback gates. A session is reported when it has gathered enough evidence
// (gate A), when a long engagement has produced a smaller but sufficient
// evidence set (gate B), or unconditionally at the safety cap so no session
// runs forever. Gates are checked in order; the first match names the reason.
const (
	gateAArtifacts = 3
	gateAMessages  = 5
	gateBArtifacts = 2
	gateBMessages  = 12
	safetyCap      = 30
)

// Compile-time check
var _ FinalizeUseCase = (*finalizeUC)(nil)

type FinalizeUseCase interface {
	// ShouldFinalize reports whether any callback gate is met for the session
	// snapshot, and which one.
	ShouldFinalize(s *model.SessionState) (bool, string)
	// Finalize sends the one-time final report for the session. A second call
	// returns domain.ErrCallbackAlreadySent. Delivery failure releases the
	// guard so the caller may retry.
	Finalize(ctx context.Context, sessionID string) (*adapter.FinalReport, error)
}

type finalizeUC struct {
	sessions repository.SessionRepository
	sender   adapter.CallbackSender
	log      *zerolog.Logger
}

func NewFinalizeUseCase(sessions repository.SessionRepository, sender adapter.CallbackSender, logger *zerolog.Logger) *finalizeUC {
	return &finalizeUC{sessions: sessions, sender: sender, log: logger}
}

func (u *finalizeUC) ShouldFinalize(s *model.SessionState) (bool, string) {
	if s.CallbackSent {
		return false, ""
	}
	switch {
	case s.ArtifactCount() >= gateAArtifacts && s.TotalMessages >= gateAMessages:
		return true, "evidence threshold"
	case s.ArtifactCount() >= gateBArtifacts && s.TotalMessages >= gateBMessages:
		return true, "extended engagement"
	case s.TotalMessages >= safetyCap:
		return true, "safety cap"
	}
	return false, ""
}

func (u *finalizeUC) Finalize(ctx context.Context, sessionID string) (*adapter.FinalReport, error) {
	var report adapter.FinalReport
	_, err := u.sessions.Mutate(ctx, sessionID, func(s *model.SessionState) error {
		if !s.MarkCallbackSent() {
			return domain.ErrCallbackAlreadySent
		}
		report = adapter.BuildFinalReport(s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := u.sender.Send(ctx, report); err != nil {
		// Release the one-shot guard so a later attempt can deliver.
		_, rbErr := u.sessions.Mutate(ctx, sessionID, func(s *model.SessionState) error {
			s.CallbackSent = false
			return nil
		})
		if rbErr != nil {
			u.log.Error().Err(rbErr).Str("session_id", sessionID).
				Msg("failed to release callback guard after delivery failure")
		}
		return nil, err
	}

	u.log.Info().
		Str("session_id", sessionID).
		Bool("scam_detected", report.ScamDetected).
		Int("artifacts", len(report.Artifacts)).
		Int("messages", report.TotalMessagesExchanged).
		Msg("final report delivered")
	return &report, nil
}
