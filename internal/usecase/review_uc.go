// File: internal/usecase/review_uc.go
package usecase

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"scam-honeypot-agent/internal/domain"
	"scam-honeypot-agent/internal/domain/model"
	"scam-honeypot-agent/internal/domain/ports/repository"
)

// Compile-time check
var _ ReviewUseCase = (*reviewUC)(nil)

type ReviewUseCase interface {
	// EnqueueIfBorderline queues the session for human review when its latest
	// breakdown landed in the suspicious band. Duplicate enqueues for a session
	// already pending are absorbed silently.
	EnqueueIfBorderline(ctx context.Context, s *model.SessionState) error
	// Pending lists queued items awaiting a verdict, oldest first.
	Pending(ctx context.Context) ([]*model.ReviewItem, error)
	// SubmitFeedback records the human verdict for a queued session and appends
	// it to the retraining export stream.
	SubmitFeedback(ctx context.Context, sessionID string, label model.HumanLabel) (*model.ReviewItem, error)
}

type reviewUC struct {
	queue  repository.ReviewQueue
	export repository.FeedbackExportRepository
	log    *zerolog.Logger
}

func NewReviewUseCase(queue repository.ReviewQueue, export repository.FeedbackExportRepository, logger *zerolog.Logger) *reviewUC {
	return &reviewUC{queue: queue, export: export, log: logger}
}

func (u *reviewUC) EnqueueIfBorderline(ctx context.Context, s *model.SessionState) error {
	if s == nil || s.LatestBreakdown == nil || s.LatestBreakdown.RiskLevel != model.RiskSuspicious {
		return nil
	}
	item := &model.ReviewItem{
		ID:         ulid.Make().String(),
		SessionID:  s.ID,
		Snapshot:   *s.LatestBreakdown,
		EnqueuedAt: time.Now(),
		Status:     model.ReviewPending,
	}
	evicted, err := u.queue.Enqueue(item)
	if err != nil {
		if err == domain.ErrAlreadyQueued {
			return nil
		}
		return err
	}
	if evicted != nil {
		u.log.Warn().
			Str("session_id", evicted.SessionID).
			Str("status", string(evicted.Status)).
			Msg("review queue full, oldest item evicted")
	}
	return nil
}

func (u *reviewUC) Pending(ctx context.Context) ([]*model.ReviewItem, error) {
	return u.queue.Pending(), nil
}

func (u *reviewUC) SubmitFeedback(ctx context.Context, sessionID string, label model.HumanLabel) (*model.ReviewItem, error) {
	if label != model.LabelScam && label != model.LabelNotScam {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	item, err := u.queue.Resolve(sessionID, label, now)
	if err != nil {
		return nil, err
	}
	rec := &model.LabeledRecord{
		SessionID: sessionID,
		Snapshot:  item.Snapshot,
		Label:     label,
		LabeledAt: now,
	}
	if err := u.export.Append(ctx, rec); err != nil {
		u.log.Error().Err(err).Str("session_id", sessionID).
			Msg("feedback export append failed")
		return nil, err
	}
	return item, nil
}
