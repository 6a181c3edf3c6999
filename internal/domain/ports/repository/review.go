package repository

import (
	"context"
	"time"

	"scam-honeypot-agent/internal/domain/model"
)

// -----------------------------
// Review queue & feedback export
// -----------------------------

// ReviewQueue is the bounded FIFO of sessions awaiting human review. Enqueue
// on a full queue evicts the oldest item regardless of its review status; the
// evicted item is returned so the caller can log the loss.
type ReviewQueue interface {
	Enqueue(item *model.ReviewItem) (evicted *model.ReviewItem, err error)
	Pending() []*model.ReviewItem
	// Resolve marks the queued item for sessionID as reviewed with the given
	// label. domain.ErrNotFound when the session is not queued,
	// domain.ErrAlreadyReviewed when it already carries a label.
	Resolve(sessionID string, label model.HumanLabel, now time.Time) (*model.ReviewItem, error)
	Len() int
}

// FeedbackExportRepository is the append-only retraining export stream fed by
// resolved review items.
type FeedbackExportRepository interface {
	Append(ctx context.Context, rec *model.LabeledRecord) error
	ListBySession(ctx context.Context, sessionID string) ([]*model.LabeledRecord, error)
}
