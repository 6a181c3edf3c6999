// File: internal/infra/memstore/feedback_repo.go
package memstore

import (
	"context"
	"sync"

	"scam-honeypot-agent/internal/domain"
	"scam-honeypot-agent/internal/domain/model"
	"scam-honeypot-agent/internal/domain/ports/repository"
)

// Compile-time check
var _ repository.FeedbackExportRepository = (*FeedbackRepo)(nil)

// FeedbackRepo is the in-memory fallback for the retraining export stream,
// used when no database is configured.
type FeedbackRepo struct {
	mu   sync.Mutex
	recs []*model.LabeledRecord
}

func NewFeedbackRepo() *FeedbackRepo {
	return &FeedbackRepo{}
}

func (r *FeedbackRepo) Append(ctx context.Context, rec *model.LabeledRecord) error {
	if rec == nil || rec.SessionID == "" {
		return domain.ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *rec
	r.recs = append(r.recs, &c)
	return nil
}

func (r *FeedbackRepo) ListBySession(ctx context.Context, sessionID string) ([]*model.LabeledRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.LabeledRecord
	for _, rec := range r.recs {
		if rec.SessionID == sessionID {
			c := *rec
			out = append(out, &c)
		}
	}
	return out, nil
}
