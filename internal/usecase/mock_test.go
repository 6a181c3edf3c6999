//go:build !integration

package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"scam-honeypot-agent/internal/domain"
	"scam-honeypot-agent/internal/domain/model"
	"scam-honeypot-agent/internal/domain/ports/adapter"
	"scam-honeypot-agent/internal/domain/ports/repository"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// =============================
// Adapters
// =============================

// ---- Mock ClassifierAdapter ----

type MockClassifier struct {
	mu sync.Mutex

	PredictFunc func(ctx context.Context, text string) (adapter.Prediction, error)

	Calls []string // texts passed to Predict
}

var _ adapter.ClassifierAdapter = (*MockClassifier)(nil)

func (m *MockClassifier) Name() string { return "mock" }

func (m *MockClassifier) Predict(ctx context.Context, text string) (adapter.Prediction, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, text)
	m.mu.Unlock()
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, text)
	}
	return adapter.Prediction{Probability: 0.5, Provider: "mock"}, nil
}

// ---- Mock ArtifactExtractor ----

type MockExtractor struct {
	ExtractFunc func(text string) []string
}

var _ adapter.ArtifactExtractor = (*MockExtractor)(nil)

func (m *MockExtractor) Extract(text string) []string {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(text)
	}
	return nil
}

// ---- Mock CallbackSender ----

type MockCallbackSender struct {
	mu sync.Mutex

	SendFunc func(ctx context.Context, report adapter.FinalReport) error

	Sent []adapter.FinalReport
}

var _ adapter.CallbackSender = (*MockCallbackSender)(nil)

func (m *MockCallbackSender) Send(ctx context.Context, report adapter.FinalReport) error {
	if m.SendFunc != nil {
		if err := m.SendFunc(ctx, report); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, report)
	return nil
}

// =============================
// Repositories
// =============================

// ---- In-memory SessionRepository ----

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.SessionState
}

var _ repository.SessionRepository = (*memSessionRepo)(nil)

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*model.SessionState)}
}

func (r *memSessionRepo) Mutate(ctx context.Context, id string, fn func(*model.SessionState) error) (*model.SessionState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		s = model.NewSessionState(id)
		r.sessions[id] = s
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	snap := *s
	return &snap, nil
}

func (r *memSessionRepo) Find(ctx context.Context, id string) (*model.SessionState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	snap := *s
	return &snap, nil
}

// ---- In-memory ReviewQueue ----

type memReviewQueue struct {
	mu    sync.Mutex
	cap   int
	items []*model.ReviewItem
}

var _ repository.ReviewQueue = (*memReviewQueue)(nil)

func newMemReviewQueue(capacity int) *memReviewQueue {
	return &memReviewQueue{cap: capacity}
}

func (q *memReviewQueue) Enqueue(item *model.ReviewItem) (*model.ReviewItem, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, it := range q.items {
		if it.SessionID == item.SessionID && it.Status == model.ReviewPending {
			return nil, domain.ErrAlreadyQueued
		}
	}
	var evicted *model.ReviewItem
	if len(q.items) >= q.cap {
		evicted = q.items[0]
		q.items = q.items[1:]
	}
	q.items = append(q.items, item)
	return evicted, nil
}

func (q *memReviewQueue) Pending() []*model.ReviewItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*model.ReviewItem, 0, len(q.items))
	for _, it := range q.items {
		if it.Status == model.ReviewPending {
			out = append(out, it)
		}
	}
	return out
}

func (q *memReviewQueue) Resolve(sessionID string, label model.HumanLabel, now time.Time) (*model.ReviewItem, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	reviewed := false
	for _, it := range q.items {
		if it.SessionID != sessionID {
			continue
		}
		if it.Status == model.ReviewReviewed {
			reviewed = true
			continue
		}
		it.Status = model.ReviewReviewed
		it.Label = &label
		it.ReviewedAt = &now
		return it, nil
	}
	if reviewed {
		return nil, domain.ErrAlreadyReviewed
	}
	return nil, domain.ErrNotFound
}

func (q *memReviewQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// ---- In-memory FeedbackExportRepository ----

type memExportRepo struct {
	mu   sync.Mutex
	recs []*model.LabeledRecord

	AppendFunc func(ctx context.Context, rec *model.LabeledRecord) error
}

var _ repository.FeedbackExportRepository = (*memExportRepo)(nil)

func (r *memExportRepo) Append(ctx context.Context, rec *model.LabeledRecord) error {
	if r.AppendFunc != nil {
		if err := r.AppendFunc(ctx, rec); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *rec
	r.recs = append(r.recs, &c)
	return nil
}

func (r *memExportRepo) ListBySession(ctx context.Context, sessionID string) ([]*model.LabeledRecord, error) {
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
