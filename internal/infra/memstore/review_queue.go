// File: internal/infra/memstore/review_queue.go
package memstore

import (
	"sync"
	"time"

	"scam-honeypot-agent/internal/domain"
	"scam-honeypot-agent/internal/domain/model"
	"scam-honeypot-agent/internal/domain/ports/repository"
	"scam-honeypot-agent/internal/infra/metrics"
)

// Compile-time check
var _ repository.ReviewQueue = (*ReviewQueue)(nil)

// ReviewQueue is the bounded in-memory FIFO of sessions awaiting human review.
// When full, the oldest item is evicted regardless of its review status.
type ReviewQueue struct {
	mu       sync.Mutex
	capacity int
	items    []*model.ReviewItem
	pending  map[string]bool // session ids currently pending
}

func NewReviewQueue(capacity int) *ReviewQueue {
	if capacity <= 0 {
		capacity = 256
	}
	return &ReviewQueue{
		capacity: capacity,
		pending:  make(map[string]bool),
	}
}

func (q *ReviewQueue) Enqueue(item *model.ReviewItem) (*model.ReviewItem, error) {
	if item == nil || item.SessionID == "" {
		return nil, domain.ErrInvalidArgument
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.pending[item.SessionID] {
		return nil, domain.ErrAlreadyQueued
	}

	var evicted *model.ReviewItem
	if len(q.items) >= q.capacity {
		evicted = q.items[0]
		copy(q.items, q.items[1:])
		q.items = q.items[:len(q.items)-1]
		if evicted.Status == model.ReviewPending {
			delete(q.pending, evicted.SessionID)
		}
		metrics.ReviewEvicted()
	}

	q.items = append(q.items, item)
	q.pending[item.SessionID] = true
	metrics.SetReviewQueueDepth(len(q.items))
	return evicted, nil
}

func (q *ReviewQueue) Pending() []*model.ReviewItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*model.ReviewItem, 0, len(q.items))
	for _, it := range q.items {
		if it.Status == model.ReviewPending {
			c := *it
			out = append(out, &c)
		}
	}
	return out
}

func (q *ReviewQueue) Resolve(sessionID string, label model.HumanLabel, now time.Time) (*model.ReviewItem, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	// A session can be re-enqueued after an earlier verdict, so resolved items
	// for the same id may sit ahead of the live pending one. Only the pending
	// item takes the verdict.
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
		delete(q.pending, sessionID)
		metrics.FeedbackLabeled(string(label))
		c := *it
		return &c, nil
	}
	if reviewed {
		return nil, domain.ErrAlreadyReviewed
	}
	return nil, domain.ErrNotFound
}

func (q *ReviewQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
