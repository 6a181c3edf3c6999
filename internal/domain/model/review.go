package model

import "time"

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewReviewed ReviewStatus = "reviewed"
)

// HumanLabel is a reviewer's verdict on a queued session.
type HumanLabel string

const (
	LabelScam    HumanLabel = "scam"
	LabelNotScam HumanLabel = "not_scam"
)

// ReviewItem is one entry in the bounded human-review queue. Snapshot is the
// breakdown that caused the enqueue, frozen at that point.
type ReviewItem struct {
	ID         string // ULID, sortable by enqueue time
	SessionID  string
	Snapshot   RiskBreakdown
	EnqueuedAt time.Time
	Status     ReviewStatus
	Label      *HumanLabel
	ReviewedAt *time.Time
}

// LabeledRecord is one row of the retraining export stream: the message-level
// evidence plus the human verdict.
type LabeledRecord struct {
	SessionID string
	Snapshot  RiskBreakdown
	Label     HumanLabel
	LabeledAt time.Time
}
