package application

import (
	"context"

	"scam-honeypot-agent/internal/domain/model"
	"scam-honeypot-agent/internal/domain/ports/adapter"
	"scam-honeypot-agent/internal/usecase"
)

// ---- small interfaces to decouple the facade from concrete usecase structs ----
// These describe the minimal surface the facade needs. Using interfaces
// enables tests to pass in light-weight mocks.

type IngestUseCaseIface interface {
	Ingest(ctx context.Context, sessionID, text string) (*usecase.Assessment, error)
}

type ReviewUseCaseIface interface {
	EnqueueIfBorderline(ctx context.Context, s *model.SessionState) error
	Pending(ctx context.Context) ([]*model.ReviewItem, error)
	SubmitFeedback(ctx context.Context, sessionID string, label model.HumanLabel) (*model.ReviewItem, error)
}

type FinalizeUseCaseIface interface {
	ShouldFinalize(s *model.SessionState) (bool, string)
	Finalize(ctx context.Context, sessionID string) (*adapter.FinalReport, error)
}
