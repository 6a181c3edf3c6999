package application

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"scam-honeypot-agent/internal/domain/model"
	"scam-honeypot-agent/internal/domain/ports/adapter"
	"scam-honeypot-agent/internal/usecase"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

type fakeIngest struct {
	res *usecase.Assessment
	err error
}

func (f *fakeIngest) Ingest(ctx context.Context, sessionID, text string) (*usecase.Assessment, error) {
	return f.res, f.err
}

type fakeReview struct {
	enqueued []*model.SessionState
}

func (f *fakeReview) EnqueueIfBorderline(ctx context.Context, s *model.SessionState) error {
	f.enqueued = append(f.enqueued, s)
	return nil
}
func (f *fakeReview) Pending(ctx context.Context) ([]*model.ReviewItem, error) { return nil, nil }
func (f *fakeReview) SubmitFeedback(ctx context.Context, sessionID string, label model.HumanLabel) (*model.ReviewItem, error) {
	return nil, nil
}

type fakeFinalize struct {
	should    bool
	reason    string
	finalized []string
	err       error
}

func (f *fakeFinalize) ShouldFinalize(s *model.SessionState) (bool, string) {
	return f.should, f.reason
}
func (f *fakeFinalize) Finalize(ctx context.Context, sessionID string) (*adapter.FinalReport, error) {
	f.finalized = append(f.finalized, sessionID)
	if f.err != nil {
		return nil, f.err
	}
	return &adapter.FinalReport{SessionID: sessionID}, nil
}

type fakeResponder struct {
	reply string
	err   error
}

func (f *fakeResponder) Reply(ctx context.Context, strategy model.EngagementStrategy, history []model.Message) (string, error) {
	return f.reply, f.err
}

func assessment(level model.RiskLevel, strategy model.EngagementStrategy) *usecase.Assessment {
	s := model.NewSessionState("sess-1")
	b := model.RiskBreakdown{AggregatedScore: 0.5, RiskLevel: level}
	s.ObserveBreakdown(b)
	return &usecase.Assessment{Session: s, Breakdown: b, Strategy: strategy}
}

func TestHandleMessageRepliesAndEnqueues(t *testing.T) {
	review := &fakeReview{}
	finalize := &fakeFinalize{}
	f := NewAgentFacade(
		&fakeIngest{res: assessment(model.RiskSuspicious, model.EngageProbe)},
		review, finalize,
		&fakeResponder{reply: "who is this exactly?"},
		nil, testLogger(),
	)

	reply, err := f.HandleMessage(context.Background(), "sess-1", "share your otp")
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if reply.ReplyText != "who is this exactly?" || reply.Strategy != model.EngageProbe {
		t.Fatalf("reply %+v", reply)
	}
	if len(review.enqueued) != 1 || review.enqueued[0].ID != "sess-1" {
		t.Fatalf("review enqueue calls %v", review.enqueued)
	}
	if len(finalize.finalized) != 0 {
		t.Fatal("no gate met, must not finalize")
	}
}

func TestHandleMessageFinalizesWhenGateMet(t *testing.T) {
	finalize := &fakeFinalize{should: true, reason: "evidence threshold"}
	f := NewAgentFacade(
		&fakeIngest{res: assessment(model.RiskScam, model.EngageMaximal)},
		&fakeReview{}, finalize,
		&fakeResponder{reply: "where should I send it?"},
		nil, testLogger(),
	)

	if _, err := f.HandleMessage(context.Background(), "sess-1", "pay now"); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(finalize.finalized) != 1 || finalize.finalized[0] != "sess-1" {
		t.Fatalf("finalize calls %v", finalize.finalized)
	}
}

func TestHandleMessageFollowUpFailureDoesNotBreakReply(t *testing.T) {
	finalize := &fakeFinalize{should: true, reason: "safety cap", err: errors.New("collector down")}
	f := NewAgentFacade(
		&fakeIngest{res: assessment(model.RiskScam, model.EngageMaximal)},
		&fakeReview{}, finalize,
		&fakeResponder{reply: "ok"},
		nil, testLogger(),
	)

	reply, err := f.HandleMessage(context.Background(), "sess-1", "pay now")
	if err != nil || reply.ReplyText != "ok" {
		t.Fatalf("reply %+v err %v", reply, err)
	}
}

func TestHandleMessageIngestErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	f := NewAgentFacade(&fakeIngest{err: boom}, &fakeReview{}, &fakeFinalize{}, &fakeResponder{}, nil, testLogger())
	if _, err := f.HandleMessage(context.Background(), "sess-1", "hello"); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestHandleMessageResponderFailureYieldsEmptyReply(t *testing.T) {
	f := NewAgentFacade(
		&fakeIngest{res: assessment(model.RiskSafe, model.EngageMinimal)},
		&fakeReview{}, &fakeFinalize{},
		&fakeResponder{err: errors.New("no templates")},
		nil, testLogger(),
	)
	reply, err := f.HandleMessage(context.Background(), "sess-1", "hi")
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if reply.ReplyText != "" {
		t.Fatalf("reply text %q, want empty", reply.ReplyText)
	}
}
