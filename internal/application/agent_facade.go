package application

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"scam-honeypot-agent/internal/domain/model"
	"scam-honeypot-agent/internal/domain/ports/adapter"
	"scam-honeypot-agent/internal/infra/metrics"
	"scam-honeypot-agent/internal/infra/worker"
)

// MessageReply is the synchronous answer to one ingested message: the
// assessment plus the persona reply to send back to the counterpart.
type MessageReply struct {
	Breakdown model.RiskBreakdown
	Strategy  model.EngagementStrategy
	ReplyText string
	Session   *model.SessionState
}

// AgentFacade composes the usecases into the honeypot's message-handling flow:
// score the message, pick a reply, then run the review enqueue and callback
// gate off the request path.
type AgentFacade struct {
	IngestUC   IngestUseCaseIface
	ReviewUC   ReviewUseCaseIface
	FinalizeUC FinalizeUseCaseIface
	Responder  adapter.ResponderAdapter

	// Pool runs the post-reply follow-ups. When nil they run inline, which is
	// what the tests rely on.
	Pool *worker.Pool

	Log *zerolog.Logger
}

func NewAgentFacade(
	ingestUC IngestUseCaseIface,
	reviewUC ReviewUseCaseIface,
	finalizeUC FinalizeUseCaseIface,
	responder adapter.ResponderAdapter,
	pool *worker.Pool,
	logger *zerolog.Logger,
) *AgentFacade {
	return &AgentFacade{
		IngestUC:   ingestUC,
		ReviewUC:   reviewUC,
		FinalizeUC: finalizeUC,
		Responder:  responder,
		Pool:       pool,
		Log:        logger,
	}
}

// HandleMessage scores one counterpart message and returns the reply to send.
// Review enqueueing and callback finalization happen asynchronously; their
// failures never affect the reply.
func (f *AgentFacade) HandleMessage(ctx context.Context, sessionID, text string) (*MessageReply, error) {
	assessment, err := f.IngestUC.Ingest(ctx, sessionID, text)
	if err != nil {
		return nil, err
	}
	metrics.MessageScored(string(assessment.Breakdown.RiskLevel), assessment.Breakdown.ClassifierDegraded)
	metrics.VelocityViolation(assessment.Session.Velocity.RateViolation, assessment.Session.Velocity.BurstViolation)
	metrics.ArtifactsExtracted(assessment.NewArtifacts)

	replyText := ""
	if f.Responder != nil {
		replyText, err = f.Responder.Reply(ctx, assessment.Strategy, assessment.Session.Messages)
		if err != nil {
			f.Log.Warn().Err(err).Str("session_id", sessionID).Msg("responder failed, replying empty")
			replyText = ""
		}
	}

	snapshot := assessment.Session
	f.dispatch(func(taskCtx context.Context) error {
		return f.ReviewUC.EnqueueIfBorderline(taskCtx, snapshot)
	})

	if ok, reason := f.FinalizeUC.ShouldFinalize(snapshot); ok {
		f.dispatch(func(taskCtx context.Context) error {
			if _, err := f.FinalizeUC.Finalize(taskCtx, sessionID); err != nil {
				return err
			}
			metrics.CallbackSent(reason)
			f.Log.Info().Str("session_id", sessionID).Str("reason", reason).Msg("session finalized")
			return nil
		})
	}

	return &MessageReply{
		Breakdown: assessment.Breakdown,
		Strategy:  assessment.Strategy,
		ReplyText: replyText,
		Session:   snapshot,
	}, nil
}

// dispatch submits the task to the pool, falling back to inline execution when
// there is no pool or its queue is saturated.
func (f *AgentFacade) dispatch(task worker.Task) {
	if f.Pool != nil {
		if err := f.Pool.Submit(task); err == nil {
			return
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := task(ctx); err != nil {
		f.Log.Error().Err(err).Msg("follow-up task failed")
	}
}
