// File: internal/usecase/ingest_uc.go
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"scam-honeypot-agent/internal/domain"
	"scam-honeypot-agent/internal/domain/model"
	"scam-honeypot-agent/internal/domain/ports/adapter"
	"scam-honeypot-agent/internal/domain/ports/repository"
	"scam-honeypot-agent/internal/scoring"
)

// Compile-time check
var _ IngestUseCase = (*ingestUC)(nil)

// Assessment is the per-message result handed back to callers: the breakdown
// for the message just scored, the recommended engagement posture, and a
// post-ingest snapshot of the session.
type Assessment struct {
	Session   *model.SessionState
	Breakdown model.RiskBreakdown
	Strategy  model.EngagementStrategy

	// NewArtifacts is how many previously-unseen evidence values this message
	// contributed after dedupe.
	NewArtifacts int
}

type IngestUseCase interface {
	// Ingest scores one counterpart message in the context of its session and
	// returns the assessment. The classifier is consulted under a hard timeout;
	// when it fails the message is still scored on rules and intent alone.
	Ingest(ctx context.Context, sessionID, text string) (*Assessment, error)
}

type ingestUC struct {
	sessions   repository.SessionRepository
	classifier adapter.ClassifierAdapter
	extractor  adapter.ArtifactExtractor
	timeout    time.Duration
	log        *zerolog.Logger
}

func NewIngestUseCase(
	sessions repository.SessionRepository,
	classifier adapter.ClassifierAdapter,
	extractor adapter.ArtifactExtractor,
	classifierTimeout time.Duration,
	logger *zerolog.Logger,
) *ingestUC {
	if classifierTimeout <= 0 {
		classifierTimeout = 2 * time.Second
	}
	return &ingestUC{
		sessions:   sessions,
		classifier: classifier,
		extractor:  extractor,
		timeout:    classifierTimeout,
		log:        logger,
	}
}

func (u *ingestUC) Ingest(ctx context.Context, sessionID, text string) (*Assessment, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidArgument
	}
	// An empty turn is still a turn: it advances the session and the velocity
	// windows, scores zero on every channel, and skips the classifier.
	empty := strings.TrimSpace(text) == ""

	// Score the independent channels before taking the session lock. The
	// classifier call is the only one that can block on the network.
	ruleRes := scoring.ScoreRules(text)
	intentRes := scoring.ScoreIntent(text)
	normalized := scoring.Normalize(text)

	var (
		classifierScore float64
		tier            = model.ConfidenceLow
		degraded        bool
	)
	if empty {
		// zero-signal breakdown, nothing to predict
	} else if pred, err := u.predict(ctx, text); err != nil {
		degraded = true
		u.log.Warn().Err(err).Str("session_id", sessionID).
			Msg("classifier unavailable, degrading to rules and intent")
	} else {
		classifierScore = pred.Probability
		tier = scoring.TierFor(pred.Probability)
	}

	var artifacts []string
	if !empty {
		artifacts = u.extractor.Extract(text)
	}
	now := time.Now()

	var (
		breakdown model.RiskBreakdown
		added     int
	)
	snapshot, err := u.sessions.Mutate(ctx, sessionID, func(s *model.SessionState) error {
		msg := model.Message{Sender: model.SenderCounterpart, Text: text, Timestamp: now}
		s.Append(msg, normalized, now)
		if intentHasFinancial(intentRes) {
			s.NoteFinancialSignal()
		}
		added = s.AddArtifacts(artifacts)

		boost := 0.0
		if s.Velocity.Violated() {
			boost = scoring.VelocityBoost
		}
		breakdown = scoring.Aggregate(scoring.Inputs{
			ClassifierScore:    classifierScore,
			Tier:               tier,
			ClassifierDegraded: degraded,
			RuleScore:          ruleRes.Score,
			RuleCategories:     ruleRes.Categories,
			IntentScore:        intentRes.Score,
			IntentSignals:      intentRes.Signals,
			ContextBoost:       boost,
		})
		s.ObserveBreakdown(breakdown)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Debug().
		Str("session_id", sessionID).
		Float64("score", breakdown.AggregatedScore).
		Str("risk_level", string(breakdown.RiskLevel)).
		Bool("degraded", degraded).
		Msg("message scored")

	return &Assessment{
		Session:      snapshot,
		Breakdown:    breakdown,
		Strategy:     scoring.Strategy(breakdown.RiskLevel, breakdown.AggregatedScore),
		NewArtifacts: added,
	}, nil
}

func (u *ingestUC) predict(ctx context.Context, text string) (adapter.Prediction, error) {
	if u.classifier == nil {
		return adapter.Prediction{}, domain.ErrClassifierUnavailable
	}
	cctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()
	return u.classifier.Predict(cctx, text)
}

func intentHasFinancial(res scoring.IntentResult) bool {
	for _, s := range res.Signals {
		if s == scoring.SignalFinancial {
			return true
		}
	}
	return false
}
