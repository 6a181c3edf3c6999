// File: internal/infra/api/server.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"scam-honeypot-agent/internal/application"
	"scam-honeypot-agent/internal/domain"
	"scam-honeypot-agent/internal/domain/model"
	"scam-honeypot-agent/internal/domain/ports/repository"
	"scam-honeypot-agent/internal/infra/logging"
	redisinfra "scam-honeypot-agent/internal/infra/redis"
	"scam-honeypot-agent/internal/infra/web"
)

// Server exposes the honeypot over HTTP: message ingestion, session lookup,
// and the authenticated review endpoints.
type Server struct {
	facade   *application.AgentFacade
	reviewUC application.ReviewUseCaseIface
	sessions repository.SessionRepository

	auth    *web.AuthManager // nil disables review auth (dev only)
	limiter *redisinfra.RateLimiter

	ratePerMinute  int
	maxMessageSize int64

	log *zerolog.Logger
}

func NewServer(
	facade *application.AgentFacade,
	reviewUC application.ReviewUseCaseIface,
	sessions repository.SessionRepository,
	auth *web.AuthManager,
	limiter *redisinfra.RateLimiter,
	ratePerMinute int,
	maxMessageSize int,
	logger *zerolog.Logger,
) *Server {
	if ratePerMinute <= 0 {
		ratePerMinute = 60
	}
	if maxMessageSize <= 0 {
		maxMessageSize = 16 << 10
	}
	return &Server{
		facade:         facade,
		reviewUC:       reviewUC,
		sessions:       sessions,
		auth:           auth,
		limiter:        limiter,
		ratePerMinute:  ratePerMinute,
		maxMessageSize: int64(maxMessageSize),
		log:            logger,
	}
}

// Router builds the chi mux with all routes attached.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/honeypot/message", s.handleMessage)
		r.Get("/sessions/{id}", s.handleGetSession)

		r.Group(func(r chi.Router) {
			r.Use(s.requireReviewer)
			r.Get("/review/pending", s.handleReviewPending)
			r.Post("/review/{sessionId}/feedback", s.handleReviewFeedback)
		})
	})
	return r
}

// ---- ingestion ----

type messageRequest struct {
	SessionID string `json:"sessionId"`
	Message   struct {
		Text string `json:"text"`
	} `json:"message"`
}

type messageResponse struct {
	SessionID       string   `json:"sessionId"`
	RiskLevel       string   `json:"riskLevel"`
	ConfidenceTier  string   `json:"confidenceTier"`
	AggregatedScore float64  `json:"aggregatedScore"`
	Degraded        bool     `json:"degraded,omitempty"`
	Explanation     string   `json:"explanation"`
	Strategy        string   `json:"strategy"`
	Reply           string   `json:"reply"`
	ArtifactCount   int      `json:"artifactCount"`
	RuleCategories  []string `json:"ruleCategories,omitempty"`
	IntentSignals   []string `json:"intentSignals,omitempty"`
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req messageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxMessageSize)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	// Empty message text is accepted: a honeypot never refuses a turn, and the
	// ingest path scores an empty turn as zero-signal.
	if req.SessionID == "" {
		s.writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, redisinfra.SessionIngestKey(req.SessionID), s.ratePerMinute, time.Minute)
		if err != nil {
			// Redis trouble must not take ingestion down with it.
			s.log.Warn().Err(err).Msg("rate limiter unavailable, admitting request")
		} else if !ok {
			s.writeDomainError(w, domain.ErrRateLimited)
			return
		}
	}

	ctx = logging.WithSessID(ctx, req.SessionID)
	reply, err := s.facade.HandleMessage(ctx, req.SessionID, req.Message.Text)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	b := reply.Breakdown
	s.writeJSON(w, http.StatusOK, messageResponse{
		SessionID:       req.SessionID,
		RiskLevel:       string(b.RiskLevel),
		ConfidenceTier:  string(b.ClassifierTier),
		AggregatedScore: b.AggregatedScore,
		Degraded:        b.ClassifierDegraded,
		Explanation:     b.Explanation,
		Strategy:        string(reply.Strategy),
		Reply:           reply.ReplyText,
		ArtifactCount:   reply.Session.ArtifactCount(),
		RuleCategories:  b.MatchedRuleCategories,
		IntentSignals:   b.MatchedIntentSignals,
	})
}

// ---- session lookup ----

type sessionResponse struct {
	SessionID           string     `json:"sessionId"`
	TotalMessages       int        `json:"totalMessages"`
	CumulativeRiskLevel string     `json:"cumulativeRiskLevel"`
	ArtifactCount       int        `json:"artifactCount"`
	Artifacts           []string   `json:"artifacts"`
	VelocityViolated    bool       `json:"velocityViolated"`
	CallbackSent        bool       `json:"callbackSent"`
	LastUpdatedAt       time.Time  `json:"lastUpdatedAt"`
	LatestScore         *float64   `json:"latestScore,omitempty"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.sessions.Find(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	resp := sessionResponse{
		SessionID:           snap.ID,
		TotalMessages:       snap.TotalMessages,
		CumulativeRiskLevel: string(snap.CumulativeRiskLevel),
		ArtifactCount:       snap.ArtifactCount(),
		Artifacts:           snap.Artifacts,
		VelocityViolated:    snap.Velocity.Violated(),
		CallbackSent:        snap.CallbackSent,
		LastUpdatedAt:       snap.LastUpdatedAt,
	}
	if snap.LatestBreakdown != nil {
		score := snap.LatestBreakdown.AggregatedScore
		resp.LatestScore = &score
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// ---- review ----

type reviewItemResponse struct {
	ID              string    `json:"id"`
	SessionID       string    `json:"sessionId"`
	AggregatedScore float64   `json:"aggregatedScore"`
	Explanation     string    `json:"explanation"`
	EnqueuedAt      time.Time `json:"enqueuedAt"`
}

func (s *Server) handleReviewPending(w http.ResponseWriter, r *http.Request) {
	items, err := s.reviewUC.Pending(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	out := make([]reviewItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, reviewItemResponse{
			ID:              it.ID,
			SessionID:       it.SessionID,
			AggregatedScore: it.Snapshot.AggregatedScore,
			Explanation:     it.Snapshot.Explanation,
			EnqueuedAt:      it.EnqueuedAt,
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"items": out})
}

type feedbackRequest struct {
	Label string `json:"label"` // "scam" | "not_scam"
}

func (s *Server) handleReviewFeedback(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	item, err := s.reviewUC.SubmitFeedback(r.Context(), sessionID, model.HumanLabel(req.Label))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessionId": item.SessionID,
		"status":    string(item.Status),
		"label":     string(*item.Label),
	})
}

// ---- middleware & helpers ----

func (s *Server) requireReviewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.auth == nil {
			next.ServeHTTP(w, r)
			return
		}
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("response encode failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, map[string]string{"error": msg})
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrRateLimited):
		s.writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, domain.ErrAlreadyReviewed), errors.Is(err, domain.ErrCallbackAlreadySent):
		s.writeError(w, http.StatusConflict, err.Error())
	default:
		s.log.Error().Err(err).Msg("request failed")
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}
