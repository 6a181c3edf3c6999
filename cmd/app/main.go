// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"scam-honeypot-agent/internal/application"
	"scam-honeypot-agent/internal/config"
	"scam-honeypot-agent/internal/domain/ports/adapter"
	"scam-honeypot-agent/internal/domain/ports/repository"
	cbAdapters "scam-honeypot-agent/internal/infra/adapters/callback"
	clfAdapters "scam-honeypot-agent/internal/infra/adapters/classifier"
	"scam-honeypot-agent/internal/infra/adapters/extraction"
	"scam-honeypot-agent/internal/infra/adapters/responder"
	"scam-honeypot-agent/internal/infra/api"
	pg "scam-honeypot-agent/internal/infra/db/postgres"
	"scam-honeypot-agent/internal/infra/logging"
	"scam-honeypot-agent/internal/infra/memstore"
	"scam-honeypot-agent/internal/infra/metrics"
	red "scam-honeypot-agent/internal/infra/redis"
	"scam-honeypot-agent/internal/infra/web"
	"scam-honeypot-agent/internal/infra/worker"
	"scam-honeypot-agent/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("dev mode enabled")
	}
	metrics.MustRegister()

	// ---- Redis (optional) ----
	var (
		rateLimiter  *red.RateLimiter
		sessionCache *red.SessionCache
	)
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisClient.Close()
		rateLimiter = red.NewRateLimiter(redisClient)
		sessionCache = red.NewSessionCache(redisClient, cfg.Redis.TTL)
		logger.Info().Str("addr", cfg.Redis.URL).Msg("redis connected")
	} else {
		logger.Warn().Msg("redis.url not set; rate limiting and snapshot mirroring disabled")
	}

	// ---- Repositories ----
	// The mirror interface hides the nil cache from the repo.
	var mirror memstore.SnapshotMirror
	if sessionCache != nil {
		mirror = sessionCache
	}
	sessions := memstore.NewSessionRepo(cfg.Redis.TTL, mirror, logger)
	queue := memstore.NewReviewQueue(cfg.Detection.QueueCapacity)

	exportRepo, cleanup, err := buildFeedbackExport(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("feedback export: %v", err)
	}
	defer cleanup()

	// ---- Classifier ----
	clf, err := buildClassifier(ctx, &cfg.Classifier, logger)
	if err != nil {
		log.Fatalf("classifier: %v", err)
	}
	clf = clfAdapters.NewInstrumented(clf, 16)

	// ---- Adapters ----
	extractor := extraction.NewRegexExtractor()
	respAdapter := responder.NewTemplateResponder()
	sender, err := cbAdapters.NewHTTPCallbackSender(cfg.Callback.URL, cfg.Callback.AuthToken, cfg.Callback.Timeout)
	if err != nil {
		log.Fatalf("callback sender: %v", err)
	}

	// ---- Use cases ----
	ingestUC := usecase.NewIngestUseCase(sessions, clf, extractor, cfg.Classifier.Timeout, logger)
	reviewUC := usecase.NewReviewUseCase(queue, exportRepo, logger)
	finalizeUC := usecase.NewFinalizeUseCase(sessions, sender, logger)

	// ---- Facade ----
	pool := worker.NewPool(cfg.Server.Workers)
	pool.Start(ctx)
	defer pool.Stop()
	facade := application.NewAgentFacade(ingestUC, reviewUC, finalizeUC, respAdapter, pool, logger)

	// ---- HTTP ----
	var auth *web.AuthManager
	if cfg.Server.JWTSecret != "" {
		auth = web.NewAuthManager(cfg.Server.JWTSecret, 30*time.Minute)
	} else if !cfg.Runtime.Dev {
		log.Fatalf("server.jwt_secret is required outside dev mode")
	} else {
		logger.Warn().Msg("review endpoints unauthenticated (dev mode)")
	}

	srv := api.NewServer(facade, reviewUC, sessions, auth, rateLimiter, cfg.Detection.RatePerMinute, cfg.Detection.MaxMessageSize, logger)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	if err := server.Shutdown(shCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}

// buildFeedbackExport picks the labeled-feedback store: postgres when a
// database url is configured, in-memory otherwise.
func buildFeedbackExport(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (repository.FeedbackExportRepository, func(), error) {
	if cfg.Database.URL == "" {
		logger.Warn().Msg("database.url not set; labeled feedback kept in memory only")
		return memstore.NewFeedbackRepo(), func() {}, nil
	}
	pool, err := pg.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Msg("postgres connected")
	return pg.NewPostgresFeedbackRepo(pool), pool.Close, nil
}

// buildClassifier assembles the provider stack for cfg.Mode. Mode "multi"
// chains every configured provider in order; "none" runs rules-and-intent only.
func buildClassifier(ctx context.Context, cfg *config.ClassifierConfig, logger *zerolog.Logger) (adapter.ClassifierAdapter, error) {
	switch cfg.Mode {
	case "http":
		logger.Info().Str("url", cfg.URL).Msg("classifier: http")
		return clfAdapters.NewHTTPClassifier(cfg.URL)
	case "openai":
		logger.Info().Str("model", cfg.Model).Msg("classifier: openai")
		return clfAdapters.NewOpenAIClassifier(cfg.OpenAIKey, cfg.Model)
	case "gemini":
		logger.Info().Str("model", cfg.Model).Msg("classifier: gemini")
		return clfAdapters.NewGeminiClassifier(ctx, cfg.GeminiKey, cfg.Model)
	case "multi":
		var providers []adapter.ClassifierAdapter
		if cfg.URL != "" {
			p, err := clfAdapters.NewHTTPClassifier(cfg.URL)
			if err != nil {
				return nil, err
			}
			providers = append(providers, p)
		}
		if cfg.OpenAIKey != "" {
			p, err := clfAdapters.NewOpenAIClassifier(cfg.OpenAIKey, cfg.Model)
			if err != nil {
				return nil, err
			}
			providers = append(providers, p)
		}
		if cfg.GeminiKey != "" {
			p, err := clfAdapters.NewGeminiClassifier(ctx, cfg.GeminiKey, cfg.Model)
			if err != nil {
				return nil, err
			}
			providers = append(providers, p)
		}
		if len(providers) == 0 {
			return nil, errors.New("classifier.mode=multi but no provider configured")
		}
		logger.Info().Int("providers", len(providers)).Msg("classifier: multi")
		return clfAdapters.NewMultiClassifier(providers...), nil
	case "none":
		logger.Warn().Msg("classifier disabled; scoring degrades to rules and intent")
		return clfAdapters.NewNoopClassifier(), nil
	default:
		return nil, fmt.Errorf("unknown classifier mode %q", cfg.Mode)
	}
}
