package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rhalemsc/ncaam-summarizer/external/cohere"
	"github.com/rhalemsc/ncaam-summarizer/external/espn"
	"github.com/rhalemsc/ncaam-summarizer/internal/config"
	"github.com/rhalemsc/ncaam-summarizer/internal/interfaces/httpapi"
	"github.com/rhalemsc/ncaam-summarizer/internal/platform/cache"
	"github.com/rhalemsc/ncaam-summarizer/internal/platform/logging"
	"github.com/rhalemsc/ncaam-summarizer/internal/platform/resilience"
	"github.com/rhalemsc/ncaam-summarizer/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger, providerLogger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if providerLogger == nil {
		providerLogger = logging.Default()
	}

	espnClient := espn.NewClient(espn.ClientConfig{
		BaseURL:    cfg.ESPNBaseURL,
		Timeout:    cfg.ESPNTimeout,
		MaxRetries: cfg.ESPNMaxRetries,
		Logger:     providerLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
		},
	})

	cohereClient := cohere.NewClient(cohere.ClientConfig{
		BaseURL: cfg.CohereBaseURL,
		APIKey:  cfg.CohereAPIKey,
		Model:   cfg.CohereModel,
		Timeout: cfg.CohereTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CohereCircuitEnabled,
			FailureThreshold: cfg.CohereCircuitFailureCount,
			OpenTimeout:      cfg.CohereCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CohereCircuitHalfOpenMaxReq,
		},
	}, logger)

	store := cache.NewStore(0)
	if !cfg.CacheEnabled {
		store = cache.NewDisabledStore()
	}

	rosterSvc := usecase.NewRosterService(espnClient, store)
	scheduleSvc := usecase.NewScheduleService(espnClient, store)
	summarySvc := usecase.NewSummaryService(espnClient, cohereClient)
	prewarmSvc := usecase.NewPrewarmService(rosterSvc, scheduleSvc)

	handler := httpapi.NewHandler(
		rosterSvc,
		scheduleSvc,
		summarySvc,
		prewarmSvc,
		cohereClient.Model(),
		cfg.PrewarmMaxWorkers,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
