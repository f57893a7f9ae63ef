package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/pkordes/voyage/backend/internal/auth"
	"github.com/pkordes/voyage/backend/internal/config"
	"github.com/pkordes/voyage/backend/internal/domain"
	"github.com/pkordes/voyage/backend/internal/geocode"
	"github.com/pkordes/voyage/backend/internal/handler"
	"github.com/pkordes/voyage/backend/internal/logging"
	"github.com/pkordes/voyage/backend/internal/mappls"
	"github.com/pkordes/voyage/backend/internal/metrics"
	"github.com/pkordes/voyage/backend/internal/middleware"
	"github.com/pkordes/voyage/backend/internal/notify"
	"github.com/pkordes/voyage/backend/internal/planner"
	"github.com/pkordes/voyage/backend/internal/repo"
	"github.com/pkordes/voyage/backend/internal/service"
)

const (
	shutdownTimeout = 15 * time.Second

	// writeMargin is added to the slowest handler's budget to leave time
	// for encoding the response.
	writeMargin = 10 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// --- Logger -----------------------------------------------------------
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connection established")

	// --- Services ---------------------------------------------------------
	api, slowest, err := newAPI(cfg, pool, logger)
	if err != nil {
		return err
	}

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg, logger, api),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: slowest + writeMargin,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-stop:
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// newAPI builds every service and returns the /api handler together with
// the longest time any of its handlers may need.
func newAPI(cfg config.Config, pool *pgxpool.Pool, logger *slog.Logger) (http.Handler, time.Duration, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	users := repo.NewUserRepo(pool)
	trips := repo.NewTripRepo(pool)

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	var llm planner.Completer
	if cfg.LLM.APIKey == "" {
		logger.Warn("LLM_API_KEY not set, every trip uses the template itinerary")
	} else {
		c, err := planner.NewOpenAICompleter(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model, &http.Client{})
		if err != nil {
			return nil, 0, fmt.Errorf("llm client: %w", err)
		}
		llm = c
	}
	currency := planner.Currency{Code: cfg.Currency.Code, Symbol: cfg.Currency.Symbol}
	plans := planner.New(llm, currency, cfg.LLM.Timeout, logger)

	// A nil client gives every Nominatim request geocode.RequestTimeout,
	// which slowestHandler relies on.
	nominatim := geocode.NewNominatimClient(cfg.Geocode.BaseURL, cfg.Geocode.UserAgent, nil, logger)
	places := geocode.NewCachedLookup(nominatim, cfg.Geocode.CacheTTL)
	markers := geocode.NewItineraryGeocoder(places,
		geocode.WithBatchSize(cfg.Geocode.BatchSize),
		geocode.WithBatchDelay(cfg.Geocode.BatchDelay),
	)

	notices := notify.New()
	notices.Subscribe(func(n notify.Notice) {
		logger.Info("notice", "kind", n.Kind, "message", n.Message, "user_id", n.UserID)
	})

	tokenSource := mappls.NewTokenSource(cfg.Mappls.ClientID, cfg.Mappls.ClientSecret, cfg.Mappls.TokenURL, httpClient)
	if !tokenSource.Configured() {
		logger.Info("Mappls credentials not set, /api/mappls routes answer 503")
	}

	srv := handler.NewServer(handler.Deps{
		Auth:     service.NewAuthService(users, tokens),
		Trips:    service.NewTripService(trips, plans, markers, notices, logger),
		Export:   service.NewExportService(trips),
		Suggest:  places,
		Mappls:   mappls.NewClient(tokenSource, cfg.Mappls.SearchURL, httpClient),
		Verifier: tokens,
		Log:      logger,
	})
	return srv.Routes(), slowestHandler(cfg.LLM.Timeout, markers), nil
}

// slowestHandler is the worst case of a full model call on /generate-trip
// and a longest-itinerary geocode on /trips/{id}/markers.
func slowestHandler(llmTimeout time.Duration, markers *geocode.ItineraryGeocoder) time.Duration {
	return max(llmTimeout, markers.MaxDuration(domain.MaxDuration, geocode.RequestTimeout))
}

// newRouter applies the shared middleware stack, mounts api under /api and
// exposes Prometheus metrics at /metrics.
func newRouter(cfg config.Config, logger *slog.Logger, api http.Handler) http.Handler {
	// Order: RequestID → RealIP → Logger → Recoverer → Metrics → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewMetricsHandler())
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Mount("/api", api)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return r
}
