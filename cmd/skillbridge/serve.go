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
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	sbhttp "github.com/Strob0t/SkillBridge/internal/adapter/http"
	sbotel "github.com/Strob0t/SkillBridge/internal/adapter/otel"
	"github.com/Strob0t/SkillBridge/internal/adapter/ristretto"
	"github.com/Strob0t/SkillBridge/internal/domain/plan"
	"github.com/Strob0t/SkillBridge/internal/middleware"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	a, err := bootstrap(opts, os.Stdout)
	if err != nil {
		return err
	}
	defer a.close()

	if err := serve(cmd.Context(), a); err != nil {
		slog.Error("fatal", "error", err)
		return err
	}
	return nil
}

func serve(parent context.Context, a *app) error {
	cfg := a.cfg

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"environment", cfg.Server.Environment,
		"models", len(cfg.Groq.Models),
		"log_level", cfg.Logging.Level,
	)
	if cfg.Groq.APIKey == "" {
		slog.Warn("GROQ_API_KEY is not configured; generation requests will fail until it is set")
	}

	// --- Observability ---

	shutdownOTel, err := sbotel.Setup(ctx, cfg.OTel, cfg.Server.Environment)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			slog.Warn("otel shutdown failed", "error", err)
		}
	}()

	metrics, err := sbotel.NewMetrics(otel.GetMeterProvider())
	if err != nil {
		return fmt.Errorf("otel metrics: %w", err)
	}

	// --- Infrastructure ---

	replayCache, err := ristretto.New(cfg.Idempotency.MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("idempotency cache: %w", err)
	}
	defer replayCache.Close()

	// --- HTTP ---

	handlers := &sbhttp.Handlers{
		Plans:            a.planService(metrics),
		Catalog:          plan.DefaultCatalog(),
		Server:           cfg.Server,
		APIKeyConfigured: cfg.Groq.APIKey != "",
		Version:          version,
		StartedAt:        time.Now(),
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(sbhttp.Logger)
	r.Use(sbhttp.Recoverer)
	r.Use(sbhttp.SecurityHeaders)
	r.Use(sbhttp.CORS(cfg.Server.CORSOrigins))
	r.Use(sbotel.HTTPMiddleware(cfg.OTel.ServiceName))
	sbhttp.MountRoutes(r, handlers, middleware.Idempotency(replayCache, cfg.Idempotency.TTL))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting server", "addr", srv.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
