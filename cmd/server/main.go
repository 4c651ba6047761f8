package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/textshield/textshield/config"
	"github.com/textshield/textshield/internal/api"
	"github.com/textshield/textshield/internal/clients"
	"github.com/textshield/textshield/internal/logging"
	"github.com/textshield/textshield/internal/monitoring"
	"github.com/textshield/textshield/internal/rephrase"
	"github.com/textshield/textshield/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Server] Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewSQLite(ctx, cfg.DatabasePath)
	if err != nil {
		slog.Error("[Server] Failed to open storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	engine := buildEngine(ctx, cfg)

	router := api.NewRouter(api.NewHandler(store, engine))
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		slog.Info("[Server] Listening", slog.Int("port", cfg.Port), slog.String("env", env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Server] Listen failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("[Server] Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Server] Shutdown failed", slog.String("error", err.Error()))
	}
}

// buildEngine enables the remote rewrite strategy only when a credential
// is configured; otherwise the engine is rule-based only.
func buildEngine(ctx context.Context, cfg config.Config) *rephrase.Engine {
	if cfg.OpenAIAPIKey == "" {
		slog.Info("[Server] No OpenAI API key configured, rephrasing is rule-based only")
		return rephrase.NewEngine(nil)
	}

	client := clients.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.RephraseTimeout)
	rewriter := rephrase.NewOpenAIRewriter(client, cfg.OpenAIModel)

	healthy := &atomic.Bool{}
	healthy.Store(true)
	go monitoring.MonitorRewriterHealth(ctx, healthy, rewriter)

	return rephrase.NewEngine(rewriter).WithHealthGate(healthy)
}
