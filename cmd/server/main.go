package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/tenderlens/tenderlens/internal/analysis"
	"github.com/tenderlens/tenderlens/internal/api"
	"github.com/tenderlens/tenderlens/internal/config"
	"github.com/tenderlens/tenderlens/internal/llm"
	"github.com/tenderlens/tenderlens/internal/pipeline"
)

func main() {
	// Missing .env is fine, environment variables may be set directly.
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Probe the model backend once at startup. If it is unreachable the
	// service still runs, answering with rule-based extraction only.
	client := llm.NewClient(cfg.OllamaURL, cfg.OllamaModel, cfg.LLMTimeout)
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	if err := client.Ping(pingCtx); err != nil {
		log.Warn("model backend unreachable, falling back to rule-based extraction",
			"url", cfg.OllamaURL, "error", err)
		client.Close()
		client = nil
	}
	pingCancel()

	var gen analysis.Generator
	if client != nil {
		gen = client
	}
	extractor := analysis.NewExtractor(gen, log)

	orch := pipeline.NewOrchestrator(cfg, extractor, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, client, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if client != nil {
			client.Close()
		}
	}()

	log.Info("starting tenderlens", "port", cfg.Port, "model", cfg.OllamaModel)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
