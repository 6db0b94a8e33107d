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

	"github.com/hellothatsmoa/AI-News/config"
	"github.com/hellothatsmoa/AI-News/extractor"
	"github.com/hellothatsmoa/AI-News/generator"
	"github.com/hellothatsmoa/AI-News/imagegen"
	"github.com/hellothatsmoa/AI-News/server"
	"github.com/hellothatsmoa/AI-News/storage"
	"github.com/hellothatsmoa/AI-News/workflow"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// .env is a local convenience; production deployments set real env vars.
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded environment from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"port", cfg.Port,
		"public_base_url", cfg.PublicBaseURL,
		"text_model", cfg.TextModel,
		"output_dir", cfg.OutputDir,
		"auth_enabled", cfg.ToolsSecret != "",
		"text_key_set", cfg.TextAPIKey != "",
		"image_key_set", cfg.ImageAPIKey != "",
	)

	text := generator.NewClient(generator.NewOpenAILLM(generator.LLMSettings{
		Provider: "openrouter",
		Model:    cfg.TextModel,
		APIKey:   cfg.TextAPIKey,
		BaseURL:  cfg.TextBaseURL,
	}))
	store := storage.NewStore(cfg.OutputDir)
	images := imagegen.NewClient(cfg.ImageAPIKey, store)
	pages := extractor.New()
	flow := workflow.NewOrchestrator(pages, text, images, logger)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: server.New(cfg, text, images, flow, logger).Routes(),
		// The news workflow chains two model calls and an image render,
		// so responses can legitimately take minutes.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		logger.Info("starting server", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited")
}
