package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	httpadapter "github.com/janosbartek-debug/aqua-astrae/internal/adapters/http"
	"github.com/janosbartek-debug/aqua-astrae/internal/adapters/llm/openai"
	"github.com/janosbartek-debug/aqua-astrae/internal/adapters/lore"
	"github.com/janosbartek-debug/aqua-astrae/internal/app"
	"github.com/janosbartek-debug/aqua-astrae/internal/config"
	"github.com/janosbartek-debug/aqua-astrae/internal/ledger"
	"github.com/janosbartek-debug/aqua-astrae/internal/pricing"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if cfg.OpenAIAPIKey == "" {
		// The service still starts; requests are answered with a
		// configuration error until the key is provided.
		logger.Warn("OPENAI_API_KEY is not set, readings will fail")
	}

	var usageLedger ledger.Ledger
	if cfg.LedgerPath != "" {
		sq, err := ledger.OpenSQLite(cfg.LedgerPath)
		if err != nil {
			logger.Error("failed to open ledger", "path", cfg.LedgerPath, "error", err)
			os.Exit(1)
		}
		defer sq.Close()
		usageLedger = sq
	} else {
		logger.Warn("LEDGER_PATH not set, monthly spend resets on restart")
		usageLedger = ledger.NewMemory()
	}

	var opts []openai.Option
	if cfg.AssistantID != "" {
		opts = append(opts, openai.WithAssistant(cfg.AssistantID))
	}
	llmClient := openai.NewClient(
		&http.Client{Timeout: cfg.LLMTimeout},
		cfg.OpenAIAPIKey,
		cfg.OpenAIBaseURL,
		logger,
		opts...,
	)

	svc := app.NewOraculumService(
		llmClient,
		lore.NewEmbeddedStore(),
		usageLedger,
		pricing.NewTable(cfg.PriceOverrides),
		cfg.MonthlyCapUSD,
		nil,
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpadapter.ErrorHandler(e)

	e.Use(httpadapter.OriginGuard(cfg.AllowedOrigin))
	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc, cfg.Production)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
