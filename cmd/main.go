package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/prepplan-backend/internal/app"
	"github.com/yungbote/prepplan-backend/internal/evallog"
	"github.com/yungbote/prepplan-backend/internal/handlers"
	"github.com/yungbote/prepplan-backend/internal/inference/client"
	"github.com/yungbote/prepplan-backend/internal/modules/plangen"
	"github.com/yungbote/prepplan-backend/internal/modules/plangen/safety"
	"github.com/yungbote/prepplan-backend/internal/observability"
	"github.com/yungbote/prepplan-backend/internal/platform/logger"
	"github.com/yungbote/prepplan-backend/internal/server"
	"github.com/yungbote/prepplan-backend/internal/utils"
)

func main() {
	// Logger
	logMode := utils.GetEnv("LOG_MODE", "development", nil)
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Config
	log.Info("Loading configuration...")
	cfg := app.LoadConfig(log)

	// Tracing
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "prepplan",
		Environment: cfg.Environment,
	})

	// Safety tables
	safetyCfg, err := safety.LoadConfig(cfg.SafetyConfigPath)
	if err != nil {
		log.Fatal("Safety config load failed", "path", cfg.SafetyConfigPath, "error", err)
	}
	if cfg.MinConfidence >= 0 {
		safetyCfg.MinConfidence = cfg.MinConfidence
	}
	tables, err := safety.Compile(safetyCfg)
	if err != nil {
		log.Fatal("Safety config compile failed", "error", err)
	}

	// Inference client
	ai, err := client.New(client.Options{
		BaseURL: cfg.InferenceBaseURL,
		APIKey:  cfg.InferenceAPIKey,
		Model:   cfg.Model,
		Timeout: cfg.RequestTimeout,
	})
	if err != nil {
		log.Fatal("Inference client init failed", "error", err)
	}

	// Eval logging
	evalSink, err := evallog.NewSink(cfg.EvalLogPath, log)
	if err != nil {
		log.Fatal("Eval log sink init failed", "path", cfg.EvalLogPath, "error", err)
	}
	defer evalSink.Close()
	transcripts, err := evallog.NewTranscriptStore(cfg.TranscriptDBPath, log)
	if err != nil {
		log.Fatal("Transcript store init failed", "path", cfg.TranscriptDBPath, "error", err)
	}

	// Pipeline
	uc := plangen.NewUsecases(plangen.Deps{
		Log:         log,
		AI:          ai,
		Safety:      tables,
		Eval:        evalSink,
		Transcripts: transcripts,
	})

	// HTTP
	router := server.NewRouter(server.RouterConfig{
		ServiceName:     "prepplan",
		AllowOrigins:    cfg.AllowOrigins,
		GenerateHandler: handlers.NewGenerateHandler(log, uc),
	})
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server listening", "port", cfg.Port, "model", cfg.Model)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if otelShutdown != nil {
			_ = otelShutdown(shutdownCtx)
		}
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("Server exited with error", "error", err)
	}
	log.Info("Server stopped")
}
