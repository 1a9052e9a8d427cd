package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agenthands/pokedex/internal/catalog"
	"github.com/agenthands/pokedex/internal/config"
	"github.com/agenthands/pokedex/internal/llm"
	"github.com/agenthands/pokedex/internal/logging"
	"github.com/agenthands/pokedex/internal/persona"
	"github.com/agenthands/pokedex/internal/pokeapi"
	"github.com/agenthands/pokedex/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.toml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := pokeapi.New(cfg.PokeAPI.BaseURL, cfg.PokeAPI.Timeout.Duration)
	svc := catalog.NewService(api, catalog.Options{
		ListLimit: cfg.PokeAPI.ListLimit,
		BatchSize: cfg.PokeAPI.BatchSize,
		Logger:    logger.Named("catalog"),
	})

	// Catalog reads answer 503 while the first load runs and 502 once it has
	// failed; the refresher retries until a load succeeds.
	go func() {
		if err := svc.Load(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Initial catalog load failed", zap.Error(err))
		}
	}()

	var refresher *catalog.Refresher
	if cfg.Refresh.Enabled {
		refresher = catalog.NewRefresher(cfg.Refresh.Interval.Duration, svc.Tick, logger.Named("refresher"))
		refresher.Start(ctx)
	}

	client, err := llm.NewClient(ctx, cfg.LLM)
	switch {
	case errors.Is(err, llm.ErrNoCredential):
		logger.Warn("No llm credential configured, chat replies will be unavailable",
			zap.String("provider", cfg.LLM.Provider))
		client = nil
	case err != nil:
		logger.Fatal("Failed to create llm client", zap.Error(err))
	}
	if closer, ok := client.(io.Closer); ok {
		defer closer.Close()
	}

	responder := persona.NewResponder(client, logger.Named("persona"))
	sessions := persona.NewSessions(responder, cfg.Chat.SessionTTL.Duration)

	srv := server.New(ctx, svc, responder, sessions, logger.Named("http"))
	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv.SetupRouter(),
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown error", zap.Error(err))
		}
		close(done)
	}()

	logger.Info("Starting server", zap.String("addr", httpServer.Addr))
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server error", zap.Error(err))
	}

	<-done
	if refresher != nil {
		refresher.Stop()
	}
	srv.Wait()
	logger.Info("Server stopped")
}
