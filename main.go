package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	appLogger "github.com/smart-travel-ai/itinerary-engine/app/logger"
	"github.com/smart-travel-ai/itinerary-engine/app/observability/metrics"
	"github.com/smart-travel-ai/itinerary-engine/app/tracer"
	"github.com/smart-travel-ai/itinerary-engine/config"
	"github.com/smart-travel-ai/itinerary-engine/internal/api/recommend"
	"github.com/smart-travel-ai/itinerary-engine/internal/catalog"
	"github.com/smart-travel-ai/itinerary-engine/internal/router"
	"github.com/smart-travel-ai/itinerary-engine/internal/tfidf"
)

func main() {
	// --- Initial Loading ---
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	// --- Logger Setup ---
	logger := setupLogger()
	slog.SetDefault(logger)

	// --- Observability ---
	tracer.InitTracingAndMetrics(fmt.Sprintf(":%s", cfg.Server.MetricsPort))
	metrics.InitAppMetrics()

	// --- Application Context & Shutdown ---
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Catalog & Similarity Artifact ---
	// Both are loaded once and shared read-only for the process lifetime.
	// Serving must not start without them: fail fast, loud.
	snapshot, err := catalog.Load(cfg.Catalog.CSVPath, logger)
	if err != nil {
		logger.Error("Failed to load POI catalog", slog.Any("error", err))
		os.Exit(1)
	}
	index, err := tfidf.LoadArtifact(cfg.Catalog.ArtifactPath, snapshot)
	if err != nil {
		logger.Error("Failed to load similarity artifact", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Similarity index ready",
		slog.Int("pois", snapshot.Len()),
		slog.Int("vocabulary", index.VocabularySize()),
	)

	// --- Dependency Injection ---
	engineCfg := recommend.DefaultConfig()
	if cfg.Recommender.RadiusKm > 0 {
		engineCfg.RadiusKm = cfg.Recommender.RadiusKm
	}
	if cfg.Recommender.DefaultTopN > 0 {
		engineCfg.DefaultTopN = cfg.Recommender.DefaultTopN
	}
	if cfg.Recommender.MaxTopN > 0 {
		engineCfg.MaxTopN = cfg.Recommender.MaxTopN
	}
	if cfg.Recommender.PerNight > 0 {
		engineCfg.PerNight = cfg.Recommender.PerNight
	}
	if cfg.Recommender.CacheTTL > 0 {
		engineCfg.CacheTTL = cfg.Recommender.CacheTTL
	}
	if cfg.Recommender.Popularity.Similarity > 0 {
		engineCfg.Popularity = recommend.PopularityWeights{
			Similarity:   cfg.Recommender.Popularity.Similarity,
			Rating:       cfg.Recommender.Popularity.Rating,
			ReviewVolume: cfg.Recommender.Popularity.ReviewVolume,
		}
	}
	if cfg.Recommender.Category.Match > 0 {
		engineCfg.Category = recommend.CategoryWeights{
			Match:      cfg.Recommender.Category.Match,
			Similarity: cfg.Recommender.Category.Similarity,
		}
	}

	recommendService := recommend.NewServiceImpl(snapshot, index, engineCfg, logger)
	recommendHandler := recommend.NewHandler(recommendService, logger)

	// --- Router Setup ---
	mainRouter := router.SetupRouter(&router.Config{
		RecommendHandler: recommendHandler,
	})

	requestTimeout := cfg.Server.Timeout
	if requestTimeout <= 0 {
		requestTimeout = 60 * time.Second
	}

	r := chi.NewMux()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5, "application/json"))
	r.Mount("/", mainRouter)

	// --- HTTP Server Setup ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	// --- Start Server Goroutine ---
	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel() // Trigger shutdown if server fails unexpectedly
		}
	}()

	// --- Wait for Shutdown Signal ---
	<-ctx.Done()

	// --- Graceful Shutdown ---
	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" { // Default to development if not set
		// Colored logs for development
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug, // More verbose in dev
			TimeFormat: time.Kitchen,
			AddSource:  true, // Show file:line
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		// JSON logs for production or other environments
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
