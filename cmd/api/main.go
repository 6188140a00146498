package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/divops/tarotai/internal/api"
	"github.com/divops/tarotai/internal/api/middleware"
	"github.com/divops/tarotai/internal/catalog"
	"github.com/divops/tarotai/internal/config"
	"github.com/divops/tarotai/internal/logger"
	"github.com/divops/tarotai/internal/repository"
	"github.com/divops/tarotai/internal/service"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLog := logger.NewFromEnv(logger.LoadFromEnv())
	logger.SetDefaultLogger(appLog)
	defer logger.Sync()

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLog.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize repositories
	cardRepo := repository.NewCardRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	contextRepo := repository.NewContextRepository(db)
	keywordRepo := repository.NewKeywordRepository(db)
	discussionRepo := repository.NewDiscussionRepository(db)

	// Seed the card catalog
	ctx := context.Background()
	cards, err := catalog.Load()
	if err != nil {
		appLog.Fatalf("Failed to load card catalog: %v", err)
	}
	if err := cardRepo.SeedCatalog(ctx, cards); err != nil {
		appLog.Fatalf("Failed to seed card catalog: %v", err)
	}
	appLog.Infof("Card catalog ready with %d cards", len(cards))

	// Initialize services
	generator := service.NewReadingGenerator(&cfg.LLM)
	if !generator.IsEnabled() {
		appLog.Warnf("No LLM API key configured, readings use placeholder interpretations")
	}

	matcher := service.NewMatcherService(contextRepo, cfg.Reading.ContextScanLimit)
	enhancer := service.NewEnhancerService(matcher, cfg.Reading.SimilarLimit)
	feedbackService := service.NewFeedbackService(feedbackRepo, contextRepo, keywordRepo, cfg.Reading.ContextScanLimit)
	readingService := service.NewReadingService(cardRepo, generator, enhancer, service.NewSystemRNG(), cfg.Reading.SpreadSize)
	discussionService := service.NewDiscussionService(discussionRepo, readingService, generator, cfg.Reading.ContextScanLimit)

	// Setup router
	router := api.SetupRouter(api.RouterDeps{
		Readings:    readingService,
		Enhancer:    enhancer,
		Discussions: discussionService,
		Feedback:    feedbackService,
	}, cfg.Server.Mode, middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}, appLog)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLog.Infof("Starting API server on port %d (mode=%s)", cfg.Server.Port, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Infof("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatalf("Server forced to shutdown: %v", err)
	}

	appLog.Infof("Server exited")
}
