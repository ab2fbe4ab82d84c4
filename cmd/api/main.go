package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/octobees/lead-enrichment/internal/auth"
	"github.com/octobees/lead-enrichment/internal/config"
	"github.com/octobees/lead-enrichment/internal/database"
	"github.com/octobees/lead-enrichment/internal/handler"
	middlewarepkg "github.com/octobees/lead-enrichment/internal/middleware"
	"github.com/octobees/lead-enrichment/internal/provider"
	"github.com/octobees/lead-enrichment/internal/repository"
	"github.com/octobees/lead-enrichment/internal/router"
	"github.com/octobees/lead-enrichment/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := db.Client().Disconnect(disconnectCtx); err != nil {
			logger.Warn("database disconnect failed", zap.Error(err))
		}
	}()

	verifier := auth.NewFirebaseVerifier(cfg.Firebase.ProjectID)

	companiesRepo := repository.NewMongoCompaniesRepository(db)
	historyRepo := repository.NewMongoHistoryRepository(db)

	providerClient := provider.NewAbstractClient(
		&http.Client{Timeout: cfg.ProviderTimeout},
		cfg.ProviderBaseURL,
		cfg.AbstractAPIKey,
	)

	enrichmentService := service.NewEnrichmentService(companiesRepo, historyRepo, providerClient, logger)
	historyService := service.NewHistoryService(historyRepo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger))
	e.Use(echoMiddleware.Recover())

	router.Register(e, verifier, router.Handlers{
		Enrich:  handler.NewEnrichHandler(enrichmentService),
		History: handler.NewHistoryHandler(historyService),
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()
	logger.Info("server started", zap.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
}
