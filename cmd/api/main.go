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

	"github.com/Dan9191/trade-prices/internal/app"
	"github.com/Dan9191/trade-prices/internal/config"
	"github.com/Dan9191/trade-prices/internal/handler"
	"github.com/Dan9191/trade-prices/internal/ingest"
	"github.com/Dan9191/trade-prices/internal/logging"
	"github.com/Dan9191/trade-prices/internal/middleware"
	"github.com/Dan9191/trade-prices/internal/repository"
	"github.com/Dan9191/trade-prices/internal/service"
)

func main() {
	// Initialize logger
	logger := logging.New(os.Getenv("LOG_LEVEL"))

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := app.OpenDB(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize layers
	repo := repository.NewRepository(db)
	auth := service.NewAuth(cfg, logger)

	var ingester handler.Ingester
	if cfg.RequireCredential() == nil {
		svc, err := app.NewIngest(cfg, db, logger)
		if err != nil {
			logger.Fatalf("Failed to initialize ingestion: %v", err)
		}
		ingester = svc
	} else {
		logger.Warn("MOLIT_API_KEY not set, admin ingestion disabled")
	}

	h := handler.NewHandler(repo, ingester, auth, ingest.DefaultRegions, logger)
	r := handler.NewRouter(h, middleware.AuthMiddleware(cfg))

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Server shutdown failed: %v", err)
		}
	}()

	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server failed: %v", err)
	}
	logger.Info("Server stopped")
}
