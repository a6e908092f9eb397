package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"letterforge/internal/analyzer"
	"letterforge/internal/api/routes"
	"letterforge/internal/config"
	"letterforge/internal/documents"
	"letterforge/internal/llm"
	"letterforge/internal/logging"
	"letterforge/internal/orchestrator"
	"letterforge/internal/scraper"
	"letterforge/internal/scraper/workers"
	"letterforge/internal/storage"
	"letterforge/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting Letterforge cover letter service")

	// Initialize LLM manager
	llmManager := llm.NewManager(cfg)
	if err := llmManager.Start(); err != nil {
		logger.Fatal("Failed to start LLM manager", map[string]interface{}{"error": err.Error()})
	}

	// Initialize scraper worker pool
	engineFactory := scraper.NewFactory(cfg)
	pool := workers.NewPool(cfg, engineFactory)
	if err := pool.Start(); err != nil {
		logger.Fatal("Failed to start worker pool", map[string]interface{}{"error": err.Error()})
	}

	// Initialize persistence and load collections. A corrupt slot aborts
	// startup: the stores refuse to run over data they cannot trust.
	slots, err := storage.NewSlotStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage backend", map[string]interface{}{"error": err.Error()})
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelLoad()

	profileStore := store.NewProfileStore(slots)
	if err := profileStore.Load(loadCtx); err != nil {
		logger.Fatal("Failed to load profile collection", map[string]interface{}{"error": err.Error()})
	}

	applicationStore := store.NewApplicationStore(slots)
	if err := applicationStore.Load(loadCtx); err != nil {
		logger.Fatal("Failed to load application collection", map[string]interface{}{"error": err.Error()})
	}

	loginState := store.NewLoginState(slots)
	if err := loginState.Load(loadCtx); err != nil {
		logger.Fatal("Failed to load login state", map[string]interface{}{"error": err.Error()})
	}

	// Generator session on top of analysis + generation
	jobAnalyzer := analyzer.New(pool, llmManager)
	session := orchestrator.NewSession(jobAnalyzer, llmManager, profileStore, applicationStore)

	documentReader := documents.NewReader(cfg.Documents.MaxFileSize)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	routes.SetupRoutes(e, routes.Deps{
		Config:       cfg,
		Slots:        slots,
		Profiles:     profileStore,
		Applications: applicationStore,
		Login:        loginState,
		Documents:    documentReader,
		Pool:         pool,
		LLMManager:   llmManager,
		Session:      session,
	})

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := pool.Stop(); err != nil {
			logger.Error("Error stopping worker pool", map[string]interface{}{"error": err.Error()})
		}

		if err := llmManager.Stop(); err != nil {
			logger.Error("Error stopping LLM manager", map[string]interface{}{"error": err.Error()})
		}

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		if err := slots.Close(); err != nil {
			logger.Error("Error closing storage backend", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Info("Server stopped", map[string]interface{}{"reason": err.Error()})
	}
}
