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

	"imagesight-backend/internal/config"
	"imagesight-backend/internal/database"
	"imagesight-backend/internal/handlers"
	"imagesight-backend/internal/providers"
	"imagesight-backend/internal/repository"
	"imagesight-backend/internal/router"
	"imagesight-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting ImageSight Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	// The analyze pipeline works without a database; settings and history
	// endpoints report DB_INIT_ERROR per-request instead of the server
	// refusing to start.
	var settingsRepo *repository.SettingsRepo
	var historyRepo *repository.HistoryRepo
	if cfg.DatabaseURL == "" {
		log.Println("⚠ DATABASE_URL not set, settings persistence disabled")
	} else {
		pool, err := database.NewPostgresPool(cfg.DatabaseURL)
		if err != nil {
			log.Printf("✗ PostgreSQL connection failed: %v", err)
			log.Println("⚠ Continuing without settings persistence")
		} else {
			defer pool.Close()
			log.Println("✓ PostgreSQL connected")

			if err := database.RunMigrations(pool, "migrations"); err != nil {
				log.Fatalf("✗ Database migration failed: %v", err)
			}
			log.Println("✓ Database migrations applied")

			settingsRepo = repository.NewSettingsRepo(pool)
			historyRepo = repository.NewHistoryRepo(pool)
		}
	}

	// ──── Step 3: Initialize Provider Adapters ────
	// One shared client; vision calls are slow so the timeout is generous.
	upstreamClient := &http.Client{
		Timeout: time.Duration(cfg.UpstreamTimeoutSecs) * time.Second,
	}

	openaiAdapter := providers.NewOpenAIAdapter("OpenAI", cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.OpenAIMaxTokens, upstreamClient)
	zaiAdapter := providers.NewOpenAIAdapter("Z.AI", cfg.ZAIBaseURL, cfg.ZAIModel, cfg.ZAIMaxTokens, upstreamClient)
	geminiAdapter := providers.NewGeminiAdapter(cfg.GeminiBaseURL, "gemini-2.5-flash", cfg.GeminiMaxTokens, upstreamClient)
	log.Println("✓ Provider adapters initialized")

	// ──── Step 4: Initialize Services and Handlers ────
	analyzer := services.NewAnalyzerService(openaiAdapter, zaiAdapter, geminiAdapter, services.ProviderKeys{
		OpenAI: cfg.OpenAIAPIKey,
		ZAI:    cfg.ZAIAPIKey,
		Gemini: cfg.GeminiAPIKey,
	})

	analyzeHandler := newAnalyzeHandler(analyzer, historyRepo)
	settingsHandler := newSettingsHandler(settingsRepo)
	historyHandler := newHistoryHandler(historyRepo)
	uploadHandler := handlers.NewUploadHandler(cfg.StoragePath)
	keyHandler := handlers.NewKeyHandler()

	// ──── Step 5: Start HTTP Server ────
	r := router.New(
		analyzeHandler,
		settingsHandler,
		historyHandler,
		uploadHandler,
		keyHandler,
		cfg.StoragePath,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Vision models can take minutes on large images.
		WriteTimeout: time.Duration(cfg.UpstreamTimeoutSecs+30) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ ImageSight Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

// The handler constructors take interfaces; a typed nil *Repo must become a
// true nil interface so the handlers detect the disabled database.

func newAnalyzeHandler(analyzer *services.AnalyzerService, historyRepo *repository.HistoryRepo) *handlers.AnalyzeHandler {
	if historyRepo == nil {
		return handlers.NewAnalyzeHandler(analyzer, nil)
	}
	return handlers.NewAnalyzeHandler(analyzer, historyRepo)
}

func newSettingsHandler(settingsRepo *repository.SettingsRepo) *handlers.SettingsHandler {
	if settingsRepo == nil {
		return handlers.NewSettingsHandler(nil)
	}
	return handlers.NewSettingsHandler(settingsRepo)
}

func newHistoryHandler(historyRepo *repository.HistoryRepo) *handlers.HistoryHandler {
	if historyRepo == nil {
		return handlers.NewHistoryHandler(nil)
	}
	return handlers.NewHistoryHandler(historyRepo)
}
