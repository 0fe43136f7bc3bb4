package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"markitdown-api/internal/config"
	convSvc "markitdown-api/internal/domain/services/conversion"
	"markitdown-api/internal/formats"
	"markitdown-api/internal/handler"
	"markitdown-api/internal/service/conversion"
	"markitdown-api/internal/service/converter"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup structured logging
	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"version", config.Version,
		"max_file_size", cfg.MaxFileSize,
		"ocr_enabled", converter.OCREnabled,
	)

	// Initialize format classification table
	formatRegistry, err := formats.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize format registry: %v", err)
	}

	// Audio transcription is only available with a Gemini key
	var transcriber convSvc.ContentConverter
	if cfg.GeminiAPIKey != "" {
		genaiClient, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		defer genaiClient.Close()
		transcriber = converter.NewAudioConverter(genaiClient, cfg.GeminiModel)
		logger.Info("audio transcription enabled", "model", cfg.GeminiModel)
	}

	// Create conversion engine
	engine := converter.NewDefaultRegistry(converter.Options{
		TempDir:           cfg.TempDir,
		OCRLanguages:      cfg.OCRLanguages,
		MaxArchiveEntries: cfg.MaxArchiveEntries,
		MaxEntrySize:      cfg.MaxFileSize,
		Transcriber:       transcriber,
	}, logger)

	logger.Info("conversion engine initialized",
		"extensions", len(engine.SupportedExtensions()),
	)

	// Create services
	gate := conversion.NewAdmissionGate(cfg.APIToken, cfg.MaxFileSize, logger)
	analyzer := conversion.NewContentAnalyzer(cfg.CharsPerPage)
	conversionService := conversion.NewConversionService(engine, analyzer, formatRegistry, logger)

	// Create handlers
	convertHandler := handler.NewConvertHandler(conversionService, gate, logger)
	healthHandler := handler.NewHealthHandler(cfg, engine)

	// Create HTTP server
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewRouter(cfg, convertHandler, healthHandler, gate, logger),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      0, // Disabled: OCR and transcription can take a while
		IdleTimeout:       60 * time.Second,
	}

	// Start server
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed", "error", err)
		return
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
