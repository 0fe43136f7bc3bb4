package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/generative-ai-go/genai"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"markitdown-api/internal/config"
	"markitdown-api/internal/domain/models"
	convSvc "markitdown-api/internal/domain/services/conversion"
	"markitdown-api/internal/formats"
	"markitdown-api/internal/service/conversion"
	"markitdown-api/internal/service/converter"
)

func init() {
	rootCmd.Flags().Bool("json", false, "print the JSON response envelope instead of bare markdown")
	rootCmd.Flags().Bool("keep-data-uris", false, "keep inline base64 images intact")
	rootCmd.Flags().Int("chars-per-page", config.DefaultCharsPerPage, "characters per page for estimated_pages")
	rootCmd.Flags().BoolP("verbose", "v", false, "log conversion details to stderr")
}

// converterStack is the subset of the server wiring the CLI needs
type converterStack struct {
	gate    convSvc.AdmissionGate
	service convSvc.Service
	close   func()
}

func newConverterStack(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*converterStack, error) {
	formatRegistry, err := formats.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("format registry: %w", err)
	}

	closeFn := func() {}
	var transcriber convSvc.ContentConverter
	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		closeFn = func() { client.Close() }
		transcriber = converter.NewAudioConverter(client, cfg.GeminiModel)
	}

	engine := converter.NewDefaultRegistry(converter.Options{
		TempDir:           cfg.TempDir,
		OCRLanguages:      cfg.OCRLanguages,
		MaxArchiveEntries: cfg.MaxArchiveEntries,
		MaxEntrySize:      cfg.MaxFileSize,
		Transcriber:       transcriber,
	}, logger)

	return &converterStack{
		// Local files are trusted; only the size ceiling applies
		gate:    conversion.NewAdmissionGate("", cfg.MaxFileSize, logger),
		service: conversion.NewConversionService(engine, conversion.NewContentAnalyzer(cfg.CharsPerPage), formatRegistry, logger),
		close:   closeFn,
	}, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	keepDataURIs, _ := cmd.Flags().GetBool("keep-data-uris")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg := config.Load()
	if cmd.Flags().Changed("chars-per-page") {
		cfg.CharsPerPage, _ = cmd.Flags().GetInt("chars-per-page")
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	stack, err := newConverterStack(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stack.close()

	failed := 0
	for _, path := range args {
		resp, err := convertFile(ctx, stack, path, keepDataURIs)
		if err != nil {
			failed++
			if asJSON {
				writeJSON(cmd.OutOrStdout(), models.FailureResponse{Success: false, Error: err.Error()})
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			continue
		}

		if asJSON {
			writeJSON(cmd.OutOrStdout(), resp)
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Markdown)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func convertFile(ctx context.Context, stack *converterStack, path string, keepDataURIs bool) (*models.ConversionResponse, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("is a directory")
	}

	req := &models.ConversionRequest{
		Filename:     filepath.Base(path),
		Size:         info.Size(),
		KeepDataURIs: keepDataURIs,
	}
	if err := stack.gate.Admit(req); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	req.Content = content

	return stack.service.Convert(ctx, req)
}

func writeJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
