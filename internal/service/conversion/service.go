package conversion

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"markitdown-api/internal/config"
	"markitdown-api/internal/domain"
	"markitdown-api/internal/domain/models"
	convSvc "markitdown-api/internal/domain/services/conversion"
)

type conversionService struct {
	engine   convSvc.Engine
	analyzer convSvc.ContentAnalyzer
	formats  convSvc.FormatClassifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewConversionService wires the adapter (engine) to the normalizer.
// Callers must have admitted the request already.
func NewConversionService(
	engine convSvc.Engine,
	analyzer convSvc.ContentAnalyzer,
	formats convSvc.FormatClassifier,
	logger *slog.Logger,
) convSvc.Service {
	return &conversionService{
		engine:   engine,
		analyzer: analyzer,
		formats:  formats,
		logger:   logger,
		now:      time.Now,
	}
}

// Convert invokes the engine once and builds the response envelope.
// processing_time_ms covers the engine call and normalization only.
func (s *conversionService) Convert(ctx context.Context, req *models.ConversionRequest) (*models.ConversionResponse, error) {
	start := s.now()
	logger := config.LoggerFromContext(ctx, s.logger)

	logger.Info("converting file",
		"filename", req.Filename,
		"size", req.Size,
		"content_type", req.ContentType,
	)

	out, converterName, err := s.engine.Convert(ctx, &convSvc.Input{
		Filename:     req.Filename,
		ContentType:  req.ContentType,
		Content:      req.Content,
		KeepDataURIs: req.KeepDataURIs,
	})
	if err != nil {
		err = classifyEngineError(req.Filename, err)
		logger.Warn("conversion failed",
			"filename", req.Filename,
			"size", req.Size,
			"kind", domain.Kind(err),
			"error", err,
		)
		return nil, err
	}

	if out == nil || out.Markdown == "" {
		err := &domain.ConversionError{Filename: req.Filename, Message: "empty result"}
		logger.Warn("conversion failed",
			"filename", req.Filename,
			"size", req.Size,
			"kind", domain.Kind(err),
			"converter", converterName,
			"error", err,
		)
		return nil, err
	}

	resp := s.normalize(req, s.project(out, converterName))
	resp.ProcessingTimeMs = s.now().Sub(start).Milliseconds()

	logger.Info("conversion complete",
		"filename", req.Filename,
		"converter", converterName,
		"characters", resp.Metadata.Characters,
		"words", resp.Metadata.Words,
		"processing_time_ms", resp.ProcessingTimeMs,
	)

	return resp, nil
}

// project derives the plain-text view from the engine output
func (s *conversionService) project(out *convSvc.Output, converterName string) *models.ConversionResult {
	return &models.ConversionResult{
		Markdown:  out.Markdown,
		PlainText: s.analyzer.PlainText(out.Markdown),
		Title:     out.Title,
		Converter: converterName,
	}
}

func (s *conversionService) normalize(req *models.ConversionRequest, result *models.ConversionResult) *models.ConversionResponse {
	characters := s.analyzer.CountCharacters(result.PlainText)

	size := req.Size
	if size == 0 {
		size = int64(len(req.Content))
	}

	return &models.ConversionResponse{
		Success:   true,
		Markdown:  result.Markdown,
		PlainText: result.PlainText,
		Metadata: models.ConversionMetadata{
			FileName:       req.Filename,
			FileSizeBytes:  size,
			FileType:       req.ContentType,
			Characters:     characters,
			Words:          s.analyzer.CountWords(result.PlainText),
			EstimatedPages: s.analyzer.EstimatePages(characters),
			DetectedFormat: s.formats.Detect(req.Filename, req.ContentType),
			Title:          result.Title,
			Converter:      result.Converter,
		},
	}
}

// classifyEngineError keeps typed engine errors and wraps anything else as
// a ConversionError with a sanitized message.
func classifyEngineError(filename string, err error) error {
	var unsupported *domain.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		if unsupported.Filename == "" {
			unsupported.Filename = filename
		}
		return unsupported
	}

	var convErr *domain.ConversionError
	if errors.As(err, &convErr) {
		return convErr
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &domain.ConversionError{Filename: filename, Message: "request cancelled", Cause: err}
	}

	return &domain.ConversionError{Filename: filename, Message: domain.SanitizeMessage(err.Error(), filename), Cause: err}
}
