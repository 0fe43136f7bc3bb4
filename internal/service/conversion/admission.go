package conversion

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"markitdown-api/internal/domain"
	"markitdown-api/internal/domain/models"
	convSvc "markitdown-api/internal/domain/services/conversion"
)

const bearerPrefix = "Bearer "

type admissionGate struct {
	token       []byte
	maxFileSize int64
	logger      *slog.Logger
}

// NewAdmissionGate creates the gate that runs before any conversion work.
// Checks happen in order: bearer token, upload present and non-empty, size.
func NewAdmissionGate(token string, maxFileSize int64, logger *slog.Logger) convSvc.AdmissionGate {
	return &admissionGate{
		token:       []byte(token),
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Authorize checks an "Authorization: Bearer <token>" header value
func (g *admissionGate) Authorize(header string) error {
	if header == "" {
		g.reject(domain.KindAuthentication, "missing authorization header")
		return &domain.AuthenticationError{Message: "Missing authorization header"}
	}

	if !strings.HasPrefix(header, bearerPrefix) {
		g.reject(domain.KindAuthentication, "invalid authorization format")
		return &domain.AuthenticationError{Message: "Invalid authorization format"}
	}

	presented := []byte(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
	if len(g.token) == 0 || subtle.ConstantTimeCompare(presented, g.token) != 1 {
		g.reject(domain.KindAuthentication, "token mismatch")
		return &domain.AuthenticationError{Message: "Invalid API token"}
	}

	return nil
}

// Admit validates the upload itself. req is nil when no file field was sent.
func (g *admissionGate) Admit(req *models.ConversionRequest) error {
	if req == nil {
		g.reject(domain.KindValidation, "missing file field")
		return &domain.ValidationError{Message: "No file provided"}
	}

	size := req.Size
	if n := int64(len(req.Content)); n > size {
		size = n
	}

	err := validation.Validate(size,
		validation.Required.Error("Empty file"),
	)
	if err != nil {
		g.reject(domain.KindValidation, "empty file", "filename", req.Filename)
		return &domain.ValidationError{Message: err.Error()}
	}

	if size > g.maxFileSize {
		g.reject(domain.KindPayloadTooLarge, "file exceeds size limit",
			"filename", req.Filename,
			"size", size,
			"limit", g.maxFileSize,
		)
		return &domain.PayloadTooLargeError{Size: size, Limit: g.maxFileSize}
	}

	return nil
}

// MaxFileSize returns the configured byte ceiling
func (g *admissionGate) MaxFileSize() int64 {
	return g.maxFileSize
}

func (g *admissionGate) reject(kind, reason string, attrs ...any) {
	args := append([]any{"kind", kind, "reason", reason}, attrs...)
	g.logger.Info("admission rejected", args...)
}
