package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"markitdown-api/internal/domain"
	"markitdown-api/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Anything that is
// not a domain error is logged and hidden behind a generic 500.
func (h *ConvertHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	logUnexpected(h.logger, r, err)
	httputil.RespondError(w, err)
}

func logUnexpected(logger *slog.Logger, r *http.Request, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		return
	}
	logger.Error("unexpected error",
		"error", err,
		"path", r.URL.Path,
		"method", r.Method,
		"request_id", httputil.GetRequestID(r),
	)
}
