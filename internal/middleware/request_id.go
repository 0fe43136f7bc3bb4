package middleware

import (
	"log/slog"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"markitdown-api/internal/config"
	"markitdown-api/internal/httputil"
)

// Incoming IDs are echoed into logs and headers, so keep them boring
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// RequestID tags every request with an ID, reusing a well-formed
// X-Request-ID from the caller or minting a UUID. Downstream code gets a
// logger carrying the ID via config.LoggerFromContext.
func RequestID(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(httputil.RequestIDHeader)
			if !validRequestID.MatchString(requestID) {
				requestID = uuid.NewString()
			}

			w.Header().Set(httputil.RequestIDHeader, requestID)
			r = httputil.WithRequestID(r, requestID)
			r = r.WithContext(config.WithLogger(r.Context(), logger.With("request_id", requestID)))
			next.ServeHTTP(w, r)
		})
	}
}
