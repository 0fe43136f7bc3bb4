package middleware

import (
	"log/slog"
	"net/http"

	convSvc "markitdown-api/internal/domain/services/conversion"
	"markitdown-api/internal/httputil"
)

// BearerAuth rejects requests whose Authorization header does not carry
// the configured API token. Nothing behind it runs on failure.
func BearerAuth(gate convSvc.AdmissionGate, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := gate.Authorize(r.Header.Get("Authorization")); err != nil {
				logger.Debug("request not authorized",
					"path", r.URL.Path,
					"request_id", httputil.GetRequestID(r),
				)
				w.Header().Set("WWW-Authenticate", "Bearer")
				httputil.RespondError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
