package handler

import (
	"log/slog"
	"net/http"

	"github.com/rs/cors"

	"markitdown-api/internal/config"
	convSvc "markitdown-api/internal/domain/services/conversion"
	"markitdown-api/internal/middleware"
)

// NewRouter registers all routes and wraps them in the middleware chain.
// Order: CORS → RequestID → Recovery → Routes. Bearer auth wraps /convert only.
func NewRouter(
	cfg *config.Config,
	convertHandler *ConvertHandler,
	healthHandler *HealthHandler,
	gate convSvc.AdmissionGate,
	logger *slog.Logger,
) http.Handler {
	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Liveness
	mux.HandleFunc("GET /{$}", healthHandler.Root)
	mux.HandleFunc("GET /health", healthHandler.HealthCheck)

	// Conversion
	mux.Handle("POST /convert", middleware.BearerAuth(gate, logger)(http.HandlerFunc(convertHandler.Convert)))

	// Apply middleware in reverse order (they wrap each other)
	var handler http.Handler = mux
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.RequestID(logger)(handler)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})
	return corsHandler.Handler(handler)
}
