package handler

import (
	"net/http"

	"markitdown-api/internal/config"
	"markitdown-api/internal/domain/models"
	"markitdown-api/internal/httputil"
)

// extensionLister is satisfied by the conversion engine
type extensionLister interface {
	SupportedExtensions() []string
}

// HealthHandler serves the unauthenticated liveness endpoints
type HealthHandler struct {
	cfg     *config.Config
	formats extensionLister
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg *config.Config, formats extensionLister) *HealthHandler {
	return &HealthHandler{cfg: cfg, formats: formats}
}

// Root describes the service.
// GET /{$}
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	exts := h.formats.SupportedExtensions()
	if exts == nil {
		exts = []string{}
	}

	httputil.RespondJSON(w, http.StatusOK, models.ServiceInfo{
		Service:             config.ServiceName,
		Status:              "running",
		Version:             config.Version,
		UptimeSeconds:       h.cfg.Uptime(),
		SupportedExtensions: exts,
	})
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, models.HealthResponse{
		Status:        "healthy",
		Version:       config.Version,
		UptimeSeconds: h.cfg.Uptime(),
	})
}
