package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"markitdown-api/internal/config"
	"markitdown-api/internal/domain/models"
	convSvc "markitdown-api/internal/domain/services/conversion"
	"markitdown-api/internal/httputil"
)

// uploadField is the multipart field that carries the document
const uploadField = "file"

// ConvertHandler handles document conversion HTTP requests.
// Authentication happens in middleware before this handler runs.
type ConvertHandler struct {
	service convSvc.Service
	gate    convSvc.AdmissionGate
	logger  *slog.Logger
}

// NewConvertHandler creates a new conversion handler
func NewConvertHandler(service convSvc.Service, gate convSvc.AdmissionGate, logger *slog.Logger) *ConvertHandler {
	return &ConvertHandler{
		service: service,
		gate:    gate,
		logger:  logger,
	}
}

// Convert turns one uploaded file into markdown.
// POST /convert
//
// Query parameters:
//   - keep_data_uris: optional, if "true" inline base64 images are kept whole
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.GetRequestID(r)

	upload, err := httputil.ParseUpload(w, r, uploadField, h.gate.MaxFileSize(), config.MultipartOverhead, config.MultipartMemory)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req *models.ConversionRequest
	if upload != nil {
		req = &models.ConversionRequest{
			Filename:    upload.Filename,
			ContentType: upload.ContentType,
			Size:        upload.Size,
		}
	}

	// Size and emptiness are checked before any bytes reach the engine
	if err := h.gate.Admit(req); err != nil {
		h.handleError(w, r, err)
		return
	}

	content, err := upload.ReadAll()
	if err != nil {
		h.logger.Error("failed to read uploaded file",
			"file", upload.Filename,
			"request_id", requestID,
			"error", err,
		)
		h.handleError(w, r, err)
		return
	}
	req.Content = content
	req.KeepDataURIs, _ = strconv.ParseBool(r.URL.Query().Get("keep_data_uris"))

	resp, err := h.service.Convert(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
