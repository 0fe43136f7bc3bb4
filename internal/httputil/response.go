package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"markitdown-api/internal/domain"
	"markitdown-api/internal/domain/models"
)

// RespondJSON writes a JSON response with the given status code.
// It handles encoding errors safely by marshaling first, preventing
// partial responses if encoding fails after headers are sent.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		// Encoding failed - return 500 instead
		RespondFailure(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondFailure writes the {"success": false, "error": ...} envelope
func RespondFailure(w http.ResponseWriter, status int, message string) {
	payload, err := json.Marshal(models.FailureResponse{Success: false, Error: message})
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondError maps a domain error to its status and failure envelope.
// Errors that carry no status become a generic 500.
func RespondError(w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		RespondFailure(w, httpErr.StatusCode(), httpErr.Error())
		return
	}
	RespondFailure(w, http.StatusInternalServerError, "internal server error")
}
