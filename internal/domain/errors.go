package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrValidation        = errors.New("validation failed")
	ErrPayloadTooLarge   = errors.New("payload too large")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrConversion        = errors.New("conversion failed")
)

// Error kinds used as log labels
const (
	KindAuthentication    = "authentication"
	KindValidation        = "validation"
	KindPayloadTooLarge   = "payload_too_large"
	KindUnsupportedFormat = "unsupported_format"
	KindConversion        = "conversion"
)

type (
	// AuthenticationError indicates a missing or mismatched bearer token
	AuthenticationError struct {
		Message string
	}

	// ValidationError indicates a missing or empty upload
	ValidationError struct {
		Message string
	}

	// PayloadTooLargeError indicates the upload exceeds the configured ceiling
	PayloadTooLargeError struct {
		Size  int64 // 0 when the size is unknown (body cut off while reading)
		Limit int64
	}

	// UnsupportedFormatError indicates the engine could not classify or decode the file
	UnsupportedFormatError struct {
		Filename string
		Reason   string
	}

	// ConversionError indicates any other failure inside the engine.
	// Message must already be safe to show to clients.
	ConversionError struct {
		Filename string
		Message  string
		Cause    error
	}
)

func (e *AuthenticationError) Error() string { return e.Message }
func (e *ValidationError) Error() string     { return e.Message }

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("File too large. Max size: %.1fMB", float64(e.Limit)/1024/1024)
}

func (e *UnsupportedFormatError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unsupported or unrecognized file format: %s", e.Filename)
	}
	return fmt.Sprintf("unsupported or unrecognized file format: %s (%s)", e.Filename, e.Reason)
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed for %s: %s", e.Filename, e.Message)
}

func (e *ConversionError) Unwrap() error { return e.Cause }

func (e *AuthenticationError) StatusCode() int    { return http.StatusUnauthorized }
func (e *ValidationError) StatusCode() int        { return http.StatusBadRequest }
func (e *PayloadTooLargeError) StatusCode() int   { return http.StatusRequestEntityTooLarge }
func (e *UnsupportedFormatError) StatusCode() int { return http.StatusUnprocessableEntity }
func (e *ConversionError) StatusCode() int        { return http.StatusInternalServerError }

// Is allows errors.Is() to match the typed errors against their sentinels
func (e *AuthenticationError) Is(target error) bool    { return target == ErrUnauthorized }
func (e *ValidationError) Is(target error) bool        { return target == ErrValidation }
func (e *PayloadTooLargeError) Is(target error) bool   { return target == ErrPayloadTooLarge }
func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }
func (e *ConversionError) Is(target error) bool        { return target == ErrConversion }

// Kind returns a short label describing the error class, for logging.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return KindAuthentication
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrPayloadTooLarge):
		return KindPayloadTooLarge
	case errors.Is(err, ErrUnsupportedFormat):
		return KindUnsupportedFormat
	default:
		return KindConversion
	}
}
