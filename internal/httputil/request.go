package httputil

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"markitdown-api/internal/domain"
)

// Upload is a single file part of a multipart request
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	header      *multipart.FileHeader
}

// ReadAll loads the upload's bytes
func (u *Upload) ReadAll() ([]byte, error) {
	file, err := u.header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}

// ParseUpload reads the multipart form and returns the part named field.
// The body is capped at maxFileSize plus multipart framing overhead, so an
// oversized upload fails here without being fully buffered. Returns nil,
// nil when the form has no such field.
func ParseUpload(w http.ResponseWriter, r *http.Request, field string, maxFileSize, overhead, memory int64) (*Upload, error) {
	if r.ContentLength > maxFileSize+overhead {
		return nil, &domain.PayloadTooLargeError{Size: r.ContentLength, Limit: maxFileSize}
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFileSize+overhead)

	if err := r.ParseMultipartForm(memory); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			return nil, &domain.PayloadTooLargeError{Limit: maxFileSize}
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			return nil, nil
		default:
			return nil, &domain.ValidationError{Message: "Failed to parse multipart form"}
		}
	}

	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, nil
	}

	header := files[0]
	return &Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		header:      header,
	}, nil
}
