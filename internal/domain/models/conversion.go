package models

// ConversionRequest is a single admitted upload. It lives for one request only.
type ConversionRequest struct {
	Filename     string
	ContentType  string // declared by the client, may be empty
	Size         int64  // declared size from the multipart header
	Content      []byte
	KeepDataURIs bool
}

// ConversionResult is the engine output plus its plain-text projection.
// PlainText is always derived from Markdown, never set independently.
type ConversionResult struct {
	Markdown  string
	PlainText string
	Title     string
	Converter string
}

// ConversionMetadata describes the uploaded file and the converted text
type ConversionMetadata struct {
	FileName       string `json:"file_name"`
	FileSizeBytes  int64  `json:"file_size_bytes"`
	FileType       string `json:"file_type,omitempty"`
	Characters     int    `json:"characters"`
	Words          int    `json:"words"`
	EstimatedPages int    `json:"estimated_pages"`
	DetectedFormat string `json:"detected_format"`
	Title          string `json:"title,omitempty"`
	Converter      string `json:"converter,omitempty"`
}

// ConversionResponse is the success envelope returned by POST /convert
type ConversionResponse struct {
	Success          bool               `json:"success"`
	Markdown         string             `json:"markdown"`
	PlainText        string             `json:"plain_text"`
	Metadata         ConversionMetadata `json:"metadata"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
}

// FailureResponse is the envelope for any rejected or failed request.
// It carries no markdown or metadata.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
