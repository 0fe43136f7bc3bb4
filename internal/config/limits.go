package config

const (
	// DefaultPort is the listen port when PORT is unset.
	DefaultPort = "8000"

	// DefaultMaxFileSize is the upload ceiling when MAX_FILE_SIZE is unset (50 MiB).
	DefaultMaxFileSize int64 = 50 << 20

	// DefaultCharsPerPage is the characters-per-page constant behind
	// estimated_pages. It is an approximation of a dense printed page and has
	// no stronger basis than that.
	DefaultCharsPerPage = 3000

	// MultipartMemory is how much of a multipart body is kept in memory;
	// the remainder spills to temporary files.
	MultipartMemory = 32 << 20

	// MultipartOverhead is the slack allowed on top of MaxFileSize for
	// boundaries, part headers and other form fields.
	MultipartOverhead = 1 << 20

	// DefaultLogMaxFiles is how many timestamped log files are kept in LOG_DIR.
	DefaultLogMaxFiles = 10

	// DefaultMaxArchiveEntries caps how many files of a zip upload are converted.
	DefaultMaxArchiveEntries = 200

	// DefaultGeminiModel transcribes audio uploads.
	DefaultGeminiModel = "gemini-2.5-flash"
)

const (
	// ServiceName identifies the service in GET / responses.
	ServiceName = "markitdown-api"

	// Version is reported by GET / and GET /health.
	Version = "1.0.1"
)
