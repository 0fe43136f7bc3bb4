package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Config is built once at startup and only read afterwards
type Config struct {
	Port           string
	Environment    string
	APIToken       string
	MaxFileSize    int64
	AllowedOrigins []string
	CharsPerPage   int
	TempDir        string
	// Logging
	LogDir      string
	LogMaxFiles int
	// Engine
	OCRLanguages      string
	GeminiAPIKey      string // Enables audio transcription when set
	GeminiModel       string
	MaxArchiveEntries int

	StartedAt time.Time
}

func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", DefaultPort),
		Environment:       getEnv("ENVIRONMENT", "prod"),
		APIToken:          os.Getenv("API_TOKEN"),
		MaxFileSize:       getEnvInt64("MAX_FILE_SIZE", DefaultMaxFileSize),
		AllowedOrigins:    splitList(getEnv("ALLOWED_ORIGINS", "*")),
		CharsPerPage:      int(getEnvInt64("CHARS_PER_PAGE", DefaultCharsPerPage)),
		TempDir:           getEnv("TEMP_DIR", os.TempDir()),
		LogDir:            os.Getenv("LOG_DIR"),
		LogMaxFiles:       int(getEnvInt64("LOG_MAX_FILES", DefaultLogMaxFiles)),
		OCRLanguages:      getEnv("OCR_LANGUAGES", "eng"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", DefaultGeminiModel),
		MaxArchiveEntries: int(getEnvInt64("MAX_ARCHIVE_ENTRIES", DefaultMaxArchiveEntries)),
		StartedAt:         time.Now(),
	}
}

// Validate reports the first configuration problems found, per field
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.APIToken, validation.Required.Error("API_TOKEN must be set")),
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.MaxFileSize, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.CharsPerPage, validation.Required, validation.Min(1)),
		validation.Field(&c.AllowedOrigins, validation.Required),
		validation.Field(&c.LogMaxFiles, validation.Min(1)),
		validation.Field(&c.MaxArchiveEntries, validation.Min(1)),
		validation.Field(&c.Environment, validation.In("dev", "test", "prod")),
	)
}

// Uptime returns whole seconds since the process loaded its configuration
func (c *Config) Uptime() int64 {
	return int64(time.Since(c.StartedAt) / time.Second)
}

// IsDev reports whether debug behaviour should be enabled
func (c *Config) IsDev() bool {
	return c.Environment == "dev"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt64 falls back to the default on empty or unparsable values;
// Validate catches the nonsensical ones.
func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
