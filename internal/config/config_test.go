package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "MAX_FILE_SIZE", "ALLOWED_ORIGINS", "CHARS_PER_PAGE", "ENVIRONMENT", "LOG_DIR"} {
		t.Setenv(key, "")
	}
	t.Setenv("API_TOKEN", "secret")

	cfg := Load()

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.MaxFileSize != 52428800 {
		t.Errorf("MaxFileSize = %d, want 52428800", cfg.MaxFileSize)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"*"}) {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
	if cfg.CharsPerPage != 3000 {
		t.Errorf("CharsPerPage = %d, want 3000", cfg.CharsPerPage)
	}
	if cfg.StartedAt.IsZero() {
		t.Error("StartedAt should be set")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("CHARS_PER_PAGE", "1800")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.MaxFileSize != 1024 {
		t.Errorf("MaxFileSize = %d, want 1024", cfg.MaxFileSize)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
	if cfg.CharsPerPage != 1800 {
		t.Errorf("CharsPerPage = %d, want 1800", cfg.CharsPerPage)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:              "8000",
			Environment:       "prod",
			APIToken:          "secret",
			MaxFileSize:       DefaultMaxFileSize,
			AllowedOrigins:    []string{"*"},
			CharsPerPage:      DefaultCharsPerPage,
			LogMaxFiles:       DefaultLogMaxFiles,
			MaxArchiveEntries: DefaultMaxArchiveEntries,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing token", mutate: func(c *Config) { c.APIToken = "" }, wantErr: true},
		{name: "negative size", mutate: func(c *Config) { c.MaxFileSize = -5 }, wantErr: true},
		{name: "zero size", mutate: func(c *Config) { c.MaxFileSize = 0 }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.Port = "http" }, wantErr: true},
		{name: "no origins", mutate: func(c *Config) { c.AllowedOrigins = nil }, wantErr: true},
		{name: "unknown environment", mutate: func(c *Config) { c.Environment = "staging" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetupLogFile_RemovesOldest(t *testing.T) {
	dir := t.TempDir()
	old := []string{
		"markitdown-api-2024-01-01T00-00-00.000.log",
		"markitdown-api-2024-01-02T00-00-00.000.log",
		"markitdown-api-2024-01-03T00-00-00.000.log",
	}
	for _, name := range old {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	f, err := SetupLogFile(dir, 2)
	if err != nil {
		t.Fatalf("SetupLogFile: %v", err)
	}
	defer f.Close()

	files, _ := filepath.Glob(filepath.Join(dir, "markitdown-api-*.log"))
	if len(files) != 2 {
		t.Fatalf("got %d log files, want 2: %v", len(files), files)
	}
	if _, err := os.Stat(filepath.Join(dir, old[0])); !os.IsNotExist(err) {
		t.Error("oldest log file should have been removed")
	}
}

func TestLoggerFromContext(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	if got := LoggerFromContext(context.Background(), fallback); got != fallback {
		t.Error("expected fallback for a bare context")
	}

	var buf bytes.Buffer
	scoped := slog.New(slog.NewJSONHandler(&buf, nil)).With("request_id", "req-1")
	ctx := WithLogger(context.Background(), scoped)

	LoggerFromContext(ctx, fallback).Info("hello")
	if !bytes.Contains(buf.Bytes(), []byte(`"request_id":"req-1"`)) {
		t.Errorf("log line missing request_id: %s", buf.String())
	}
}
