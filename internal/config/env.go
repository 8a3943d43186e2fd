package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultMaxUploadBytes    = 25 * 1024 * 1024
	defaultTranscribeTimeout = 5 * time.Minute
	defaultListenAddr        = ":8080"
)

// Config is the environment-provided configuration surface. Remote storage
// is optional; transcription requires the OpenAI key.
type Config struct {
	OpenAIAPIKey string

	// SupabaseDBURL is the Postgres DSN of the Supabase project. Empty
	// means the storage gateway runs in local-fallback mode.
	SupabaseDBURL   string
	SupabaseURL     string
	SupabaseAnonKey string

	MaxUploadBytes    int64
	TranscribeTimeout time.Duration
	ListenAddr        string
}

// LoadEnv loads variables from a .env file if one exists nearby. Missing
// files are fine; variables may be set system-wide instead.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}
	return nil
}

// FromEnv reads and validates the configuration. Key values are format
// checked but never echoed into error messages.
func FromEnv() (*Config, error) {
	cfg := &Config{
		OpenAIAPIKey:      strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		SupabaseDBURL:     strings.TrimSpace(os.Getenv("SUPABASE_DB_URL")),
		SupabaseURL:       strings.TrimSpace(os.Getenv("SUPABASE_URL")),
		SupabaseAnonKey:   strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY")),
		MaxUploadBytes:    defaultMaxUploadBytes,
		TranscribeTimeout: defaultTranscribeTimeout,
		ListenAddr:        defaultListenAddr,
	}

	if cfg.OpenAIAPIKey != "" {
		if !strings.HasPrefix(cfg.OpenAIAPIKey, "sk-") {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
		}
		if len(cfg.OpenAIAPIKey) < 20 {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY format: too short")
		}
	}

	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %q", v)
		}
		cfg.MaxUploadBytes = n
	}

	if v := os.Getenv("TRANSCRIBE_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid TRANSCRIBE_TIMEOUT_SECONDS: %q", v)
		}
		cfg.TranscribeTimeout = time.Duration(n) * time.Second
	}

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}

	return cfg, nil
}

// RequireOpenAIKey enforces the transcription credential for commands that
// actually call the Whisper API.
func (c *Config) RequireOpenAIKey() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY must be set in environment or .env file")
	}
	return nil
}

// RemoteStorageConfigured reports whether the Supabase backend should be
// probed at startup.
func (c *Config) RemoteStorageConfigured() bool {
	return c.SupabaseDBURL != ""
}
