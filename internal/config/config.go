package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LLMCfg configures the optional chat-model pre-extraction pass.
type LLMCfg struct {
	Enabled   bool   // LLM_ENABLED=true runs the model before the pipeline
	BaseURL   string // LLM_BASE_URL, OpenAI-compatible; empty uses the client default
	APIKey    string // LLM_API_KEY
	Model     string // LLM_MODEL=gpt-35-turbo
	MaxTokens int    // LLM_MAX_TOKENS=1000
	ChunkSize int    // LLM_CHUNK_SIZE=4000 characters per request
}

// XCfg holds the poster's OAuth1 credentials.
type XCfg struct {
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
}

// Missing returns the names of unset credentials.
func (x XCfg) Missing() []string {
	var out []string
	for _, kv := range []struct{ k, v string }{
		{"X_CONSUMER_KEY", x.ConsumerKey},
		{"X_CONSUMER_SECRET", x.ConsumerSecret},
		{"X_ACCESS_TOKEN", x.AccessToken},
		{"X_ACCESS_SECRET", x.AccessSecret},
	} {
		if kv.v == "" {
			out = append(out, kv.k)
		}
	}
	return out
}

// Cfg holds all runtime configuration loaded from environment variables.
type Cfg struct {
	DBPath  string // QASIDA_DB=./qasida.sqlite
	Workers int    // QASIDA_WORKERS=0 (sequential)
	Preview int    // QASIDA_PREVIEW=5
	DryRun  bool   // DRY_RUN=1 prints instead of posting

	LLM LLMCfg
	X   XCfg
}

// Load reads .env (if present) then environment variables and returns Cfg.
func Load() (*Cfg, error) {
	// Best-effort: load .env from current directory
	_ = godotenv.Load()

	workers, err := intEnv("QASIDA_WORKERS", 0)
	if err != nil {
		return nil, err
	}
	preview, err := intEnv("QASIDA_PREVIEW", 5)
	if err != nil {
		return nil, err
	}
	maxTokens, err := intEnv("LLM_MAX_TOKENS", 1000)
	if err != nil {
		return nil, err
	}
	chunkSize, err := intEnv("LLM_CHUNK_SIZE", 4000)
	if err != nil {
		return nil, err
	}
	if chunkSize <= 0 {
		return nil, fmt.Errorf("config: LLM_CHUNK_SIZE must be positive, got %d", chunkSize)
	}

	cfg := &Cfg{
		DBPath:  envOr("QASIDA_DB", "./qasida.sqlite"),
		Workers: workers,
		Preview: preview,
		DryRun:  boolEnv("DRY_RUN"),
		LLM: LLMCfg{
			Enabled:   boolEnv("LLM_ENABLED"),
			BaseURL:   strings.TrimRight(strings.TrimSpace(os.Getenv("LLM_BASE_URL")), "/"),
			APIKey:    strings.TrimSpace(os.Getenv("LLM_API_KEY")),
			Model:     envOr("LLM_MODEL", "gpt-35-turbo"),
			MaxTokens: maxTokens,
			ChunkSize: chunkSize,
		},
		X: XCfg{
			ConsumerKey:    strings.TrimSpace(os.Getenv("X_CONSUMER_KEY")),
			ConsumerSecret: strings.TrimSpace(os.Getenv("X_CONSUMER_SECRET")),
			AccessToken:    strings.TrimSpace(os.Getenv("X_ACCESS_TOKEN")),
			AccessSecret:   strings.TrimSpace(os.Getenv("X_ACCESS_SECRET")),
		},
	}
	if cfg.LLM.Enabled && cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("config: LLM_ENABLED is set but LLM_API_KEY is empty")
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func boolEnv(key string) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	return raw == "1" || strings.EqualFold(raw, "true")
}

func intEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}
