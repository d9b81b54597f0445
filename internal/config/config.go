// Package config loads the per-project webforge configuration file
// (YAML or JSON).
package config

import (
	"errors"
	"fmt"
	"os"

	"webforge/internal/edgecase"
	"webforge/internal/store"
)

// LLM holds the chat-completions provider settings. The API key is never
// stored in the file; APIKeyEnv names the environment variable that holds it.
type LLM struct {
	BaseURL   string `json:"baseUrl" yaml:"baseUrl"`
	Model     string `json:"model" yaml:"model"`
	APIKeyEnv string `json:"apiKeyEnv" yaml:"apiKeyEnv"`
}

// APIKey resolves the key from the configured environment variable.
// Empty when unset; the http client then sends no Authorization header.
func (l LLM) APIKey() string {
	if l.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(l.APIKeyEnv)
}

// Config is the full project configuration.
type Config struct {
	AppURL       string          `json:"appUrl" yaml:"appUrl"`
	UserJourneys []string        `json:"userJourneys" yaml:"userJourneys"`
	MaxTestCases int             `json:"maxTestCases" yaml:"maxTestCases"`
	EdgeCases    edgecase.Config `json:"edgeCases" yaml:"edgeCases"`
	LLM          LLM             `json:"llm" yaml:"llm"`
	DBPath       string          `json:"dbPath" yaml:"dbPath"`
	LogLevel     string          `json:"logLevel" yaml:"logLevel"`
	LogFormat    string          `json:"logFormat" yaml:"logFormat"`
}

// Default returns a config with every optional field at its default.
// AppURL stays empty; callers require it via Validate. MaxTestCases stays
// zero so each suite keeps its own cap (25 GUI, 30 API); a nonzero value
// overrides both.
func Default() Config {
	return Config{
		EdgeCases: edgecase.DefaultConfig(),
		LLM: LLM{
			BaseURL:   "http://localhost:11434/v1",
			Model:     "llama3.1",
			APIKeyEnv: "WEBFORGE_API_KEY",
		},
		DBPath:    store.DefaultDBPath,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Validate checks the fields a run cannot proceed without.
func (c *Config) Validate() error {
	if c.AppURL == "" {
		return errors.New("appUrl is required")
	}
	if c.LLM.BaseURL == "" {
		return errors.New("llm.baseUrl is required")
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model is required")
	}
	if c.MaxTestCases < 0 {
		return fmt.Errorf("maxTestCases must not be negative, got %d", c.MaxTestCases)
	}
	return nil
}
