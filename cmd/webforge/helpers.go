package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"webforge/internal/config"
	"webforge/internal/discover"
	"webforge/internal/llm"
	"webforge/internal/store"
)

// buildClient constructs the LLM provider chain from config. A single HTTP
// provider today; the chain keeps the call sites stable when a second
// provider is added.
func buildClient(cfg *config.Config) llm.Client {
	primary := llm.NewHTTPClient(cfg.LLM.BaseURL, cfg.LLM.APIKey(), cfg.LLM.Model)
	return llm.NewChain(primary)
}

// openStore opens the snapshot DB at the configured path.
func openStore(cfg *config.Config) (store.Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = store.DefaultDBPath
	}
	return store.Open(path)
}

// writeJSON marshals v indented and writes it to path, creating parent dirs.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// readJSONFile unmarshals a JSON file into v. A missing path is an error;
// callers gate on the flag being set.
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// loadPage reads a previously saved page structure file.
func loadPage(path string) (*discover.PageInfo, error) {
	var page discover.PageInfo
	if err := readJSONFile(path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// loadEndpoints reads a previously saved endpoint list file.
func loadEndpoints(path string) ([]discover.Endpoint, error) {
	var eps []discover.Endpoint
	if err := readJSONFile(path, &eps); err != nil {
		return nil, err
	}
	return eps, nil
}
