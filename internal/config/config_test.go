package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFrom_DefaultsAndWellKnownKeys(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("GOOGLE_MAPS_API_KEY", "m-key")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" || cfg.AI.Provider != "gemini" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.AI.Timeout != 30*time.Second || cfg.Rates.TTL != time.Hour {
		t.Errorf("durations = %v %v", cfg.AI.Timeout, cfg.Rates.TTL)
	}
	if cfg.AI.GeminiKey != "g-key" || cfg.Maps.APIKey != "m-key" {
		t.Errorf("keys = %q %q", cfg.AI.GeminiKey, cfg.Maps.APIKey)
	}
}

func TestLoadFrom_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte("http:\n  addr: \":9090\"\nai:\n  provider: openai\n  openai_key: file-key\n  timeout: 45s\nrates:\n  ttl: 10m\n")
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PLANNER_HTTP_ADDR", ":7070")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.HTTP.Addr != ":7070" {
		t.Errorf("env should override file, addr = %q", cfg.HTTP.Addr)
	}
	if cfg.AI.Provider != "openai" || cfg.AI.OpenAIKey != "file-key" {
		t.Errorf("ai = %+v", cfg.AI)
	}
	if cfg.AI.Timeout != 45*time.Second || cfg.Rates.TTL != 10*time.Minute {
		t.Errorf("durations = %v %v", cfg.AI.Timeout, cfg.Rates.TTL)
	}
}

func TestLoadFrom_MissingProviderKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PLANNER_AI_GEMINI_KEY", "")

	_, err := LoadFrom("")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}

	t.Setenv("PLANNER_AI_PROVIDER", "claude")
	t.Setenv("GEMINI_API_KEY", "x")
	if _, err := LoadFrom(""); err == nil {
		t.Error("unknown provider accepted")
	}
}
