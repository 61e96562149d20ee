package config

import (
	"testing"

	"github.com/FranksOps/marketscope/internal/storage"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("expected default server port 8080, got %d", cfg.ServerPort)
	}
	if cfg.StorageBackend != BackendJSON {
		t.Errorf("expected default json backend, got %q", cfg.StorageBackend)
	}
	if cfg.Retention != storage.DefaultRetention {
		t.Errorf("expected default retention, got %d", cfg.Retention)
	}
	if cfg.LLMProvider != LLMOpenAI {
		t.Errorf("expected default llm provider, got %q", cfg.LLMProvider)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("REPORT_RETENTION", "7")
	t.Setenv("PROVIDER_RPS", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != 9999 || cfg.StorageBackend != BackendSQLite ||
		cfg.LLMProvider != LLMAnthropic || cfg.Retention != 7 || cfg.ProviderRPS != 0.5 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadInvalidBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "cassandra")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoadInvalidInt(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparseable port")
	}
}
