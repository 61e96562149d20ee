// Package config loads runtime configuration from the environment. A
// .env file in the working directory is read first when present.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/FranksOps/marketscope/internal/storage"
)

// Storage backend selectors.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendJSON     = "json"
)

// LLM provider selectors.
const (
	LLMOpenAI    = "openai"
	LLMAnthropic = "anthropic"
)

// Config holds everything the service reads from the environment.
type Config struct {
	ServerPort  int
	MetricsPort int
	FrontendURL string

	SerpAPIKey string

	LLMProvider  string
	LLMModel     string
	OpenAIKey    string
	AnthropicKey string

	StorageBackend string
	PostgresDSN    string
	SQLitePath     string
	RedisURL       string
	JSONPath       string
	Retention      int

	VideoLimit      int
	TrendsTimeframe string
	TrendsGeo       string
	ProviderRPS     float64
}

// Load reads configuration from a .env file (if present) and the process
// environment. Every field has a default; Load fails only on unparseable
// values.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		FrontendURL:     os.Getenv("FRONTEND_URL"),
		SerpAPIKey:      os.Getenv("SERPAPI_KEY"),
		LLMProvider:     envString("LLM_PROVIDER", LLMOpenAI),
		LLMModel:        os.Getenv("LLM_MODEL"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:    os.Getenv("ANTHROPIC_API_KEY"),
		StorageBackend:  envString("STORAGE_BACKEND", BackendJSON),
		PostgresDSN:     os.Getenv("POSTGRES_DSN"),
		SQLitePath:      envString("SQLITE_PATH", "marketscope.db"),
		RedisURL:        os.Getenv("REDIS_URL"),
		JSONPath:        envString("JSON_PATH", "reports.ndjson"),
		TrendsTimeframe: envString("TRENDS_TIMEFRAME", "today 3-m"),
		TrendsGeo:       os.Getenv("TRENDS_GEO"),
	}

	var err error
	if cfg.ServerPort, err = envInt("SERVER_PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.MetricsPort, err = envInt("METRICS_PORT", 9090); err != nil {
		return nil, err
	}
	if cfg.Retention, err = envInt("REPORT_RETENTION", storage.DefaultRetention); err != nil {
		return nil, err
	}
	if cfg.VideoLimit, err = envInt("VIDEO_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.ProviderRPS, err = envFloat("PROVIDER_RPS", 1.0); err != nil {
		return nil, err
	}

	switch cfg.StorageBackend {
	case BackendPostgres, BackendSQLite, BackendRedis, BackendJSON:
	default:
		return nil, fmt.Errorf("config: unknown storage backend %q", cfg.StorageBackend)
	}
	switch cfg.LLMProvider {
	case LLMOpenAI, LLMAnthropic:
	default:
		return nil, fmt.Errorf("config: unknown llm provider %q", cfg.LLMProvider)
	}

	return cfg, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return f, nil
}
