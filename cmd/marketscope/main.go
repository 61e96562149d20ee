package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/FranksOps/marketscope/internal/chat"
	"github.com/FranksOps/marketscope/internal/config"
	"github.com/FranksOps/marketscope/internal/handler"
	"github.com/FranksOps/marketscope/internal/metrics"
	"github.com/FranksOps/marketscope/internal/pipeline"
	"github.com/FranksOps/marketscope/internal/provider"
	"github.com/FranksOps/marketscope/internal/provider/gtrends"
	"github.com/FranksOps/marketscope/internal/provider/llm"
	"github.com/FranksOps/marketscope/internal/provider/serpapi"
	"github.com/FranksOps/marketscope/internal/provider/youtube"
	"github.com/FranksOps/marketscope/internal/storage"
	"github.com/FranksOps/marketscope/internal/storage/jsonbackend"
	"github.com/FranksOps/marketscope/internal/storage/postgres"
	"github.com/FranksOps/marketscope/internal/storage/redisbackend"
	"github.com/FranksOps/marketscope/internal/storage/sqlite"
	"github.com/FranksOps/marketscope/pkg/ratelimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("error opening storage: %v", err)
	}
	defer store.Close()

	limiter := ratelimit.NewLimiter(cfg.ProviderRPS, 0.2)
	defer limiter.Stop()

	search, trends, videos, err := buildProviders(cfg, limiter)
	if err != nil {
		log.Fatalf("error building providers: %v", err)
	}

	generator := buildGenerator(cfg)

	pipe := pipeline.New(pipeline.Config{
		Search:     search,
		Trends:     trends,
		Videos:     videos,
		Generator:  generator,
		Store:      store,
		VideoLimit: cfg.VideoLimit,
	})

	var completer chat.Completer
	if c, ok := generator.(chat.Completer); ok {
		completer = c
	}
	chatSvc := chat.New(store, completer, slog.Default())

	metricsSrv := metrics.Start(cfg.MetricsPort)
	defer metricsSrv.Stop(ctx)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	handler.NewAPIHandler(pipe, chatSvc, store).Register(r)

	go func() {
		if err := r.Run(fmt.Sprintf(":%d", cfg.ServerPort)); err != nil {
			log.Fatalf("error starting server: %v", err)
		}
	}()

	slog.Info("marketscope listening", "port", cfg.ServerPort, "storage", cfg.StorageBackend)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	slog.Info("shutting down")
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		return postgres.New(ctx, cfg.PostgresDSN, cfg.Retention)
	case config.BackendSQLite:
		return sqlite.New(cfg.SQLitePath, cfg.Retention)
	case config.BackendRedis:
		return redisbackend.New(ctx, cfg.RedisURL, cfg.Retention)
	default:
		return jsonbackend.New(cfg.JSONPath)
	}
}

func buildProviders(cfg *config.Config, limiter *ratelimit.Limiter) (provider.SearchProvider, provider.TrendsProvider, provider.VideoProvider, error) {
	var search provider.SearchProvider
	if cfg.SerpAPIKey != "" {
		s, err := serpapi.New(cfg.SerpAPIKey, serpapi.WithLimiter(limiter))
		if err != nil {
			return nil, nil, nil, err
		}
		search = s
	} else {
		slog.Warn("SERPAPI_KEY not set, search results disabled")
	}

	trends, err := gtrends.New(
		gtrends.WithTimeframe(cfg.TrendsTimeframe),
		gtrends.WithGeo(cfg.TrendsGeo),
		gtrends.WithLimiter(limiter),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	videos, err := youtube.New(youtube.WithLimiter(limiter))
	if err != nil {
		return nil, nil, nil, err
	}

	return search, trends, videos, nil
}

func buildGenerator(cfg *config.Config) provider.Generator {
	switch cfg.LLMProvider {
	case config.LLMAnthropic:
		if cfg.AnthropicKey == "" {
			slog.Warn("ANTHROPIC_API_KEY not set, narrative generation disabled")
			return nil
		}
		return llm.NewAnthropic(cfg.AnthropicKey, cfg.LLMModel)
	default:
		if cfg.OpenAIKey == "" {
			slog.Warn("OPENAI_API_KEY not set, narrative generation disabled")
			return nil
		}
		return llm.NewOpenAI(cfg.OpenAIKey, cfg.LLMModel)
	}
}
