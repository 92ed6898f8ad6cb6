package app

import (
	"context"
	"fmt"

	"github.com/creatorcoach/creator-coach-go/internal/api"
	"github.com/creatorcoach/creator-coach-go/internal/config"
	"github.com/creatorcoach/creator-coach-go/internal/prompt"
	"github.com/creatorcoach/creator-coach-go/internal/service"
	"github.com/creatorcoach/creator-coach-go/internal/service/ai"
	"github.com/creatorcoach/creator-coach-go/internal/service/cache"
	"github.com/creatorcoach/creator-coach-go/internal/service/database"
	"go.uber.org/zap"
)

// Container bundles assembled services for constructing the HTTP router.
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	Router *api.Router

	closers []func()
}

// Close releases infrastructure connections in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles all infrastructure services and the request router. All
// heavy-weight initialization (cache/DB/AI clients) happens here so the
// handlers stay focused on pipeline orchestration.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Optional trending batch cache
	var cacheSvc *cache.CacheService
	if cfg.Redis.EnableCache {
		cacheSvc, err = cache.NewCacheService(cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache service: %w", err)
		}
		closers = append(closers, func() {
			_ = cacheSvc.Close()
		})
	}

	// Optional trend snapshot store
	var snapshots *database.SnapshotRepository
	if cfg.Postgres.EnableSnapshots {
		postgresSvc, pgErr := database.NewPostgresService(database.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
			SSLMode:  cfg.Postgres.SSLMode,
		}, logger)
		if pgErr != nil {
			return nil, fmt.Errorf("failed to create postgres service: %w", pgErr)
		}
		closers = append(closers, func() {
			_ = postgresSvc.Close()
		})

		snapshots, err = database.NewSnapshotRepository(postgresSvc, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare snapshot repository: %w", err)
		}
		logger.Info("Trend snapshots enabled")
	}

	trendingSvc, err := service.NewTrendingService(cfg.YouTube.APIKey, cfg.YouTube.MaxResults, cacheSvc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create trending service: %w", err)
	}

	modelManager, err := ai.NewModelManager(ctx, ai.ModelManagerConfig{
		GeminiAPIKey:       cfg.Gemini.APIKey,
		OpenAIAPIKey:       cfg.OpenAI.APIKey,
		DefaultGeminiModel: cfg.Gemini.Model,
		DefaultOpenAIModel: cfg.OpenAI.Model,
		EnableFallback:     cfg.OpenAI.EnableFallback,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create model manager: %w", err)
	}

	aggregator := service.NewAggregator(cfg.Trends.TopKeywords)
	composer := service.NewComposer(modelManager, prompt.NewHeuristicIdeaParser(), logger)

	router := api.NewRouter(api.RouterConfig{
		Fetcher:      trendingSvc,
		Aggregator:   aggregator,
		Composer:     composer,
		Snapshots:    snapshots,
		Logger:       logger,
		SampleTitles: cfg.Trends.SampleTitles,
	})

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Router:  router,
		closers: closers,
	}, nil
}
