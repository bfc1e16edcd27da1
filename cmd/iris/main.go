package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/target/iris/config"
	"github.com/target/iris/internal/bootstrap"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logger = bootstrap.SetLogLevel(cfg.LogLevel)

	logStartupInfo(ctx, logger, &cfg)

	mongoClient, redisClient, err := initInfrastructure(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := mongoClient.Disconnect(context.WithoutCancel(ctx)); cerr != nil {
			logger.ErrorContext(ctx, "disconnect mongo failed", "error", cerr)
		}
	}()
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		Mongo:       mongoClient,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("build services: %w", err)
	}
	defer func() {
		if cerr := services.Observability.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close metrics client failed", "error", cerr)
		}
	}()

	return bootstrap.RunWithShutdown(ctx, &bootstrap.RunConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting iris service",
		"http_addr", cfg.HTTP.Addr,
		"tenant_database", cfg.Mongo.TenantDatabase,
		"jobs_collection", cfg.Mongo.JobsCollection,
		"redis_enabled", cfg.Redis.Enabled,
		"metrics_enabled", cfg.Observability.Metrics.IsEnabled(),
	)
}

// initInfrastructure connects the stores used by the service runtime.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func initInfrastructure(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (*mongo.Client, redis.UniversalClient, error) {
	dbCfg := bootstrap.DatabaseConfig{
		MongoConfig: cfg.Mongo,
		RedisConfig: cfg.Redis,
		Logger:      logger,
	}

	mongoClient, err := bootstrap.ConnectMongo(ctx, dbCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	redisClient, err := bootstrap.ConnectRedis(ctx, dbCfg)
	if err != nil {
		if cerr := mongoClient.Disconnect(ctx); cerr != nil {
			logger.ErrorContext(ctx, "disconnect mongo after redis connect failure", "error", cerr)
			return nil, nil, fmt.Errorf("connect redis: %w", errors.Join(err, fmt.Errorf("disconnect mongo: %w", cerr)))
		}
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	return mongoClient, redisClient, nil
}
