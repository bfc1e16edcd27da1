package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/target/iris/config"
	"github.com/target/iris/internal/adapters/restarttrigger"
	"github.com/target/iris/internal/core"
	"github.com/target/iris/internal/data"
	"github.com/target/iris/internal/observability/statsd"
	"github.com/target/iris/internal/service"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServiceDeps contains the connected infrastructure that services are built on.
type ServiceDeps struct {
	Config      *config.AppConfig
	Mongo       *mongo.Client
	RedisClient redis.UniversalClient // Optional: enables the tenant cache
	Logger      *slog.Logger
}

// ObservabilityContainer holds shared observability dependencies.
type ObservabilityContainer struct {
	// MetricsSink is nil when metrics are disabled.
	MetricsSink   statsd.Sink
	metricsClient *statsd.Client
}

// Close flushes and releases the metrics client if one was created.
func (o ObservabilityContainer) Close() error {
	if o.metricsClient == nil {
		return nil
	}
	return o.metricsClient.Close()
}

// ServiceContainer holds all constructed services.
type ServiceContainer struct {
	ScanJobs      *service.ScanJobService
	Tenants       *service.TenantService
	Restarts      *service.RestartService
	Observability ObservabilityContainer
}

type serviceRepositories struct {
	ScanJobs core.ScanJobRepository
	Tenants  core.TenantRepository
	Cache    core.CacheRepository
}

// NewServices builds repositories, adapters and services from connected infrastructure.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	if deps.Mongo == nil {
		return ServiceContainer{}, errors.New("mongo client is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	repos, err := buildRepositories(deps, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	buckets, err := cfg.Jobs.StatusBuckets()
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("status buckets: %w", err)
	}

	trigger, err := restarttrigger.NewClient(restarttrigger.Config{
		URL:           cfg.Restart.URL,
		Timeout:       cfg.Restart.Timeout,
		SuccessStatus: cfg.Restart.SuccessStatus,
		BodyExpr:      cfg.Restart.BodyExpr,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("restart trigger: %w", err)
	}

	obs := buildObservability(logger, cfg.Observability)

	tenants := service.MustNewTenantService(service.TenantServiceOptions{
		Repo:     repos.Tenants,
		Cache:    repos.Cache,
		CacheTTL: cfg.Cache.TenantTTL,
		Metrics:  obs.MetricsSink,
		Logger:   logger,
	})
	scanJobs := service.MustNewScanJobService(service.ScanJobServiceOptions{
		Repo:        repos.ScanJobs,
		Tenants:     tenants,
		Buckets:     buckets,
		MaxPageSize: cfg.Jobs.PageSizeMax,
		Metrics:     obs.MetricsSink,
		Logger:      logger,
	})
	restarts := service.MustNewRestartService(service.RestartServiceOptions{
		Trigger: trigger,
		Jobs:    scanJobs,
		Tenants: tenants,
		Timeout: cfg.Restart.Timeout,
		Metrics: obs.MetricsSink,
		Logger:  logger,
	})

	return ServiceContainer{
		ScanJobs:      scanJobs,
		Tenants:       tenants,
		Restarts:      restarts,
		Observability: obs,
	}, nil
}

func buildRepositories(deps *ServiceDeps, logger *slog.Logger) (*serviceRepositories, error) {
	mcfg := deps.Config.Mongo

	scanJobs, err := data.NewScanJobRepo(data.ScanJobRepoOptions{
		Client:       deps.Mongo,
		Collection:   mcfg.JobsCollection,
		QueryTimeout: mcfg.QueryTimeout,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("scan job repo: %w", err)
	}

	tenants, err := data.NewTenantRepo(data.TenantRepoOptions{
		Client:       deps.Mongo,
		Database:     mcfg.TenantDatabase,
		Collection:   mcfg.TenantCollection,
		QueryTimeout: mcfg.QueryTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("tenant repo: %w", err)
	}

	repos := &serviceRepositories{ScanJobs: scanJobs, Tenants: tenants}
	if deps.RedisClient != nil {
		repos.Cache = data.NewRedisCacheRepo(deps.RedisClient, deps.Config.Redis.KeyPrefix)
	}
	return repos, nil
}

func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	if !cfg.Metrics.IsEnabled() {
		return ObservabilityContainer{}
	}

	obsLogger := logger.With("component", "observability")
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.Metrics.StatsdAddress,
		Prefix:  cfg.Metrics.Prefix,
		Logger:  obsLogger,
	})
	if err != nil {
		obsLogger.Error("failed to initialise statsd client", "error", err)
		return ObservabilityContainer{}
	}

	obsLogger.Info("statsd metrics enabled", "address", cfg.Metrics.StatsdAddress, "prefix", cfg.Metrics.Prefix)
	return ObservabilityContainer{MetricsSink: client, metricsClient: client}
}
