package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/target/iris/internal/core"
	"github.com/target/iris/internal/domain/model"
	apperrors "github.com/target/iris/internal/errors"
	"github.com/target/iris/internal/observability/metrics"
	"github.com/target/iris/internal/observability/statsd"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTenantCacheTTL = time.Minute
	tenantCacheKeyPrefix  = "tenant:"
)

// TenantDirectory resolves tenant display names to their storage partitions.
type TenantDirectory interface {
	Resolve(ctx context.Context, name string) (*model.Tenant, error)
	List(ctx context.Context) ([]*model.Tenant, error)
}

// TenantServiceOptions groups dependencies for TenantService.
type TenantServiceOptions struct {
	Repo     core.TenantRepository // Required: tenant directory
	Cache    core.CacheRepository  // Optional: caches positive lookups
	CacheTTL time.Duration         // Optional: defaults to one minute
	Metrics  statsd.Sink           // Optional
	Logger   *slog.Logger          // Optional
}

// TenantService resolves tenants through an optional cache.
// Concurrent lookups for the same name share one directory read.
type TenantService struct {
	repo     core.TenantRepository
	cache    core.CacheRepository
	cacheTTL time.Duration
	group    singleflight.Group
	metrics  statsd.Sink
	logger   *slog.Logger
}

var _ TenantDirectory = (*TenantService)(nil)

// NewTenantService constructs a TenantService.
func NewTenantService(opts TenantServiceOptions) (*TenantService, error) {
	if opts.Repo == nil {
		return nil, errors.New("TenantRepository is required")
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultTenantCacheTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TenantService{
		repo:     opts.Repo,
		cache:    opts.Cache,
		cacheTTL: ttl,
		metrics:  opts.Metrics,
		logger:   logger.With("component", "tenant_service"),
	}, nil
}

// MustNewTenantService constructs a TenantService and panics on error.
func MustNewTenantService(opts TenantServiceOptions) *TenantService {
	svc, err := NewTenantService(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create TenantService: %v", err))
	}
	return svc
}

// Resolve returns the directory entry for a tenant name.
// An empty name yields model.ErrTenantRequired and an unknown one model.ErrTenantNotFound.
func (s *TenantService) Resolve(ctx context.Context, name string) (*model.Tenant, error) {
	if name == "" {
		return nil, apperrors.Wrap(model.ErrTenantRequired, apperrors.ErrCodeValidation, "tenant is required").
			WithField("tenant")
	}

	if t, ok := s.cached(ctx, name); ok {
		return t, nil
	}

	// The shared lookup outlives any single caller; the repository applies its own timeout.
	lookupCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(name, func() (any, error) {
		return s.repo.FindByName(lookupCtx, name)
	})
	if err != nil {
		return nil, err
	}
	tenant, _ := v.(*model.Tenant)
	if tenant == nil {
		return nil, apperrors.Wrapf(model.ErrTenantNotFound, apperrors.ErrCodeNotFound, "tenant %q", name)
	}

	s.store(ctx, name, tenant)
	cp := *tenant
	return &cp, nil
}

// List returns every tenant in the directory.
func (s *TenantService) List(ctx context.Context) ([]*model.Tenant, error) {
	tenants, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, nil
}

// ListTenantNames returns the distinct tenant names in sorted order.
// Directory failures are logged and yield an empty list.
func (s *TenantService) ListTenantNames(ctx context.Context) []string {
	tenants, err := s.repo.List(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "list tenants failed", "error", err)
		return []string{}
	}

	names := make([]string, 0, len(tenants))
	for _, t := range tenants {
		if t != nil && t.Name != "" {
			names = append(names, t.Name)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func (s *TenantService) cached(ctx context.Context, name string) (*model.Tenant, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, tenantCacheKeyPrefix+name)
	if err != nil {
		s.logger.WarnContext(ctx, "tenant cache read failed", "tenant", name, "error", err)
		return nil, false
	}
	if raw == nil {
		metrics.EmitTenantCache(s.metrics, false)
		return nil, false
	}
	var t model.Tenant
	if err := json.Unmarshal(raw, &t); err != nil || t.Database == "" {
		s.logger.WarnContext(ctx, "evicting corrupt tenant cache entry", "tenant", name, "error", err)
		if _, delErr := s.cache.Delete(ctx, tenantCacheKeyPrefix+name); delErr != nil {
			s.logger.WarnContext(ctx, "tenant cache evict failed", "tenant", name, "error", delErr)
		}
		return nil, false
	}
	metrics.EmitTenantCache(s.metrics, true)
	return &t, true
}

func (s *TenantService) store(ctx context.Context, name string, t *model.Tenant) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, tenantCacheKeyPrefix+name, raw, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "tenant cache write failed", "tenant", name, "error", err)
	}
}
