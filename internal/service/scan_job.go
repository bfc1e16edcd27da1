package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/target/iris/internal/core"
	"github.com/target/iris/internal/domain/model"
	apperrors "github.com/target/iris/internal/errors"
	"github.com/target/iris/internal/observability/metrics"
	"github.com/target/iris/internal/observability/statsd"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxPageSize bounds page_size when no limit is configured.
const DefaultMaxPageSize = 500

// ScanJobServiceOptions groups dependencies for ScanJobService.
type ScanJobServiceOptions struct {
	Repo        core.ScanJobRepository // Required: scan job store
	Tenants     TenantDirectory        // Required: tenant name resolution
	Buckets     model.StatusBuckets    // Optional: defaults to model.DefaultStatusBuckets
	MaxPageSize int                    // Optional: defaults to DefaultMaxPageSize
	Metrics     statsd.Sink            // Optional
	Logger      *slog.Logger           // Optional
}

// ScanJobService answers paginated scan job listings and per-bucket counts.
type ScanJobService struct {
	repo        core.ScanJobRepository
	tenants     TenantDirectory
	buckets     model.StatusBuckets
	maxPageSize int
	metrics     statsd.Sink
	logger      *slog.Logger
}

// NewScanJobService constructs a ScanJobService.
func NewScanJobService(opts ScanJobServiceOptions) (*ScanJobService, error) {
	if opts.Repo == nil {
		return nil, errors.New("ScanJobRepository is required")
	}
	if opts.Tenants == nil {
		return nil, errors.New("TenantDirectory is required")
	}
	buckets := opts.Buckets
	if len(buckets) == 0 {
		buckets = model.DefaultStatusBuckets()
	}
	if err := buckets.Validate(); err != nil {
		return nil, fmt.Errorf("status buckets: %w", err)
	}
	maxPageSize := opts.MaxPageSize
	if maxPageSize <= 0 {
		maxPageSize = DefaultMaxPageSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ScanJobService{
		repo:        opts.Repo,
		tenants:     opts.Tenants,
		buckets:     buckets,
		maxPageSize: maxPageSize,
		metrics:     opts.Metrics,
		logger:      logger.With("component", "scan_job_service"),
	}, nil
}

// MustNewScanJobService constructs a ScanJobService and panics on error.
func MustNewScanJobService(opts ScanJobServiceOptions) *ScanJobService {
	svc, err := NewScanJobService(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create ScanJobService: %v", err))
	}
	return svc
}

// ListJobs returns one page of the latest scan jobs in a bucket for a tenant.
//
// Invalid pagination and tenant errors are returned. Store failures are logged and
// produce an empty envelope for the requested page instead.
func (s *ScanJobService) ListJobs(ctx context.Context, opts model.JobListOptions) (*model.JobPage, error) {
	if err := s.validate(opts); err != nil {
		return nil, err
	}

	start := time.Now()
	tenant, err := s.resolveTenant(ctx, opts.Tenant)
	if err != nil {
		return nil, err
	}
	empty := model.NewJobPage(nil, 0, opts.Page, opts.PageSize)
	if tenant == nil {
		s.emitQuery(opts.Bucket, metrics.ResultDegraded, 0, time.Since(start), errTenantUnavailable)
		return empty, nil
	}

	filter := s.filter(opts.Bucket, opts.Search, tenant.ID)
	var (
		items []*model.ScanJobRecord
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var ferr error
		items, ferr = s.repo.Find(gctx, core.ScanJobQuery{
			Database: tenant.Database,
			Filter:   filter,
			Offset:   model.Offset(opts.Page, opts.PageSize),
			Limit:    int64(opts.PageSize),
		})
		return ferr
	})
	g.Go(func() error {
		var cerr error
		total, cerr = s.repo.Count(gctx, tenant.Database, filter)
		return cerr
	})
	if err := g.Wait(); err != nil {
		s.logger.WarnContext(ctx, "scan job query failed; returning empty page",
			"bucket", opts.Bucket.String(),
			"tenant", opts.Tenant,
			"database", tenant.Database,
			"error", err,
		)
		s.emitQuery(opts.Bucket, metrics.ResultDegraded, 0, time.Since(start), err)
		return empty, nil
	}

	page := model.NewJobPage(items, total, opts.Page, opts.PageSize)
	s.emitQuery(opts.Bucket, metrics.ResultSuccess, len(page.Items), time.Since(start), nil)
	return page, nil
}

// Stats counts the latest scan jobs per bucket for a tenant, optionally narrowed by search.
// A failed count is logged and reported as zero.
func (s *ScanJobService) Stats(ctx context.Context, tenantName, search string) (*model.JobStats, error) {
	tenant, err := s.resolveTenant(ctx, tenantName)
	if err != nil {
		return nil, err
	}
	stats := &model.JobStats{}
	if tenant == nil {
		return stats, nil
	}

	buckets := append([]model.JobBucket{model.BucketAll}, model.NamedBuckets()...)
	counts := make([]int64, len(buckets))

	var g errgroup.Group
	for i, b := range buckets {
		g.Go(func() error {
			n, cerr := s.repo.Count(ctx, tenant.Database, s.filter(b, search, tenant.ID))
			if cerr != nil {
				s.logger.WarnContext(ctx, "scan job count failed",
					"bucket", b.String(), "tenant", tenantName, "error", cerr)
				return nil
			}
			counts[i] = n
			return nil
		})
	}
	_ = g.Wait()

	for i, b := range buckets {
		stats.Set(b, counts[i])
	}
	return stats, nil
}

// FailedJobs returns every latest failed job in a tenant partition.
func (s *ScanJobService) FailedJobs(ctx context.Context, tenant *model.Tenant) ([]*model.ScanJobRecord, error) {
	jobs, err := s.repo.Find(ctx, core.ScanJobQuery{
		Database: tenant.Database,
		Filter:   s.filter(model.BucketFailed, "", tenant.ID),
	})
	if err != nil {
		return nil, fmt.Errorf("find failed jobs for %s: %w", tenant.Name, err)
	}
	return jobs, nil
}

func (s *ScanJobService) validate(opts model.JobListOptions) error {
	if !opts.Bucket.Valid() {
		return apperrors.Validationf("unknown bucket %q", string(opts.Bucket)).WithField("bucket")
	}
	if opts.Page < 1 {
		return apperrors.Wrap(model.ErrInvalidPagination, apperrors.ErrCodeValidation, "page must be at least 1").
			WithField("page")
	}
	if opts.PageSize < 1 || opts.PageSize > s.maxPageSize {
		return apperrors.Wrapf(model.ErrInvalidPagination, apperrors.ErrCodeValidation,
			"page_size must be between 1 and %d", s.maxPageSize).WithField("page_size")
	}
	if !model.PageInRange(opts.Page, opts.PageSize) {
		return apperrors.Wrap(model.ErrInvalidPagination, apperrors.ErrCodeValidation, "page is too large").
			WithField("page")
	}
	return nil
}

var errTenantUnavailable = apperrors.Unavailable("tenant directory unavailable")

// resolveTenant returns tenant errors and swallows directory store failures as a nil tenant.
func (s *ScanJobService) resolveTenant(ctx context.Context, name string) (*model.Tenant, error) {
	tenant, err := s.tenants.Resolve(ctx, name)
	if err == nil {
		return tenant, nil
	}
	if errors.Is(err, model.ErrTenantRequired) || errors.Is(err, model.ErrTenantNotFound) {
		return nil, err
	}
	s.logger.WarnContext(ctx, "tenant resolution failed", "tenant", name, "error", err)
	return nil, nil
}

func (s *ScanJobService) filter(b model.JobBucket, search, tenantID string) model.JobFilter {
	statuses, _ := s.buckets.Statuses(b)
	return model.JobFilter{Statuses: statuses, Search: search, TenantID: tenantID}
}

func (s *ScanJobService) emitQuery(b model.JobBucket, result string, items int, d time.Duration, err error) {
	metrics.EmitQuery(s.metrics, metrics.QueryMetric{
		Bucket:   b.String(),
		Result:   result,
		Items:    items,
		Duration: d,
		Err:      err,
	})
}
