package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/target/iris/internal/core"
	"github.com/target/iris/internal/domain/model"
	"github.com/target/iris/internal/observability/metrics"
	"github.com/target/iris/internal/observability/statsd"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRestartTimeout = 10 * time.Second

	msgRestartInitiated = "Job restart initiated successfully"
	msgRestartFailed    = "Failed to restart job"
	msgNoFailedJobs     = "No failed jobs to restart"
)

// FailedJobFinder lists the latest failed jobs of a tenant partition.
type FailedJobFinder interface {
	FailedJobs(ctx context.Context, tenant *model.Tenant) ([]*model.ScanJobRecord, error)
}

// RestartServiceOptions groups dependencies for RestartService.
type RestartServiceOptions struct {
	Trigger core.RestartTrigger // Required: outbound restart call
	Jobs    FailedJobFinder     // Required: failed job lookup for bulk restarts
	Tenants TenantDirectory     // Required: tenant resolution for bulk restarts
	Timeout time.Duration       // Optional: bound on each outbound call, defaults to 10s
	Metrics statsd.Sink         // Optional
	Logger  *slog.Logger        // Optional
}

// RestartService issues restart calls for single jobs and for every failed job.
// Outbound calls are detached from caller cancellation and bounded by Timeout.
type RestartService struct {
	trigger core.RestartTrigger
	jobs    FailedJobFinder
	tenants TenantDirectory
	timeout time.Duration
	metrics statsd.Sink
	logger  *slog.Logger
}

// NewRestartService constructs a RestartService.
func NewRestartService(opts RestartServiceOptions) (*RestartService, error) {
	if opts.Trigger == nil {
		return nil, errors.New("RestartTrigger is required")
	}
	if opts.Jobs == nil {
		return nil, errors.New("FailedJobFinder is required")
	}
	if opts.Tenants == nil {
		return nil, errors.New("TenantDirectory is required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultRestartTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RestartService{
		trigger: opts.Trigger,
		jobs:    opts.Jobs,
		tenants: opts.Tenants,
		timeout: timeout,
		metrics: opts.Metrics,
		logger:  logger.With("component", "restart_service"),
	}, nil
}

// MustNewRestartService constructs a RestartService and panics on error.
func MustNewRestartService(opts RestartServiceOptions) *RestartService {
	svc, err := NewRestartService(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create RestartService: %v", err))
	}
	return svc
}

// RestartJob triggers a restart for one job id and reports whether the downstream accepted it.
// Failures are logged and never returned.
func (s *RestartService) RestartJob(ctx context.Context, id string) bool {
	start := time.Now()
	err := s.triggerOne(ctx, model.RestartTarget{ID: id})
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}
	metrics.EmitRestart(s.metrics, metrics.RestartMetric{
		Scope:    metrics.ScopeSingle,
		Result:   result,
		Duration: time.Since(start),
		Err:      err,
	})
	return err == nil
}

// RestartJobResult wraps RestartJob in the response shape shared with bulk restarts.
func (s *RestartService) RestartJobResult(ctx context.Context, id string) *model.RestartResult {
	if s.RestartJob(ctx, id) {
		return &model.RestartResult{Success: true, Message: msgRestartInitiated, RestartedJobs: 1}
	}
	return &model.RestartResult{Success: false, Message: msgRestartFailed, RestartedJobs: 0}
}

// RestartAllFailed restarts every latest failed job, concurrently, and waits for all calls.
// With a tenant name only that tenant is covered; otherwise every tenant in the directory.
// Tenant errors are returned; store failures shrink the candidate set and are logged.
func (s *RestartService) RestartAllFailed(ctx context.Context, tenantName string) (*model.RestartResult, error) {
	start := time.Now()
	targets, err := s.failedTargets(ctx, tenantName)
	if err != nil {
		return nil, err
	}

	if len(targets) == 0 {
		metrics.EmitRestart(s.metrics, metrics.RestartMetric{Scope: metrics.ScopeBulk, Result: metrics.ResultNoop})
		return &model.RestartResult{Success: true, Message: msgNoFailedJobs, RestartedJobs: 0}, nil
	}

	var succeeded atomic.Int64
	var g errgroup.Group
	for _, t := range targets {
		g.Go(func() error {
			if s.triggerOne(ctx, t) == nil {
				succeeded.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	n := int(succeeded.Load())
	s.logger.InfoContext(ctx, "bulk restart finished",
		"tenant", tenantName, "attempted", len(targets), "succeeded", n)

	result := metrics.ResultSuccess
	if n == 0 {
		result = metrics.ResultError
	}
	metrics.EmitRestart(s.metrics, metrics.RestartMetric{
		Scope:     metrics.ScopeBulk,
		Result:    result,
		Attempted: len(targets),
		Succeeded: n,
		Duration:  time.Since(start),
	})

	return &model.RestartResult{
		Success:       n > 0,
		Message:       fmt.Sprintf("Successfully restarted %d out of %d jobs", n, len(targets)),
		RestartedJobs: n,
	}, nil
}

func (s *RestartService) failedTargets(ctx context.Context, tenantName string) ([]model.RestartTarget, error) {
	var tenants []*model.Tenant
	if tenantName != "" {
		t, err := s.tenants.Resolve(ctx, tenantName)
		switch {
		case errors.Is(err, model.ErrTenantNotFound):
			return nil, err
		case err != nil:
			s.logger.WarnContext(ctx, "tenant resolution failed", "tenant", tenantName, "error", err)
			return nil, nil
		}
		tenants = []*model.Tenant{t}
	} else {
		all, err := s.tenants.List(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "list tenants failed", "error", err)
			return nil, nil
		}
		tenants = all
	}

	var targets []model.RestartTarget
	for _, t := range tenants {
		if t == nil || t.Database == "" {
			continue
		}
		jobs, err := s.jobs.FailedJobs(ctx, t)
		if err != nil {
			s.logger.WarnContext(ctx, "failed job lookup failed", "tenant", t.Name, "error", err)
			continue
		}
		for _, j := range jobs {
			targets = append(targets, model.RestartTarget{ID: j.ID, TenantID: j.TenantID, Domain: j.Domain})
		}
	}
	return targets, nil
}

// triggerOne performs one outbound call detached from caller cancellation.
func (s *RestartService) triggerOne(ctx context.Context, target model.RestartTarget) error {
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.trigger.Trigger(callCtx, target); err != nil {
		s.logger.WarnContext(ctx, "restart trigger failed",
			"job_id", target.ID, "tenant_id", target.TenantID, "error", err)
		return err
	}
	s.logger.DebugContext(ctx, "restart triggered", "job_id", target.ID)
	return nil
}
