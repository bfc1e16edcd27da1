// Package core declares the ports between the service layer and its adapters.
package core

import (
	"context"
	"time"

	"github.com/target/iris/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// Services depend on these interfaces; internal/data and internal/adapters implement them.

// ScanJobQuery selects a window of scan jobs from one tenant partition.
type ScanJobQuery struct {
	Database string          // Partition (tenant database) to read from
	Filter   model.JobFilter // Predicate shared with Count
	Offset   int64
	Limit    int64 // 0 means no limit
}

// ScanJobRepository reads scan job documents from a tenant partition.
// Find returns records ordered by created_at descending; Count uses the same predicate.
type ScanJobRepository interface {
	Find(ctx context.Context, q ScanJobQuery) ([]*model.ScanJobRecord, error)
	Count(ctx context.Context, database string, filter model.JobFilter) (int64, error)
}

// TenantRepository reads the tenant directory.
type TenantRepository interface {
	// FindByName returns model.ErrTenantNotFound (wrapped) when no entry matches.
	FindByName(ctx context.Context, name string) (*model.Tenant, error)
	List(ctx context.Context) ([]*model.Tenant, error)
}

// CacheRepository defines the caching operations used for tenant resolution.
type CacheRepository interface {
	// Set stores a value with the given TTL. A TTL of 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns nil, nil when the key does not exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete reports whether the key existed.
	Delete(ctx context.Context, key string) (bool, error)
}

// RestartTrigger performs the outbound restart call for a single scan job.
// A nil error means the downstream accepted the restart.
type RestartTrigger interface {
	Trigger(ctx context.Context, target model.RestartTarget) error
}
