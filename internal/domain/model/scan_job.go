// Package model defines the core data types shared across the iris scan job monitor.
package model

import (
	"fmt"
	"strings"
	"time"
)

// JobBucket is a coarse status grouping used for top-level filtering.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type JobBucket string

// JobStatus is the raw status value stored on a scan job document.
type JobStatus string

const (
	// BucketAll applies no status restriction.
	BucketAll JobBucket = ""
	// BucketFailed groups failed scan jobs.
	BucketFailed JobBucket = "failed"
	// BucketCompleted groups completed scan jobs.
	BucketCompleted JobBucket = "completed"
	// BucketRunning groups running scan jobs.
	BucketRunning JobBucket = "running"

	// JobStatusFailed indicates a scan job has failed.
	JobStatusFailed JobStatus = "failed"
	// JobStatusCompleted indicates a scan job finished successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusRunning indicates a scan job is still in progress.
	JobStatusRunning JobStatus = "running"
	// JobStatusSuccess is the legacy alias of JobStatusCompleted.
	JobStatusSuccess JobStatus = "success"
	// JobStatusInProgress is the legacy alias of JobStatusRunning.
	JobStatusInProgress JobStatus = "in_progress"
	// JobStatusUnknown is reported when a stored document carries no status.
	JobStatusUnknown JobStatus = "unknown"
)

// Valid returns true for the named buckets. BucketAll is valid as well.
func (b JobBucket) Valid() bool {
	switch b {
	case BucketAll, BucketFailed, BucketCompleted, BucketRunning:
		return true
	default:
		return false
	}
}

// String returns the bucket name, "all" for BucketAll.
func (b JobBucket) String() string {
	if b == BucketAll {
		return "all"
	}
	return string(b)
}

// UnmarshalText implements encoding.TextUnmarshaler so buckets can be parsed from env and query values.
func (b *JobBucket) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	if v == "all" {
		v = ""
	}
	jb := JobBucket(v)
	if !jb.Valid() {
		return fmt.Errorf("invalid JobBucket: %q", v)
	}
	*b = jb
	return nil
}

// NamedBuckets lists the buckets that restrict status, in display order.
func NamedBuckets() []JobBucket {
	return []JobBucket{BucketFailed, BucketCompleted, BucketRunning}
}

// ScanJobRecord is the read-only projection of a stored scan job document.
// Duration is derived from CreatedAt and CompletedAt and is never read from storage.
type ScanJobRecord struct {
	ID                 string     `json:"id"`
	TenantID           string     `json:"tenant_id"`
	Domain             string     `json:"domain"`
	Status             JobStatus  `json:"status"`
	IsLatest           bool       `json:"is_latest"`
	CreatedAt          *time.Time `json:"created_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	Duration           *int64     `json:"duration"`
	ErrorMessage       *string    `json:"error_message"`
	DocumentsProcessed *int64     `json:"documents_processed"`
}

// ElapsedSeconds returns whole seconds between created and completed, truncated toward zero.
// It reports false when either timestamp is nil.
func ElapsedSeconds(created, completed *time.Time) (int64, bool) {
	if created == nil || completed == nil {
		return 0, false
	}
	return int64(completed.Sub(*created) / time.Second), true
}
