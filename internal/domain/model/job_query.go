package model

import (
	"errors"
	"math"
)

var (
	// ErrTenantRequired is returned when a tenant-scoped operation is called without a tenant.
	ErrTenantRequired = errors.New("tenant is required")
	// ErrTenantNotFound is returned when the tenant name has no directory entry.
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrInvalidPagination is returned for page or page_size values below 1 or above the limit.
	ErrInvalidPagination = errors.New("invalid pagination")
)

// JobListOptions groups parameters for listing scan jobs.
type JobListOptions struct {
	Bucket   JobBucket // BucketAll applies no status restriction
	Search   string    // Case-insensitive substring over domain, tenant_id and error_message
	Tenant   string    // Tenant display name, resolved through the tenant directory
	Page     int       // 1-based page number, echoed back unclamped
	PageSize int       // Items per page
}

// JobFilter is the tenant-resolved predicate shared by the page fetch and the count.
type JobFilter struct {
	Statuses []JobStatus // Empty means any status
	Search   string
	TenantID string // Directory id of the tenant; empty means no tenant restriction
}

// JobPage is the page envelope returned by listing calls.
type JobPage struct {
	Total    int64            `json:"total"`
	Items    []*ScanJobRecord `json:"items"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Pages    int64            `json:"pages"`
}

// NewJobPage builds an envelope whose page count always agrees with total and pageSize.
func NewJobPage(items []*ScanJobRecord, total int64, page, pageSize int) *JobPage {
	if items == nil {
		items = []*ScanJobRecord{}
	}
	return &JobPage{
		Total:    max(total, 0),
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Pages:    PageCount(total, pageSize),
	}
}

// PageCount returns ceil(total/pageSize). It never goes negative.
func PageCount(total int64, pageSize int) int64 {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	size := int64(pageSize)
	return (total + size - 1) / size
}

// PageInRange reports whether the skip for a 1-based page fits in an int64.
func PageInRange(page, pageSize int) bool {
	if page < 1 || pageSize < 1 {
		return false
	}
	return int64(page-1) <= math.MaxInt64/int64(pageSize)
}

// Offset returns the number of documents to skip for a 1-based page.
// It returns 0 for page or pageSize below 1 and -1 when the skip would overflow.
func Offset(page, pageSize int) int64 {
	if page < 1 || pageSize < 1 {
		return 0
	}
	if !PageInRange(page, pageSize) {
		return -1
	}
	return int64(page-1) * int64(pageSize)
}

// JobStats holds per-bucket counts for a tenant.
type JobStats struct {
	Failed    int64 `json:"failed"`
	Completed int64 `json:"completed"`
	Running   int64 `json:"running"`
	All       int64 `json:"all"`
}

// Set stores a count for the given bucket.
func (s *JobStats) Set(b JobBucket, n int64) {
	switch b {
	case BucketFailed:
		s.Failed = n
	case BucketCompleted:
		s.Completed = n
	case BucketRunning:
		s.Running = n
	case BucketAll:
		s.All = n
	}
}
