package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// StatusBuckets maps each named bucket to the stored status values it matches.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver
type StatusBuckets map[JobBucket][]JobStatus

// DefaultStatusBuckets matches each bucket to its own status only.
func DefaultStatusBuckets() StatusBuckets {
	return StatusBuckets{
		BucketFailed:    {JobStatusFailed},
		BucketCompleted: {JobStatusCompleted},
		BucketRunning:   {JobStatusRunning},
	}
}

// LegacyStatusBuckets also matches the legacy success and in_progress statuses.
func LegacyStatusBuckets() StatusBuckets {
	return StatusBuckets{
		BucketFailed:    {JobStatusFailed},
		BucketCompleted: {JobStatusCompleted, JobStatusSuccess},
		BucketRunning:   {JobStatusRunning, JobStatusInProgress},
	}
}

// Statuses returns the statuses for a bucket. BucketAll reports ok=false: no restriction applies.
func (s StatusBuckets) Statuses(b JobBucket) ([]JobStatus, bool) {
	if b == BucketAll {
		return nil, false
	}
	statuses, ok := s[b]
	if !ok || len(statuses) == 0 {
		return []JobStatus{JobStatus(b)}, true
	}
	return statuses, true
}

// Matches reports whether a stored status belongs to the bucket.
func (s StatusBuckets) Matches(b JobBucket, status JobStatus) bool {
	statuses, restricted := s.Statuses(b)
	if !restricted {
		return true
	}
	return slices.Contains(statuses, status)
}

// Validate checks that no status is claimed by more than one bucket.
func (s StatusBuckets) Validate() error {
	owner := make(map[JobStatus]JobBucket)
	for _, b := range NamedBuckets() {
		for _, st := range s[b] {
			if prev, dup := owner[st]; dup {
				return fmt.Errorf("status %q mapped to both %s and %s", st, prev, b)
			}
			owner[st] = b
		}
	}
	return nil
}

// UnmarshalText parses "failed=failed;completed=completed|success;running=running|in_progress".
// Buckets left out keep their default mapping.
func (s *StatusBuckets) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	out := DefaultStatusBuckets()
	if raw == "" {
		*s = out
		return nil
	}

	for entry := range strings.SplitSeq(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, values, found := strings.Cut(entry, "=")
		if !found {
			return fmt.Errorf("invalid status bucket entry %q: expected bucket=status|status", entry)
		}
		var b JobBucket
		if err := b.UnmarshalText([]byte(name)); err != nil {
			return err
		}
		if b == BucketAll {
			return errors.New("the all bucket cannot be mapped to statuses")
		}
		var statuses []JobStatus
		for v := range strings.SplitSeq(values, "|") {
			if v = strings.TrimSpace(v); v != "" {
				statuses = append(statuses, JobStatus(v))
			}
		}
		if len(statuses) == 0 {
			return fmt.Errorf("bucket %s has no statuses", b)
		}
		out[b] = statuses
	}

	if err := out.Validate(); err != nil {
		return err
	}
	*s = out
	return nil
}
