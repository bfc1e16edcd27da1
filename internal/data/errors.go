package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrPartitionRequired is returned when a scan job read names no tenant database.
	ErrPartitionRequired = errors.New("partition database is required")
)
