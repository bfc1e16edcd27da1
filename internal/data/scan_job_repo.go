package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/target/iris/internal/core"
	"github.com/target/iris/internal/domain/model"
	apperrors "github.com/target/iris/internal/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultJobsCollection is the per-tenant collection holding scan job documents.
	DefaultJobsCollection = "scan_jobs_asset_discovery"
	defaultQueryTimeout   = 15 * time.Second
)

// ScanJobRepoOptions groups dependencies for ScanJobRepo.
type ScanJobRepoOptions struct {
	Client       *mongo.Client // Required
	Collection   string        // Optional: defaults to DefaultJobsCollection
	QueryTimeout time.Duration // Optional: per-read timeout
	Logger       *slog.Logger  // Optional
}

// ScanJobRepo reads scan jobs from per-tenant MongoDB databases.
type ScanJobRepo struct {
	client     *mongo.Client
	collection string
	timeout    time.Duration
	logger     *slog.Logger
}

var _ core.ScanJobRepository = (*ScanJobRepo)(nil)

// NewScanJobRepo constructs a ScanJobRepo.
func NewScanJobRepo(opts ScanJobRepoOptions) (*ScanJobRepo, error) {
	if opts.Client == nil {
		return nil, errors.New("mongo client is required")
	}
	collection := opts.Collection
	if collection == "" {
		collection = DefaultJobsCollection
	}
	timeout := opts.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ScanJobRepo{
		client:     opts.Client,
		collection: collection,
		timeout:    timeout,
		logger:     logger.With("component", "scan_job_repo"),
	}, nil
}

func (r *ScanJobRepo) coll(database string) (*mongo.Collection, error) {
	if database == "" {
		return nil, apperrors.Wrap(ErrPartitionRequired, apperrors.ErrCodeValidation, "scan job query")
	}
	return r.client.Database(database).Collection(r.collection), nil
}

// Find returns normalized scan jobs ordered by created_at DESC, _id DESC.
// Documents that cannot be normalized are skipped and logged.
func (r *ScanJobRepo) Find(ctx context.Context, q core.ScanJobQuery) ([]*model.ScanJobRecord, error) {
	if q.Offset < 0 || q.Limit < 0 {
		return nil, apperrors.Validationf("scan job window offset=%d limit=%d must not be negative", q.Offset, q.Limit)
	}
	coll, err := r.coll(q.Database)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().SetSort(scanJobSort())
	if q.Offset > 0 {
		findOpts.SetSkip(q.Offset)
	}
	if q.Limit > 0 {
		findOpts.SetLimit(q.Limit)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := coll.Find(ctx, buildScanJobFilter(q.Filter), findOpts)
	if err != nil {
		return nil, fmt.Errorf("find scan jobs: %w", apperrors.MapStoreError(err))
	}
	defer func() {
		if cerr := cur.Close(ctx); cerr != nil {
			r.logger.DebugContext(ctx, "close scan job cursor", "error", cerr)
		}
	}()

	out := make([]*model.ScanJobRecord, 0, max(q.Limit, 0))
	for cur.Next(ctx) {
		var doc bson.M
		if decErr := cur.Decode(&doc); decErr != nil {
			r.logger.WarnContext(ctx, "skipping undecodable scan job document",
				"database", q.Database, "error", decErr)
			continue
		}
		rec, ok := NormalizeDocument(doc)
		if !ok {
			r.logger.WarnContext(ctx, "skipping unrepresentable scan job document", "database", q.Database)
			continue
		}
		out = append(out, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate scan jobs: %w", apperrors.MapStoreError(err))
	}

	return out, nil
}

// Count returns the number of scan jobs matching the filter.
func (r *ScanJobRepo) Count(ctx context.Context, database string, filter model.JobFilter) (int64, error) {
	coll, err := r.coll(database)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := coll.CountDocuments(ctx, buildScanJobFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("count scan jobs: %w", apperrors.MapStoreError(err))
	}
	return n, nil
}
