package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/target/iris/internal/core"
	"github.com/target/iris/internal/domain/model"
	apperrors "github.com/target/iris/internal/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultTenantDatabase holds the tenant directory.
	DefaultTenantDatabase = "asd_remus_qc"
	// DefaultTenantCollection is the tenant directory collection.
	DefaultTenantCollection = "tenants"
)

// tenantDocument is the stored shape of a tenant directory entry.
type tenantDocument struct {
	ID       any    `bson:"_id"`
	Name     string `bson:"name"`
	Database string `bson:"db_name"`
}

func (d tenantDocument) toModel() *model.Tenant {
	return &model.Tenant{ID: stringValue(d.ID), Name: d.Name, Database: d.Database}
}

// TenantRepoOptions groups dependencies for TenantRepo.
type TenantRepoOptions struct {
	Client       *mongo.Client // Required
	Database     string        // Optional: defaults to DefaultTenantDatabase
	Collection   string        // Optional: defaults to DefaultTenantCollection
	QueryTimeout time.Duration // Optional
}

// TenantRepo reads the tenant directory collection.
type TenantRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

var _ core.TenantRepository = (*TenantRepo)(nil)

// NewTenantRepo constructs a TenantRepo.
func NewTenantRepo(opts TenantRepoOptions) (*TenantRepo, error) {
	if opts.Client == nil {
		return nil, errors.New("mongo client is required")
	}
	database := opts.Database
	if database == "" {
		database = DefaultTenantDatabase
	}
	collection := opts.Collection
	if collection == "" {
		collection = DefaultTenantCollection
	}
	timeout := opts.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &TenantRepo{
		coll:    opts.Client.Database(database).Collection(collection),
		timeout: timeout,
	}, nil
}

// FindByName returns the directory entry for a tenant name.
func (r *TenantRepo) FindByName(ctx context.Context, name string) (*model.Tenant, error) {
	if name == "" {
		return nil, apperrors.Wrap(model.ErrTenantRequired, apperrors.ErrCodeValidation, "tenant is required")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc tenantDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Wrapf(model.ErrTenantNotFound, apperrors.ErrCodeNotFound, "tenant %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("find tenant: %w", apperrors.MapStoreError(err))
	}
	return doc.toModel(), nil
}

// List returns every tenant directory entry that carries a name, ordered by name.
func (r *TenantRepo) List(ctx context.Context) ([]*model.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.D{{Key: "name", Value: bson.D{{Key: "$exists", Value: true}}}}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", apperrors.MapStoreError(err))
	}

	var docs []tenantDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tenants: %w", apperrors.MapStoreError(err))
	}

	out := make([]*model.Tenant, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}
