package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/target/iris/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildScanJobFilter(t *testing.T) {
	oid := primitive.NewObjectID()

	tests := []struct {
		name   string
		filter model.JobFilter
		want   bson.D
	}{
		{
			name:   "no restriction",
			filter: model.JobFilter{},
			want:   bson.D{{Key: "is_latest", Value: true}},
		},
		{
			name:   "single status",
			filter: model.JobFilter{Statuses: []model.JobStatus{model.JobStatusFailed}},
			want: bson.D{
				{Key: "is_latest", Value: true},
				{Key: "status", Value: "failed"},
			},
		},
		{
			name: "legacy aliases",
			filter: model.JobFilter{
				Statuses: []model.JobStatus{model.JobStatusCompleted, model.JobStatusSuccess},
			},
			want: bson.D{
				{Key: "is_latest", Value: true},
				{Key: "status", Value: bson.D{{Key: "$in", Value: bson.A{"completed", "success"}}}},
			},
		},
		{
			name:   "search is literal",
			filter: model.JobFilter{Search: "a.com (x)"},
			want: bson.D{
				{Key: "is_latest", Value: true},
				{Key: "$or", Value: bson.A{
					bson.D{{Key: "domain", Value: primitive.Regex{Pattern: `a\.com \(x\)`, Options: "i"}}},
					bson.D{{Key: "error_message", Value: primitive.Regex{Pattern: `a\.com \(x\)`, Options: "i"}}},
					tenantIDSearch(`a\.com \(x\)`),
				}},
			},
		},
		{
			name:   "string tenant id",
			filter: model.JobFilter{TenantID: "tenant-1"},
			want: bson.D{
				{Key: "is_latest", Value: true},
				{Key: "tenant_id", Value: "tenant-1"},
			},
		},
		{
			name:   "object id tenant id matches both encodings",
			filter: model.JobFilter{TenantID: oid.Hex()},
			want: bson.D{
				{Key: "is_latest", Value: true},
				{Key: "tenant_id", Value: bson.D{{Key: "$in", Value: bson.A{oid, oid.Hex()}}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildScanJobFilter(tt.filter))
		})
	}
}

func TestTenantIDSearch(t *testing.T) {
	want := bson.D{{Key: "$expr", Value: bson.D{{Key: "$regexMatch", Value: bson.D{
		{Key: "input", Value: bson.D{{Key: "$convert", Value: bson.D{
			{Key: "input", Value: "$tenant_id"},
			{Key: "to", Value: "string"},
			{Key: "onError", Value: ""},
			{Key: "onNull", Value: ""},
		}}}},
		{Key: "regex", Value: `65a0`},
		{Key: "options", Value: "i"},
	}}}}}
	assert.Equal(t, want, tenantIDSearch(`65a0`))
}

func TestScanJobSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}, scanJobSort())
}
