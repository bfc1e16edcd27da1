package data

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/iris/internal/core"
	"github.com/target/iris/internal/domain/model"
	apperrors "github.com/target/iris/internal/errors"
	"github.com/target/iris/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func setupScanJobRepo(t *testing.T) (*ScanJobRepo, *mongo.Collection, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	client := testutil.SetupTestMongo(t)
	db := testutil.EphemeralDatabase(t, client, "iris_jobs")

	repo, err := NewScanJobRepo(ScanJobRepoOptions{Client: client, QueryTimeout: 5 * time.Second})
	require.NoError(t, err)
	return repo, client.Database(db).Collection(DefaultJobsCollection), db
}

func seedJobs(t *testing.T, coll *mongo.Collection, docs ...bson.M) {
	t.Helper()
	items := make([]any, 0, len(docs))
	for _, d := range docs {
		items = append(items, d)
	}
	_, err := coll.InsertMany(context.Background(), items)
	require.NoError(t, err)
}

func jobDoc(id, tenant, domain, status string, created time.Time) bson.M {
	return bson.M{
		"_id":        id,
		"tenant_id":  tenant,
		"domain":     domain,
		"status":     status,
		"is_latest":  true,
		"created_at": primitive.NewDateTimeFromTime(created),
	}
}

func TestScanJobRepo_FindOrderingAndPaging(t *testing.T) {
	repo, coll, db := setupScanJobRepo(t)
	ctx := context.Background()
	base := testutil.TestTime()

	seedJobs(t, coll,
		jobDoc("j1", "t1", "one.com", "failed", base.Add(1*time.Minute)),
		jobDoc("j2", "t1", "two.com", "failed", base.Add(2*time.Minute)),
		jobDoc("j3", "t1", "three.com", "failed", base.Add(3*time.Minute)),
		bson.M{"_id": "j0", "tenant_id": "t1", "status": "failed", "is_latest": true},
	)

	filter := model.JobFilter{Statuses: []model.JobStatus{model.JobStatusFailed}, TenantID: "t1"}

	all, err := repo.Find(ctx, core.ScanJobQuery{Database: db, Filter: filter})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"j3", "j2", "j1", "j0"}, ids(all))
	assert.Nil(t, all[3].CreatedAt)

	page2, err := repo.Find(ctx, core.ScanJobQuery{Database: db, Filter: filter, Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"j1", "j0"}, ids(page2))

	past, err := repo.Find(ctx, core.ScanJobQuery{Database: db, Filter: filter, Offset: 10, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, past)

	total, err := repo.Count(ctx, db, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}

func TestScanJobRepo_LatestAndStatusFilter(t *testing.T) {
	repo, coll, db := setupScanJobRepo(t)
	ctx := context.Background()
	base := testutil.TestTime()

	old := jobDoc("old", "t1", "a.com", "failed", base)
	old["is_latest"] = false
	seedJobs(t, coll,
		old,
		jobDoc("f1", "t1", "a.com", "failed", base.Add(time.Minute)),
		jobDoc("c1", "t1", "b.com", "completed", base.Add(2*time.Minute)),
		jobDoc("c2", "t1", "c.com", "success", base.Add(3*time.Minute)),
	)

	failed, err := repo.Find(ctx, core.ScanJobQuery{
		Database: db,
		Filter:   model.JobFilter{Statuses: []model.JobStatus{model.JobStatusFailed}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"f1"}, ids(failed))

	completed, err := repo.Find(ctx, core.ScanJobQuery{
		Database: db,
		Filter:   model.JobFilter{Statuses: []model.JobStatus{model.JobStatusCompleted, model.JobStatusSuccess}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "c1"}, ids(completed))
	for _, rec := range completed {
		assert.True(t, rec.IsLatest)
	}

	all, err := repo.Count(ctx, db, model.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all)
}

func TestScanJobRepo_SearchIsCaseInsensitiveAndLiteral(t *testing.T) {
	repo, coll, db := setupScanJobRepo(t)
	ctx := context.Background()
	base := testutil.TestTime()

	withErr := jobDoc("e1", "t1", "quiet.net", "failed", base)
	withErr["error_message"] = "DNS lookup TIMEOUT"
	seedJobs(t, coll,
		jobDoc("d1", "t1", "Example.COM", "completed", base.Add(time.Minute)),
		jobDoc("d2", "t1", "exampleXcom", "completed", base.Add(2*time.Minute)),
		withErr,
	)

	got, err := repo.Find(ctx, core.ScanJobQuery{Database: db, Filter: model.JobFilter{Search: "example.com"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, ids(got))

	got, err = repo.Find(ctx, core.ScanJobQuery{Database: db, Filter: model.JobFilter{Search: "timeout"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"e1"}, ids(got))
}

func TestScanJobRepo_TenantObjectID(t *testing.T) {
	repo, coll, db := setupScanJobRepo(t)
	ctx := context.Background()
	base := testutil.TestTime()
	tenant := primitive.NewObjectID()

	asOID := jobDoc("o1", "", "a.com", "failed", base)
	asOID["tenant_id"] = tenant
	seedJobs(t, coll,
		asOID,
		jobDoc("s1", tenant.Hex(), "b.com", "failed", base.Add(time.Minute)),
		jobDoc("x1", "other", "c.com", "failed", base.Add(2*time.Minute)),
	)

	got, err := repo.Find(ctx, core.ScanJobQuery{Database: db, Filter: model.JobFilter{TenantID: tenant.Hex()}})
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "o1"}, ids(got))
	for _, rec := range got {
		assert.Equal(t, tenant.Hex(), rec.TenantID)
	}
}

func TestScanJobRepo_SearchMatchesObjectIDTenant(t *testing.T) {
	repo, coll, db := setupScanJobRepo(t)
	ctx := context.Background()
	base := testutil.TestTime()
	tenant := primitive.NewObjectID()

	asOID := jobDoc("o1", "", "a.com", "failed", base)
	asOID["tenant_id"] = tenant
	seedJobs(t, coll,
		asOID,
		jobDoc("s1", tenant.Hex(), "b.com", "failed", base.Add(time.Minute)),
		jobDoc("x1", "other", "c.com", "failed", base.Add(2*time.Minute)),
	)

	suffix := strings.ToUpper(tenant.Hex()[14:])
	got, err := repo.Find(ctx, core.ScanJobQuery{Database: db, Filter: model.JobFilter{Search: suffix}})
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "o1"}, ids(got))
}

func TestScanJobRepo_RequiresDatabase(t *testing.T) {
	repo := &ScanJobRepo{}
	_, err := repo.Find(context.Background(), core.ScanJobQuery{})
	require.ErrorIs(t, err, ErrPartitionRequired)
	assert.True(t, apperrors.IsValidation(err))

	_, err = repo.Count(context.Background(), "", model.JobFilter{})
	require.ErrorIs(t, err, ErrPartitionRequired)
}

func TestScanJobRepo_RejectsNegativeWindow(t *testing.T) {
	repo := &ScanJobRepo{}
	for _, q := range []core.ScanJobQuery{
		{Database: "acme_db", Offset: -8446744073709551616, Limit: 10},
		{Database: "acme_db", Offset: 0, Limit: -1},
	} {
		_, err := repo.Find(context.Background(), q)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	}
}

func TestNewScanJobRepo_RequiresClient(t *testing.T) {
	_, err := NewScanJobRepo(ScanJobRepoOptions{})
	require.Error(t, err)
}

func ids(recs []*model.ScanJobRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}
