package httpx

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/target/iris/internal/data"
	"github.com/target/iris/internal/domain/model"
	"github.com/target/iris/internal/mocks"
	"github.com/target/iris/internal/service"
	"go.uber.org/mock/gomock"
)

var testTenant = &model.Tenant{ID: "65a000000000000000000001", Name: "acme", Database: "acme_db"}

type routerFixture struct {
	handler http.Handler
	jobs    *mocks.MockScanJobRepository
	tenants *mocks.MockTenantRepository
	trigger *mocks.MockRestartTrigger
}

func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockScanJobRepository(ctrl)
	tenants := mocks.NewMockTenantRepository(ctrl)
	trigger := mocks.NewMockRestartTrigger(ctrl)

	tenantSvc := service.MustNewTenantService(service.TenantServiceOptions{Repo: tenants})
	scanJobSvc := service.MustNewScanJobService(service.ScanJobServiceOptions{
		Repo:    jobs,
		Tenants: tenantSvc,
	})
	restartSvc := service.MustNewRestartService(service.RestartServiceOptions{
		Trigger: trigger,
		Jobs:    scanJobSvc,
		Tenants: tenantSvc,
		Timeout: time.Second,
	})

	handler := NewRouter(RouterServices{
		ScanJobs: scanJobSvc,
		Tenants:  tenantSvc,
		Restarts: restartSvc,
		Clock:    data.NewFixedTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	return routerFixture{handler: handler, jobs: jobs, tenants: tenants, trigger: trigger}
}

func (f routerFixture) do(t *testing.T, method, target string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	resp := rec.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &v), "body: %s", b)
	return v
}
