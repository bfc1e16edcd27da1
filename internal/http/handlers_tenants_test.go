package httpx

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/iris/internal/domain/model"
	"go.uber.org/mock/gomock"
)

func TestTenantsRoute(t *testing.T) {
	f := newRouterFixture(t)
	f.tenants.EXPECT().List(gomock.Any()).Return([]*model.Tenant{
		{ID: "2", Name: "globex"},
		{ID: "1", Name: "acme"},
	}, nil)

	resp := f.do(t, http.MethodGet, "/api/tenants")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"acme", "globex"}, decodeBody[[]string](t, resp))
}

func TestTenantsRoute_DirectoryDown(t *testing.T) {
	f := newRouterFixture(t)
	f.tenants.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection refused"))

	resp := f.do(t, http.MethodGet, "/api/tenants")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(body))
}
