package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/target/iris/internal/domain/model"
	apperrors "github.com/target/iris/internal/errors"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		errCode string
		field   string
	}{
		{
			name:    "tenant required",
			err:     apperrors.Wrap(model.ErrTenantRequired, apperrors.ErrCodeValidation, "tenant is required").WithField("tenant"),
			status:  http.StatusBadRequest,
			errCode: ErrCodeTenantRequired,
		},
		{
			name:    "tenant not found",
			err:     apperrors.Wrap(model.ErrTenantNotFound, apperrors.ErrCodeNotFound, `tenant "ghost"`),
			status:  http.StatusNotFound,
			errCode: ErrCodeTenantNotFound,
		},
		{
			name:    "other not found",
			err:     fmt.Errorf("lookup: %w", apperrors.Wrap(errors.New("no documents"), apperrors.ErrCodeNotFound, "job")),
			status:  http.StatusNotFound,
			errCode: ErrCodeNotFound,
		},
		{
			name:    "pagination names field",
			err:     apperrors.Wrap(model.ErrInvalidPagination, apperrors.ErrCodeValidation, "page_size").WithField("page_size"),
			status:  http.StatusBadRequest,
			errCode: ErrCodeInvalidPagination,
			field:   "page_size",
		},
		{
			name:    "validation names field",
			err:     apperrors.Validationf("bad bucket").WithField("bucket"),
			status:  http.StatusBadRequest,
			errCode: ErrCodeInvalidQuery,
			field:   "bucket",
		},
		{
			name:    "store unavailable hides cause",
			err:     apperrors.Wrap(errors.New("dial tcp 10.0.0.1:27017"), apperrors.ErrCodeUnavailable, "find"),
			status:  http.StatusServiceUnavailable,
			errCode: ErrCodeUnavailable,
		},
		{
			name:    "store timeout",
			err:     apperrors.Wrap(context.DeadlineExceeded, apperrors.ErrCodeTimeout, "count"),
			status:  http.StatusServiceUnavailable,
			errCode: ErrCodeUnavailable,
		},
		{
			name:    "unknown error",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			errCode: ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/all-jobs", nil)

			writeServiceError(rec, req, slog.Default(), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			body := decodeBody[map[string]string](t, rec.Result())
			assert.Equal(t, tt.errCode, body["error"])
			assert.Equal(t, tt.field, body["field"])
			assert.NotContains(t, body["message"], "10.0.0.1")
		})
	}
}
