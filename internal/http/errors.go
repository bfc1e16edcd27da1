package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/target/iris/internal/domain/model"
	apperrors "github.com/target/iris/internal/errors"
)

// Error codes returned in the "error" field of JSON error bodies.
const (
	ErrCodeTenantRequired    = "tenant_required"
	ErrCodeTenantNotFound    = "tenant_not_found"
	ErrCodeInvalidPagination = "invalid_pagination"
	ErrCodeInvalidQuery      = "invalid_query"
	ErrCodeInvalidPath       = "invalid_path"
	ErrCodeNotFound          = "not_found"
	ErrCodeUnavailable       = "unavailable"
	ErrCodeInternal          = "internal_error"
)

// writeServiceError translates a service error into the matching HTTP error response.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, model.ErrTenantRequired):
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: ErrCodeTenantRequired, Err: err})
	case errors.Is(err, model.ErrTenantNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: ErrCodeTenantNotFound, Err: err})
	case apperrors.IsNotFound(err):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: ErrCodeNotFound, Err: err})
	case errors.Is(err, model.ErrInvalidPagination):
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: ErrCodeInvalidPagination,
			Err:     err,
			Field:   apperrors.GetField(err),
		})
	case apperrors.IsValidation(err):
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: ErrCodeInvalidQuery,
			Err:     err,
			Field:   apperrors.GetField(err),
		})
	case apperrors.IsUnavailable(err), apperrors.IsTimeout(err):
		logger.WarnContext(r.Context(), "backing store unavailable", "path", r.URL.Path, "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusServiceUnavailable,
			ErrCode: ErrCodeUnavailable,
			Err:     errors.New("service temporarily unavailable"),
		})
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: ErrCodeInternal,
			Err:     errors.New("internal server error"),
		})
	}
}
