package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/target/iris/internal/service"
)

// RestartHandlers serves the restart actions.
type RestartHandlers struct {
	Svc    *service.RestartService
	Logger *slog.Logger
}

// RestartJob triggers a restart for the job in the {id} path segment.
// The outcome is reported in the body; the status is 200 either way.
func (h *RestartHandlers) RestartJob(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: ErrCodeInvalidPath,
			Err:     errors.New("job id is required"),
		})
		return
	}
	WriteJSON(w, http.StatusOK, h.Svc.RestartJobResult(r.Context(), id))
}

// RestartAllFailed restarts every latest failed job, for ?tenant when given or for all tenants.
func (h *RestartHandlers) RestartAllFailed(w http.ResponseWriter, r *http.Request) {
	res, err := h.Svc.RestartAllFailed(r.Context(), r.URL.Query().Get("tenant"))
	if err != nil {
		logger := h.Logger
		if logger == nil {
			logger = slog.Default()
		}
		writeServiceError(w, r, logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}
