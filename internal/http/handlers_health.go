package httpx

import (
	"net/http"
	"time"

	"github.com/target/iris/internal/data"
)

// HealthHandlers serves the liveness endpoint.
type HealthHandlers struct {
	Clock data.TimeProvider
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Health reports liveness with the current UTC time. HEAD requests get headers only.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	}

	clock := h.Clock
	if clock == nil {
		clock = &data.RealTimeProvider{}
	}
	WriteJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: clock.Now().UTC().Format(time.RFC3339Nano),
	})
}
