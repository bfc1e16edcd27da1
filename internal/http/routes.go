// Package httpx exposes the scan job monitor over a JSON HTTP API.
package httpx

import (
	"log/slog"
	"net/http"

	"github.com/target/iris/internal/data"
	"github.com/target/iris/internal/domain/model"
	"github.com/target/iris/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	ScanJobs *service.ScanJobService
	Tenants  *service.TenantService
	Restarts *service.RestartService
	// Optional: clock for the health timestamp
	Clock data.TimeProvider
	// Configuration
	DefaultPageSize int
	Logger          *slog.Logger // Logger for HTTP errors (optional)
}

// NewRouter creates and configures the API router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registerScanJobRoutes(mux, &ScanJobHandlers{
		Svc:             services.ScanJobs,
		DefaultPageSize: services.DefaultPageSize,
		Logger:          logger,
	})
	registerTenantRoutes(mux, &TenantHandlers{Svc: services.Tenants})
	registerRestartRoutes(mux, &RestartHandlers{Svc: services.Restarts, Logger: logger})

	health := &HealthHandlers{Clock: services.Clock}
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("HEAD /health", health.Health)

	return mux
}

func registerScanJobRoutes(mux *http.ServeMux, h *ScanJobHandlers) {
	if h.Svc == nil {
		return
	}
	mux.Handle("GET /api/failed-jobs", h.List(model.BucketFailed))
	mux.Handle("GET /api/completed-jobs", h.List(model.BucketCompleted))
	mux.Handle("GET /api/running-jobs", h.List(model.BucketRunning))
	mux.Handle("GET /api/all-jobs", h.List(model.BucketAll))
	mux.HandleFunc("GET /api/job-stats", h.Stats)
}

func registerTenantRoutes(mux *http.ServeMux, h *TenantHandlers) {
	if h.Svc == nil {
		return
	}
	mux.HandleFunc("GET /api/tenants", h.List)
}

func registerRestartRoutes(mux *http.ServeMux, h *RestartHandlers) {
	if h.Svc == nil {
		return
	}
	mux.HandleFunc("POST /api/restart-job/{id}", h.RestartJob)
	mux.HandleFunc("POST /api/restart-all-failed", h.RestartAllFailed)
}
