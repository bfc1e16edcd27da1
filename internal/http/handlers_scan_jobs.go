package httpx

import (
	"log/slog"
	"net/http"

	"github.com/target/iris/internal/domain/model"
	"github.com/target/iris/internal/service"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// ScanJobHandlers serves the bucket listings and per-bucket counts.
type ScanJobHandlers struct {
	Svc             *service.ScanJobService
	DefaultPageSize int // Optional: page_size when the parameter is absent
	Logger          *slog.Logger
}

// List returns a handler serving one page of the given bucket.
// Query params: page, page_size, tenant, search.
func (h *ScanJobHandlers) List(bucket model.JobBucket) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := h.listOptions(r, bucket)
		if err != nil {
			writeServiceError(w, r, h.logger(), err)
			return
		}

		page, err := h.Svc.ListJobs(r.Context(), opts)
		if err != nil {
			writeServiceError(w, r, h.logger(), err)
			return
		}
		WriteJSON(w, http.StatusOK, page)
	}
}

// Stats returns latest-job counts per bucket for ?tenant, optionally narrowed by ?search.
func (h *ScanJobHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stats, err := h.Svc.Stats(r.Context(), q.Get("tenant"), q.Get("search"))
	if err != nil {
		writeServiceError(w, r, h.logger(), err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

func (h *ScanJobHandlers) listOptions(r *http.Request, bucket model.JobBucket) (model.JobListOptions, error) {
	size := h.DefaultPageSize
	if size <= 0 {
		size = defaultPageSize
	}
	page, err := parseIntQuery(r, "page", defaultPage)
	if err != nil {
		return model.JobListOptions{}, err
	}
	pageSize, err := parseIntQuery(r, "page_size", size)
	if err != nil {
		return model.JobListOptions{}, err
	}

	q := r.URL.Query()
	return model.JobListOptions{
		Bucket:   bucket,
		Search:   q.Get("search"),
		Tenant:   q.Get("tenant"),
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (h *ScanJobHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
