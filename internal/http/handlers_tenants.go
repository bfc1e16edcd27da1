package httpx

import (
	"net/http"

	"github.com/target/iris/internal/service"
)

// TenantHandlers serves the tenant directory.
type TenantHandlers struct {
	Svc *service.TenantService
}

// List returns the sorted tenant names. Directory failures yield an empty array.
func (h *TenantHandlers) List(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Svc.ListTenantNames(r.Context()))
}
