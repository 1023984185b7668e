package httpapi

import (
	"net/http"

	"jobtracker-engine/internal/service"
)

type ViewsHandler struct {
	Svc *service.Service
}

func (h ViewsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	v, info := h.Svc.Dashboard(r.Context())
	writeJSON(w, viewResponse{LoadInfo: info, Data: v})
}

func (h ViewsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	v, info := h.Svc.Insights(r.Context())
	writeJSON(w, viewResponse{LoadInfo: info, Data: v})
}

func (h ViewsHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	v, info := h.Svc.Calendar(r.Context())
	writeJSON(w, viewResponse{LoadInfo: info, Data: v})
}
