package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"jobtracker-engine/internal/events"
	"jobtracker-engine/internal/logos"
	"jobtracker-engine/internal/service"
	"jobtracker-engine/internal/store"
)

type LogosHandler struct {
	DB        *store.DB
	Resolver  *logos.Resolver
	Svc       *service.Service
	Publisher events.Publisher
	Logger    *zap.Logger
}

func (h LogosHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/logo/"))
	if key == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_input", "missing key")
		return
	}
	if h.DB == nil {
		http.NotFound(w, r)
		return
	}

	logo, err := h.DB.GetLogo(r.Context(), key)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	if logo == nil {
		http.NotFound(w, r)
		return
	}

	ct := logo.ContentType
	if ct == "" {
		ct = "image/*"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "public, max-age=604800")
	_, _ = w.Write(logo.Bytes)
}

// Refresh resolves logos for every company in the table before answering.
func (h LogosHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.Resolver == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "logos_disabled", "logo resolution is disabled in config")
		return
	}
	t, _ := h.Svc.Table(r.Context())
	res, err := h.Resolver.Warm(r.Context(), t)
	if err != nil {
		WriteError(w, r, http.StatusServiceUnavailable, "unavailable", err.Error())
		return
	}
	if h.Logger != nil {
		h.Logger.Info("logos refreshed", zap.Int("resolved", len(res.Keys)), zap.Int("failed", len(res.Failed)))
	}
	if h.Publisher != nil {
		h.Publisher.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeLogosRefreshed, 1, res))
	}
	writeJSON(w, res)
}
