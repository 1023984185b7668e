package httpapi

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"jobtracker-engine/internal/apperr"
	"jobtracker-engine/internal/domain"
	"jobtracker-engine/internal/service"
)

type ApplicationsHandler struct {
	Svc *service.Service
}

func (h ApplicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	v, info := h.Svc.Tracker(r.Context(), filterFromQuery(r))
	writeJSON(w, viewResponse{LoadInfo: info, Data: v})
}

func (h ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var f domain.Form
	if err := decodeStrict(r, &f); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	m, err := h.Svc.Add(r.Context(), f)
	if err != nil {
		writeMutationError(w, r, m, err)
		return
	}
	WriteJSON(w, http.StatusCreated, m)
}

// Item serves /applications/{id}, /applications/{id}/duplicate and
// /applications/export.
func (h ApplicationsHandler) Item(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/applications/"), "/")
	id, action, _ := strings.Cut(rest, "/")

	switch {
	case id == "export" && action == "":
		methodMux(map[string]http.HandlerFunc{http.MethodGet: h.Export})(w, r)
	case id == "":
		WriteError(w, r, http.StatusBadRequest, "invalid_input", "missing id")
	case action == "":
		methodMux(map[string]http.HandlerFunc{
			http.MethodPut:    func(w http.ResponseWriter, r *http.Request) { h.Update(w, r, id) },
			http.MethodDelete: func(w http.ResponseWriter, r *http.Request) { h.Delete(w, r, id) },
		})(w, r)
	case action == "duplicate":
		methodMux(map[string]http.HandlerFunc{
			http.MethodPost: func(w http.ResponseWriter, r *http.Request) { h.Duplicate(w, r, id) },
		})(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h ApplicationsHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var f domain.Form
	if err := decodeStrict(r, &f); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	m, err := h.Svc.Update(r.Context(), id, f)
	if err != nil {
		writeMutationError(w, r, m, err)
		return
	}
	writeJSON(w, m)
}

func (h ApplicationsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	m, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		writeMutationError(w, r, m, err)
		return
	}
	writeJSON(w, m)
}

func (h ApplicationsHandler) Duplicate(w http.ResponseWriter, r *http.Request, id string) {
	m, err := h.Svc.Duplicate(r.Context(), id)
	if err != nil {
		writeMutationError(w, r, m, err)
		return
	}
	WriteJSON(w, http.StatusCreated, m)
}

func (h ApplicationsHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	name, n, err := h.Svc.Export(r.Context(), filterFromQuery(r), &buf)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	w.Header().Set("X-Row-Count", strconv.Itoa(n))
	_, _ = w.Write(buf.Bytes())
}

func (h ApplicationsHandler) Seed(w http.ResponseWriter, r *http.Request) {
	m, err := h.Svc.Seed(r.Context())
	if err != nil {
		if apperr.TypeOf(err) == apperr.TypeInvalidInput {
			WriteError(w, r, http.StatusConflict, "not_empty", apperr.MessageOf(err))
			return
		}
		writeMutationError(w, r, m, err)
		return
	}
	WriteJSON(w, http.StatusCreated, m)
}
