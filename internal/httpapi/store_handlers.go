package httpapi

import (
	"net"
	"net/http"

	"jobtracker-engine/internal/store"
)

type StoreHandler struct {
	DB *store.DB
}

// History lists recent save outcomes, newest first.
func (h StoreHandler) History(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		writeJSON(w, []store.JournalEntry{})
		return
	}
	j := store.Journal{DB: h.DB.Pool}
	entries, err := j.Recent(r.Context(), intQuery(r, "limit", 50))
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	writeJSON(w, entries)
}

// Checkpoint flushes the SQLite WAL; loopback callers only.
func (h StoreHandler) Checkpoint(w http.ResponseWriter, r *http.Request) {
	if !IsLoopback(r.RemoteAddr) {
		WriteError(w, r, http.StatusForbidden, "forbidden", "forbidden")
		return
	}
	if h.DB == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.DB.Checkpoint(r.Context()); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// IsLoopback reports whether a request RemoteAddr is a loopback address.
func IsLoopback(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
