package httpapi

import (
	"net/http"
	"time"

	"jobtracker-engine/internal/events"
	"jobtracker-engine/internal/store"
)

type HealthHandler struct {
	Hub *events.Hub
	DB  *store.DB
}

type healthBody struct {
	OK          bool      `json:"ok"`
	Time        time.Time `json:"time"`
	Journal     bool      `json:"journal"`
	Subscribers int       `json:"subscribers"`
	Dropped     uint64    `json:"dropped_events"`
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	body := healthBody{OK: true, Time: time.Now().UTC(), Journal: h.DB != nil}
	if h.Hub != nil {
		body.Subscribers = h.Hub.Subscribers()
		body.Dropped = h.Hub.Dropped()
	}
	writeJSON(w, body)
}
