package httpapi

import "jobtracker-engine/internal/service"

// viewResponse wraps a read view with where its table came from.
type viewResponse struct {
	service.LoadInfo
	Data any `json:"data"`
}
