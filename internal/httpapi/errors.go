package httpapi

import (
	"encoding/json"
	"net/http"

	"jobtracker-engine/internal/apperr"
	"jobtracker-engine/internal/service"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func apiError(r *http.Request, code, message string) APIError {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	return e
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	WriteJSON(w, status, apiError(r, code, message))
}

func statusOf(t apperr.Type) (int, string) {
	switch t {
	case apperr.TypeNotFound:
		return http.StatusNotFound, "not_found"
	case apperr.TypeInvalidInput:
		return http.StatusBadRequest, "invalid_input"
	case apperr.TypeUnavailable:
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// WriteAppError maps the error taxonomy onto HTTP statuses.
func WriteAppError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusOf(apperr.TypeOf(err))
	WriteError(w, r, status, code, apperr.MessageOf(err))
}

type mutationError struct {
	APIError
	Save *service.SaveInfo `json:"save,omitempty"`
}

// writeMutationError keeps the save outcome in the body when the cycle got
// as far as saving.
func writeMutationError(w http.ResponseWriter, r *http.Request, m service.Mutation, err error) {
	status, code := statusOf(apperr.TypeOf(err))
	body := mutationError{APIError: apiError(r, code, apperr.MessageOf(err))}
	if m.Save.Status != "" {
		body.Save = &m.Save
	}
	WriteJSON(w, status, body)
}
