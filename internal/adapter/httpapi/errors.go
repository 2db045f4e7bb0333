package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eslkit/vocadeck/internal/entity"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusOf maps domain errors onto HTTP status codes. Unknown errors are
// internal failures.
func statusOf(err error) int {
	switch {
	case errors.Is(err, entity.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrDeckNotFound), errors.Is(err, entity.ErrWordNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, entity.ErrEmptyDeck):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrMalformedResponse), errors.Is(err, entity.ErrRemoteService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).Error("request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return entity.ErrValidation
	}
	return nil
}
