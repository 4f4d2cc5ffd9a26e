package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/hearth/internal/budget"
	"github.com/MrJamesThe3rd/hearth/internal/family"
	"github.com/MrJamesThe3rd/hearth/internal/identity"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorResponse{Error: msg})
}

// Error maps a service error onto a status code. Unknown errors are logged and
// hidden behind a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *family.ValidationError
	if errors.As(err, &vErr) {
		JSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Message, Field: vErr.Field})
		return
	}

	switch {
	case errors.Is(err, family.ErrForbidden):
		Message(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, family.ErrNotFound),
		errors.Is(err, budget.ErrNotFound),
		errors.Is(err, identity.ErrNotFound):
		Message(w, http.StatusNotFound, "not found")
	case errors.Is(err, identity.ErrInvalidInput):
		Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, identity.ErrUsernameTaken):
		Message(w, http.StatusConflict, err.Error())
	case errors.Is(err, identity.ErrInvalidCredentials), errors.Is(err, identity.ErrInvalidToken):
		Message(w, http.StatusUnauthorized, err.Error())
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		Message(w, http.StatusInternalServerError, "internal error")
	}
}
