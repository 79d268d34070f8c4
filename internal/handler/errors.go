package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yclin/travel-planner/internal/domain"
)

// errorResponse is the JSON error envelope: {"error":{"code","message"}}.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encoding failed", "error", err)
	}
}

// respondError maps domain sentinels to their HTTP status and error code.
// Anything unrecognized is a 500 with a generic body; the real error goes to
// the log, not the client.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{
			Error: errorDetail{Code: "not_found", Message: unwrapMessage(err)},
		})
	case errors.Is(err, domain.ErrValidation):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: errorDetail{Code: "validation_error", Message: unwrapMessage(err)},
		})
	case errors.Is(err, domain.ErrStructure):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: errorDetail{Code: "structure_error", Message: unwrapMessage(err)},
		})
	default:
		slog.Error("request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorDetail{Code: "internal", Message: "internal server error"},
		})
	}
}

// respondBadRequest rejects a request before it reaches the service layer
// (e.g. missing or malformed body).
func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{
		Error: errorDetail{Code: "validation_error", Message: message},
	})
}

// decodeJSON parses the request body into v. Unknown fields are ignored —
// the UI sends whole form states and the patch types pick what they need.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error: "service.TaskService.Add: text is required: validation error"
// becomes "text is required". The sentinel suffix and the call-site prefix
// are both noise to an API client.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	sentinels := map[string]bool{
		domain.ErrNotFound.Error():   true,
		domain.ErrValidation.Error(): true,
		domain.ErrStructure.Error():  true,
	}
	parts := strings.Split(err.Error(), ": ")
	for i := len(parts) - 1; i >= 0; i-- {
		p := parts[i]
		if sentinels[p] {
			continue
		}
		// Call-site prefixes ("service.TaskService.Add") have dots and no
		// spaces; once we hit one there is no message, fall back to the
		// sentinel text itself.
		if !strings.Contains(p, " ") && strings.Contains(p, ".") {
			break
		}
		return p
	}
	return parts[len(parts)-1]
}
