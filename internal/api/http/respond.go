package http

import (
	"encoding/json"
	"net/http"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/logger"
)

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// decodeJSON reads the request body into v. Malformed bodies are bad input.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return domain.BadInputError("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.BadInputError("malformed JSON body: %v", err)
	}
	return nil
}
