package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// respondJSON writes a small JSON body for responses produced inside the
// middleware chain, before any handler runs.
func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode middleware response", "error", err)
	}
}
