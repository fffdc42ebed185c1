package handler

import "net/http"

// NotFound answers paths the router does not know. Clients get the same
// JSON error shape as everywhere else instead of the stdlib plain text.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", nil)
}
