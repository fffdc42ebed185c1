package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recover converts handler panics into a generic 500 and logs the stack.
// The client never sees panic detail.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec != nil {
				slog.Error("panic recovered",
					"error", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "something went wrong"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
