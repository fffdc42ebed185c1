package middleware

import (
	"net/http"
	"strings"

	"github.com/strideapp/stride/internal/ctxkeys"
	"github.com/strideapp/stride/internal/service"
)

// RequireAuth guards a route behind bearer-token authentication. A missing
// or malformed Authorization header gets its own message; every verification
// failure after that maps to one generic 401, so callers cannot tell a bad
// signature from an expired token or a deleted account.
//
// On success only the account id lands in the request context. Handlers
// load whatever else they need themselves.
func RequireAuth(authService *service.AuthService, userService *service.UserService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "authentication required"})
				return
			}

			claims, err := authService.VerifyJWT(token)
			if err != nil {
				respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid or expired token"})
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid or expired token"})
				return
			}

			// The account behind the token must still exist.
			_, err = userService.ByID(userID)
			if err != nil {
				respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid or expired token"})
				return
			}

			ctx := ctxkeys.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
