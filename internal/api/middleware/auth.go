package middleware

import (
	"net/http"
	"strings"

	"github.com/mcoot/mixplugin-go/internal/api/apierr"
	"github.com/mcoot/mixplugin-go/internal/services/auth"
)

// Auth creates API key middleware. Requests pass untouched when the
// service has no key configured.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authService.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			key := extractKey(r)
			if key == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			if err := authService.Validate(key); err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractKey extracts the API key from the request
func extractKey(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to X-API-Key
	return r.Header.Get("X-API-Key")
}
