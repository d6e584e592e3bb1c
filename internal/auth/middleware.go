package auth

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// AdminAuthMiddleware guards admin routes with a static bearer token from
// configuration. An empty token disables the admin surface entirely.
func AdminAuthMiddleware(adminToken string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if adminToken == "" || !strings.HasPrefix(header, "Bearer ") || strings.TrimPrefix(header, "Bearer ") != adminToken {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
