package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/FolioForge/portfolio-backend/internal/utils"
)

// TokenVerifier resolves a presented bearer token to an identity, or fails.
// All failure kinds are treated as unauthenticated here; the distinction only
// reaches the server log.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (utils.Identity, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <value>"
// header. A missing or malformed header yields "".
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, value, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(value)
}

// RequireAuth admits only requests carrying a valid bearer token. The verdict
// is computed fresh on every pass; nothing is consumed or invalidated, so the
// guard is safe to run twice on the same request.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				utils.WriteError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// The client gets one uniform answer; the kind stays server-side.
				log.Printf("[auth] token rejected: %v", err)
				utils.WriteError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAdmin runs after RequireAuth and rejects authenticated non-admins
// with 403. A missing identity means the chain was assembled wrong, which is
// still a 401 rather than a handler invocation.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := utils.GetRoleFromContext(r.Context())
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		if role != "admin" {
			utils.WriteError(w, http.StatusForbidden, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

var allowed = map[string]struct{}{
	"http://localhost:5173":            {},
	"http://localhost:5174":            {},
	"https://folioforge.github.io":     {},
	"https://portfolio.folioforge.dev": {},
	"https://admin.folioforge.dev":     {},
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it's on our allow-list
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization")
		}

		w.Header().Set("Access-Control-Expose-Headers", "Retry-After, Cache-Control")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
