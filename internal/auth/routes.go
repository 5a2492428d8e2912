package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FolioForge/portfolio-backend/internal/middleware"
)

// SetupRoutes mounts the auth endpoints. Login sits behind the rate limiter;
// everything else requires a valid bearer token, and user management is
// admin-only on top of that.
func SetupRoutes(h *Handler, verifier middleware.TokenVerifier, limiter *middleware.IPRateLimiter) http.Handler {
	r := chi.NewRouter()

	r.With(limiter.Middleware).Post("/login", h.LoginHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(verifier))

		r.Get("/me", h.MeHandler)
		r.Post("/logout", h.LogoutHandler)
		r.Put("/password", h.UpdatePasswordHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Post("/register", h.RegisterHandler)
			r.Patch("/users/{id}/status", h.StatusHandler)
			r.Delete("/users/{id}", h.DeleteUserHandler)
		})
	})

	return r
}
