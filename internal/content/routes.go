package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FolioForge/portfolio-backend/internal/middleware"
)

func SetupRoutes(h *Handler, verifier middleware.TokenVerifier) http.Handler {
	r := chi.NewRouter()

	// Public routes - the site reads these anonymously
	r.Get("/posts", h.ListPosts)
	r.Get("/posts/{slug}", h.GetPost)
	r.Get("/projects", h.ListProjects)
	r.Get("/projects/{slug}", h.GetProject)
	r.Get("/pages/{slug}", h.GetPage)

	// Testimonial listing is public for approved rows; ?all=true needs the
	// admin role from an authenticated context, so the guard runs here too.
	r.With(optionalAuth(verifier)).Get("/testimonials", h.ListTestimonials)

	// Admin routes - require a valid token and the admin role
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(verifier))
		r.Use(middleware.RequireAdmin)

		r.Post("/posts", h.CreatePost)
		r.Put("/posts/{slug}", h.UpdatePost)
		r.Delete("/posts/{slug}", h.DeletePost)

		r.Post("/projects", h.CreateProject)
		r.Put("/projects/{slug}", h.UpdateProject)
		r.Delete("/projects/{slug}", h.DeleteProject)

		r.Post("/testimonials", h.CreateTestimonial)
		r.Put("/testimonials/{id}", h.UpdateTestimonial)
		r.Delete("/testimonials/{id}", h.DeleteTestimonial)

		r.Get("/pages", h.ListPages)
		r.Post("/pages", h.CreatePage)
		r.Put("/pages/{slug}", h.UpdatePage)
		r.Delete("/pages/{slug}", h.DeletePage)
	})

	return r
}

// optionalAuth resolves an identity when a bearer token is present but lets
// anonymous requests through untouched. The handler decides what the absence
// of a role means.
func optionalAuth(verifier middleware.TokenVerifier) func(http.Handler) http.Handler {
	authed := middleware.RequireAuth(verifier)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if middleware.BearerToken(r) == "" {
				next.ServeHTTP(w, r)
				return
			}
			authed(next).ServeHTTP(w, r)
		})
	}
}
