package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FolioForge/portfolio-backend/internal/middleware"
)

func SetupRoutes(h *Handler, verifier middleware.TokenVerifier) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListPublic)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(verifier))
		r.Use(middleware.RequireAdmin)

		r.Get("/all", h.ListAll)
		r.Put("/{key}", h.UpsertSetting)
		r.Delete("/{key}", h.DeleteSetting)
	})

	return r
}
