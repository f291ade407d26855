// internal/app/features/activities/routes.go
package activities

import (
	"github.com/go-chi/chi/v5"
	"github.com/helpinghands/volunteerhub/internal/app/system/auth"
	"github.com/helpinghands/volunteerhub/internal/app/system/roles"
)

// Routes mounts all Activity routes under the base path
// (typically "/activities" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Browse endpoints - any signed-in user
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeView)
	})

	// Management endpoints - owning org admins and platform admins
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(roles.OrgAdmin, roles.PlatformAdmin))

		pr.Get("/mine", h.ServeMine)
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
