// internal/app/features/joinrequests/routes.go
package joinrequests

import (
	"github.com/go-chi/chi/v5"
	"github.com/helpinghands/volunteerhub/internal/app/system/auth"
	"github.com/helpinghands/volunteerhub/internal/app/system/roles"
)

// Routes mounts all Join Request routes under the base path
// (typically "/join-requests" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Volunteer endpoints
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(roles.Volunteer))

		pr.Post("/", h.HandleSubmit)
		pr.Get("/mine", h.ServeMine)
		pr.Get("/status", h.ServeStatus)
	})

	// Decision endpoints - owning org admins and platform admins.
	// Ownership is enforced per request inside the store.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(roles.OrgAdmin, roles.PlatformAdmin))

		pr.Get("/pending", h.ServePending)
		pr.Get("/activity/{id}", h.ServeByActivity)
		pr.Post("/{id}/accept", h.HandleAccept)
		pr.Post("/{id}/reject", h.HandleReject)
	})

	// Completion is open to all roles; the store decides who may complete
	// which request and when.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/{id}/complete", h.HandleComplete)
	})

	return r
}
