// internal/app/features/reviews/routes.go
package reviews

import (
	"github.com/go-chi/chi/v5"
	"github.com/helpinghands/volunteerhub/internal/app/system/auth"
	"github.com/helpinghands/volunteerhub/internal/app/system/roles"
)

// Routes mounts all Review routes under the base path
// (typically "/reviews" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Reading is open to any signed-in user.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/activity/{id}", h.ServeByActivity)
	})

	// Posting reviews is a volunteer action.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(roles.Volunteer))
		pr.Post("/", h.HandleCreate)
	})

	// Deletion and replies check fine-grained rules per review.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Post("/{id}/replies", h.HandleReply)
	})

	return r
}
