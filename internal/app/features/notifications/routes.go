// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/go-chi/chi/v5"
	"github.com/helpinghands/volunteerhub/internal/app/system/auth"
)

// Routes mounts all Notification routes under the base path
// (typically "/notifications" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeFeed)
		pr.Get("/unread_count", h.ServeUnreadCount)
		pr.Post("/{id}/read", h.HandleMarkRead)
	})

	return r
}
