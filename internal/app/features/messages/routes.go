// internal/app/features/messages/routes.go
package messages

import (
	"github.com/go-chi/chi/v5"
	"github.com/helpinghands/volunteerhub/internal/app/system/auth"
)

// Routes mounts all Messaging routes under the base path
// (typically "/messages" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Post("/", h.HandleSend)
		pr.Get("/activity/{id}", h.ServeConversation)
		pr.Get("/activity/{id}/conversations", h.ServeConversations)
	})

	return r
}
