// internal/app/features/activities/delete.go
package activities

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/authz"
	"github.com/helpinghands/volunteerhub/internal/app/system/httpjson"
	"github.com/helpinghands/volunteerhub/internal/app/system/roles"
	"github.com/helpinghands/volunteerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleDelete handles DELETE /activities/{id}.
//
// Deletion runs under the configured policy: accepted volunteers always
// block it, and pending requests either block it or are rejected in a
// cascade. Every cascade-rejected volunteer gets a notification.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Render(w, h.Log, apierr.Validation("bad activity id"))
		return
	}

	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	a, err := h.Store.GetByID(ctx, oid)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	ownerID := uid
	if role == roles.PlatformAdmin {
		ownerID = a.OwnerID
	}

	rejected, err := h.Store.Delete(ctx, oid, ownerID)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	for _, req := range rejected {
		h.Notify.JoinDecided(ctx, req, a.Name)
	}

	h.Audit.ActivityDeleted(ctx, r, uid, oid, string(h.Store.Policy()), len(rejected))
	httpjson.Write(w, http.StatusOK, map[string]any{
		"deleted":          true,
		"rejected_pending": len(rejected),
	})
}
