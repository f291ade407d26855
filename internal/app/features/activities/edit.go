// internal/app/features/activities/edit.go
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

// HandleUpdate handles PUT /activities/{id}. Org admins may update only
// their own activities; platform admins may update any.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Render(w, h.Log, apierr.Validation("bad activity id"))
		return
	}

	var req activityRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// The store's write carries an ownership filter. Platform admins have
	// no ownership, so resolve the real owner first for them.
	ownerID := uid
	if role == roles.PlatformAdmin {
		a, err := h.Store.GetByID(ctx, oid)
		if err != nil {
			apierr.Render(w, h.Log, err)
			return
		}
		ownerID = a.OwnerID
	}

	if err := h.Store.Update(ctx, oid, ownerID, req.fields()); err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	h.Audit.ActivityUpdated(ctx, r, uid, oid)
	httpjson.Write(w, http.StatusOK, map[string]any{"id": oid.Hex()})
}
