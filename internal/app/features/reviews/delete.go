// internal/app/features/reviews/delete.go
package reviews

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/authz"
	"github.com/helpinghands/volunteerhub/internal/app/system/httpjson"
	"github.com/helpinghands/volunteerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleDelete handles DELETE /reviews/{id}. The review's replies go with
// it; only the author or a platform admin may delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Render(w, h.Log, apierr.Validation("bad review id"))
		return
	}

	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rev, err := h.Store.GetByID(ctx, oid)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	if err := h.Store.Delete(ctx, oid, uid, role); err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	h.Audit.ReviewDeleted(ctx, r, uid, rev.ActivityID, oid, string(role))
	httpjson.Write(w, http.StatusOK, map[string]any{"deleted": true})
}
