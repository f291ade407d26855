// internal/app/features/joinrequests/submit.go
package joinrequests

import (
	"context"
	"net/http"

	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/authz"
	"github.com/helpinghands/volunteerhub/internal/app/system/httpjson"
	"github.com/helpinghands/volunteerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleSubmit handles POST /join-requests.
//
// Body: { "activity_id": "..." }. The profile snapshot is taken from the
// volunteer's stored profile at submission time; an incomplete profile
// fails validation before anything is written.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActivityID string `json:"activity_id"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	activityID, err := primitive.ObjectIDFromHex(req.ActivityID)
	if err != nil {
		apierr.Render(w, h.Log, apierr.Validation("bad activity id"))
		return
	}

	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	snap, err := h.Users.Snapshot(ctx, uid)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	jr, err := h.Store.Submit(ctx, activityID, uid, snap)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	if a, err := h.Activities.GetByID(ctx, activityID); err == nil {
		h.Notify.JoinRequested(ctx, a.OwnerID, jr, a.Name)
	}
	h.Audit.JoinRequested(ctx, r, uid, activityID, jr.ID)

	httpjson.Write(w, http.StatusCreated, jr)
}
