// internal/app/features/joinrequests/decide.go
package joinrequests

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/authz"
	"github.com/helpinghands/volunteerhub/internal/app/system/httpjson"
	"github.com/helpinghands/volunteerhub/internal/app/system/timeouts"
	"github.com/helpinghands/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleAccept handles POST /join-requests/{id}/accept.
func (h *Handler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

// HandleReject handles POST /join-requests/{id}/reject.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, accept bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Render(w, h.Log, apierr.Validation("bad join request id"))
		return
	}

	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var jr models.JoinRequest
	if accept {
		jr, err = h.Store.Accept(ctx, oid, uid, role)
	} else {
		jr, err = h.Store.Reject(ctx, oid, uid, role)
	}
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	activityName := ""
	if a, err := h.Activities.GetByID(ctx, jr.ActivityID); err == nil {
		activityName = a.Name
	}
	h.Notify.JoinDecided(ctx, jr, activityName)
	h.Audit.JoinDecided(ctx, r, uid, jr.ActivityID, jr.ID, accept, string(role))

	httpjson.Write(w, http.StatusOK, jr)
}

// HandleComplete handles POST /join-requests/{id}/complete.
//
// Owners and platform admins may complete an accepted request at any time;
// the volunteer may self-complete once the activity date has passed.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Render(w, h.Log, apierr.Validation("bad join request id"))
		return
	}

	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	jr, err := h.Store.Complete(ctx, oid, uid, role)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	h.Audit.JoinCompleted(ctx, r, uid, jr.ActivityID, jr.ID, string(role))
	httpjson.Write(w, http.StatusOK, jr)
}
