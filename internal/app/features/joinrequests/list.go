// internal/app/features/joinrequests/list.go
package joinrequests

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"github.com/helpinghands/volunteerhub/internal/app/policy/activitypolicy"
	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/authz"
	"github.com/helpinghands/volunteerhub/internal/app/system/httpjson"
	"github.com/helpinghands/volunteerhub/internal/app/system/timeouts"
	"github.com/helpinghands/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServePending handles GET /join-requests/pending: the pending queue
// across all activities the signed-in admin owns, oldest first.
func (h *Handler) ServePending(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Store.ListPendingForOwner(ctx, uid)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}
	if list == nil {
		list = []models.JoinRequest{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"join_requests": list})
}

// ServeByActivity handles GET /join-requests/activity/{id}: every request
// on one activity, restricted to its owner or a platform admin.
func (h *Handler) ServeByActivity(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Render(w, h.Log, apierr.Validation("bad activity id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	allowed, err := activitypolicy.CanManageActivity(ctx, h.DB, r, oid)
	if err != nil {
		apierr.Render(w, h.Log, apierr.Internal(err, "authorization check"))
		return
	}
	if !allowed {
		apierr.Render(w, h.Log, apierr.Authorization("only the owning admin may list these requests"))
		return
	}

	list, err := h.Store.ListByActivity(ctx, oid)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}
	if list == nil {
		list = []models.JoinRequest{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"join_requests": list})
}

// ServeMine handles GET /join-requests/mine: the volunteer's own
// engagements, newest first.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Store.ListByVolunteer(ctx, uid)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}
	if list == nil {
		list = []models.JoinRequest{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"join_requests": list})
}

// ServeStatus handles GET /join-requests/status?activity_id=: the
// volunteer's engagement status for one activity. "not_joined" when no
// request exists.
func (h *Handler) ServeStatus(w http.ResponseWriter, r *http.Request) {
	activityID, err := primitive.ObjectIDFromHex(query.Get(r, "activity_id"))
	if err != nil {
		apierr.Render(w, h.Log, apierr.Validation("bad activity id"))
		return
	}

	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	status, err := h.Store.StatusFor(ctx, activityID, uid)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"status": status})
}
