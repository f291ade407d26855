// internal/app/features/messages/list.go
package messages

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/authz"
	"github.com/helpinghands/volunteerhub/internal/app/system/httpjson"
	"github.com/helpinghands/volunteerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeConversation handles GET /messages/activity/{id}?counterpart=:
// the full two-way conversation between the signed-in user and the
// counterpart about one activity, oldest first.
func (h *Handler) ServeConversation(w http.ResponseWriter, r *http.Request) {
	activityID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Render(w, h.Log, apierr.Validation("bad activity id"))
		return
	}
	counterpartID, err := primitive.ObjectIDFromHex(query.Get(r, "counterpart"))
	if err != nil {
		apierr.Render(w, h.Log, apierr.Validation("bad counterpart id"))
		return
	}

	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Store.List(ctx, activityID, uid, counterpartID)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"messages": list})
}

// ServeConversations handles GET /messages/activity/{id}/conversations:
// the ids of everyone the signed-in user has exchanged messages with
// about the activity.
func (h *Handler) ServeConversations(w http.ResponseWriter, r *http.Request) {
	activityID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
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

	ids, err := h.Store.Conversations(ctx, activityID, uid)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"counterparts": out})
}
