// internal/app/features/notifications/feed.go
package notifications

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/authz"
	"github.com/helpinghands/volunteerhub/internal/app/system/httpjson"
	"github.com/helpinghands/volunteerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeFeed handles GET /notifications?limit=: the signed-in user's
// feed for their current role, newest first.
func (h *Handler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	var limit int64
	if raw := query.Get(r, "limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			apierr.Render(w, h.Log, apierr.Validation("bad limit"))
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Store.ListForRecipient(ctx, uid, string(role), limit)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"notifications": list})
}

// ServeUnreadCount handles GET /notifications/unread_count.
func (h *Handler) ServeUnreadCount(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Store.CountUnread(ctx, uid)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"unread": n})
}

// HandleMarkRead handles POST /notifications/{id}/read. Recipients may
// only mark their own notifications.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Render(w, h.Log, apierr.Validation("bad notification id"))
		return
	}

	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.MarkRead(ctx, oid, uid); err != nil {
		apierr.Render(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"read": true})
}
