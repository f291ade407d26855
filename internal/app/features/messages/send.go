// internal/app/features/messages/send.go
package messages

import (
	"context"
	"net/http"

	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/authz"
	"github.com/helpinghands/volunteerhub/internal/app/system/httpjson"
	"github.com/helpinghands/volunteerhub/internal/app/system/roles"
	"github.com/helpinghands/volunteerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleSend handles POST /messages.
//
// Body: { "activity_id": "...", "counterpart_id": "...", "text": "..." }.
// The message lands in the (activity, sender, counterpart) channel and
// the counterpart gets a notification.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActivityID    string `json:"activity_id"`
		CounterpartID string `json:"counterpart_id"`
		Text          string `json:"text"`
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
	counterpartID, err := primitive.ObjectIDFromHex(req.CounterpartID)
	if err != nil {
		apierr.Render(w, h.Log, apierr.Validation("bad counterpart id"))
		return
	}

	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	msg, err := h.Store.Send(ctx, activityID, uid, counterpartID, name, role, req.Text)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	// Best effort: the message is already committed, so a failed lookup
	// only costs the notification.
	recipientRole := roles.Volunteer
	if u, err := h.Users.GetByID(ctx, counterpartID); err == nil {
		if parsed, ok := roles.Parse(u.Role); ok {
			recipientRole = parsed
		}
	}
	activityName := ""
	if a, err := h.Activities.GetByID(ctx, activityID); err == nil {
		activityName = a.Name
	}
	h.Notify.MessageReceived(ctx, msg, recipientRole, activityName)

	httpjson.Write(w, http.StatusCreated, msg)
}
