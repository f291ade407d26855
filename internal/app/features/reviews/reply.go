// internal/app/features/reviews/reply.go
package reviews

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helpinghands/volunteerhub/internal/app/policy/reviewpolicy"
	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/authz"
	"github.com/helpinghands/volunteerhub/internal/app/system/httpjson"
	"github.com/helpinghands/volunteerhub/internal/app/system/timeouts"
	"github.com/helpinghands/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleReply handles POST /reviews/{id}/replies.
//
// Body: { "text": "..." }. Open to the review author, the activity's
// owning admin, and platform admins. The review author gets a
// notification unless they replied themselves.
func (h *Handler) HandleReply(w http.ResponseWriter, r *http.Request) {
	reviewID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Render(w, h.Log, apierr.Validation("bad review id"))
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rev, err := h.Store.GetByID(ctx, reviewID)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	allowed, err := reviewpolicy.CanReply(ctx, h.DB, r, rev)
	if err != nil {
		apierr.Render(w, h.Log, apierr.Internal(err, "authorization check"))
		return
	}
	if !allowed {
		apierr.Render(w, h.Log, apierr.Authorization("you may not reply to this review"))
		return
	}

	replyID, err := h.Store.AddReply(ctx, reviewID, uid, name, role, req.Text)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	activityName := ""
	if a, err := h.Activities.GetByID(ctx, rev.ActivityID); err == nil {
		activityName = a.Name
	}
	h.Notify.ReplyPosted(ctx, rev, models.Reply{
		ID:         replyID,
		ReviewID:   reviewID,
		ActivityID: rev.ActivityID,
		AuthorID:   uid,
		AuthorName: name,
	}, activityName)

	httpjson.Write(w, http.StatusCreated, map[string]any{"id": replyID.Hex()})
}
