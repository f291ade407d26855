// internal/app/features/reviews/create.go
package reviews

import (
	"context"
	"net/http"

	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/authz"
	"github.com/helpinghands/volunteerhub/internal/app/system/httpjson"
	"github.com/helpinghands/volunteerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleCreate handles POST /reviews.
//
// Body: { "activity_id": "...", "rating": 0-5, "comment": "..." }.
// Rating 0 means the author chose not to rate; it is excluded from the
// activity's average.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActivityID string `json:"activity_id"`
		Rating     int    `json:"rating"`
		Comment    string `json:"comment"`
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

	_, name, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := h.Store.Add(ctx, activityID, uid, name, req.Rating, req.Comment)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{"id": id.Hex()})
}
