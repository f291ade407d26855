// internal/app/features/reviews/list.go
package reviews

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/httpjson"
	"github.com/helpinghands/volunteerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeByActivity handles GET /reviews/activity/{id}: reviews newest
// first, each with its reply thread, plus the rating summary.
func (h *Handler) ServeByActivity(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Render(w, h.Log, apierr.Validation("bad activity id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Activities.GetByID(ctx, oid); err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	it, err := h.Store.ReviewsWithReplies(ctx, oid)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}
	list, err := it.Drain(ctx)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	summary, err := h.Store.AverageRating(ctx, oid)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"reviews": list,
		"rating":  summary,
	})
}
