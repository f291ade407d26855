// internal/app/features/activities/view.go
package activities

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/httpjson"
	"github.com/helpinghands/volunteerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeView handles GET /activities/{id}: the activity plus its rating
// summary.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Render(w, h.Log, apierr.Validation("bad activity id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := h.Store.GetByID(ctx, oid)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	summary, err := h.Reviews.AverageRating(ctx, oid)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"activity": a,
		"rating":   summary,
	})
}
