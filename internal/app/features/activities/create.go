// internal/app/features/activities/create.go
package activities

import (
	"context"
	"net/http"
	"time"

	activitystore "github.com/helpinghands/volunteerhub/internal/app/store/activities"
	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/authz"
	"github.com/helpinghands/volunteerhub/internal/app/system/httpjson"
	"github.com/helpinghands/volunteerhub/internal/app/system/timeouts"
	"github.com/helpinghands/volunteerhub/internal/domain/models"
)

// activityRequest is the JSON body for create and update.
type activityRequest struct {
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Genre       string    `json:"genre"`
	ImageURL    string    `json:"image_url"`
}

func (req activityRequest) fields() activitystore.Fields {
	return activitystore.Fields{
		Name:        req.Name,
		Location:    req.Location,
		Date:        req.Date,
		Description: req.Description,
		Genre:       models.Genre(req.Genre),
		ImageURL:    req.ImageURL,
	}
}

// HandleCreate handles POST /activities. The signed-in org admin becomes
// the owner.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := h.Store.Create(ctx, uid, req.fields())
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}

	h.Audit.ActivityCreated(ctx, r, uid, id, req.Name)
	httpjson.Write(w, http.StatusCreated, map[string]any{"id": id.Hex()})
}
