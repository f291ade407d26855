// internal/app/features/activities/list.go
package activities

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/authz"
	"github.com/helpinghands/volunteerhub/internal/app/system/httpjson"
	"github.com/helpinghands/volunteerhub/internal/app/system/timeouts"
	"github.com/helpinghands/volunteerhub/internal/domain/models"
)

// ServeList handles GET /activities?genre=&search=.
//
// Both parameters are optional; genre filters exactly, search matches a
// case-folded name prefix.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	genre := models.Genre(query.Get(r, "genre"))
	search := query.Get(r, "search")

	list, err := h.Store.List(ctx, genre, search)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}
	if list == nil {
		list = []models.Activity{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"activities": list})
}

// ServeMine handles GET /activities/mine for org admins: the activities
// owned by the signed-in admin, newest first.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Render(w, h.Log, apierr.Authorization("sign in required"))
		return
	}

	list, err := h.Store.ListByOwner(ctx, uid)
	if err != nil {
		apierr.Render(w, h.Log, err)
		return
	}
	if list == nil {
		list = []models.Activity{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"activities": list})
}
