// Package activitypolicy provides authorization policies for activity management.
//
// Authorization rules:
//   - Platform admins can manage any activity
//   - Organization admins can manage only activities they own
//   - Volunteers can never manage activities
//   - The route middleware RequireRole handles basic role enforcement
package activitypolicy

import (
	"context"
	"net/http"

	"github.com/helpinghands/volunteerhub/internal/app/system/authz"
	"github.com/helpinghands/volunteerhub/internal/app/system/roles"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// IsOwner returns true if the given user owns the given activity according
// to the authoritative activities collection.
func IsOwner(ctx context.Context, db *mongo.Database, activityID, userID primitive.ObjectID) (bool, error) {
	c := db.Collection("activities")
	n, err := c.CountDocuments(ctx, bson.M{
		"_id":      activityID,
		"owner_id": userID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CanManageActivity reports whether the current request user can manage the
// activity. Returns an error if the database check fails, allowing callers
// to distinguish between "not authorized" (false, nil) and "database error"
// (false, err).
func CanManageActivity(ctx context.Context, db *mongo.Database, r *http.Request, activityID primitive.ObjectID) (bool, error) {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false, nil
	}
	if role == roles.PlatformAdmin {
		return true, nil
	}
	if role != roles.OrgAdmin {
		return false, nil
	}
	return IsOwner(ctx, db, activityID, uid)
}

// CanDecideJoinRequest reports whether the current request user may accept
// or reject requests for the activity. The rule is the same as management:
// platform admins always, owning org admins, nobody else.
func CanDecideJoinRequest(ctx context.Context, db *mongo.Database, r *http.Request, activityID primitive.ObjectID) (bool, error) {
	return CanManageActivity(ctx, db, r, activityID)
}
