// Package reviewpolicy provides authorization policies for reviews and replies.
//
// Authorization rules:
//   - Any volunteer may post a review; an optional gate restricts posting to
//     volunteers with a completed engagement on the activity
//   - A review may be deleted only by its author or a platform admin
//   - Replies are open to the review author, the activity owner, and platform admins
package reviewpolicy

import (
	"context"
	"net/http"

	"github.com/helpinghands/volunteerhub/internal/app/system/authz"
	"github.com/helpinghands/volunteerhub/internal/app/system/roles"
	"github.com/helpinghands/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CanDeleteReview reports whether the current request user may delete the
// review. No database access needed: the loaded review carries its author.
func CanDeleteReview(r *http.Request, review models.Review) bool {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	if role == roles.PlatformAdmin {
		return true
	}
	return uid == review.AuthorID
}

// CanReply reports whether the current request user may reply under the
// review. Returns an error if the database check fails, allowing callers
// to distinguish between "not authorized" (false, nil) and "database error"
// (false, err).
func CanReply(ctx context.Context, db *mongo.Database, r *http.Request, review models.Review) (bool, error) {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false, nil
	}
	if role == roles.PlatformAdmin {
		return true, nil
	}
	if uid == review.AuthorID {
		return true, nil
	}
	if role != roles.OrgAdmin {
		return false, nil
	}
	return ownsActivity(ctx, db, review.ActivityID, uid)
}

func ownsActivity(ctx context.Context, db *mongo.Database, activityID, userID primitive.ObjectID) (bool, error) {
	n, err := db.Collection("activities").CountDocuments(ctx, bson.M{
		"_id":      activityID,
		"owner_id": userID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
