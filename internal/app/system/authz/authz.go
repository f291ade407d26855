// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/helpinghands/volunteerhub/internal/app/system/auth"
	"github.com/helpinghands/volunteerhub/internal/app/system/roles"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the request user's role, display name, ObjectID, and a
// found flag. ok=true guarantees a valid ObjectID and a recognized role;
// a malformed id or unknown role string fails closed.
func UserCtx(r *http.Request) (role roles.Role, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return "", "", primitive.NilObjectID, false
	}
	role, ok = roles.Parse(user.Role)
	if !ok {
		return "", "", primitive.NilObjectID, false
	}
	return role, user.Name, userID, true
}

// IsPlatformAdmin reports whether the current user is a platform admin.
func IsPlatformAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == roles.PlatformAdmin
}

// IsOrgAdmin reports whether the current user is an organization admin.
func IsOrgAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == roles.OrgAdmin
}

// IsVolunteer reports whether the current user is a volunteer.
func IsVolunteer(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == roles.Volunteer
}
