// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an identity record seeded by the external auth system.
// The core never creates users; it reads them for authorization checks
// and to snapshot volunteer profiles onto join requests.
type User struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"`
	Email      string             `bson:"email" json:"email"`
	EmailCI    string             `bson:"email_ci" json:"-"`
	Role       string             `bson:"role" json:"role"` // see system/roles
	Status     string             `bson:"status" json:"status"`

	// Volunteer profile fields (empty for admins).
	Strength   string   `bson:"strength,omitempty" json:"strength,omitempty"`
	Experience string   `bson:"experience,omitempty" json:"experience,omitempty"`
	Interests  []string `bson:"interests,omitempty" json:"interests,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ProfileSnapshot is the volunteer profile captured on a join request at
// submission time. It is a copy, not a reference: later profile edits do
// not rewrite history.
type ProfileSnapshot struct {
	Name       string   `bson:"name" json:"name"`
	Email      string   `bson:"email" json:"email"`
	Strength   string   `bson:"strength" json:"strength"`
	Experience string   `bson:"experience" json:"experience"`
	Interests  []string `bson:"interests" json:"interests"`
}
