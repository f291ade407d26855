// internal/domain/models/activity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Genre classifies a volunteering activity.
type Genre string

const (
	GenrePhilanthropy     Genre = "philanthropy"
	GenreServiceLearning  Genre = "service-learning"
	GenreCommunityService Genre = "community-service"
	GenreSocialAction     Genre = "social-action"
)

// ValidGenre reports whether g is one of the known activity genres.
func ValidGenre(g Genre) bool {
	switch g {
	case GenrePhilanthropy, GenreServiceLearning, GenreCommunityService, GenreSocialAction:
		return true
	}
	return false
}

// Activity is a volunteering opportunity posted by an organization admin.
// Mutable only by its owner.
type Activity struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Location    string             `bson:"location" json:"location"`
	Date        time.Time          `bson:"date" json:"date"`
	Description string             `bson:"description" json:"description"`
	Genre       Genre              `bson:"genre" json:"genre"`

	// ImageURL points at externally stored media; the core never touches
	// the bytes.
	ImageURL string `bson:"image_url,omitempty" json:"image_url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
