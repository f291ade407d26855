// internal/domain/models/review.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RatingUnset is the sentinel rating for a review whose author explicitly
// abstained from scoring. Unrated reviews count toward review totals but
// are excluded from rating averages.
const RatingUnset = 0

// Review is post-activity feedback authored by a volunteer. Reviews are
// never edited; they are created or deleted by their author.
type Review struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	ActivityID primitive.ObjectID `bson:"activity_id" json:"activity_id"`
	AuthorID   primitive.ObjectID `bson:"author_id" json:"author_id"`
	AuthorName string             `bson:"author_name" json:"author_name"`
	Rating     int                `bson:"rating" json:"rating"` // 0 (unrated) or 1..5
	Comment    string             `bson:"comment" json:"comment"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// Reply is a threaded response under a review. Replies are owned by the
// review and cascade-deleted with it.
type Reply struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	ReviewID   primitive.ObjectID `bson:"review_id" json:"review_id"`
	ActivityID primitive.ObjectID `bson:"activity_id" json:"activity_id"`
	AuthorID   primitive.ObjectID `bson:"author_id" json:"author_id"`
	AuthorName string             `bson:"author_name" json:"author_name"`
	AuthorRole string             `bson:"author_role" json:"author_role"`
	Text       string             `bson:"text" json:"text"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
