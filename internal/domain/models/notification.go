// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification kinds, one per lifecycle event that produces a feed entry.
const (
	NotifyJoinRequested = "join_requested"
	NotifyJoinAccepted  = "join_accepted"
	NotifyJoinRejected  = "join_rejected"
	NotifyNewMessage    = "new_message"
	NotifyNewReply      = "new_reply"
)

// Notification is a derived, append-only record surfaced to a recipient
// describing a workflow event. Produced only by the dispatcher; recipients
// read it and may flip the read flag, nothing else.
type Notification struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	RecipientID   primitive.ObjectID `bson:"recipient_id" json:"recipient_id"`
	RecipientRole string             `bson:"recipient_role" json:"recipient_role"`
	Kind          string             `bson:"kind" json:"kind"`
	Message       string             `bson:"message" json:"message"`

	// Related entity references for client-side navigation.
	ActivityID primitive.ObjectID  `bson:"activity_id" json:"activity_id"`
	EntityID   *primitive.ObjectID `bson:"entity_id,omitempty" json:"entity_id,omitempty"`

	// DedupeKey lets at-least-once emitters insert safely; it is unique
	// per dispatch, not per event read.
	DedupeKey string `bson:"dedupe_key" json:"-"`

	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
