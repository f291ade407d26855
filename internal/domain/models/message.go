// internal/domain/models/message.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is one entry in the per-(activity, counterpart) conversation log.
// The log is append-only: messages are never edited or deleted, and the
// channel does not deduplicate rapid identical sends.
type Message struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	ActivityID    primitive.ObjectID `bson:"activity_id" json:"activity_id"`
	SenderID      primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	CounterpartID primitive.ObjectID `bson:"counterpart_id" json:"counterpart_id"`
	SenderName    string             `bson:"sender_name" json:"sender_name"`
	SenderRole    string             `bson:"sender_role" json:"sender_role"`
	Text          string             `bson:"text" json:"text"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
