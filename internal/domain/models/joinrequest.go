// internal/domain/models/joinrequest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JoinStatus is the lifecycle state of a join request.
//
// Legal transitions: pending→accepted, pending→rejected, accepted→completed.
// Rejected and completed are terminal.
type JoinStatus string

const (
	JoinPending   JoinStatus = "pending"
	JoinAccepted  JoinStatus = "accepted"
	JoinRejected  JoinStatus = "rejected"
	JoinCompleted JoinStatus = "completed"

	// JoinNotJoined is the API answer when no request exists. It is never
	// stored.
	JoinNotJoined JoinStatus = "not_joined"
)

// Terminal reports whether no transition leaves s.
func (s JoinStatus) Terminal() bool {
	return s == JoinRejected || s == JoinCompleted
}

// JoinRequest is a volunteer's application to participate in an activity.
// Exactly one document per (activity_id, volunteer_id), enforced by a
// unique index. Requests are never deleted, only transitioned.
type JoinRequest struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	ActivityID  primitive.ObjectID `bson:"activity_id" json:"activity_id"`
	VolunteerID primitive.ObjectID `bson:"volunteer_id" json:"volunteer_id"`
	Profile     ProfileSnapshot    `bson:"profile" json:"profile"`
	Status      JoinStatus         `bson:"status" json:"status"`

	// DecidedBy records the admin who accepted or rejected the request.
	// Nil while pending, and for sweep-driven completions.
	DecidedBy *primitive.ObjectID `bson:"decided_by,omitempty" json:"decided_by,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
