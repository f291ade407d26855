// internal/app/system/notify/dispatcher.go
package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	notificationstore "github.com/helpinghands/volunteerhub/internal/app/store/notifications"
	"github.com/helpinghands/volunteerhub/internal/app/system/roles"
	"github.com/helpinghands/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Dispatcher fans workflow events out into per-recipient notification
// feeds. Dispatch runs after the triggering write has committed, so a
// failed insert never rolls the workflow back: failures are logged and
// swallowed.
type Dispatcher struct {
	store *notificationstore.Store
	log   *zap.Logger
}

// New creates a Dispatcher.
func New(store *notificationstore.Store, log *zap.Logger) *Dispatcher {
	return &Dispatcher{store: store, log: log}
}

func (d *Dispatcher) insert(ctx context.Context, n models.Notification) {
	if d == nil {
		return
	}
	if n.DedupeKey == "" {
		n.DedupeKey = uuid.NewString()
	}
	if err := d.store.Insert(ctx, n); err != nil {
		d.log.Error("notification dispatch failed",
			zap.Error(err),
			zap.String("kind", n.Kind),
			zap.String("recipient_id", n.RecipientID.Hex()),
		)
	}
}

// JoinRequested notifies the activity owner that a volunteer applied.
func (d *Dispatcher) JoinRequested(ctx context.Context, ownerID primitive.ObjectID, req models.JoinRequest, activityName string) {
	d.insert(ctx, models.Notification{
		RecipientID:   ownerID,
		RecipientRole: string(roles.OrgAdmin),
		Kind:          models.NotifyJoinRequested,
		Message:       fmt.Sprintf("%s requested to join %q", req.Profile.Name, activityName),
		ActivityID:    req.ActivityID,
		EntityID:      &req.ID,
	})
}

// JoinDecided notifies the volunteer of an accept or reject decision.
func (d *Dispatcher) JoinDecided(ctx context.Context, req models.JoinRequest, activityName string) {
	kind := models.NotifyJoinRejected
	verb := "rejected"
	if req.Status == models.JoinAccepted {
		kind = models.NotifyJoinAccepted
		verb = "accepted"
	}
	d.insert(ctx, models.Notification{
		RecipientID:   req.VolunteerID,
		RecipientRole: string(roles.Volunteer),
		Kind:          kind,
		Message:       fmt.Sprintf("your request to join %q was %s", activityName, verb),
		ActivityID:    req.ActivityID,
		EntityID:      &req.ID,
	})
}

// MessageReceived notifies the counterpart of a new channel message.
func (d *Dispatcher) MessageReceived(ctx context.Context, msg models.Message, recipientRole roles.Role, activityName string) {
	d.insert(ctx, models.Notification{
		RecipientID:   msg.CounterpartID,
		RecipientRole: string(recipientRole),
		Kind:          models.NotifyNewMessage,
		Message:       fmt.Sprintf("new message from %s about %q", msg.SenderName, activityName),
		ActivityID:    msg.ActivityID,
		EntityID:      &msg.ID,
	})
}

// ReplyPosted notifies the review author that someone replied. No
// notification is produced when authors reply under their own review.
func (d *Dispatcher) ReplyPosted(ctx context.Context, review models.Review, reply models.Reply, activityName string) {
	if review.AuthorID == reply.AuthorID {
		return
	}
	d.insert(ctx, models.Notification{
		RecipientID:   review.AuthorID,
		RecipientRole: string(roles.Volunteer),
		Kind:          models.NotifyNewReply,
		Message:       fmt.Sprintf("%s replied to your review of %q", reply.AuthorName, activityName),
		ActivityID:    review.ActivityID,
		EntityID:      &reply.ID,
	})
}
