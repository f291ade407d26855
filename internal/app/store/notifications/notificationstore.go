// internal/app/store/notifications/notificationstore.go
package notificationstore

import (
	"context"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists the append-only notification feed. Only the dispatcher
// writes here; recipients read and flip the read flag, nothing else.
type Store struct {
	c *mongo.Collection
}

// New creates a notifications Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notifications")}
}

// Insert appends a notification. A duplicate dedupe key means the same
// dispatch already landed; that is success, not an error.
func (s *Store) Insert(ctx context.Context, n models.Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, n); err != nil {
		if wafflemongo.IsDup(err) {
			return nil
		}
		return apierr.Internal(err, "insert notification")
	}
	return nil
}

// ListForRecipient returns the recipient's feed, newest first. A limit of
// 0 means no limit.
func (s *Store) ListForRecipient(ctx context.Context, recipientID primitive.ObjectID, recipientRole string, limit int64) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := s.c.Find(ctx, bson.M{
		"recipient_id":   recipientID,
		"recipient_role": recipientRole,
	}, opts)
	if err != nil {
		return nil, apierr.Internal(err, "list notifications")
	}
	defer cur.Close(ctx)

	out := []models.Notification{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apierr.Internal(err, "decode notifications")
	}
	return out, nil
}

// MarkRead flips the read flag. Only the recipient may mark their own
// notification; anyone else sees NotFound rather than a hint that the id
// exists.
func (s *Store) MarkRead(ctx context.Context, id, recipientID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "recipient_id": recipientID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return apierr.Internal(err, "mark notification read")
	}
	if res.MatchedCount == 0 {
		return apierr.NotFound("notification %s not found", id.Hex())
	}
	return nil
}

// CountUnread returns the number of unread notifications for a recipient.
func (s *Store) CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "read": false})
	if err != nil {
		return 0, apierr.Internal(err, "count unread notifications")
	}
	return n, nil
}
