// internal/app/store/messages/messagestore.go
package messagestore

import (
	"context"
	"time"

	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/htmlsanitize"
	"github.com/helpinghands/volunteerhub/internal/app/system/roles"
	"github.com/helpinghands/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the append-only message log. A channel is keyed by
// (activity, {sender, counterpart}); both participants see the same
// ordered sequence. Messages are never edited or deleted, and identical
// rapid sends are not deduplicated.
type Store struct {
	c          *mongo.Collection
	activities *mongo.Collection
}

// New creates a messages Store.
func New(db *mongo.Database) *Store {
	return &Store{
		c:          db.Collection("messages"),
		activities: db.Collection("activities"),
	}
}

// Send appends a message with a server-assigned timestamp and returns the
// stored record.
func (s *Store) Send(ctx context.Context, activityID, senderID, counterpartID primitive.ObjectID, senderName string, senderRole roles.Role, msgText string) (models.Message, error) {
	msgText = htmlsanitize.Plain(msgText)
	if msgText == "" {
		return models.Message{}, apierr.Validation("message text is empty")
	}
	if senderID == counterpartID {
		return models.Message{}, apierr.Validation("cannot message yourself")
	}

	n, err := s.activities.CountDocuments(ctx, bson.M{"_id": activityID})
	if err != nil {
		return models.Message{}, apierr.Internal(err, "check activity")
	}
	if n == 0 {
		return models.Message{}, apierr.NotFound("activity %s not found", activityID.Hex())
	}

	msg := models.Message{
		ID:            primitive.NewObjectID(),
		ActivityID:    activityID,
		SenderID:      senderID,
		CounterpartID: counterpartID,
		SenderName:    htmlsanitize.Plain(senderName),
		SenderRole:    string(senderRole),
		Text:          msgText,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, msg); err != nil {
		return models.Message{}, apierr.Internal(err, "insert message")
	}
	return msg, nil
}

// List returns the conversation between a and b on the activity, oldest
// first with _id as tiebreak, so both participants observe an identical
// ordered log.
func (s *Store) List(ctx context.Context, activityID, a, b primitive.ObjectID) ([]models.Message, error) {
	filter := bson.M{
		"activity_id": activityID,
		"$or": bson.A{
			bson.M{"sender_id": a, "counterpart_id": b},
			bson.M{"sender_id": b, "counterpart_id": a},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, apierr.Internal(err, "list messages")
	}
	defer cur.Close(ctx)

	out := []models.Message{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apierr.Internal(err, "decode messages")
	}
	return out, nil
}

// Conversations returns the distinct identities selfID has exchanged at
// least one message with on the activity.
func (s *Store) Conversations(ctx context.Context, activityID, selfID primitive.ObjectID) ([]primitive.ObjectID, error) {
	sent, err := s.c.Distinct(ctx, "counterpart_id", bson.M{"activity_id": activityID, "sender_id": selfID})
	if err != nil {
		return nil, apierr.Internal(err, "distinct counterparts")
	}
	received, err := s.c.Distinct(ctx, "sender_id", bson.M{"activity_id": activityID, "counterpart_id": selfID})
	if err != nil {
		return nil, apierr.Internal(err, "distinct senders")
	}

	seen := make(map[primitive.ObjectID]struct{})
	out := []primitive.ObjectID{}
	for _, raw := range append(sent, received...) {
		id, ok := raw.(primitive.ObjectID)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
