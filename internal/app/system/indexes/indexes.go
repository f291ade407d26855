// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureActivities(ctx, db); err != nil {
		problems = append(problems, "activities: "+err.Error())
	}
	if err := ensureJoinRequests(ctx, db); err != nil {
		problems = append(problems, "join_requests: "+err.Error())
	}
	if err := ensureReviews(ctx, db); err != nil {
		problems = append(problems, "reviews: "+err.Error())
	}
	if err := ensureReplies(ctx, db); err != nil {
		problems = append(problems, "replies: "+err.Error())
	}
	if err := ensureMessages(ctx, db); err != nil {
		problems = append(problems, "messages: "+err.Error())
	}
	if err := ensureNotifications(ctx, db); err != nil {
		problems = append(problems, "notifications: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameUnique(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing := map[string]existingIndex{} // key signature -> index
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		for cur.Next(ctx) {
			var idx existingIndex
			if err := cur.Decode(&idx); err != nil {
				zap.L().Warn("failed to decode existing index",
					zap.String("collection", coll.Name()),
					zap.Error(err))
				continue
			}
			existing[keySig(idx.Key)] = idx
		}
		cur.Close(ctx)
	}

	var errs []string
	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		desiredSig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[desiredSig]; ok {
			if sameUnique(desiredUnique, ex.Unique) {
				continue
			}
			// Options mismatch (e.g. upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                             */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_emailci"),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_users_role_status"),
		},
	})
}

func ensureActivities(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("activities")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Owner dashboards, newest-first listings
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_activities_owner_created"),
		},
		// Browse by genre with stable name ordering
		{
			Keys: bson.D{
				{Key: "genre", Value: 1},
				{Key: "name_ci", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_activities_genre_nameci__id"),
		},
		// Name prefix search
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_activities_nameci__id"),
		},
		// Sweep scan for past-due activities
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName("idx_activities_date"),
		},
	})
}

func ensureJoinRequests(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("join_requests")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Uniqueness: one request per (activity, volunteer), ever.
		{
			Keys:    bson.D{{Key: "activity_id", Value: 1}, {Key: "volunteer_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_joinreq_activity_volunteer"),
		},
		// Pending queues per activity, oldest-first
		{
			Keys: bson.D{
				{Key: "activity_id", Value: 1},
				{Key: "status", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().SetName("idx_joinreq_activity_status_created"),
		},
		// A volunteer's own engagements
		{
			Keys:    bson.D{{Key: "volunteer_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_joinreq_volunteer_created"),
		},
	})
}

func ensureReviews(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("reviews")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Per-activity listing, newest-first; also feeds the rating aggregation
		{
			Keys:    bson.D{{Key: "activity_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_reviews_activity_created"),
		},
		{
			Keys:    bson.D{{Key: "author_id", Value: 1}},
			Options: options.Index().SetName("idx_reviews_author"),
		},
	})
}

func ensureReplies(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("replies")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Per-review thread, oldest-first; also the cascade-delete path
		{
			Keys:    bson.D{{Key: "review_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_replies_review_created"),
		},
	})
}

func ensureMessages(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("messages")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Channel reads: both directions of (activity, sender, counterpart)
		{
			Keys: bson.D{
				{Key: "activity_id", Value: 1},
				{Key: "sender_id", Value: 1},
				{Key: "counterpart_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().SetName("idx_messages_activity_sender_counterpart_created"),
		},
		{
			Keys: bson.D{
				{Key: "activity_id", Value: 1},
				{Key: "counterpart_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().SetName("idx_messages_activity_counterpart_created"),
		},
	})
}

func ensureNotifications(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("notifications")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// At-least-once dispatch safety
		{
			Keys:    bson.D{{Key: "dedupe_key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_notifications_dedupe"),
		},
		// Feed reads, newest-first
		{
			Keys: bson.D{
				{Key: "recipient_id", Value: 1},
				{Key: "recipient_role", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_notifications_recipient_role_created"),
		},
		// Unread badge counts
		{
			Keys:    bson.D{{Key: "recipient_id", Value: 1}, {Key: "read", Value: 1}},
			Options: options.Index().SetName("idx_notifications_recipient_read"),
		},
	})
}
