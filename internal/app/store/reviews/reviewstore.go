// internal/app/store/reviews/reviewstore.go
package reviewstore

import (
	"context"
	"strings"
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

// Store manages reviews and their reply threads. Replies live in their own
// collection but are owned by the review: deleting a review cascades.
type Store struct {
	c          *mongo.Collection
	replies    *mongo.Collection
	activities *mongo.Collection
	joinReqs   *mongo.Collection

	// requireCompleted gates review creation on a completed join request.
	// The observed upstream behavior is off; kept configurable.
	requireCompleted bool
}

// New creates a reviews Store.
func New(db *mongo.Database, requireCompleted bool) *Store {
	return &Store{
		c:                db.Collection("reviews"),
		replies:          db.Collection("replies"),
		activities:       db.Collection("activities"),
		joinReqs:         db.Collection("join_requests"),
		requireCompleted: requireCompleted,
	}
}

// Add stores a review. Rating 0 is the explicit "unrated" sentinel;
// anything outside [0,5] is invalid. The comment must survive
// sanitization non-empty.
func (s *Store) Add(ctx context.Context, activityID, authorID primitive.ObjectID, authorName string, rating int, comment string) (primitive.ObjectID, error) {
	if rating < 0 || rating > 5 {
		return primitive.NilObjectID, apierr.Validation("rating must be between 0 and 5")
	}
	comment = htmlsanitize.Sanitize(comment)
	if strings.TrimSpace(comment) == "" {
		return primitive.NilObjectID, apierr.Validation("comment is empty")
	}

	n, err := s.activities.CountDocuments(ctx, bson.M{"_id": activityID})
	if err != nil {
		return primitive.NilObjectID, apierr.Internal(err, "check activity")
	}
	if n == 0 {
		return primitive.NilObjectID, apierr.NotFound("activity %s not found", activityID.Hex())
	}

	if s.requireCompleted {
		done, err := s.joinReqs.CountDocuments(ctx, bson.M{
			"activity_id":  activityID,
			"volunteer_id": authorID,
			"status":       models.JoinCompleted,
		})
		if err != nil {
			return primitive.NilObjectID, apierr.Internal(err, "check completed participation")
		}
		if done == 0 {
			return primitive.NilObjectID, apierr.Authorization("reviews require a completed participation")
		}
	}

	rev := models.Review{
		ID:         primitive.NewObjectID(),
		ActivityID: activityID,
		AuthorID:   authorID,
		AuthorName: htmlsanitize.Plain(authorName),
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, rev); err != nil {
		return primitive.NilObjectID, apierr.Internal(err, "insert review")
	}
	return rev.ID, nil
}

// GetByID returns the review or a NotFound error.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
	var rev models.Review
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&rev)
	if err == mongo.ErrNoDocuments {
		return models.Review{}, apierr.NotFound("review %s not found", id.Hex())
	}
	if err != nil {
		return models.Review{}, apierr.Internal(err, "load review")
	}
	return rev, nil
}

// Delete removes a review and cascades its replies. Only the author (or a
// platform admin) may delete. The review goes first so a failed cascade
// leaves orphaned replies rather than a resurrected review; the Internal
// error tells the caller to re-fetch and reconcile.
func (s *Store) Delete(ctx context.Context, reviewID, requesterID primitive.ObjectID, requesterRole roles.Role) error {
	rev, err := s.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if rev.AuthorID != requesterID && requesterRole != roles.PlatformAdmin {
		return apierr.Authorization("only the author may delete this review")
	}

	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": reviewID}); err != nil {
		return apierr.Internal(err, "delete review")
	}
	if _, err := s.replies.DeleteMany(ctx, bson.M{"review_id": reviewID}); err != nil {
		return apierr.Internal(err, "cascade reply deletion")
	}
	return nil
}

// AddReply appends a reply under an existing review.
func (s *Store) AddReply(ctx context.Context, reviewID, authorID primitive.ObjectID, authorName string, authorRole roles.Role, replyText string) (primitive.ObjectID, error) {
	replyText = htmlsanitize.Sanitize(replyText)
	if strings.TrimSpace(replyText) == "" {
		return primitive.NilObjectID, apierr.Validation("reply text is empty")
	}

	rev, err := s.GetByID(ctx, reviewID)
	if err != nil {
		return primitive.NilObjectID, err
	}

	rep := models.Reply{
		ID:         primitive.NewObjectID(),
		ReviewID:   reviewID,
		ActivityID: rev.ActivityID,
		AuthorID:   authorID,
		AuthorName: htmlsanitize.Plain(authorName),
		AuthorRole: string(authorRole),
		Text:       replyText,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.replies.InsertOne(ctx, rep); err != nil {
		return primitive.NilObjectID, apierr.Internal(err, "insert reply")
	}
	return rep.ID, nil
}

// RatingSummary is the aggregate feeding activity reports.
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// AverageRating computes the arithmetic mean of rated reviews for an
// activity. Unrated (0) reviews count toward ReviewCount but not the
// mean. Zero reviews yields {0, 0}; there is no division by zero.
func (s *Store) AverageRating(ctx context.Context, activityID primitive.ObjectID) (RatingSummary, error) {
	cur, err := s.c.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"activity_id": activityID}},
		{"$group": bson.M{
			"_id":   nil,
			"count": bson.M{"$sum": 1},
			"rated": bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$gt": bson.A{"$rating", 0}}, 1, 0}}},
			"total": bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$gt": bson.A{"$rating", 0}}, "$rating", 0}}},
		}},
	})
	if err != nil {
		return RatingSummary{}, apierr.Internal(err, "aggregate ratings")
	}
	defer cur.Close(ctx)

	var row struct {
		Count int `bson:"count"`
		Rated int `bson:"rated"`
		Total int `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&row); err != nil {
			return RatingSummary{}, apierr.Internal(err, "decode rating aggregate")
		}
	}
	if err := cur.Err(); err != nil {
		return RatingSummary{}, apierr.Internal(err, "aggregate ratings")
	}

	out := RatingSummary{ReviewCount: row.Count}
	if row.Rated > 0 {
		out.AverageRating = float64(row.Total) / float64(row.Rated)
	}
	return out, nil
}

// ReviewWithReplies is one review annotated with its thread.
type ReviewWithReplies struct {
	models.Review `bson:",inline"`
	Replies       []models.Reply `bson:"replies" json:"replies"`
}

// Iter walks an activity's reviews lazily, loading each review's replies
// as it goes. Restart by calling ReviewsWithReplies again.
type Iter struct {
	store *Store
	cur   *mongo.Cursor
	item  ReviewWithReplies
	err   error
}

// ReviewsWithReplies returns a lazy iterator over the activity's reviews,
// newest first, each carrying its replies in insertion order.
func (s *Store) ReviewsWithReplies(ctx context.Context, activityID primitive.ObjectID) (*Iter, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"activity_id": activityID}, opts)
	if err != nil {
		return nil, apierr.Internal(err, "list reviews")
	}
	return &Iter{store: s, cur: cur}, nil
}

// Next advances the iterator. It returns false at the end of the sequence
// or on error; check Err afterwards.
func (it *Iter) Next(ctx context.Context) bool {
	if it.err != nil || !it.cur.Next(ctx) {
		it.err = firstErr(it.err, it.cur.Err())
		return false
	}

	var rev models.Review
	if err := it.cur.Decode(&rev); err != nil {
		it.err = apierr.Internal(err, "decode review")
		return false
	}

	replies, err := it.store.repliesFor(ctx, rev.ID)
	if err != nil {
		it.err = err
		return false
	}
	it.item = ReviewWithReplies{Review: rev, Replies: replies}
	return true
}

// Value returns the current review. Valid only after Next reports true.
func (it *Iter) Value() ReviewWithReplies { return it.item }

// Err returns the first error the walk hit, if any.
func (it *Iter) Err() error { return it.err }

// Close releases the underlying cursor.
func (it *Iter) Close(ctx context.Context) error { return it.cur.Close(ctx) }

// Drain consumes the rest of the iterator into a slice and closes it.
func (it *Iter) Drain(ctx context.Context) ([]ReviewWithReplies, error) {
	defer it.Close(ctx)

	out := []ReviewWithReplies{}
	for it.Next(ctx) {
		out = append(out, it.Value())
	}
	return out, it.Err()
}

func (s *Store) repliesFor(ctx context.Context, reviewID primitive.ObjectID) ([]models.Reply, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.replies.Find(ctx, bson.M{"review_id": reviewID}, opts)
	if err != nil {
		return nil, apierr.Internal(err, "list replies")
	}
	defer cur.Close(ctx)

	var out []models.Reply
	if err := cur.All(ctx, &out); err != nil {
		return nil, apierr.Internal(err, "decode replies")
	}
	return out, nil
}

// CountReplies returns the reply count for a review.
func (s *Store) CountReplies(ctx context.Context, reviewID primitive.ObjectID) (int64, error) {
	n, err := s.replies.CountDocuments(ctx, bson.M{"review_id": reviewID})
	if err != nil {
		return 0, apierr.Internal(err, "count replies")
	}
	return n, nil
}

func firstErr(a, b error) error {
	if a != nil {
		return a
	}
	if b != nil {
		return apierr.Internal(b, "walk reviews")
	}
	return nil
}
