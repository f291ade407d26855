// internal/app/store/activities/activitystore.go
package activitystore

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/htmlsanitize"
	"github.com/helpinghands/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DeletePolicy decides what happens to non-terminal join requests when
// their activity is deleted.
type DeletePolicy string

const (
	// DeleteBlock refuses deletion while non-terminal requests exist.
	DeleteBlock DeletePolicy = "block"
	// DeleteCascade rejects pending requests, then deletes.
	DeleteCascade DeletePolicy = "cascade"
)

// ValidDeletePolicy reports whether p is a known policy value.
func ValidDeletePolicy(p DeletePolicy) bool {
	return p == DeleteBlock || p == DeleteCascade
}

// Store manages activity records. It also reads join_requests to enforce
// the deletion policy.
type Store struct {
	c        *mongo.Collection
	joinReqs *mongo.Collection
	policy   DeletePolicy
}

// New creates an activities Store with the given deletion policy.
func New(db *mongo.Database, policy DeletePolicy) *Store {
	return &Store{
		c:        db.Collection("activities"),
		joinReqs: db.Collection("join_requests"),
		policy:   policy,
	}
}

// Policy returns the configured deletion policy.
func (s *Store) Policy() DeletePolicy { return s.policy }

// Fields carries caller-supplied activity attributes for create/update.
type Fields struct {
	Name        string
	Location    string
	Date        time.Time
	Description string
	Genre       models.Genre
	ImageURL    string
}

func (f *Fields) validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return apierr.Validation("activity name is required")
	}
	if strings.TrimSpace(f.Location) == "" {
		return apierr.Validation("activity location is required")
	}
	if f.Date.IsZero() {
		return apierr.Validation("activity date is required")
	}
	if !models.ValidGenre(f.Genre) {
		return apierr.Validation("unknown activity genre %q", f.Genre)
	}
	return nil
}

// Create inserts a new activity owned by ownerID.
func (s *Store) Create(ctx context.Context, ownerID primitive.ObjectID, f Fields) (primitive.ObjectID, error) {
	if err := f.validate(); err != nil {
		return primitive.NilObjectID, err
	}

	now := time.Now().UTC()
	a := models.Activity{
		ID:          primitive.NewObjectID(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(f.Name),
		NameCI:      text.Fold(f.Name),
		Location:    strings.TrimSpace(f.Location),
		Date:        f.Date.UTC(),
		Description: htmlsanitize.Sanitize(f.Description),
		Genre:       f.Genre,
		ImageURL:    strings.TrimSpace(f.ImageURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return primitive.NilObjectID, apierr.Internal(err, "insert activity")
	}
	return a.ID, nil
}

// GetByID returns the activity or a NotFound error.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Activity, error) {
	var a models.Activity
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return models.Activity{}, apierr.NotFound("activity %s not found", id.Hex())
	}
	if err != nil {
		return models.Activity{}, apierr.Internal(err, "load activity")
	}
	return a, nil
}

// Update rewrites the mutable fields. Only the owner may update; the
// ownership filter is part of the write so a racing ownership check cannot
// be bypassed.
func (s *Store) Update(ctx context.Context, id, ownerID primitive.ObjectID, f Fields) error {
	if err := f.validate(); err != nil {
		return err
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "owner_id": ownerID},
		bson.M{"$set": bson.M{
			"name":        strings.TrimSpace(f.Name),
			"name_ci":     text.Fold(f.Name),
			"location":    strings.TrimSpace(f.Location),
			"date":        f.Date.UTC(),
			"description": htmlsanitize.Sanitize(f.Description),
			"genre":       f.Genre,
			"image_url":   strings.TrimSpace(f.ImageURL),
			"updated_at":  time.Now().UTC(),
		}},
	)
	if err != nil {
		return apierr.Internal(err, "update activity")
	}
	if res.MatchedCount == 0 {
		return s.explainMiss(ctx, id)
	}
	return nil
}

// Delete removes an activity under the configured policy.
//
// Policy block: fails with Conflict while any non-terminal join request
// references the activity. Policy cascade: pending requests are rejected
// first and returned so the caller can notify their volunteers; accepted
// requests still block deletion under both policies, since rejecting an
// accepted volunteer silently would lose a commitment.
func (s *Store) Delete(ctx context.Context, id, ownerID primitive.ObjectID) ([]models.JoinRequest, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.OwnerID != ownerID {
		return nil, apierr.Authorization("only the owning admin may delete this activity")
	}

	accepted, err := s.joinReqs.CountDocuments(ctx, bson.M{
		"activity_id": id,
		"status":      models.JoinAccepted,
	})
	if err != nil {
		return nil, apierr.Internal(err, "count accepted join requests")
	}
	if accepted > 0 {
		return nil, apierr.Conflict("activity has accepted volunteers; complete or reject them first")
	}

	var rejected []models.JoinRequest
	switch s.policy {
	case DeleteCascade:
		rejected, err = s.rejectPending(ctx, id)
		if err != nil {
			return nil, err
		}
	default: // block
		pending, err := s.joinReqs.CountDocuments(ctx, bson.M{
			"activity_id": id,
			"status":      models.JoinPending,
		})
		if err != nil {
			return nil, apierr.Internal(err, "count pending join requests")
		}
		if pending > 0 {
			return nil, apierr.Conflict("activity has pending join requests")
		}
	}

	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID}); err != nil {
		return nil, apierr.Internal(err, "delete activity")
	}
	return rejected, nil
}

// rejectPending transitions every pending request on the activity to
// rejected and returns the affected requests.
func (s *Store) rejectPending(ctx context.Context, activityID primitive.ObjectID) ([]models.JoinRequest, error) {
	cur, err := s.joinReqs.Find(ctx, bson.M{
		"activity_id": activityID,
		"status":      models.JoinPending,
	})
	if err != nil {
		return nil, apierr.Internal(err, "find pending join requests")
	}
	defer cur.Close(ctx)

	var pending []models.JoinRequest
	if err := cur.All(ctx, &pending); err != nil {
		return nil, apierr.Internal(err, "decode pending join requests")
	}
	if len(pending) == 0 {
		return nil, nil
	}

	_, err = s.joinReqs.UpdateMany(ctx,
		bson.M{"activity_id": activityID, "status": models.JoinPending},
		bson.M{"$set": bson.M{"status": models.JoinRejected, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return nil, apierr.Internal(err, "reject pending join requests")
	}
	for i := range pending {
		pending[i].Status = models.JoinRejected
	}
	return pending, nil
}

// ListByOwner returns all activities owned by adminID, newest first.
func (s *Store) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, apierr.Internal(err, "list activities by owner")
	}
	defer cur.Close(ctx)

	var out []models.Activity
	if err := cur.All(ctx, &out); err != nil {
		return nil, apierr.Internal(err, "decode activities")
	}
	return out, nil
}

// List returns activities, optionally filtered by genre and a folded
// name-prefix search, newest first.
func (s *Store) List(ctx context.Context, genre models.Genre, search string) ([]models.Activity, error) {
	filter := bson.M{}
	if genre != "" {
		if !models.ValidGenre(genre) {
			return nil, apierr.Validation("unknown activity genre %q", genre)
		}
		filter["genre"] = genre
	}
	if q := strings.TrimSpace(search); q != "" {
		filter["name_ci"] = bson.M{"$regex": "^" + regexEscape(text.Fold(q))}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, apierr.Internal(err, "list activities")
	}
	defer cur.Close(ctx)

	var out []models.Activity
	if err := cur.All(ctx, &out); err != nil {
		return nil, apierr.Internal(err, "decode activities")
	}
	return out, nil
}

// ListPastDue returns activities whose scheduled date is at or before now.
// Used by the completion sweep.
func (s *Store) ListPastDue(ctx context.Context, now time.Time) ([]models.Activity, error) {
	cur, err := s.c.Find(ctx, bson.M{"date": bson.M{"$lte": now.UTC()}})
	if err != nil {
		return nil, apierr.Internal(err, "list past-due activities")
	}
	defer cur.Close(ctx)

	var out []models.Activity
	if err := cur.All(ctx, &out); err != nil {
		return nil, apierr.Internal(err, "decode activities")
	}
	return out, nil
}

// explainMiss distinguishes "activity gone" from "not the owner" after a
// zero-match ownership-filtered write.
func (s *Store) explainMiss(ctx context.Context, id primitive.ObjectID) error {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return apierr.Internal(err, "check activity")
	}
	if n == 0 {
		return apierr.NotFound("activity %s not found", id.Hex())
	}
	return apierr.Authorization("only the owning admin may modify this activity")
}

// regexEscape quotes regex metacharacters in a search term.
func regexEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
