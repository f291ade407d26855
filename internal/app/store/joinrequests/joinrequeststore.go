// internal/app/store/joinrequests/joinrequeststore.go
package joinrequeststore

import (
	"context"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/roles"
	"github.com/helpinghands/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages join requests and their lifecycle. Status transitions go
// through a conditional FindOneAndUpdate keyed on the expected prior
// status, so of two racing decisions on the same request exactly one
// succeeds; the loser gets a State error.
type Store struct {
	c          *mongo.Collection
	activities *mongo.Collection
}

// New creates a join request Store.
func New(db *mongo.Database) *Store {
	return &Store{
		c:          db.Collection("join_requests"),
		activities: db.Collection("activities"),
	}
}

func validateSnapshot(p models.ProfileSnapshot) error {
	if strings.TrimSpace(p.Name) == "" {
		return apierr.Validation("profile name is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return apierr.Validation("profile email is required")
	}
	if strings.TrimSpace(p.Strength) == "" {
		return apierr.Validation("profile strength is required")
	}
	if len(p.Interests) == 0 {
		return apierr.Validation("profile interest list is empty")
	}
	return nil
}

// Submit creates a pending join request for (activityID, volunteerID) and
// returns the created request. The (activity, volunteer) pair is unique;
// the pre-check gives a friendly Conflict message and the unique index
// closes the race window behind it.
func (s *Store) Submit(ctx context.Context, activityID, volunteerID primitive.ObjectID, snap models.ProfileSnapshot) (models.JoinRequest, error) {
	if err := validateSnapshot(snap); err != nil {
		return models.JoinRequest{}, err
	}

	var a models.Activity
	if err := s.activities.FindOne(ctx, bson.M{"_id": activityID}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.JoinRequest{}, apierr.NotFound("activity %s not found", activityID.Hex())
		}
		return models.JoinRequest{}, apierr.Internal(err, "load activity")
	}
	if !models.ValidGenre(a.Genre) {
		return models.JoinRequest{}, apierr.Validation("activity has no valid genre")
	}

	n, err := s.c.CountDocuments(ctx, bson.M{"activity_id": activityID, "volunteer_id": volunteerID})
	if err != nil {
		return models.JoinRequest{}, apierr.Internal(err, "check existing join request")
	}
	if n > 0 {
		return models.JoinRequest{}, apierr.Conflict("already requested to join this activity")
	}

	now := time.Now().UTC()
	req := models.JoinRequest{
		ID:          primitive.NewObjectID(),
		ActivityID:  activityID,
		VolunteerID: volunteerID,
		Profile:     snap,
		Status:      models.JoinPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.c.InsertOne(ctx, req); err != nil {
		if wafflemongo.IsDup(err) {
			return models.JoinRequest{}, apierr.Conflict("already requested to join this activity")
		}
		return models.JoinRequest{}, apierr.Internal(err, "insert join request")
	}
	return req, nil
}

// GetByID returns the join request or a NotFound error.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.JoinRequest, error) {
	var req models.JoinRequest
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return models.JoinRequest{}, apierr.NotFound("join request %s not found", id.Hex())
	}
	if err != nil {
		return models.JoinRequest{}, apierr.Internal(err, "load join request")
	}
	return req, nil
}

// StatusFor reports the volunteer's status on an activity, or
// JoinNotJoined when no request exists. Side-effect free.
func (s *Store) StatusFor(ctx context.Context, activityID, volunteerID primitive.ObjectID) (models.JoinStatus, error) {
	var row struct {
		Status models.JoinStatus `bson:"status"`
	}
	err := s.c.FindOne(ctx,
		bson.M{"activity_id": activityID, "volunteer_id": volunteerID},
		options.FindOne().SetProjection(bson.M{"status": 1}),
	).Decode(&row)
	if err == mongo.ErrNoDocuments {
		return models.JoinNotJoined, nil
	}
	if err != nil {
		return "", apierr.Internal(err, "load join status")
	}
	return row.Status, nil
}

// Accept transitions a pending request to accepted. Only the admin owning
// the referenced activity (or a platform admin) may decide.
func (s *Store) Accept(ctx context.Context, id, actorID primitive.ObjectID, actorRole roles.Role) (models.JoinRequest, error) {
	return s.decide(ctx, id, actorID, actorRole, models.JoinAccepted)
}

// Reject transitions a pending request to rejected. Symmetric to Accept.
func (s *Store) Reject(ctx context.Context, id, actorID primitive.ObjectID, actorRole roles.Role) (models.JoinRequest, error) {
	return s.decide(ctx, id, actorID, actorRole, models.JoinRejected)
}

func (s *Store) decide(ctx context.Context, id, actorID primitive.ObjectID, actorRole roles.Role, to models.JoinStatus) (models.JoinRequest, error) {
	req, err := s.GetByID(ctx, id)
	if err != nil {
		return models.JoinRequest{}, err
	}
	if err := s.authorizeDecision(ctx, req.ActivityID, actorID, actorRole); err != nil {
		return models.JoinRequest{}, err
	}
	return s.transition(ctx, id, models.JoinPending, to, &actorID)
}

// Complete transitions an accepted request to completed. The owning admin
// may complete at any time; otherwise completion requires the activity's
// scheduled date to have passed (the sweep worker uses this path).
func (s *Store) Complete(ctx context.Context, id, actorID primitive.ObjectID, actorRole roles.Role) (models.JoinRequest, error) {
	req, err := s.GetByID(ctx, id)
	if err != nil {
		return models.JoinRequest{}, err
	}

	if err := s.authorizeDecision(ctx, req.ActivityID, actorID, actorRole); err != nil {
		// Not the owning admin: the volunteer themselves may complete,
		// but only once the activity date has been reached.
		if actorID != req.VolunteerID {
			return models.JoinRequest{}, err
		}
		var a models.Activity
		if lookupErr := s.activities.FindOne(ctx, bson.M{"_id": req.ActivityID}).Decode(&a); lookupErr != nil {
			return models.JoinRequest{}, err
		}
		if a.Date.After(time.Now().UTC()) {
			return models.JoinRequest{}, apierr.Authorization("activity date not reached yet")
		}
	}
	return s.transition(ctx, id, models.JoinAccepted, models.JoinCompleted, nil)
}

// CompleteAllForActivity marks every accepted request on the activity as
// completed. Returns the number transitioned. Used by the sweep worker
// once the activity date has passed.
func (s *Store) CompleteAllForActivity(ctx context.Context, activityID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"activity_id": activityID, "status": models.JoinAccepted},
		bson.M{"$set": bson.M{"status": models.JoinCompleted, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, apierr.Internal(err, "complete join requests")
	}
	return res.ModifiedCount, nil
}

// transition performs the atomic check-and-set. A zero-match result means
// either the request vanished (NotFound) or it is no longer in the
// expected state (State).
func (s *Store) transition(ctx context.Context, id primitive.ObjectID, from, to models.JoinStatus, decidedBy *primitive.ObjectID) (models.JoinRequest, error) {
	set := bson.M{"status": to, "updated_at": time.Now().UTC()}
	if decidedBy != nil {
		set["decided_by"] = *decidedBy
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.JoinRequest
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
		opts,
	).Decode(&updated)

	if err == mongo.ErrNoDocuments {
		current, getErr := s.GetByID(ctx, id)
		if getErr != nil {
			return models.JoinRequest{}, getErr
		}
		return models.JoinRequest{}, apierr.State("join request is %s, not %s", current.Status, from)
	}
	if err != nil {
		return models.JoinRequest{}, apierr.Internal(err, "transition join request")
	}
	return updated, nil
}

// authorizeDecision checks that the actor may decide requests on the
// activity: platform admins always, the owning org admin, nobody else.
func (s *Store) authorizeDecision(ctx context.Context, activityID, actorID primitive.ObjectID, actorRole roles.Role) error {
	switch actorRole {
	case roles.PlatformAdmin:
		return nil
	case roles.OrgAdmin:
		var a models.Activity
		if err := s.activities.FindOne(ctx, bson.M{"_id": activityID}).Decode(&a); err != nil {
			if err == mongo.ErrNoDocuments {
				return apierr.NotFound("activity %s not found", activityID.Hex())
			}
			return apierr.Internal(err, "load activity")
		}
		if a.OwnerID != actorID {
			return apierr.Authorization("only the owning admin may decide this request")
		}
		return nil
	case roles.Volunteer:
		return apierr.Authorization("volunteers cannot decide join requests")
	}
	return apierr.Authorization("unrecognized role")
}

// ListPendingForOwner returns pending requests across all activities owned
// by ownerID, oldest first, for FIFO triage.
func (s *Store) ListPendingForOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.JoinRequest, error) {
	cur, err := s.activities.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, apierr.Internal(err, "list owned activities")
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, apierr.Internal(err, "decode owned activities")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	reqCur, err := s.c.Find(ctx, bson.M{
		"activity_id": bson.M{"$in": ids},
		"status":      models.JoinPending,
	}, opts)
	if err != nil {
		return nil, apierr.Internal(err, "list pending join requests")
	}
	defer reqCur.Close(ctx)

	var out []models.JoinRequest
	if err := reqCur.All(ctx, &out); err != nil {
		return nil, apierr.Internal(err, "decode join requests")
	}
	return out, nil
}

// ListByActivity returns all requests on an activity, oldest first.
func (s *Store) ListByActivity(ctx context.Context, activityID primitive.ObjectID) ([]models.JoinRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"activity_id": activityID}, opts)
	if err != nil {
		return nil, apierr.Internal(err, "list join requests")
	}
	defer cur.Close(ctx)

	var out []models.JoinRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, apierr.Internal(err, "decode join requests")
	}
	return out, nil
}

// ListByVolunteer returns the volunteer's requests, newest first.
func (s *Store) ListByVolunteer(ctx context.Context, volunteerID primitive.ObjectID) ([]models.JoinRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"volunteer_id": volunteerID}, opts)
	if err != nil {
		return nil, apierr.Internal(err, "list join requests")
	}
	defer cur.Close(ctx)

	var out []models.JoinRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, apierr.Internal(err, "decode join requests")
	}
	return out, nil
}

// HasCompleted reports whether the volunteer completed the activity.
// Consulted by the review policy gate.
func (s *Store) HasCompleted(ctx context.Context, activityID, volunteerID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"activity_id":  activityID,
		"volunteer_id": volunteerID,
		"status":       models.JoinCompleted,
	})
	if err != nil {
		return false, apierr.Internal(err, "check completed join request")
	}
	return n > 0, nil
}
