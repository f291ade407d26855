// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/helpinghands/volunteerhub/internal/app/system/roles"
	"github.com/helpinghands/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string, role roles.Role) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		EmailCI:    text.Fold(email),
		Role:       string(role),
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateVolunteer creates a test volunteer with a complete profile, ready
// to submit join requests.
func (f *Fixtures) CreateVolunteer(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		EmailCI:    text.Fold(email),
		Role:       string(roles.Volunteer),
		Status:     "active",
		Strength:   "teamwork",
		Experience: "two seasons of park cleanups",
		Interests:  []string{"environment", "education"},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test volunteer: %v", err)
	}
	return user
}

// CreateOrgAdmin creates a test organization admin.
func (f *Fixtures) CreateOrgAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, roles.OrgAdmin)
}

// CreatePlatformAdmin creates a test platform admin.
func (f *Fixtures) CreatePlatformAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, roles.PlatformAdmin)
}

// CreateActivity creates a test activity owned by ownerID, scheduled for
// the given date.
func (f *Fixtures) CreateActivity(ctx context.Context, ownerID primitive.ObjectID, name string, date time.Time) models.Activity {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Activity{
		ID:          primitive.NewObjectID(),
		OwnerID:     ownerID,
		Name:        name,
		NameCI:      text.Fold(name),
		Location:    "Test Park",
		Date:        date.UTC(),
		Description: "Test activity description",
		Genre:       models.GenreCommunityService,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("activities").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test activity: %v", err)
	}
	return a
}

// CreateJoinRequest creates a join request in the given status.
func (f *Fixtures) CreateJoinRequest(ctx context.Context, activityID primitive.ObjectID, volunteer models.User, status models.JoinStatus) models.JoinRequest {
	f.t.Helper()

	now := time.Now().UTC()
	jr := models.JoinRequest{
		ID:          primitive.NewObjectID(),
		ActivityID:  activityID,
		VolunteerID: volunteer.ID,
		Profile: models.ProfileSnapshot{
			Name:       volunteer.FullName,
			Email:      volunteer.Email,
			Strength:   volunteer.Strength,
			Experience: volunteer.Experience,
			Interests:  volunteer.Interests,
		},
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("join_requests").InsertOne(ctx, jr); err != nil {
		f.t.Fatalf("failed to create test join request: %v", err)
	}
	return jr
}

// CreateReview creates a review on the activity by the given author.
func (f *Fixtures) CreateReview(ctx context.Context, activityID primitive.ObjectID, author models.User, rating int, comment string) models.Review {
	f.t.Helper()

	rev := models.Review{
		ID:         primitive.NewObjectID(),
		ActivityID: activityID,
		AuthorID:   author.ID,
		AuthorName: author.FullName,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := f.db.Collection("reviews").InsertOne(ctx, rev); err != nil {
		f.t.Fatalf("failed to create test review: %v", err)
	}
	return rev
}

// CreateReply creates a reply under the review.
func (f *Fixtures) CreateReply(ctx context.Context, review models.Review, author models.User, replyText string) models.Reply {
	f.t.Helper()

	rep := models.Reply{
		ID:         primitive.NewObjectID(),
		ReviewID:   review.ID,
		ActivityID: review.ActivityID,
		AuthorID:   author.ID,
		AuthorName: author.FullName,
		AuthorRole: author.Role,
		Text:       replyText,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := f.db.Collection("replies").InsertOne(ctx, rep); err != nil {
		f.t.Fatalf("failed to create test reply: %v", err)
	}
	return rep
}

// CreateMessage creates a channel message between sender and counterpart.
func (f *Fixtures) CreateMessage(ctx context.Context, activityID primitive.ObjectID, sender models.User, counterpartID primitive.ObjectID, msgText string) models.Message {
	f.t.Helper()

	msg := models.Message{
		ID:            primitive.NewObjectID(),
		ActivityID:    activityID,
		SenderID:      sender.ID,
		CounterpartID: counterpartID,
		SenderName:    sender.FullName,
		SenderRole:    sender.Role,
		Text:          msgText,
		CreatedAt:     time.Now().UTC(),
	}

	if _, err := f.db.Collection("messages").InsertOne(ctx, msg); err != nil {
		f.t.Fatalf("failed to create test message: %v", err)
	}
	return msg
}

// CreateNotification creates a notification for the recipient.
func (f *Fixtures) CreateNotification(ctx context.Context, recipient models.User, kind string, activityID primitive.ObjectID) models.Notification {
	f.t.Helper()

	n := models.Notification{
		ID:            primitive.NewObjectID(),
		RecipientID:   recipient.ID,
		RecipientRole: recipient.Role,
		Kind:          kind,
		Message:       "test notification",
		ActivityID:    activityID,
		DedupeKey:     primitive.NewObjectID().Hex(),
		CreatedAt:     time.Now().UTC(),
	}

	if _, err := f.db.Collection("notifications").InsertOne(ctx, n); err != nil {
		f.t.Fatalf("failed to create test notification: %v", err)
	}
	return n
}
