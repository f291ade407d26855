// internal/app/store/users/userstore.go
package userstore

import (
	"context"

	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
	"github.com/helpinghands/volunteerhub/internal/app/system/auth"
	"github.com/helpinghands/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store reads user records. Users are written by the external auth
// collaborator; the core only reads them.
type Store struct {
	c *mongo.Collection
}

// New creates a users Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID returns the user or a NotFound error.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return models.User{}, apierr.NotFound("user %s not found", id.Hex())
	}
	if err != nil {
		return models.User{}, apierr.Internal(err, "load user")
	}
	return u, nil
}

// Snapshot builds the profile snapshot recorded on a join request.
func (s *Store) Snapshot(ctx context.Context, volunteerID primitive.ObjectID) (models.ProfileSnapshot, error) {
	u, err := s.GetByID(ctx, volunteerID)
	if err != nil {
		return models.ProfileSnapshot{}, err
	}
	return models.ProfileSnapshot{
		Name:       u.FullName,
		Email:      u.Email,
		Strength:   u.Strength,
		Experience: u.Experience,
		Interests:  u.Interests,
	}, nil
}

// Fetcher adapts the store to auth.UserFetcher so sessions pick up role
// changes and disabled accounts on the next request.
type Fetcher struct {
	store *Store
}

// NewFetcher creates a session user fetcher backed by the users collection.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{store: New(db)}
}

// Fetch loads fresh session data by user id hex. A disabled account or a
// missing record returns nil, which the session layer treats as signed out.
func (f *Fetcher) Fetch(ctx context.Context, id string) (*auth.SessionUser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	u, err := f.store.GetByID(ctx, oid)
	if err != nil {
		if apierr.KindOf(err) == apierr.KindNotFound {
			return nil, nil
		}
		return nil, err
	}
	if u.Status != "active" {
		return nil, nil
	}
	return &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	}, nil
}
