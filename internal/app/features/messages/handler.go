// internal/app/features/messages/handler.go
package messages

import (
	activitystore "github.com/helpinghands/volunteerhub/internal/app/store/activities"
	messagestore "github.com/helpinghands/volunteerhub/internal/app/store/messages"
	userstore "github.com/helpinghands/volunteerhub/internal/app/store/users"
	"github.com/helpinghands/volunteerhub/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for activity Messaging.
type Handler struct {
	DB         *mongo.Database
	Store      *messagestore.Store
	Users      *userstore.Store
	Activities *activitystore.Store
	Notify     *notify.Dispatcher
	Log        *zap.Logger
}

// NewHandler constructs a new Messages handler.
func NewHandler(db *mongo.Database, store *messagestore.Store, users *userstore.Store, activities *activitystore.Store, dispatcher *notify.Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Store:      store,
		Users:      users,
		Activities: activities,
		Notify:     dispatcher,
		Log:        logger,
	}
}
