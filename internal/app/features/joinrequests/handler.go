// internal/app/features/joinrequests/handler.go
package joinrequests

import (
	activitystore "github.com/helpinghands/volunteerhub/internal/app/store/activities"
	joinrequeststore "github.com/helpinghands/volunteerhub/internal/app/store/joinrequests"
	userstore "github.com/helpinghands/volunteerhub/internal/app/store/users"
	"github.com/helpinghands/volunteerhub/internal/app/system/auditlog"
	"github.com/helpinghands/volunteerhub/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Join Requests.
type Handler struct {
	DB         *mongo.Database
	Store      *joinrequeststore.Store
	Users      *userstore.Store
	Activities *activitystore.Store
	Notify     *notify.Dispatcher
	Audit      *auditlog.Logger
	Log        *zap.Logger
}

// NewHandler constructs a new Join Requests handler.
func NewHandler(db *mongo.Database, store *joinrequeststore.Store, users *userstore.Store, activities *activitystore.Store, dispatcher *notify.Dispatcher, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Store:      store,
		Users:      users,
		Activities: activities,
		Notify:     dispatcher,
		Audit:      audit,
		Log:        logger,
	}
}
