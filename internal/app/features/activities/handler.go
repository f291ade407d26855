// internal/app/features/activities/handler.go
package activities

import (
	activitystore "github.com/helpinghands/volunteerhub/internal/app/store/activities"
	reviewstore "github.com/helpinghands/volunteerhub/internal/app/store/reviews"
	"github.com/helpinghands/volunteerhub/internal/app/system/auditlog"
	"github.com/helpinghands/volunteerhub/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Activities.
type Handler struct {
	DB      *mongo.Database
	Store   *activitystore.Store
	Reviews *reviewstore.Store
	Notify  *notify.Dispatcher
	Audit   *auditlog.Logger
	Log     *zap.Logger
}

// NewHandler constructs a new Activities handler.
func NewHandler(db *mongo.Database, store *activitystore.Store, reviews *reviewstore.Store, dispatcher *notify.Dispatcher, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Store:   store,
		Reviews: reviews,
		Notify:  dispatcher,
		Audit:   audit,
		Log:     logger,
	}
}
