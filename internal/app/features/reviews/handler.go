// internal/app/features/reviews/handler.go
package reviews

import (
	activitystore "github.com/helpinghands/volunteerhub/internal/app/store/activities"
	reviewstore "github.com/helpinghands/volunteerhub/internal/app/store/reviews"
	"github.com/helpinghands/volunteerhub/internal/app/system/auditlog"
	"github.com/helpinghands/volunteerhub/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Reviews and Replies.
type Handler struct {
	DB         *mongo.Database
	Store      *reviewstore.Store
	Activities *activitystore.Store
	Notify     *notify.Dispatcher
	Audit      *auditlog.Logger
	Log        *zap.Logger
}

// NewHandler constructs a new Reviews handler.
func NewHandler(db *mongo.Database, store *reviewstore.Store, activities *activitystore.Store, dispatcher *notify.Dispatcher, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Store:      store,
		Activities: activities,
		Notify:     dispatcher,
		Audit:      audit,
		Log:        logger,
	}
}
