// internal/app/features/notifications/handler.go
package notifications

import (
	notificationstore "github.com/helpinghands/volunteerhub/internal/app/store/notifications"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Notification feeds.
type Handler struct {
	Store *notificationstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a new Notifications handler.
func NewHandler(store *notificationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Store: store,
		Log:   logger,
	}
}
