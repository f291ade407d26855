// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	activitiesfeature "github.com/helpinghands/volunteerhub/internal/app/features/activities"
	healthfeature "github.com/helpinghands/volunteerhub/internal/app/features/health"
	joinrequestsfeature "github.com/helpinghands/volunteerhub/internal/app/features/joinrequests"
	messagesfeature "github.com/helpinghands/volunteerhub/internal/app/features/messages"
	notificationsfeature "github.com/helpinghands/volunteerhub/internal/app/features/notifications"
	reviewsfeature "github.com/helpinghands/volunteerhub/internal/app/features/reviews"
	activitystore "github.com/helpinghands/volunteerhub/internal/app/store/activities"
	"github.com/helpinghands/volunteerhub/internal/app/store/audit"
	joinrequeststore "github.com/helpinghands/volunteerhub/internal/app/store/joinrequests"
	messagestore "github.com/helpinghands/volunteerhub/internal/app/store/messages"
	notificationstore "github.com/helpinghands/volunteerhub/internal/app/store/notifications"
	reviewstore "github.com/helpinghands/volunteerhub/internal/app/store/reviews"
	userstore "github.com/helpinghands/volunteerhub/internal/app/store/users"
	"github.com/helpinghands/volunteerhub/internal/app/system/auditlog"
	"github.com/helpinghands/volunteerhub/internal/app/system/auth"
	"github.com/helpinghands/volunteerhub/internal/app/system/notify"
	"github.com/helpinghands/volunteerhub/internal/app/system/workers"
	"go.uber.org/zap"
)

// sweep is the background completion worker started by BuildHandler and
// stopped by Shutdown.
var sweep *workers.CompletionSweep

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It creates the session manager, the
// store layer, the notification dispatcher, and the audit logger, then
// mounts one feature router per application area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on
	// each request. Role changes and disabled accounts take effect
	// immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	db := deps.MongoDatabase

	// Store layer
	users := userstore.New(db)
	activities := activitystore.New(db, activitystore.DeletePolicy(appCfg.ActivityDeletePolicy))
	joinReqs := joinrequeststore.New(db)
	reviews := reviewstore.New(db, appCfg.ReviewRequireCompleted)
	msgs := messagestore.New(db)
	notifications := notificationstore.New(db)

	// Cross-cutting services
	dispatcher := notify.New(notifications, logger)
	auditLogger := auditlog.New(audit.New(db), logger, auditlog.Config{
		Admin:      appCfg.AuditLogAdmin,
		Engagement: appCfg.AuditLogEngagement,
	})

	// Background completion of past-due engagements
	sweep = workers.NewCompletionSweep(activities, joinReqs, logger, appCfg.CompletionSweepInterval)
	sweep.Start()

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Activity management and browsing
	activitiesHandler := activitiesfeature.NewHandler(db, activities, reviews, dispatcher, auditLogger, logger)
	r.Mount("/activities", activitiesfeature.Routes(activitiesHandler, sessionMgr))

	// Engagement lifecycle
	joinHandler := joinrequestsfeature.NewHandler(db, joinReqs, users, activities, dispatcher, auditLogger, logger)
	r.Mount("/join-requests", joinrequestsfeature.Routes(joinHandler, sessionMgr))

	// Reviews and replies
	reviewsHandler := reviewsfeature.NewHandler(db, reviews, activities, dispatcher, auditLogger, logger)
	r.Mount("/reviews", reviewsfeature.Routes(reviewsHandler, sessionMgr))

	// Per-activity messaging channels
	messagesHandler := messagesfeature.NewHandler(db, msgs, users, activities, dispatcher, logger)
	r.Mount("/messages", messagesfeature.Routes(messagesHandler, sessionMgr))

	// Notification feeds
	notificationsHandler := notificationsfeature.NewHandler(notifications, logger)
	r.Mount("/notifications", notificationsfeature.Routes(notificationsHandler, sessionMgr))

	return r, nil
}
