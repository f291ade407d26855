// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/helpinghands/volunteerhub/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Admin controls logging for admin action events (activity CRUD, review removal).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Admin string
	// Engagement controls logging for engagement lifecycle events (join requests and decisions).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Engagement string
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}

	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.ActivityID != nil {
		fields = append(fields, zap.String("activity_id", event.ActivityID.Hex()))
	}
	if event.SubjectID != nil {
		fields = append(fields, zap.String("subject_id", event.SubjectID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
// Logging destination is controlled by config: "all", "db", "log", or "off".
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAdmin:
		setting = l.config.Admin
	case audit.CategoryEngagement:
		setting = l.config.Engagement
	default:
		setting = "all"
	}

	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}

	if setting == "all" || setting == "db" {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Admin Events ---

// ActivityCreated logs when an organization admin creates an activity.
func (l *Logger) ActivityCreated(ctx context.Context, r *http.Request, actorID, activityID primitive.ObjectID, name string) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  audit.EventActivityCreated,
		ActorID:    &actorID,
		ActivityID: &activityID,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
		Details: map[string]string{
			"name": name,
		},
	})
}

// ActivityUpdated logs when an organization admin updates an activity.
func (l *Logger) ActivityUpdated(ctx context.Context, r *http.Request, actorID, activityID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  audit.EventActivityUpdated,
		ActorID:    &actorID,
		ActivityID: &activityID,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
	})
}

// ActivityDeleted logs when an activity is removed, noting how attached
// join requests were handled.
func (l *Logger) ActivityDeleted(ctx context.Context, r *http.Request, actorID, activityID primitive.ObjectID, policy string, rejected int) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  audit.EventActivityDeleted,
		ActorID:    &actorID,
		ActivityID: &activityID,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
		Details: map[string]string{
			"delete_policy":    policy,
			"rejected_pending": intToString(rejected),
		},
	})
}

// ReviewDeleted logs when a review (and its replies) is removed.
func (l *Logger) ReviewDeleted(ctx context.Context, r *http.Request, actorID, activityID, reviewID primitive.ObjectID, actorRole string) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  audit.EventReviewDeleted,
		ActorID:    &actorID,
		ActivityID: &activityID,
		SubjectID:  &reviewID,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
		Details: map[string]string{
			"actor_role": actorRole,
		},
	})
}

// --- Engagement Events ---

// JoinRequested logs a volunteer submitting a join request.
func (l *Logger) JoinRequested(ctx context.Context, r *http.Request, actorID, activityID, requestID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryEngagement,
		EventType:  audit.EventJoinRequested,
		ActorID:    &actorID,
		ActivityID: &activityID,
		SubjectID:  &requestID,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
	})
}

// JoinDecided logs an accept or reject decision on a join request.
func (l *Logger) JoinDecided(ctx context.Context, r *http.Request, actorID, activityID, requestID primitive.ObjectID, accepted bool, actorRole string) {
	eventType := audit.EventJoinRejected
	if accepted {
		eventType = audit.EventJoinAccepted
	}
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryEngagement,
		EventType:  eventType,
		ActorID:    &actorID,
		ActivityID: &activityID,
		SubjectID:  &requestID,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
		Details: map[string]string{
			"actor_role": actorRole,
		},
	})
}

// JoinCompleted logs a join request reaching the completed state.
func (l *Logger) JoinCompleted(ctx context.Context, r *http.Request, actorID, activityID, requestID primitive.ObjectID, actorRole string) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryEngagement,
		EventType:  audit.EventJoinCompleted,
		ActorID:    &actorID,
		ActivityID: &activityID,
		SubjectID:  &requestID,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
		Details: map[string]string{
			"actor_role": actorRole,
		},
	})
}

func intToString(n int) string {
	return strconv.Itoa(n)
}
