// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	activitystore "github.com/helpinghands/volunteerhub/internal/app/store/activities"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for VolunteerHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: VOLUNTEERHUB_MONGO_URI, VOLUNTEERHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "volunteer_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "volunteerhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Engagement policy knobs
	{Name: "review_require_completed", Default: false, Desc: "Require a completed engagement before a volunteer may review an activity"},
	{Name: "activity_delete_policy", Default: "block", Desc: "What to do with pending join requests on activity deletion: 'block' or 'cascade'"},

	// Background work
	{Name: "completion_sweep_interval", Default: "10m", Desc: "How often accepted engagements on past-due activities are completed (e.g., 10m, 1h)"},

	// Audit logging settings
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_engagement", Default: "all", Desc: "Engagement event logging: 'all' (db+log), 'db', 'log', or 'off'"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, VOLUNTEERHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "VOLUNTEERHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),

		ReviewRequireCompleted: appValues.Bool("review_require_completed"),
		ActivityDeletePolicy:   appValues.String("activity_delete_policy"),

		CompletionSweepInterval: appValues.Duration("completion_sweep_interval", 10*time.Minute),

		AuditLogAdmin:      appValues.String("audit_log_admin"),
		AuditLogEngagement: appValues.String("audit_log_engagement"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// VolunteerHub validates the MongoDB URI format and the deletion policy
// to catch configuration errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if !activitystore.ValidDeletePolicy(activitystore.DeletePolicy(appCfg.ActivityDeletePolicy)) {
		return fmt.Errorf("activity_delete_policy must be 'block' or 'cascade', got %q", appCfg.ActivityDeletePolicy)
	}

	if appCfg.CompletionSweepInterval <= 0 {
		return fmt.Errorf("completion_sweep_interval must be positive, got %s", appCfg.CompletionSweepInterval)
	}

	return nil
}
