// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, and request limits. AppConfig is where
// everything specific to this application lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: volunteerhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Engagement policy knobs
	ReviewRequireCompleted bool   // Require a completed engagement before reviewing
	ActivityDeletePolicy   string // "block" or "cascade"

	// Background work
	CompletionSweepInterval time.Duration // How often past-due engagements are completed

	// Audit logging settings
	AuditLogAdmin      string // Admin event logging: 'all' (db+log), 'db', 'log', or 'off'
	AuditLogEngagement string // Engagement event logging: 'all' (db+log), 'db', 'log', or 'off'
}
