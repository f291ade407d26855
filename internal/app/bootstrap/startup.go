// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("starting volunteerhub",
		zap.String("delete_policy", appCfg.ActivityDeletePolicy),
		zap.Bool("review_require_completed", appCfg.ReviewRequireCompleted),
		zap.Duration("completion_sweep_interval", appCfg.CompletionSweepInterval))
	return nil
}
