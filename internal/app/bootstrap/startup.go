// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	adminstore "github.com/clearpathvisa/clearpath/internal/app/store/admins"
	"github.com/clearpathvisa/clearpath/internal/app/system/authutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are
// complete, but before the HTTP handler is built and requests are
// served.
//
// Returning a non-nil error will abort startup and prevent the server
// from starting. The context will be cancelled if the process is asked
// to shut down while Startup is running.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	// Seed the superadmin account if configured. Without at least one
	// superadmin the back office is unreachable.
	if appCfg.SeedAdminEmail != "" {
		if appCfg.SeedAdminPassword == "" {
			return fmt.Errorf("seed_admin_email is set but seed_admin_password is empty")
		}
		if err := authutil.ValidatePassword(appCfg.SeedAdminPassword); err != nil {
			return fmt.Errorf("seed admin password: %w", err)
		}
		hash, err := authutil.HashPassword(appCfg.SeedAdminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash seed admin password: %w", err)
		}

		created, err := adminstore.New(deps.MongoDatabase).EnsureSuperadmin(
			ctx, appCfg.SeedAdminEmail, appCfg.SeedAdminName, hash)
		if err != nil {
			logger.Error("failed to seed superadmin", zap.Error(err))
			return err
		}
		if created {
			logger.Info("seeded superadmin account",
				zap.String("email", appCfg.SeedAdminEmail))
		} else {
			logger.Debug("superadmin account already present",
				zap.String("email", appCfg.SeedAdminEmail))
		}
	}

	return nil
}
