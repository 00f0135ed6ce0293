// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"

	settingsstore "github.com/clearpathvisa/clearpath/internal/app/store/settings"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SeedAll seeds default data if not already present.
func SeedAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if err := seedSiteSettings(ctx, db, logger); err != nil {
		return err
	}
	return nil
}

// seedSiteSettings makes sure the settings singleton exists so the
// public site has a name and footer before an admin saves anything.
// Content collections start empty; drafts are created through the
// admin API, not at boot.
func seedSiteSettings(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := settingsstore.New(db)

	created, err := store.SeedDefaults(ctx)
	if err != nil {
		logger.Error("failed to seed site settings", zap.Error(err))
		return err
	}
	if created {
		logger.Info("seeded default site settings")
	}
	return nil
}
