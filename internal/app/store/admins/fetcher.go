// internal/app/store/admins/fetcher.go
package adminstore

import (
	"context"

	"github.com/clearpathvisa/clearpath/internal/app/system/auth"
	"github.com/clearpathvisa/clearpath/internal/app/system/normalize"
	"github.com/clearpathvisa/clearpath/internal/app/system/timeouts"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Fetcher implements auth.UserFetcher to load fresh admin data on each request.
type Fetcher struct {
	admins *mongo.Collection
	logger *zap.Logger
}

// NewFetcher creates a UserFetcher that queries the given database.
func NewFetcher(db *mongo.Database, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		admins: db.Collection("admins"),
		logger: logger,
	}
}

// FetchUser retrieves an admin by ID and returns nil if the account is not
// found or any error occurs. This implements auth.UserFetcher.
func (f *Fetcher) FetchUser(ctx context.Context, userID string) *auth.SessionUser {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}

	// Use a short timeout for the DB query
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	// Fetch the admin with projection for only needed fields
	var a models.Admin
	proj := options.FindOne().SetProjection(bson.M{
		"_id":       1,
		"full_name": 1,
		"email":     1,
		"role":      1,
	})

	if err := f.admins.FindOne(ctx, bson.M{"_id": oid}, proj).Decode(&a); err != nil {
		// Admin not found or DB error
		return nil
	}

	return &auth.SessionUser{
		ID:    a.ID.Hex(),
		Name:  a.FullName,
		Email: a.Email,
		Role:  normalize.Role(a.Role),
	}
}
