// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"time"

	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/app/system/normalize"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the site_settings collection. Settings are a
// singleton document keyed by a fixed sentinel; there is only one per
// deployment.
type Store struct {
	c *mongo.Collection
}

// New creates a new settings store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("site_settings")}
}

var singletonKey = bson.M{"singleton": true}

// Get returns the site settings. When nothing has been saved yet it
// returns defaults so the public site always has a name and footer.
func (s *Store) Get(ctx context.Context) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := s.c.FindOne(ctx, singletonKey).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return &models.SiteSettings{
			SiteName:   models.DefaultSiteName,
			FooterText: models.DefaultFooterText,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Exists checks if settings have been saved.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	count, err := s.c.CountDocuments(ctx, singletonKey)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SeedDefaults creates the singleton document with default branding if
// it does not exist yet. Called from startup, so no principal applies.
func (s *Store) SeedDefaults(ctx context.Context) (bool, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":         primitive.NewObjectID(),
			"singleton":   true,
			"site_name":   models.DefaultSiteName,
			"footer_text": models.DefaultFooterText,
			"updated_at":  now,
		},
	}
	opts := options.Update().SetUpsert(true)
	res, err := s.c.UpdateOne(ctx, singletonKey, update, opts)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// UpdateInput holds the fields for saving site settings. Settings are
// saved whole rather than field by field; the admin form submits the
// complete document.
type UpdateInput struct {
	SiteName    string
	Phone       string
	WhatsApp    string
	Email       string
	Address     string
	MapURL      string
	SocialLinks map[string]string
	PrimaryCTA  string
	FooterText  string
	LogoURL     string
	LogoDarkURL string
}

// Upsert saves the site settings, creating the singleton document on
// first save.
func (s *Store) Upsert(ctx context.Context, p authz.Principal, input UpdateInput) error {
	if !p.CanManageContent() {
		return authz.ErrForbidden
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"singleton":     true,
			"site_name":     normalize.Name(input.SiteName),
			"phone":         normalize.Phone(input.Phone),
			"whatsapp":      normalize.Phone(input.WhatsApp),
			"email":         normalize.Email(input.Email),
			"address":       normalize.Name(input.Address),
			"map_url":       normalize.Name(input.MapURL),
			"social_links":  input.SocialLinks,
			"primary_cta":   normalize.Name(input.PrimaryCTA),
			"footer_text":   normalize.Name(input.FooterText),
			"logo_url":      normalize.Name(input.LogoURL),
			"logo_dark_url": normalize.Name(input.LogoDarkURL),
			"updated_at":    now,
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, singletonKey, update, opts)
	return err
}
