package settingsstore

import (
	"testing"

	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
	"github.com/clearpathvisa/clearpath/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func editor() authz.Principal {
	return authz.Principal{ID: primitive.NewObjectID(), Name: "Test Editor", Role: models.RoleEditor}
}

func TestStore_Get_ReturnsDefaultsWhenUnsaved(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	settings, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if settings.SiteName != models.DefaultSiteName {
		t.Errorf("SiteName = %q, want default", settings.SiteName)
	}
	if settings.FooterText != models.DefaultFooterText {
		t.Errorf("FooterText = %q, want default", settings.FooterText)
	}
}

func TestStore_Upsert_SavesSingleton(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := editor()
	err := store.Upsert(ctx, p, UpdateInput{
		SiteName: "ClearPath",
		Phone:    "+971 4 000 0000",
		Email:    "Hello@ClearPath.Example",
		SocialLinks: map[string]string{
			"instagram": "https://instagram.com/clearpath",
		},
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.SiteName != "ClearPath" {
		t.Errorf("SiteName = %q", got.SiteName)
	}
	if got.Email != "hello@clearpath.example" {
		t.Errorf("Email = %q, should be lowercased", got.Email)
	}
	if got.SocialLinks["instagram"] != "https://instagram.com/clearpath" {
		t.Errorf("SocialLinks = %v", got.SocialLinks)
	}
	if got.UpdatedAt == nil {
		t.Error("UpdatedAt should be set")
	}

	// A second save replaces, never duplicates.
	if err := store.Upsert(ctx, p, UpdateInput{SiteName: "ClearPath Visa"}); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	count, err := db.Collection("site_settings").CountDocuments(ctx, bson.M{"singleton": true})
	if err != nil {
		t.Fatalf("CountDocuments() error = %v", err)
	}
	if count != 1 {
		t.Errorf("singleton count = %d, want 1", count)
	}
}

func TestStore_Upsert_AnonymousForbidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Upsert(ctx, authz.Anonymous(), UpdateInput{SiteName: "X"})
	if err != authz.ErrForbidden {
		t.Errorf("Upsert() by anonymous error = %v, want ErrForbidden", err)
	}
}

func TestStore_SeedDefaults_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.SeedDefaults(ctx)
	if err != nil {
		t.Fatalf("SeedDefaults() error = %v", err)
	}
	if !created {
		t.Error("first SeedDefaults() should create the document")
	}

	created, err = store.SeedDefaults(ctx)
	if err != nil {
		t.Fatalf("second SeedDefaults() error = %v", err)
	}
	if created {
		t.Error("second SeedDefaults() should be a no-op")
	}

	// Seeding never clobbers an admin-saved document.
	if err := store.Upsert(ctx, editor(), UpdateInput{SiteName: "Custom Name"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if _, err := store.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults() after save error = %v", err)
	}
	got, _ := store.Get(ctx)
	if got.SiteName != "Custom Name" {
		t.Errorf("SiteName = %q, seed overwrote saved settings", got.SiteName)
	}
}
