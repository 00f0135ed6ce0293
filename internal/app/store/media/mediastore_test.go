package mediastore

import (
	"testing"
	"time"

	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
	"github.com/clearpathvisa/clearpath/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func editor() authz.Principal {
	return authz.Principal{ID: primitive.NewObjectID(), Name: "Test Editor", Role: models.RoleEditor}
}

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := editor()
	m, err := store.Create(ctx, p, CreateInput{
		FileName:    "office.jpg",
		StoragePath: "media/2026/08/abc123.jpg",
		ContentType: "image/jpeg",
		Size:        2048,
		Width:       800,
		Height:      600,
		Alt:         "Our Dubai office",
		UploadedBy:  p.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if m.URL() != "/media/"+m.ID.Hex() {
		t.Errorf("URL() = %q", m.URL())
	}

	got, err := store.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.StoragePath != m.StoragePath {
		t.Errorf("StoragePath = %q", got.StoragePath)
	}
	if got.Width != 800 || got.Height != 600 {
		t.Errorf("dimensions = %dx%d, want 800x600", got.Width, got.Height)
	}
}

func TestStore_CreateForbiddenForAnonymous(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, authz.Anonymous(), CreateInput{FileName: "x.png"}); err != authz.ErrForbidden {
		t.Errorf("Create() by anonymous error = %v, want ErrForbidden", err)
	}
	if _, err := store.List(ctx, authz.Anonymous(), 10, 1); err != authz.ErrForbidden {
		t.Errorf("List() by anonymous error = %v, want ErrForbidden", err)
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := editor()
	older, _ := store.Create(ctx, p, CreateInput{FileName: "a.png", StoragePath: "media/a.png", ContentType: "image/png"})
	time.Sleep(5 * time.Millisecond) // created_at is stored with millisecond precision
	newer, _ := store.Create(ctx, p, CreateInput{FileName: "b.png", StoragePath: "media/b.png", ContentType: "image/png"})

	out, err := store.List(ctx, p, 10, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("List() count = %d, want 2", len(out))
	}
	if out[0].ID != newer.ID || out[1].ID != older.ID {
		t.Error("uploads should list newest first")
	}
}

func TestStore_DeleteReturnsDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := editor()
	m, _ := store.Create(ctx, p, CreateInput{FileName: "gone.png", StoragePath: "media/gone.png", ContentType: "image/png"})

	deleted, err := store.Delete(ctx, p, m.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted.StoragePath != "media/gone.png" {
		t.Errorf("deleted StoragePath = %q, caller needs it to remove the bytes", deleted.StoragePath)
	}

	if _, err := store.GetByID(ctx, m.ID); err != mongo.ErrNoDocuments {
		t.Errorf("GetByID() after delete error = %v, want ErrNoDocuments", err)
	}
	if _, err := store.Delete(ctx, p, m.ID); err != mongo.ErrNoDocuments {
		t.Errorf("double Delete() error = %v, want ErrNoDocuments", err)
	}
}
