package servicestore

import (
	"testing"

	"github.com/clearpathvisa/clearpath/internal/app/store/storeutil"
	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
	"github.com/clearpathvisa/clearpath/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func editor() authz.Principal {
	return authz.Principal{ID: primitive.NewObjectID(), Name: "Test Editor", Role: models.RoleEditor}
}

func TestStore_Create_DerivesSlugAndStartsDraft(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	svc, err := store.Create(ctx, editor(), CreateInput{
		Title:   "Work Visa Processing",
		Summary: "End to end work visa handling",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if svc.Slug != "work-visa-processing" {
		t.Errorf("Slug = %q, want 'work-visa-processing'", svc.Slug)
	}
	if svc.Status != models.StatusDraft {
		t.Errorf("Status = %q, want draft", svc.Status)
	}
	if svc.CreatedAt.IsZero() || svc.UpdatedAt.IsZero() {
		t.Error("timestamps should be set on create")
	}
}

func TestStore_Create_ExplicitStatusWins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	svc, err := store.Create(ctx, editor(), CreateInput{
		Title:  "Express Visa Processing",
		Status: models.StatusPublished,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if svc.Status != models.StatusPublished {
		t.Errorf("Status = %q, want published", svc.Status)
	}

	// Published at create means publicly visible right away.
	out, err := store.ListPublic(ctx, 10, 1)
	if err != nil {
		t.Fatalf("ListPublic() error = %v", err)
	}
	if len(out) != 1 || out[0].ID != svc.ID {
		t.Errorf("ListPublic() count = %d, want the new service", len(out))
	}
}

func TestStore_Create_RejectsBadStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, editor(), CreateInput{
		Title:  "Consultation",
		Status: models.Status("live"),
	})
	if err != storeutil.ErrBadStatus {
		t.Errorf("Create() error = %v, want ErrBadStatus", err)
	}
}

func TestStore_Create_ExplicitSlugWins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	svc, err := store.Create(ctx, editor(), CreateInput{
		Title: "Student Visa Processing",
		Slug:  "Study Abroad!",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if svc.Slug != "study-abroad" {
		t.Errorf("Slug = %q, want 'study-abroad'", svc.Slug)
	}
}

func TestStore_Create_SlugCollisionGetsSuffix(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := editor()
	first, err := store.Create(ctx, p, CreateInput{Title: "Work Visa"})
	if err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	second, err := store.Create(ctx, p, CreateInput{Title: "Work Visa"})
	if err != nil {
		t.Fatalf("second Create() error = %v", err)
	}
	if second.Slug == first.Slug {
		t.Errorf("second slug %q should differ from first", second.Slug)
	}
	if second.Slug[:len(first.Slug)] != first.Slug {
		t.Errorf("second slug %q should start with %q", second.Slug, first.Slug)
	}
}

func TestStore_Create_AnonymousForbidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, authz.Anonymous(), CreateInput{Title: "Work Visa"})
	if err != authz.ErrForbidden {
		t.Errorf("Create() by anonymous error = %v, want ErrForbidden", err)
	}

	// Nothing should have been written.
	all, err := store.ListAdmin(ctx, AdminFilter{})
	if err != nil {
		t.Fatalf("ListAdmin() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("collection should be empty, got %d docs", len(all))
	}
}

func TestStore_Create_SanitizesContent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	svc, err := store.Create(ctx, editor(), CreateInput{
		Title:   "Business Visa",
		Content: `<p>Safe</p><script>alert("x")</script>`,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if svc.Content != "<p>Safe</p>" {
		t.Errorf("Content = %q, script should be stripped", svc.Content)
	}
}

func TestStore_ListPublic_OnlyPublishedFeaturedFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := editor()
	draft, _ := store.Create(ctx, p, CreateInput{Title: "Draft Service"})
	plain, _ := store.Create(ctx, p, CreateInput{Title: "Plain Service"})
	feat, _ := store.Create(ctx, p, CreateInput{Title: "Featured Service", Featured: true})

	if err := store.SetStatus(ctx, p, plain.ID, models.StatusPublished); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	if err := store.SetStatus(ctx, p, feat.ID, models.StatusPublished); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}

	out, err := store.ListPublic(ctx, 10, 1)
	if err != nil {
		t.Fatalf("ListPublic() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("ListPublic() count = %d, want 2", len(out))
	}
	if out[0].ID != feat.ID {
		t.Errorf("featured service should sort first, got %q", out[0].Title)
	}
	for _, svc := range out {
		if svc.ID == draft.ID {
			t.Error("draft service leaked into public listing")
		}
	}
}

func TestStore_GetBySlugPublic_HidesDraftAndArchived(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := editor()
	svc, _ := store.Create(ctx, p, CreateInput{Title: "Tourist Visa"})

	if _, err := store.GetBySlugPublic(ctx, svc.Slug); err != mongo.ErrNoDocuments {
		t.Errorf("draft lookup error = %v, want ErrNoDocuments", err)
	}

	store.SetStatus(ctx, p, svc.ID, models.StatusPublished)
	got, err := store.GetBySlugPublic(ctx, svc.Slug)
	if err != nil {
		t.Fatalf("GetBySlugPublic() after publish error = %v", err)
	}
	if got.ID != svc.ID {
		t.Errorf("got wrong service %v", got.ID)
	}

	store.SetStatus(ctx, p, svc.ID, models.StatusArchived)
	if _, err := store.GetBySlugPublic(ctx, svc.Slug); err != mongo.ErrNoDocuments {
		t.Errorf("archived lookup error = %v, want ErrNoDocuments", err)
	}
}

func TestStore_Update_PartialFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := editor()
	svc, _ := store.Create(ctx, p, CreateInput{
		Title:   "Family Visa",
		Summary: "Original summary",
	})

	newSummary := "Updated summary"
	if err := store.Update(ctx, p, svc.ID, UpdateInput{Summary: &newSummary}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := store.GetByID(ctx, svc.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Summary != newSummary {
		t.Errorf("Summary = %q, want %q", got.Summary, newSummary)
	}
	if got.Title != "Family Visa" {
		t.Errorf("Title = %q, should be untouched", got.Title)
	}
	if got.Slug != svc.Slug {
		t.Errorf("Slug = %q, should be untouched", got.Slug)
	}
}

func TestStore_SetStatus_RejectsBadValue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := editor()
	svc, _ := store.Create(ctx, p, CreateInput{Title: "Transit Visa"})

	if err := store.SetStatus(ctx, p, svc.ID, models.Status("live")); err == nil {
		t.Error("SetStatus() with bad value should fail")
	}

	got, _ := store.GetByID(ctx, svc.ID)
	if got.Status != models.StatusDraft {
		t.Errorf("Status = %q, should still be draft", got.Status)
	}
}

func TestStore_Archive_RemovesFromPublicButKeepsRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := editor()
	svc, _ := store.Create(ctx, p, CreateInput{Title: "Appeal Handling"})
	store.SetStatus(ctx, p, svc.ID, models.StatusPublished)
	store.SetStatus(ctx, p, svc.ID, models.StatusArchived)

	out, err := store.ListPublic(ctx, 10, 1)
	if err != nil {
		t.Fatalf("ListPublic() error = %v", err)
	}
	if len(out) != 0 {
		t.Errorf("archived service still public, count = %d", len(out))
	}

	// The record and its slug survive for the back office.
	got, err := store.GetByID(ctx, svc.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Slug != svc.Slug {
		t.Errorf("Slug = %q, want %q", got.Slug, svc.Slug)
	}
}

func TestStore_ListAdmin_FiltersByStatusAndQuery(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := editor()
	a, _ := store.Create(ctx, p, CreateInput{Title: "Work Visa"})
	store.Create(ctx, p, CreateInput{Title: "Student Visa"})
	store.SetStatus(ctx, p, a.ID, models.StatusPublished)

	byStatus, err := store.ListAdmin(ctx, AdminFilter{Status: "Published"})
	if err != nil {
		t.Fatalf("ListAdmin() error = %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != a.ID {
		t.Errorf("status filter returned %d docs, want the published one", len(byStatus))
	}

	byQuery, err := store.ListAdmin(ctx, AdminFilter{Query: "stud"})
	if err != nil {
		t.Fatalf("ListAdmin() error = %v", err)
	}
	if len(byQuery) != 1 || byQuery[0].Title != "Student Visa" {
		t.Errorf("query filter returned %d docs, want Student Visa", len(byQuery))
	}
}

func TestStore_CountPublished(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := editor()
	a, _ := store.Create(ctx, p, CreateInput{Title: "One"})
	store.Create(ctx, p, CreateInput{Title: "Two"})
	store.SetStatus(ctx, p, a.ID, models.StatusPublished)

	n, err := store.CountPublished(ctx)
	if err != nil {
		t.Fatalf("CountPublished() error = %v", err)
	}
	if n != 1 {
		t.Errorf("CountPublished() = %d, want 1", n)
	}
}
