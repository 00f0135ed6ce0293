package adminapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	enquirystore "github.com/clearpathvisa/clearpath/internal/app/store/enquiries"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
	"github.com/clearpathvisa/clearpath/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (http.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return Routes(NewHandler(db, zap.NewNop())), db
}

// do sends a JSON request with the given user in context and returns
// the recorder.
func do(t *testing.T, h http.Handler, user testutil.TestUser, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithUser(req, user)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v, body: %s", err, rec.Body.String())
	}
}

func TestServices_CreateAndPublishLifecycle(t *testing.T) {
	h, _ := newTestRouter(t)
	ed := testutil.EditorUser()

	rec := do(t, h, ed, http.MethodPost, "/services", map[string]any{
		"title":   "Work Visa Assistance",
		"summary": "End to end support",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var svc models.Service
	decodeBody(t, rec, &svc)
	if svc.Status != models.StatusDraft {
		t.Errorf("new service status = %q, want draft", svc.Status)
	}
	if svc.Slug != "work-visa-assistance" {
		t.Errorf("slug = %q, want derived from title", svc.Slug)
	}

	id := svc.ID.Hex()

	rec = do(t, h, ed, http.MethodPost, "/services/"+id+"/status", map[string]string{"status": "published"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("publish status = %d, body: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, ed, http.MethodGet, "/services/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	decodeBody(t, rec, &svc)
	if svc.Status != models.StatusPublished {
		t.Errorf("status after publish = %q, want published", svc.Status)
	}

	rec = do(t, h, ed, http.MethodPost, "/services/"+id+"/status", map[string]string{"status": "live"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad status value = %d, want 400", rec.Code)
	}
}

func TestServices_SlugCollisionGetsSuffix(t *testing.T) {
	h, _ := newTestRouter(t)
	ed := testutil.EditorUser()

	rec := do(t, h, ed, http.MethodPost, "/services", map[string]any{"title": "Family Visa"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", rec.Code)
	}
	var first models.Service
	decodeBody(t, rec, &first)

	rec = do(t, h, ed, http.MethodPost, "/services", map[string]any{"title": "Family Visa"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("second create status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var second models.Service
	decodeBody(t, rec, &second)

	if first.Slug == second.Slug {
		t.Errorf("second slug %q should differ from first", second.Slug)
	}
}

func TestServices_UpdatePartial(t *testing.T) {
	h, _ := newTestRouter(t)
	ed := testutil.EditorUser()

	rec := do(t, h, ed, http.MethodPost, "/services", map[string]any{
		"title":   "Business Visa",
		"summary": "Original summary",
	})
	var svc models.Service
	decodeBody(t, rec, &svc)

	rec = do(t, h, ed, http.MethodPatch, "/services/"+svc.ID.Hex(), map[string]any{
		"summary": "Updated summary",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var got models.Service
	decodeBody(t, rec, &got)
	if got.Summary != "Updated summary" {
		t.Errorf("summary = %q", got.Summary)
	}
	if got.Title != "Business Visa" {
		t.Errorf("title changed unexpectedly: %q", got.Title)
	}
}

func TestPathID_MalformedIsNotFound(t *testing.T) {
	h, _ := newTestRouter(t)
	ed := testutil.EditorUser()

	rec := do(t, h, ed, http.MethodGet, "/services/not-a-hex-id", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestArticles_DeleteIsSuperadminOnly(t *testing.T) {
	h, _ := newTestRouter(t)
	ed := testutil.EditorUser()
	sa := testutil.SuperadminUser()

	rec := do(t, h, ed, http.MethodPost, "/articles", map[string]any{
		"title":    "Visa Interview Tips",
		"category": "guides",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var a models.Article
	decodeBody(t, rec, &a)

	rec = do(t, h, ed, http.MethodDelete, "/articles/"+a.ID.Hex(), nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("editor delete status = %d, want 403", rec.Code)
	}

	rec = do(t, h, sa, http.MethodDelete, "/articles/"+a.ID.Hex(), nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("superadmin delete status = %d, want 204", rec.Code)
	}

	rec = do(t, h, sa, http.MethodDelete, "/articles/"+a.ID.Hex(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("double delete status = %d, want 404", rec.Code)
	}
}

func TestArticles_UnknownCategoryRejected(t *testing.T) {
	h, _ := newTestRouter(t)
	ed := testutil.EditorUser()

	rec := do(t, h, ed, http.MethodPost, "/articles", map[string]any{
		"title":    "Misc Post",
		"category": "gossip",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body: %s", rec.Code, rec.Body.String())
	}
}

func TestEnquiries_TriageFlow(t *testing.T) {
	h, db := newTestRouter(t)
	ed := testutil.EditorUser()

	// Seed an enquiry the way the public endpoint would.
	ctx, cancel := testutil.TestContext()
	defer cancel()
	seeded, err := enquirystore.New(db).Create(ctx, enquirystore.CreateInput{
		FullName:        "Walk In",
		PhoneOrWhatsApp: "+971500000000",
		Message:         "Please call me back about a visit visa",
	})
	if err != nil {
		t.Fatalf("seed enquiry: %v", err)
	}
	id := seeded.ID.Hex()

	rec := do(t, h, ed, http.MethodPatch, "/enquiries/"+id, map[string]any{
		"status":      "contacted",
		"admin_notes": "Called, follow up on Monday",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("triage status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var e models.Enquiry
	decodeBody(t, rec, &e)
	if e.Status != models.EnquiryContacted {
		t.Errorf("status = %q, want contacted", e.Status)
	}

	rec = do(t, h, ed, http.MethodGet, "/enquiries/stats", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("stats status = %d", rec.Code)
	}
}

func TestLicense_SuperadminOnly(t *testing.T) {
	h, _ := newTestRouter(t)
	ed := testutil.EditorUser()
	sa := testutil.SuperadminUser()

	if rec := do(t, h, ed, http.MethodGet, "/license", nil); rec.Code != http.StatusForbidden {
		t.Errorf("editor license status = %d, want 403", rec.Code)
	}

	rec := do(t, h, sa, http.MethodGet, "/license", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("superadmin license status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var lic models.License
	decodeBody(t, rec, &lic)
	if lic.Status != models.StatusDraft {
		t.Errorf("initial licence status = %q, want draft", lic.Status)
	}
}

func TestSettings_PutReplacesDocument(t *testing.T) {
	h, _ := newTestRouter(t)
	ed := testutil.EditorUser()

	rec := do(t, h, ed, http.MethodPut, "/settings", map[string]any{
		"site_name": "ClearPath Visa Services",
		"email":     "hello@clearpathvisa.com",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var s models.SiteSettings
	decodeBody(t, rec, &s)
	if s.SiteName != "ClearPath Visa Services" {
		t.Errorf("site name = %q", s.SiteName)
	}
}

func TestAdmins_Management(t *testing.T) {
	h, _ := newTestRouter(t)
	ed := testutil.EditorUser()
	sa := testutil.SuperadminUser()

	if rec := do(t, h, ed, http.MethodGet, "/admins", nil); rec.Code != http.StatusForbidden {
		t.Errorf("editor list admins status = %d, want 403", rec.Code)
	}

	rec := do(t, h, sa, http.MethodPost, "/admins", map[string]any{
		"email":     "new.editor@example.com",
		"full_name": "New Editor",
		"role":      "editor",
		"password":  "Str0ngEnough!",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create admin status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var created models.Admin
	decodeBody(t, rec, &created)

	// Duplicate email conflicts.
	rec = do(t, h, sa, http.MethodPost, "/admins", map[string]any{
		"email":     "New.Editor@Example.com",
		"full_name": "Duplicate",
		"role":      "editor",
		"password":  "Str0ngEnough!",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate email status = %d, want 409", rec.Code)
	}

	// Weak and unknown-role payloads are rejected up front.
	rec = do(t, h, sa, http.MethodPost, "/admins", map[string]any{
		"email":     "weak@example.com",
		"full_name": "Weak",
		"role":      "editor",
		"password":  "123",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("weak password status = %d, want 400", rec.Code)
	}
	rec = do(t, h, sa, http.MethodPost, "/admins", map[string]any{
		"email":     "owner@example.com",
		"full_name": "Owner",
		"role":      "owner",
		"password":  "Str0ngEnough!",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad role status = %d, want 400", rec.Code)
	}

	// Role change and delete.
	rec = do(t, h, sa, http.MethodPatch, "/admins/"+created.ID.Hex(), map[string]any{"role": "superadmin"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update admin status = %d, body: %s", rec.Code, rec.Body.String())
	}
	rec = do(t, h, sa, http.MethodDelete, "/admins/"+created.ID.Hex(), nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete admin status = %d, want 204", rec.Code)
	}
}

func TestAdmins_LastSuperadminProtected(t *testing.T) {
	h, _ := newTestRouter(t)
	sa := testutil.SuperadminUser()

	rec := do(t, h, sa, http.MethodPost, "/admins", map[string]any{
		"email":     "only.root@example.com",
		"full_name": "Only Root",
		"role":      "superadmin",
		"password":  "Str0ngEnough!",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var created models.Admin
	decodeBody(t, rec, &created)

	// The only superadmin on record cannot be removed.
	rec = do(t, h, sa, http.MethodDelete, "/admins/"+created.ID.Hex(), nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("delete last superadmin status = %d, want 409", rec.Code)
	}
}
