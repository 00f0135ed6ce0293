package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clearpathvisa/clearpath/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// withTestUser creates a request with a session user in context.
func withTestUser(id, name, role string) *http.Request {
	req := httptest.NewRequest("GET", "/", nil)
	user := &auth.SessionUser{
		ID:   id,
		Name: name,
		Role: role,
	}
	return auth.WithTestUser(req, user)
}

func TestFromRequest(t *testing.T) {
	validID := primitive.NewObjectID().Hex()

	tests := []struct {
		name     string
		userID   string
		userName string
		userRole string
		wantRole string
		wantName string
	}{
		{
			name:     "superadmin",
			userID:   validID,
			userName: "Root Admin",
			userRole: "superadmin",
			wantRole: "superadmin",
			wantName: "Root Admin",
		},
		{
			name:     "editor",
			userID:   validID,
			userName: "Content Editor",
			userRole: "editor",
			wantRole: "editor",
			wantName: "Content Editor",
		},
		{
			name:     "uppercase role normalized",
			userID:   validID,
			userName: "Root Admin",
			userRole: "SUPERADMIN",
			wantRole: "superadmin",
			wantName: "Root Admin",
		},
		{
			name:     "unknown role fails closed",
			userID:   validID,
			userName: "Someone",
			userRole: "moderator",
			wantRole: "",
			wantName: "",
		},
		{
			name:     "malformed id fails closed",
			userID:   "not-a-hex-id",
			userName: "Someone",
			userRole: "editor",
			wantRole: "",
			wantName: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withTestUser(tt.userID, tt.userName, tt.userRole)

			p := FromRequest(req)

			if p.Role != tt.wantRole {
				t.Errorf("Role = %q, want %q", p.Role, tt.wantRole)
			}
			if p.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", p.Name, tt.wantName)
			}
			if tt.wantRole == "" && !p.ID.IsZero() {
				t.Error("expected zero ObjectID for anonymous principal")
			}
			if tt.wantRole != "" && p.ID.IsZero() {
				t.Error("expected non-zero ObjectID")
			}
		})
	}
}

func TestFromRequest_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	p := FromRequest(req)

	if p != Anonymous() {
		t.Errorf("FromRequest() = %+v, want Anonymous()", p)
	}
}

func TestPermissions(t *testing.T) {
	id := primitive.NewObjectID()

	tests := []struct {
		name             string
		p                Principal
		canManageContent bool
		canDelete        bool
		canLicense       bool
		canAdmins        bool
	}{
		{"superadmin", Superadmin(id, "Root"), true, true, true, true},
		{"editor", Principal{ID: id, Role: "editor"}, true, false, false, false},
		{"anonymous", Anonymous(), false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.CanManageContent(); got != tt.canManageContent {
				t.Errorf("CanManageContent() = %v, want %v", got, tt.canManageContent)
			}
			if got := tt.p.CanDelete(); got != tt.canDelete {
				t.Errorf("CanDelete() = %v, want %v", got, tt.canDelete)
			}
			if got := tt.p.CanManageLicense(); got != tt.canLicense {
				t.Errorf("CanManageLicense() = %v, want %v", got, tt.canLicense)
			}
			if got := tt.p.CanManageAdmins(); got != tt.canAdmins {
				t.Errorf("CanManageAdmins() = %v, want %v", got, tt.canAdmins)
			}
		})
	}
}
