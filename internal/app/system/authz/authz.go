// internal/app/system/authz/authz.go

// Package authz is the authorization gate for content mutations.
//
// The content layer consumes exactly one fact about the caller: their
// role. Every mutating store operation takes a Principal and checks it
// before touching MongoDB, so an unauthorized call has no side effects
// regardless of how the HTTP layer is wired.
package authz

import (
	"errors"
	"net/http"

	"github.com/clearpathvisa/clearpath/internal/app/system/auth"
	"github.com/clearpathvisa/clearpath/internal/app/system/normalize"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrForbidden is returned by store mutations when the principal lacks
// the required role. It is surfaced as 403 at the HTTP layer.
var ErrForbidden = errors.New("forbidden: principal lacks required role")

// Principal is the authenticated actor a request runs as.
// A zero Principal (empty role) is an anonymous visitor.
type Principal struct {
	ID   primitive.ObjectID
	Name string
	Role string // superadmin | editor | "" (anonymous)
}

// Anonymous returns the unauthenticated principal.
func Anonymous() Principal {
	return Principal{}
}

// Superadmin returns a superadmin principal, for seeding and tests.
func Superadmin(id primitive.ObjectID, name string) Principal {
	return Principal{ID: id, Name: name, Role: models.RoleSuperadmin}
}

// CanManageContent reports whether the principal may create, update,
// and change publish status of content entities.
func (p Principal) CanManageContent() bool {
	return p.Role == models.RoleSuperadmin || p.Role == models.RoleEditor
}

// CanDelete reports whether the principal may hard-delete content.
func (p Principal) CanDelete() bool {
	return p.Role == models.RoleSuperadmin
}

// CanManageLicense reports whether the principal may edit the agency
// licence record. Licence edits are superadmin-only by policy.
func (p Principal) CanManageLicense() bool {
	return p.Role == models.RoleSuperadmin
}

// CanManageAdmins reports whether the principal may create, update, and
// delete admin accounts.
func (p Principal) CanManageAdmins() bool {
	return p.Role == models.RoleSuperadmin
}

// FromRequest extracts the principal from the session user in the
// request context. Returns Anonymous() when no user is present or the
// stored ID is malformed (fail closed).
func FromRequest(r *http.Request) Principal {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return Anonymous()
	}
	id, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return Anonymous()
	}
	role := normalize.Role(user.Role)
	if !models.IsValidRole(role) {
		return Anonymous()
	}
	return Principal{ID: id, Name: user.Name, Role: role}
}
