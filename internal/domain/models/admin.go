// internal/domain/models/admin.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin roles. Editors manage content and enquiries; superadmins
// additionally hard-delete content and manage the licence record and
// admin accounts. Stored as plain strings so the auth boundary can
// carry them without importing content types.
const (
	RoleSuperadmin = "superadmin"
	RoleEditor     = "editor"
)

// AllRoleValues returns the valid admin roles.
func AllRoleValues() []string {
	return []string{RoleSuperadmin, RoleEditor}
}

// IsValidRole checks if a role value is valid.
func IsValidRole(r string) bool {
	switch strings.ToLower(strings.TrimSpace(r)) {
	case RoleSuperadmin, RoleEditor:
		return true
	}
	return false
}

// Admin is a back-office account. The content layer only ever consumes
// the role; credentials stay inside the auth boundary.
type Admin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email"` // unique, stored lowercase
	EmailCI      string             `bson:"email_ci" json:"-"`
	FullName     string             `bson:"full_name" json:"full_name"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	Role         string             `bson:"role" json:"role"` // superadmin | editor
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
