// internal/app/store/admins/adminstore.go
package adminstore

import (
	"context"
	"errors"
	"time"

	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/app/system/normalize"
	"github.com/clearpathvisa/clearpath/internal/app/system/txn"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	db *mongo.Database
	c  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("admins")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create an admin with an email that already exists.
	ErrDuplicateEmail = errors.New("an admin with this email already exists")
	// ErrLastSuperadmin is returned when a delete would leave no superadmin account.
	ErrLastSuperadmin = errors.New("cannot delete the last superadmin")
	errBadRole        = errors.New("invalid role")
)

// GetByID loads an admin by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	var a models.Admin
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByEmail looks up an admin by email (case-insensitive).
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	if err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns all admins sorted by email.
func (s *Store) List(ctx context.Context) ([]models.Admin, error) {
	opts := options.Find().SetSort(bson.M{"email": 1})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var admins []models.Admin
	if err := cur.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// CreateInput holds the fields for creating a new admin.
type CreateInput struct {
	Email        string
	FullName     string
	Role         string
	PasswordHash string
}

// Create inserts a new admin account. Only superadmins may manage admins.
func (s *Store) Create(ctx context.Context, p authz.Principal, input CreateInput) (models.Admin, error) {
	if !p.CanManageAdmins() {
		return models.Admin{}, authz.ErrForbidden
	}

	role := normalize.Role(input.Role)
	if !models.IsValidRole(role) {
		return models.Admin{}, errBadRole
	}

	now := time.Now().UTC()
	a := models.Admin{
		ID:           primitive.NewObjectID(),
		Email:        normalize.Email(input.Email),
		EmailCI:      text.Fold(input.Email),
		FullName:     normalize.Name(input.FullName),
		PasswordHash: input.PasswordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Admin{}, ErrDuplicateEmail
		}
		return models.Admin{}, err
	}
	return a, nil
}

// UpdateInput holds the optional fields for updating an admin.
// All fields are pointers - nil means "don't update this field".
type UpdateInput struct {
	Email        *string
	FullName     *string
	Role         *string
	PasswordHash *string
}

// Update updates an admin account using optional fields.
// Only superadmins may manage admins.
func (s *Store) Update(ctx context.Context, p authz.Principal, id primitive.ObjectID, input UpdateInput) error {
	if !p.CanManageAdmins() {
		return authz.ErrForbidden
	}

	set := bson.M{
		"updated_at": time.Now().UTC(),
	}

	if input.Email != nil {
		set["email"] = normalize.Email(*input.Email)
		set["email_ci"] = text.Fold(*input.Email)
	}
	if input.FullName != nil {
		set["full_name"] = normalize.Name(*input.FullName)
	}
	if input.Role != nil {
		role := normalize.Role(*input.Role)
		if !models.IsValidRole(role) {
			return errBadRole
		}
		set["role"] = role
	}
	if input.PasswordHash != nil {
		set["password_hash"] = *input.PasswordHash
	}

	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// UpdatePassword sets a new password hash for an admin. Admins may change
// their own password; superadmins may change anyone's.
func (s *Store) UpdatePassword(ctx context.Context, p authz.Principal, id primitive.ObjectID, passwordHash string) error {
	if p.ID != id && !p.CanManageAdmins() {
		return authz.ErrForbidden
	}
	set := bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC(),
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// Delete removes an admin account. Only superadmins may manage admins,
// and the last superadmin can never be deleted. The role check and the
// delete run inside a transaction when the deployment supports them, so
// two concurrent deletes cannot remove both remaining superadmins.
func (s *Store) Delete(ctx context.Context, p authz.Principal, id primitive.ObjectID) (int64, error) {
	if !p.CanManageAdmins() {
		return 0, authz.ErrForbidden
	}

	var deleted int64
	err := txn.Run(ctx, s.db, nil, func(ctx context.Context) error {
		target, err := s.GetByID(ctx, id)
		if err == mongo.ErrNoDocuments {
			return nil
		}
		if err != nil {
			return err
		}
		if target.Role == models.RoleSuperadmin {
			n, err := s.CountSuperadmins(ctx)
			if err != nil {
				return err
			}
			if n <= 1 {
				return ErrLastSuperadmin
			}
		}

		res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		deleted = res.DeletedCount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// CountSuperadmins returns the number of superadmin accounts.
func (s *Store) CountSuperadmins(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"role": models.RoleSuperadmin})
}

// EnsureSuperadmin creates the bootstrap superadmin account if no admin
// with the given email exists. Called at startup so a fresh deployment
// always has a way in. Returns true if the account was created.
func (s *Store) EnsureSuperadmin(ctx context.Context, email, fullName, passwordHash string) (bool, error) {
	now := time.Now().UTC()
	filter := bson.M{"email_ci": text.Fold(email)}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":           primitive.NewObjectID(),
			"email":         normalize.Email(email),
			"email_ci":      text.Fold(email),
			"full_name":     normalize.Name(fullName),
			"password_hash": passwordHash,
			"role":          models.RoleSuperadmin,
			"created_at":    now,
			"updated_at":    now,
		},
	}
	res, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}
