// internal/app/store/teammembers/teamstore.go
package teamstore

import (
	"context"
	"time"

	"github.com/clearpathvisa/clearpath/internal/app/store/storeutil"
	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/app/system/normalize"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("team_members")}
}

// AdminFilter narrows admin listings. Zero value lists everything.
type AdminFilter struct {
	Status string
	Query  string // name prefix, matched case/diacritic-insensitively
	Limit  int64
	Page   int64
}

func (f AdminFilter) build() bson.M {
	filter := bson.M{}
	if st := normalize.Status(f.Status); st != "" {
		filter["status"] = st
	}
	if q := text.Fold(f.Query); q != "" {
		filter["name_ci"] = storeutil.SubstringMatch(q)
	}
	return filter
}

// ListAdmin returns team members for the back office, any status,
// in display order, recently edited first within the same order.
func (s *Store) ListAdmin(ctx context.Context, f AdminFilter) ([]models.TeamMember, error) {
	opts := storeutil.Paginate(f.Limit, f.Page).
		SetSort(bson.D{{Key: "order", Value: 1}, {Key: "updated_at", Value: -1}})
	cur, err := s.c.Find(ctx, f.build(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.TeamMember
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPublic returns published team members, featured entries first,
// then in the admin-assigned display order.
func (s *Store) ListPublic(ctx context.Context, limit, page int64) ([]models.TeamMember, error) {
	filter := bson.M{"status": models.StatusPublished}
	opts := storeutil.Paginate(limit, page).SetSort(storeutil.SortFeaturedOrdered())
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.TeamMember
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads a team member by ObjectID regardless of status (back office).
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TeamMember, error) {
	var m models.TeamMember
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateInput holds the fields for creating a team member.
type CreateInput struct {
	Name     string
	Role     string
	Status   models.Status // optional; defaults to draft
	PhotoURL string
	Bio      string
	Order    int
	Featured bool
}

// Create inserts a new team member, as a draft unless an explicit
// status is given.
func (s *Store) Create(ctx context.Context, p authz.Principal, input CreateInput) (models.TeamMember, error) {
	if !p.CanManageContent() {
		return models.TeamMember{}, authz.ErrForbidden
	}
	status, err := storeutil.InitialStatus(input.Status)
	if err != nil {
		return models.TeamMember{}, err
	}

	name := normalize.Name(input.Name)
	now := time.Now().UTC()
	m := models.TeamMember{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Role:      normalize.Name(input.Role),
		PhotoURL:  normalize.Name(input.PhotoURL),
		Bio:       normalize.Name(input.Bio),
		Order:     input.Order,
		Featured:  input.Featured,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.TeamMember{}, err
	}
	return m, nil
}

// UpdateInput holds the optional fields for updating a team member.
// All fields are pointers - nil means "don't update this field".
type UpdateInput struct {
	Name     *string
	Role     *string
	PhotoURL *string
	Bio      *string
	Order    *int
	Featured *bool
}

// Update modifies a team member's fields. Publish status changes go
// through SetStatus.
func (s *Store) Update(ctx context.Context, p authz.Principal, id primitive.ObjectID, input UpdateInput) error {
	if !p.CanManageContent() {
		return authz.ErrForbidden
	}

	set := bson.M{"updated_at": time.Now().UTC()}

	if input.Name != nil {
		name := normalize.Name(*input.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if input.Role != nil {
		set["role"] = normalize.Name(*input.Role)
	}
	if input.PhotoURL != nil {
		set["photo_url"] = normalize.Name(*input.PhotoURL)
	}
	if input.Bio != nil {
		set["bio"] = normalize.Name(*input.Bio)
	}
	if input.Order != nil {
		set["order"] = *input.Order
	}
	if input.Featured != nil {
		set["featured"] = *input.Featured
	}

	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// SetStatus moves a team member through the publish workflow.
func (s *Store) SetStatus(ctx context.Context, p authz.Principal, id primitive.ObjectID, status models.Status) error {
	if !p.CanManageContent() {
		return authz.ErrForbidden
	}
	if !models.IsValidStatus(string(status)) {
		return storeutil.ErrBadStatus
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// Delete hard-deletes a team member. Superadmin only.
func (s *Store) Delete(ctx context.Context, p authz.Principal, id primitive.ObjectID) (int64, error) {
	if !p.CanDelete() {
		return 0, authz.ErrForbidden
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
