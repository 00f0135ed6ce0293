// internal/app/store/testimonials/testimonialstore.go
package testimonialstore

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
	return &Store{c: db.Collection("testimonials")}
}

// AdminFilter narrows admin listings. Zero value lists everything.
type AdminFilter struct {
	Status string
	Query  string // author name prefix, matched case/diacritic-insensitively
	Limit  int64
	Page   int64
}

func (f AdminFilter) build() bson.M {
	filter := bson.M{}
	if st := normalize.Status(f.Status); st != "" {
		filter["status"] = st
	}
	if q := text.Fold(f.Query); q != "" {
		filter["author_name_ci"] = storeutil.SubstringMatch(q)
	}
	return filter
}

// ListAdmin returns testimonials for the back office, any status,
// in display order. Author identities are visible here even for
// anonymized entries.
func (s *Store) ListAdmin(ctx context.Context, f AdminFilter) ([]models.Testimonial, error) {
	opts := storeutil.Paginate(f.Limit, f.Page).
		SetSort(bson.D{{Key: "order", Value: 1}, {Key: "updated_at", Value: -1}})
	cur, err := s.c.Find(ctx, f.build(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Testimonial
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPublic returns published testimonials, featured entries first,
// then in the admin-assigned display order. Anonymized entries have
// the author's name and photo blanked before leaving the store.
func (s *Store) ListPublic(ctx context.Context, limit, page int64) ([]models.Testimonial, error) {
	filter := bson.M{"status": models.StatusPublished}
	opts := storeutil.Paginate(limit, page).SetSort(storeutil.SortFeaturedOrdered())
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Testimonial
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Anonymized {
			out[i].AuthorName = ""
			out[i].AuthorNameCI = ""
			out[i].AuthorPhotoURL = ""
		}
	}
	return out, nil
}

// GetByID loads a testimonial by ObjectID regardless of status (back office).
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Testimonial, error) {
	var t models.Testimonial
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateInput holds the fields for creating a testimonial.
type CreateInput struct {
	Quote          string
	Status         models.Status // optional; defaults to draft
	AuthorName     string
	AuthorRole     string
	AuthorPhotoURL string
	Country        string
	Anonymized     bool
	Order          int
	Featured       bool
}

// Create inserts a new testimonial, as a draft unless an explicit
// status is given.
func (s *Store) Create(ctx context.Context, p authz.Principal, input CreateInput) (models.Testimonial, error) {
	if !p.CanManageContent() {
		return models.Testimonial{}, authz.ErrForbidden
	}
	status, err := storeutil.InitialStatus(input.Status)
	if err != nil {
		return models.Testimonial{}, err
	}

	author := normalize.Name(input.AuthorName)
	now := time.Now().UTC()
	t := models.Testimonial{
		ID:             primitive.NewObjectID(),
		Quote:          normalize.Name(input.Quote),
		AuthorName:     author,
		AuthorNameCI:   text.Fold(author),
		AuthorRole:     normalize.Name(input.AuthorRole),
		AuthorPhotoURL: normalize.Name(input.AuthorPhotoURL),
		Country:        normalize.Name(input.Country),
		Anonymized:     input.Anonymized,
		Order:          input.Order,
		Featured:       input.Featured,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Testimonial{}, err
	}
	return t, nil
}

// UpdateInput holds the optional fields for updating a testimonial.
// All fields are pointers - nil means "don't update this field".
type UpdateInput struct {
	Quote          *string
	AuthorName     *string
	AuthorRole     *string
	AuthorPhotoURL *string
	Country        *string
	Anonymized     *bool
	Order          *int
	Featured       *bool
}

// Update modifies a testimonial's fields. Publish status changes go
// through SetStatus.
func (s *Store) Update(ctx context.Context, p authz.Principal, id primitive.ObjectID, input UpdateInput) error {
	if !p.CanManageContent() {
		return authz.ErrForbidden
	}

	set := bson.M{"updated_at": time.Now().UTC()}

	if input.Quote != nil {
		set["quote"] = normalize.Name(*input.Quote)
	}
	if input.AuthorName != nil {
		author := normalize.Name(*input.AuthorName)
		set["author_name"] = author
		set["author_name_ci"] = text.Fold(author)
	}
	if input.AuthorRole != nil {
		set["author_role"] = normalize.Name(*input.AuthorRole)
	}
	if input.AuthorPhotoURL != nil {
		set["author_photo_url"] = normalize.Name(*input.AuthorPhotoURL)
	}
	if input.Country != nil {
		set["country"] = normalize.Name(*input.Country)
	}
	if input.Anonymized != nil {
		set["anonymized"] = *input.Anonymized
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

// SetStatus moves a testimonial through the publish workflow.
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

// Delete hard-deletes a testimonial. Superadmin only.
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
