// internal/app/store/services/servicestore.go
package servicestore

import (
	"context"
	"time"

	"github.com/clearpathvisa/clearpath/internal/app/store/storeutil"
	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/app/system/htmlsanitize"
	"github.com/clearpathvisa/clearpath/internal/app/system/normalize"
	"github.com/clearpathvisa/clearpath/internal/app/system/slug"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("services")}
}

// AdminFilter narrows admin listings. Zero value lists everything.
type AdminFilter struct {
	Status string // optional publish status
	Query  string // optional title prefix, matched case/diacritic-insensitively
	Limit  int64
	Page   int64
}

func (f AdminFilter) build() bson.M {
	filter := bson.M{}
	if st := normalize.Status(f.Status); st != "" {
		filter["status"] = st
	}
	if q := text.Fold(f.Query); q != "" {
		filter["$or"] = bson.A{
			bson.M{"title_ci": storeutil.SubstringMatch(q)},
			bson.M{"slug": storeutil.SubstringMatch(q)},
		}
	}
	return filter
}

// ListAdmin returns services for the back office, any status, most
// recently edited first.
func (s *Store) ListAdmin(ctx context.Context, f AdminFilter) ([]models.Service, error) {
	opts := storeutil.Paginate(f.Limit, f.Page).SetSort(storeutil.SortRecentlyUpdated())
	cur, err := s.c.Find(ctx, f.build(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Service
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPublic returns published services, featured entries first.
// The status filter is forced here so no caller can widen it.
func (s *Store) ListPublic(ctx context.Context, limit, page int64) ([]models.Service, error) {
	filter := bson.M{"status": models.StatusPublished}
	opts := storeutil.Paginate(limit, page).SetSort(storeutil.SortFeaturedNewest())
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Service
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads a service by ObjectID regardless of status (back office).
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Service, error) {
	var svc models.Service
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

// GetBySlugPublic loads a published service by slug. Draft and archived
// entries return mongo.ErrNoDocuments, same as a missing slug.
func (s *Store) GetBySlugPublic(ctx context.Context, slugVal string) (*models.Service, error) {
	var svc models.Service
	filter := bson.M{"slug": slugVal, "status": models.StatusPublished}
	if err := s.c.FindOne(ctx, filter).Decode(&svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

// CountPublished returns the number of published services.
func (s *Store) CountPublished(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": models.StatusPublished})
}

// CreateInput holds the fields for creating a service.
type CreateInput struct {
	Title        string
	Slug         string        // optional; derived from Title when empty
	Status       models.Status // optional; defaults to draft
	Summary      string
	Content      string
	Requirements []string
	TimelineText string
	SEO          models.SEO
	Featured     bool
}

// Create inserts a new service, as a draft unless an explicit status is
// given. The slug is derived from the title when not given; a collision
// gets a timestamp suffix instead of failing.
func (s *Store) Create(ctx context.Context, p authz.Principal, input CreateInput) (models.Service, error) {
	if !p.CanManageContent() {
		return models.Service{}, authz.ErrForbidden
	}
	status, err := storeutil.InitialStatus(input.Status)
	if err != nil {
		return models.Service{}, err
	}

	title := normalize.Name(input.Title)
	now := time.Now().UTC()
	svc := models.Service{
		ID:           primitive.NewObjectID(),
		Title:        title,
		TitleCI:      text.Fold(title),
		Slug:         slug.Derive(input.Slug, title, now),
		Summary:      normalize.Name(input.Summary),
		Content:      htmlsanitize.Sanitize(input.Content),
		Requirements: input.Requirements,
		TimelineText: normalize.Name(input.TimelineText),
		SEO:          input.SEO,
		Featured:     input.Featured,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.c.InsertOne(ctx, svc); err != nil {
		if !wafflemongo.IsDup(err) {
			return models.Service{}, err
		}
		// Slug collision: retry once with a uniqueness suffix.
		svc.Slug = slug.WithSuffix(svc.Slug, now)
		if _, err := s.c.InsertOne(ctx, svc); err != nil {
			return models.Service{}, err
		}
	}
	return svc, nil
}

// UpdateInput holds the optional fields for updating a service.
// All fields are pointers - nil means "don't update this field".
type UpdateInput struct {
	Title        *string
	Slug         *string
	Summary      *string
	Content      *string
	Requirements *[]string
	TimelineText *string
	SEO          *models.SEO
	Featured     *bool
}

// Update modifies a service's content fields. Publish status changes go
// through SetStatus. A slug collision gets a timestamp suffix.
func (s *Store) Update(ctx context.Context, p authz.Principal, id primitive.ObjectID, input UpdateInput) error {
	if !p.CanManageContent() {
		return authz.ErrForbidden
	}

	now := time.Now().UTC()
	set := bson.M{"updated_at": now}

	if input.Title != nil {
		title := normalize.Name(*input.Title)
		set["title"] = title
		set["title_ci"] = text.Fold(title)
	}
	if input.Slug != nil {
		set["slug"] = slug.Make(*input.Slug)
	}
	if input.Summary != nil {
		set["summary"] = normalize.Name(*input.Summary)
	}
	if input.Content != nil {
		set["content"] = htmlsanitize.Sanitize(*input.Content)
	}
	if input.Requirements != nil {
		set["requirements"] = *input.Requirements
	}
	if input.TimelineText != nil {
		set["timeline_text"] = normalize.Name(*input.TimelineText)
	}
	if input.SEO != nil {
		set["seo"] = *input.SEO
	}
	if input.Featured != nil {
		set["featured"] = *input.Featured
	}

	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil && wafflemongo.IsDup(err) && input.Slug != nil {
		set["slug"] = slug.WithSuffix(slug.Make(*input.Slug), now)
		_, err = s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	}
	return err
}

// SetStatus moves a service through the publish workflow.
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

// Services are never hard-deleted: archiving is the removal path, so
// slugs stay reserved and old links keep resolving to a clean 404.
