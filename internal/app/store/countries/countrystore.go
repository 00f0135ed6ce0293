// internal/app/store/countries/countrystore.go
package countrystore

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
	return &Store{c: db.Collection("countries")}
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
		filter["$or"] = bson.A{
			bson.M{"name_ci": storeutil.SubstringMatch(q)},
			bson.M{"slug": storeutil.SubstringMatch(q)},
		}
	}
	return filter
}

// ListAdmin returns country guides for the back office, any status,
// most recently edited first.
func (s *Store) ListAdmin(ctx context.Context, f AdminFilter) ([]models.Country, error) {
	opts := storeutil.Paginate(f.Limit, f.Page).SetSort(storeutil.SortRecentlyUpdated())
	cur, err := s.c.Find(ctx, f.build(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Country
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPublic returns published country guides, featured entries first.
func (s *Store) ListPublic(ctx context.Context, limit, page int64) ([]models.Country, error) {
	filter := bson.M{"status": models.StatusPublished}
	opts := storeutil.Paginate(limit, page).SetSort(storeutil.SortFeaturedNewest())
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Country
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads a country guide by ObjectID regardless of status (back office).
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Country, error) {
	var c models.Country
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetBySlugPublic loads a published country guide by slug. Draft and
// archived entries return mongo.ErrNoDocuments, same as a missing slug.
func (s *Store) GetBySlugPublic(ctx context.Context, slugVal string) (*models.Country, error) {
	var c models.Country
	filter := bson.M{"slug": slugVal, "status": models.StatusPublished}
	if err := s.c.FindOne(ctx, filter).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateInput holds the fields for creating a country guide.
type CreateInput struct {
	Name               string
	Slug               string        // optional; derived from Name when empty
	Status             models.Status // optional; defaults to draft
	Overview           string
	Content            string
	SupportedVisaTypes []string
	Requirements       []string
	ProcessSteps       []string
	TimelineText       string
	FeesDisclaimer     string
	CoverImage         models.ImageRef
	SEO                models.SEO
	Featured           bool
}

// Create inserts a new country guide, as a draft unless an explicit
// status is given. A slug collision gets a timestamp suffix instead of
// failing.
func (s *Store) Create(ctx context.Context, p authz.Principal, input CreateInput) (models.Country, error) {
	if !p.CanManageContent() {
		return models.Country{}, authz.ErrForbidden
	}
	status, err := storeutil.InitialStatus(input.Status)
	if err != nil {
		return models.Country{}, err
	}

	name := normalize.Name(input.Name)
	now := time.Now().UTC()
	c := models.Country{
		ID:                 primitive.NewObjectID(),
		Name:               name,
		NameCI:             text.Fold(name),
		Slug:               slug.Derive(input.Slug, name, now),
		Overview:           normalize.Name(input.Overview),
		Content:            htmlsanitize.Sanitize(input.Content),
		SupportedVisaTypes: input.SupportedVisaTypes,
		Requirements:       input.Requirements,
		ProcessSteps:       input.ProcessSteps,
		TimelineText:       normalize.Name(input.TimelineText),
		FeesDisclaimer:     normalize.Name(input.FeesDisclaimer),
		CoverImage:         input.CoverImage,
		SEO:                input.SEO,
		Featured:           input.Featured,
		Status:             status,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if !wafflemongo.IsDup(err) {
			return models.Country{}, err
		}
		c.Slug = slug.WithSuffix(c.Slug, now)
		if _, err := s.c.InsertOne(ctx, c); err != nil {
			return models.Country{}, err
		}
	}
	return c, nil
}

// UpdateInput holds the optional fields for updating a country guide.
// All fields are pointers - nil means "don't update this field".
type UpdateInput struct {
	Name               *string
	Slug               *string
	Overview           *string
	Content            *string
	SupportedVisaTypes *[]string
	Requirements       *[]string
	ProcessSteps       *[]string
	TimelineText       *string
	FeesDisclaimer     *string
	CoverImage         *models.ImageRef
	SEO                *models.SEO
	Featured           *bool
}

// Update modifies a country guide's content fields. Publish status
// changes go through SetStatus.
func (s *Store) Update(ctx context.Context, p authz.Principal, id primitive.ObjectID, input UpdateInput) error {
	if !p.CanManageContent() {
		return authz.ErrForbidden
	}

	now := time.Now().UTC()
	set := bson.M{"updated_at": now}

	if input.Name != nil {
		name := normalize.Name(*input.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if input.Slug != nil {
		set["slug"] = slug.Make(*input.Slug)
	}
	if input.Overview != nil {
		set["overview"] = normalize.Name(*input.Overview)
	}
	if input.Content != nil {
		set["content"] = htmlsanitize.Sanitize(*input.Content)
	}
	if input.SupportedVisaTypes != nil {
		set["supported_visa_types"] = *input.SupportedVisaTypes
	}
	if input.Requirements != nil {
		set["requirements"] = *input.Requirements
	}
	if input.ProcessSteps != nil {
		set["process_steps"] = *input.ProcessSteps
	}
	if input.TimelineText != nil {
		set["timeline_text"] = normalize.Name(*input.TimelineText)
	}
	if input.FeesDisclaimer != nil {
		set["fees_disclaimer"] = normalize.Name(*input.FeesDisclaimer)
	}
	if input.CoverImage != nil {
		set["cover_image"] = *input.CoverImage
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

// SetStatus moves a country guide through the publish workflow.
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

// Country guides are never hard-deleted: archiving is the removal path,
// so slugs stay reserved and old links keep resolving to a clean 404.
