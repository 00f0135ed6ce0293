// internal/app/store/articles/articlestore.go
package articlestore

import (
	"context"
	"errors"
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
	return &Store{c: db.Collection("articles")}
}

// ErrBadCategory is returned when a category value is not recognized.
var ErrBadCategory = errors.New(`category must be "guides"|"process"|"countries"|"legal"`)

// AdminFilter narrows admin listings. Zero value lists everything.
type AdminFilter struct {
	Status   string
	Category string
	Query    string // title prefix, matched case/diacritic-insensitively
	Limit    int64
	Page     int64
}

func (f AdminFilter) build() bson.M {
	filter := bson.M{}
	if st := normalize.Status(f.Status); st != "" {
		filter["status"] = st
	}
	if cat := normalize.Category(f.Category); cat != "" {
		filter["category"] = cat
	}
	if q := text.Fold(f.Query); q != "" {
		filter["$or"] = bson.A{
			bson.M{"title_ci": storeutil.SubstringMatch(q)},
			bson.M{"slug": storeutil.SubstringMatch(q)},
		}
	}
	return filter
}

// ListAdmin returns articles for the back office, any status, most
// recently edited first.
func (s *Store) ListAdmin(ctx context.Context, f AdminFilter) ([]models.Article, error) {
	opts := storeutil.Paginate(f.Limit, f.Page).SetSort(storeutil.SortRecentlyUpdated())
	cur, err := s.c.Find(ctx, f.build(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Article
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPublic returns published articles, featured entries first,
// optionally narrowed to one category.
func (s *Store) ListPublic(ctx context.Context, category string, limit, page int64) ([]models.Article, error) {
	filter := bson.M{"status": models.StatusPublished}
	if cat := normalize.Category(category); cat != "" {
		if !models.IsValidArticleCategory(cat) {
			return nil, ErrBadCategory
		}
		filter["category"] = cat
	}
	opts := storeutil.Paginate(limit, page).SetSort(storeutil.SortFeaturedNewest())
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Article
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads an article by ObjectID regardless of status (back office).
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Article, error) {
	var a models.Article
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetBySlugPublic loads a published article by category and slug. The
// same slug may exist under a different category; both parts identify
// the article.
func (s *Store) GetBySlugPublic(ctx context.Context, category, slugVal string) (*models.Article, error) {
	cat := normalize.Category(category)
	if !models.IsValidArticleCategory(cat) {
		return nil, ErrBadCategory
	}
	var a models.Article
	filter := bson.M{"category": cat, "slug": slugVal, "status": models.StatusPublished}
	if err := s.c.FindOne(ctx, filter).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateInput holds the fields for creating an article.
type CreateInput struct {
	Title      string
	Slug       string        // optional; derived from Title when empty
	Status     models.Status // optional; defaults to draft
	Category   string
	Excerpt    string
	Content    string
	FAQ        []models.FAQItem
	CoverImage models.ImageRef
	SEO        models.SEO
	AuthorName string
	Featured   bool
}

// Create inserts a new article, as a draft unless an explicit status is
// given. Slugs are unique per (category, slug); a collision within the
// category gets a timestamp suffix instead of failing.
func (s *Store) Create(ctx context.Context, p authz.Principal, input CreateInput) (models.Article, error) {
	if !p.CanManageContent() {
		return models.Article{}, authz.ErrForbidden
	}
	status, err := storeutil.InitialStatus(input.Status)
	if err != nil {
		return models.Article{}, err
	}

	cat := normalize.Category(input.Category)
	if !models.IsValidArticleCategory(cat) {
		return models.Article{}, ErrBadCategory
	}

	title := normalize.Name(input.Title)
	now := time.Now().UTC()
	a := models.Article{
		ID:            primitive.NewObjectID(),
		Title:         title,
		TitleCI:       text.Fold(title),
		Slug:          slug.Derive(input.Slug, title, now),
		Category:      models.ArticleCategory(cat),
		Excerpt:       normalize.Name(input.Excerpt),
		Content:       htmlsanitize.Sanitize(input.Content),
		FAQ:           sanitizeFAQ(input.FAQ),
		CoverImage:    input.CoverImage,
		SEO:           input.SEO,
		AuthorName:    normalize.Name(input.AuthorName),
		Featured:      input.Featured,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
		LastUpdatedAt: now,
	}

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if !wafflemongo.IsDup(err) {
			return models.Article{}, err
		}
		a.Slug = slug.WithSuffix(a.Slug, now)
		if _, err := s.c.InsertOne(ctx, a); err != nil {
			return models.Article{}, err
		}
	}
	return a, nil
}

// UpdateInput holds the optional fields for updating an article.
// All fields are pointers - nil means "don't update this field".
type UpdateInput struct {
	Title      *string
	Slug       *string
	Category   *string
	Excerpt    *string
	Content    *string
	FAQ        *[]models.FAQItem
	CoverImage *models.ImageRef
	SEO        *models.SEO
	AuthorName *string
	Featured   *bool
}

// Update modifies an article's content fields and bumps last_updated_at,
// the freshness stamp readers see. Publish status changes go through
// SetStatus and do not touch the stamp.
func (s *Store) Update(ctx context.Context, p authz.Principal, id primitive.ObjectID, input UpdateInput) error {
	if !p.CanManageContent() {
		return authz.ErrForbidden
	}

	now := time.Now().UTC()
	set := bson.M{
		"updated_at":      now,
		"last_updated_at": now,
	}

	if input.Title != nil {
		title := normalize.Name(*input.Title)
		set["title"] = title
		set["title_ci"] = text.Fold(title)
	}
	if input.Slug != nil {
		set["slug"] = slug.Make(*input.Slug)
	}
	if input.Category != nil {
		cat := normalize.Category(*input.Category)
		if !models.IsValidArticleCategory(cat) {
			return ErrBadCategory
		}
		set["category"] = cat
	}
	if input.Excerpt != nil {
		set["excerpt"] = normalize.Name(*input.Excerpt)
	}
	if input.Content != nil {
		set["content"] = htmlsanitize.Sanitize(*input.Content)
	}
	if input.FAQ != nil {
		set["faq"] = sanitizeFAQ(*input.FAQ)
	}
	if input.CoverImage != nil {
		set["cover_image"] = *input.CoverImage
	}
	if input.SEO != nil {
		set["seo"] = *input.SEO
	}
	if input.AuthorName != nil {
		set["author_name"] = normalize.Name(*input.AuthorName)
	}
	if input.Featured != nil {
		set["featured"] = *input.Featured
	}

	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil && wafflemongo.IsDup(err) && (input.Slug != nil || input.Category != nil) {
		// Collision within the (possibly new) category: suffix the slug.
		base := ""
		if input.Slug != nil {
			base = slug.Make(*input.Slug)
		} else {
			cur, gerr := s.GetByID(ctx, id)
			if gerr != nil {
				return err
			}
			base = cur.Slug
		}
		set["slug"] = slug.WithSuffix(base, now)
		_, err = s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	}
	return err
}

// SetStatus moves an article through the publish workflow. The
// last_updated_at freshness stamp is left alone: flipping visibility is
// not a content change.
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

// Delete hard-deletes an article. Superadmin only.
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

// sanitizeFAQ strips unsafe markup from FAQ answers; questions are plain text.
func sanitizeFAQ(items []models.FAQItem) []models.FAQItem {
	if len(items) == 0 {
		return items
	}
	out := make([]models.FAQItem, len(items))
	for i, item := range items {
		out[i] = models.FAQItem{
			Question: normalize.Name(item.Question),
			Answer:   htmlsanitize.Sanitize(item.Answer),
		}
	}
	return out
}
