// internal/domain/models/article.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ArticleCategory groups knowledge-base articles. Slugs are unique
// per (category, slug) pair, not globally.
type ArticleCategory string

const (
	CategoryGuides    ArticleCategory = "guides"
	CategoryProcess   ArticleCategory = "process"
	CategoryCountries ArticleCategory = "countries"
	CategoryLegal     ArticleCategory = "legal"
)

// AllArticleCategories returns the valid article categories.
func AllArticleCategories() []ArticleCategory {
	return []ArticleCategory{CategoryGuides, CategoryProcess, CategoryCountries, CategoryLegal}
}

// AllArticleCategoryValues returns the valid article categories as strings.
func AllArticleCategoryValues() []string {
	return []string{
		string(CategoryGuides),
		string(CategoryProcess),
		string(CategoryCountries),
		string(CategoryLegal),
	}
}

// IsValidArticleCategory checks if a category value is valid.
func IsValidArticleCategory(c string) bool {
	switch ArticleCategory(strings.ToLower(strings.TrimSpace(c))) {
	case CategoryGuides, CategoryProcess, CategoryCountries, CategoryLegal:
		return true
	}
	return false
}

// Article is a knowledge-base article.
//
// LastUpdatedAt is a freshness stamp shown to readers and is bumped on
// every content mutation. It is distinct from UpdatedAt, which tracks
// any write to the document (including status flips).
type Article struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title         string             `bson:"title" json:"title"`
	TitleCI       string             `bson:"title_ci" json:"-"`
	Slug          string             `bson:"slug" json:"slug"` // unique per (category, slug)
	Category      ArticleCategory    `bson:"category" json:"category"`
	Excerpt       string             `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Content       string             `bson:"content" json:"content"` // sanitized HTML
	FAQ           []FAQItem          `bson:"faq,omitempty" json:"faq,omitempty"`
	CoverImage    ImageRef           `bson:"cover_image,omitempty" json:"cover_image,omitempty"`
	SEO           SEO                `bson:"seo,omitempty" json:"seo,omitempty"`
	AuthorName    string             `bson:"author_name,omitempty" json:"author_name,omitempty"`
	Featured      bool               `bson:"featured" json:"featured"`
	Status        Status             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
	LastUpdatedAt time.Time          `bson:"last_updated_at" json:"last_updated_at"`
}
