// internal/domain/models/service.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is a visa-processing service offered by the agency
// (e.g. "Work Visa Processing", "Student Visa Consultation").
type Service struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	TitleCI      string             `bson:"title_ci" json:"-"` // folded for case-insensitive admin search
	Slug         string             `bson:"slug" json:"slug"`  // unique within the collection
	Summary      string             `bson:"summary" json:"summary"`
	Content      string             `bson:"content" json:"content"` // sanitized HTML
	Requirements []string           `bson:"requirements,omitempty" json:"requirements,omitempty"`
	TimelineText string             `bson:"timeline_text,omitempty" json:"timeline_text,omitempty"`
	SEO          SEO                `bson:"seo,omitempty" json:"seo,omitempty"`
	Featured     bool               `bson:"featured" json:"featured"`
	Status       Status             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
