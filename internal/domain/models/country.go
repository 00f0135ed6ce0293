// internal/domain/models/country.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Country is a destination-country guide page.
type Country struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name               string             `bson:"name" json:"name"`
	NameCI             string             `bson:"name_ci" json:"-"`
	Slug               string             `bson:"slug" json:"slug"` // unique within the collection
	Overview           string             `bson:"overview,omitempty" json:"overview,omitempty"`
	Content            string             `bson:"content" json:"content"` // sanitized HTML
	SupportedVisaTypes []string           `bson:"supported_visa_types,omitempty" json:"supported_visa_types,omitempty"`
	Requirements       []string           `bson:"requirements,omitempty" json:"requirements,omitempty"`
	ProcessSteps       []string           `bson:"process_steps,omitempty" json:"process_steps,omitempty"`
	TimelineText       string             `bson:"timeline_text,omitempty" json:"timeline_text,omitempty"`
	FeesDisclaimer     string             `bson:"fees_disclaimer,omitempty" json:"fees_disclaimer,omitempty"`
	CoverImage         ImageRef           `bson:"cover_image,omitempty" json:"cover_image,omitempty"`
	SEO                SEO                `bson:"seo,omitempty" json:"seo,omitempty"`
	Featured           bool               `bson:"featured" json:"featured"`
	Status             Status             `bson:"status" json:"status"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}
