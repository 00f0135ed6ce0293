// internal/domain/models/testimonial.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Testimonial is a client quote shown on the marketing pages.
// When Anonymized is set, public rendering suppresses the author's
// name and photo; the stored record keeps them for the admin view.
type Testimonial struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Quote          string             `bson:"quote" json:"quote"`
	AuthorName     string             `bson:"author_name" json:"author_name"`
	AuthorNameCI   string             `bson:"author_name_ci" json:"-"`
	AuthorRole     string             `bson:"author_role,omitempty" json:"author_role,omitempty"`
	AuthorPhotoURL string             `bson:"author_photo_url,omitempty" json:"author_photo_url,omitempty"`
	Country        string             `bson:"country,omitempty" json:"country,omitempty"`
	Anonymized     bool               `bson:"anonymized" json:"anonymized"`
	Order          int                `bson:"order" json:"order"`
	Featured       bool               `bson:"featured" json:"featured"`
	Status         Status             `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
