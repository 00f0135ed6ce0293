// internal/domain/models/media.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media is an uploaded image. Bytes live in file storage under
// StoragePath; the public URL is derived from the ID.
type Media struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FileName    string             `bson:"file_name" json:"file_name"`
	StoragePath string             `bson:"storage_path" json:"-"`
	ContentType string             `bson:"content_type" json:"content_type"`
	Size        int64              `bson:"size" json:"size"`
	Width       int                `bson:"width,omitempty" json:"width,omitempty"`
	Height      int                `bson:"height,omitempty" json:"height,omitempty"`
	Alt         string             `bson:"alt,omitempty" json:"alt,omitempty"`
	UploadedBy  primitive.ObjectID `bson:"uploaded_by,omitempty" json:"uploaded_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// URL returns the serving path for this media record.
func (m Media) URL() string {
	return "/media/" + m.ID.Hex()
}
