// internal/domain/models/teammember.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamMember is a staff profile shown on the team page.
// Order is a manual sort key; lower values render first.
type TeamMember struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	NameCI    string             `bson:"name_ci" json:"-"`
	Role      string             `bson:"role" json:"role"`
	PhotoURL  string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	Bio       string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Order     int                `bson:"order" json:"order"`
	Featured  bool               `bson:"featured" json:"featured"`
	Status    Status             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
