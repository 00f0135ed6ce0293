// internal/domain/models/sitesettings.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SiteSettings holds site-wide contact details and branding that admins
// can edit. It is a singleton document keyed by a fixed sentinel; there
// is no publish status; if the document exists it is served.
type SiteSettings struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SiteName    string             `bson:"site_name" json:"site_name"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	WhatsApp    string             `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	MapURL      string             `bson:"map_url,omitempty" json:"map_url,omitempty"`
	SocialLinks map[string]string  `bson:"social_links,omitempty" json:"social_links,omitempty"` // platform -> url
	PrimaryCTA  string             `bson:"primary_cta,omitempty" json:"primary_cta,omitempty"`
	FooterText  string             `bson:"footer_text,omitempty" json:"footer_text,omitempty"`
	LogoURL     string             `bson:"logo_url,omitempty" json:"logo_url,omitempty"`
	LogoDarkURL string             `bson:"logo_dark_url,omitempty" json:"logo_dark_url,omitempty"`
	UpdatedAt   *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// DefaultSiteName is used when no settings document has been saved yet.
const DefaultSiteName = "ClearPath Visa Services"

// DefaultFooterText is the default footer line.
const DefaultFooterText = "ClearPath Visa Services, licensed visa processing agency"
