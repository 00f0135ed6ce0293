// internal/domain/models/license.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// License is the agency's government-licence verification record.
// Exactly one document exists per deployment (keyed by a singleton
// sentinel); it is auto-created as a draft on first admin access and
// only shown publicly once published.
type License struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AgencyLegalName   string             `bson:"agency_legal_name" json:"agency_legal_name"`
	LicenseNumber     string             `bson:"license_number" json:"license_number"`
	IssuingAuthority  string             `bson:"issuing_authority" json:"issuing_authority"`
	OfficeAddress     string             `bson:"office_address,omitempty" json:"office_address,omitempty"`
	Phone             string             `bson:"phone,omitempty" json:"phone,omitempty"`
	WhatsApp          string             `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	Email             string             `bson:"email,omitempty" json:"email,omitempty"`
	VerificationSteps []string           `bson:"verification_steps,omitempty" json:"verification_steps,omitempty"`
	Status            Status             `bson:"status" json:"status"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}
