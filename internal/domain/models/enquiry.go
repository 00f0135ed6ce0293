// internal/domain/models/enquiry.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EnquiryStatus is the triage state of a lead.
// New leads move new -> contacted -> closed; spam is a parallel
// terminal state reachable from anywhere. Transitions are admin-only
// and not order-enforced.
type EnquiryStatus string

const (
	EnquiryNew       EnquiryStatus = "new"
	EnquiryContacted EnquiryStatus = "contacted"
	EnquiryClosed    EnquiryStatus = "closed"
	EnquirySpam      EnquiryStatus = "spam"
)

// AllEnquiryStatusValues returns the valid triage statuses as strings.
func AllEnquiryStatusValues() []string {
	return []string{
		string(EnquiryNew),
		string(EnquiryContacted),
		string(EnquiryClosed),
		string(EnquirySpam),
	}
}

// IsValidEnquiryStatus checks if a triage status value is valid.
func IsValidEnquiryStatus(s string) bool {
	switch EnquiryStatus(strings.ToLower(strings.TrimSpace(s))) {
	case EnquiryNew, EnquiryContacted, EnquiryClosed, EnquirySpam:
		return true
	}
	return false
}

// EnquirySource identifies which public surface produced the lead.
type EnquirySource string

const (
	SourceContactPage      EnquirySource = "contact_page"
	SourceKnowledgeArticle EnquirySource = "knowledge_article"
	SourceOther            EnquirySource = "other"
)

// AllEnquirySourceValues returns the valid enquiry sources as strings.
func AllEnquirySourceValues() []string {
	return []string{
		string(SourceContactPage),
		string(SourceKnowledgeArticle),
		string(SourceOther),
	}
}

// IsValidEnquirySource checks if a source value is valid.
func IsValidEnquirySource(s string) bool {
	switch EnquirySource(strings.ToLower(strings.TrimSpace(s))) {
	case SourceContactPage, SourceKnowledgeArticle, SourceOther:
		return true
	}
	return false
}

// ContactMethod is the visitor's preferred way to be reached.
type ContactMethod string

const (
	ContactWhatsApp ContactMethod = "WhatsApp"
	ContactPhone    ContactMethod = "Phone"
	ContactEmail    ContactMethod = "Email"
)

// AllContactMethodValues returns the valid contact methods as strings.
func AllContactMethodValues() []string {
	return []string{
		string(ContactWhatsApp),
		string(ContactPhone),
		string(ContactEmail),
	}
}

// IsValidContactMethod checks if a contact method value is valid.
func IsValidContactMethod(s string) bool {
	switch ContactMethod(strings.TrimSpace(s)) {
	case ContactWhatsApp, ContactPhone, ContactEmail:
		return true
	}
	return false
}

// Enquiry is a lead submitted by an unauthenticated visitor.
// Records are immutable after creation except Status and AdminNotes,
// which only admin principals may change.
type Enquiry struct {
	ID                     primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	FullName               string              `bson:"full_name" json:"full_name"`
	PhoneOrWhatsApp        string              `bson:"phone_or_whatsapp" json:"phone_or_whatsapp"`
	Email                  string              `bson:"email,omitempty" json:"email,omitempty"`
	PreferredContactMethod ContactMethod       `bson:"preferred_contact_method,omitempty" json:"preferred_contact_method,omitempty"`
	InterestedServiceID    *primitive.ObjectID `bson:"interested_service_id,omitempty" json:"interested_service_id,omitempty"`
	CountryID              *primitive.ObjectID `bson:"country_id,omitempty" json:"country_id,omitempty"`
	Message                string              `bson:"message" json:"message"`
	Status                 EnquiryStatus       `bson:"status" json:"status"`
	AdminNotes             string              `bson:"admin_notes,omitempty" json:"admin_notes,omitempty"`
	Source                 EnquirySource       `bson:"source" json:"source"`
	CreatedAt              time.Time           `bson:"created_at" json:"created_at"`
}
