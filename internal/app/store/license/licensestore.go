// internal/app/store/license/licensestore.go
package licensestore

import (
	"context"
	"time"

	"github.com/clearpathvisa/clearpath/internal/app/store/storeutil"
	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/app/system/normalize"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages the single licence verification record. The document is
// keyed by a fixed sentinel field so concurrent first accesses converge
// on one document instead of racing inserts.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("license")}
}

var singletonKey = bson.M{"singleton": true}

// GetOrCreateDraft returns the licence record, creating an empty draft
// on first access. Superadmin only; the licence page carries legal
// weight so editors cannot touch it.
func (s *Store) GetOrCreateDraft(ctx context.Context, p authz.Principal) (*models.License, error) {
	if !p.CanManageLicense() {
		return nil, authz.ErrForbidden
	}

	now := time.Now().UTC()
	update := bson.M{"$setOnInsert": bson.M{
		"_id":        primitive.NewObjectID(),
		"singleton":  true,
		"status":     models.StatusDraft,
		"created_at": now,
		"updated_at": now,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var lic models.License
	if err := s.c.FindOneAndUpdate(ctx, singletonKey, update, opts).Decode(&lic); err != nil {
		return nil, err
	}
	return &lic, nil
}

// GetPublic returns the licence record only when published. A draft or
// archived record returns mongo.ErrNoDocuments, same as none existing.
func (s *Store) GetPublic(ctx context.Context) (*models.License, error) {
	var lic models.License
	filter := bson.M{"singleton": true, "status": models.StatusPublished}
	if err := s.c.FindOne(ctx, filter).Decode(&lic); err != nil {
		return nil, err
	}
	return &lic, nil
}

// UpdateInput holds the optional fields for updating the licence record.
// All fields are pointers - nil means "don't update this field".
type UpdateInput struct {
	AgencyLegalName   *string
	LicenseNumber     *string
	IssuingAuthority  *string
	OfficeAddress     *string
	Phone             *string
	WhatsApp          *string
	Email             *string
	VerificationSteps *[]string
}

// Update modifies the licence record's fields. The record is created as
// a draft first if it does not exist yet. Superadmin only.
func (s *Store) Update(ctx context.Context, p authz.Principal, input UpdateInput) (*models.License, error) {
	if _, err := s.GetOrCreateDraft(ctx, p); err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}

	if input.AgencyLegalName != nil {
		set["agency_legal_name"] = normalize.Name(*input.AgencyLegalName)
	}
	if input.LicenseNumber != nil {
		set["license_number"] = normalize.Name(*input.LicenseNumber)
	}
	if input.IssuingAuthority != nil {
		set["issuing_authority"] = normalize.Name(*input.IssuingAuthority)
	}
	if input.OfficeAddress != nil {
		set["office_address"] = normalize.Name(*input.OfficeAddress)
	}
	if input.Phone != nil {
		set["phone"] = normalize.Phone(*input.Phone)
	}
	if input.WhatsApp != nil {
		set["whatsapp"] = normalize.Phone(*input.WhatsApp)
	}
	if input.Email != nil {
		set["email"] = normalize.Email(*input.Email)
	}
	if input.VerificationSteps != nil {
		set["verification_steps"] = *input.VerificationSteps
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var lic models.License
	if err := s.c.FindOneAndUpdate(ctx, singletonKey, bson.M{"$set": set}, opts).Decode(&lic); err != nil {
		return nil, err
	}
	return &lic, nil
}

// SetStatus moves the licence record through the publish workflow.
// Superadmin only.
func (s *Store) SetStatus(ctx context.Context, p authz.Principal, status models.Status) error {
	if !p.CanManageLicense() {
		return authz.ErrForbidden
	}
	if !models.IsValidStatus(string(status)) {
		return storeutil.ErrBadStatus
	}
	res, err := s.c.UpdateOne(ctx, singletonKey, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
