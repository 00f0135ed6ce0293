// internal/app/store/enquiries/enquirystore.go
package enquirystore

import (
	"context"
	"errors"
	"time"

	"github.com/clearpathvisa/clearpath/internal/app/store/storeutil"
	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/app/system/htmlsanitize"
	"github.com/clearpathvisa/clearpath/internal/app/system/normalize"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store provides access to the enquiries collection. Creation is the
// only public write in the system; everything else is admin triage.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("enquiries")}
}

var (
	// ErrBadTriageStatus is returned when a triage status value is not recognized.
	ErrBadTriageStatus = errors.New(`status must be "new"|"contacted"|"closed"|"spam"`)

	// ErrBadSource is returned when an enquiry source value is not recognized.
	ErrBadSource = errors.New(`source must be "contact_page"|"knowledge_article"|"other"`)

	// ErrBadContactMethod is returned when a contact method value is not recognized.
	ErrBadContactMethod = errors.New(`preferred contact method must be "WhatsApp"|"Phone"|"Email"`)
)

// CreateInput holds the fields a visitor submits. Consent is checked at
// the handler; the store only receives submissions that passed it.
type CreateInput struct {
	FullName               string
	PhoneOrWhatsApp        string
	Email                  string
	PreferredContactMethod string
	InterestedServiceID    *primitive.ObjectID
	CountryID              *primitive.ObjectID
	Message                string
	Source                 string
}

// Create inserts a new enquiry with status new. No principal is
// required: this is the public contact form. Free-text fields are
// stripped of markup before storage.
func (s *Store) Create(ctx context.Context, input CreateInput) (models.Enquiry, error) {
	src := normalize.Status(input.Source)
	if src == "" {
		src = string(models.SourceContactPage)
	}
	if !models.IsValidEnquirySource(src) {
		return models.Enquiry{}, ErrBadSource
	}

	method := normalize.Name(input.PreferredContactMethod)
	if method != "" && !models.IsValidContactMethod(method) {
		return models.Enquiry{}, ErrBadContactMethod
	}

	e := models.Enquiry{
		ID:                     primitive.NewObjectID(),
		FullName:               htmlsanitize.StripTags(input.FullName),
		PhoneOrWhatsApp:        normalize.Phone(input.PhoneOrWhatsApp),
		Email:                  normalize.Email(input.Email),
		PreferredContactMethod: models.ContactMethod(method),
		InterestedServiceID:    input.InterestedServiceID,
		CountryID:              input.CountryID,
		Message:                htmlsanitize.StripTags(input.Message),
		Status:                 models.EnquiryNew,
		Source:                 models.EnquirySource(src),
		CreatedAt:              time.Now().UTC(),
	}

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Enquiry{}, err
	}
	return e, nil
}

// Filter narrows admin enquiry listings. Zero value lists everything.
type Filter struct {
	Status string
	Source string
	From   time.Time // inclusive lower bound on created_at
	To     time.Time // exclusive upper bound on created_at
	Limit  int64
	Page   int64
}

func (f Filter) build() (bson.M, error) {
	filter := bson.M{}
	if st := normalize.Status(f.Status); st != "" {
		if !models.IsValidEnquiryStatus(st) {
			return nil, ErrBadTriageStatus
		}
		filter["status"] = st
	}
	if src := normalize.Status(f.Source); src != "" {
		if !models.IsValidEnquirySource(src) {
			return nil, ErrBadSource
		}
		filter["source"] = src
	}
	created := bson.M{}
	if !f.From.IsZero() {
		created["$gte"] = f.From
	}
	if !f.To.IsZero() {
		created["$lt"] = f.To
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}
	return filter, nil
}

// List returns enquiries for triage, newest first. Admin only.
func (s *Store) List(ctx context.Context, p authz.Principal, f Filter) ([]models.Enquiry, error) {
	if !p.CanManageContent() {
		return nil, authz.ErrForbidden
	}
	filter, err := f.build()
	if err != nil {
		return nil, err
	}
	opts := storeutil.Paginate(f.Limit, f.Page).SetSort(storeutil.SortNewest())
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Enquiry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads a single enquiry. Admin only.
func (s *Store) GetByID(ctx context.Context, p authz.Principal, id primitive.ObjectID) (*models.Enquiry, error) {
	if !p.CanManageContent() {
		return nil, authz.ErrForbidden
	}
	var e models.Enquiry
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// CountByStatus returns how many enquiries sit in each triage state,
// for the admin dashboard.
func (s *Store) CountByStatus(ctx context.Context, p authz.Principal) (map[models.EnquiryStatus]int64, error) {
	if !p.CanManageContent() {
		return nil, authz.ErrForbidden
	}
	counts := make(map[models.EnquiryStatus]int64, 4)
	for _, st := range models.AllEnquiryStatusValues() {
		n, err := s.c.CountDocuments(ctx, bson.M{"status": st})
		if err != nil {
			return nil, err
		}
		counts[models.EnquiryStatus(st)] = n
	}
	return counts, nil
}

// TriageInput holds the only mutable parts of an enquiry.
type TriageInput struct {
	Status     *string
	AdminNotes *string
}

// UpdateTriage changes an enquiry's triage status and admin notes. The
// visitor-submitted fields are immutable after creation.
func (s *Store) UpdateTriage(ctx context.Context, p authz.Principal, id primitive.ObjectID, input TriageInput) error {
	if !p.CanManageContent() {
		return authz.ErrForbidden
	}

	set := bson.M{}
	if input.Status != nil {
		st := normalize.Status(*input.Status)
		if !models.IsValidEnquiryStatus(st) {
			return ErrBadTriageStatus
		}
		set["status"] = st
	}
	if input.AdminNotes != nil {
		set["admin_notes"] = htmlsanitize.StripTags(*input.AdminNotes)
	}
	if len(set) == 0 {
		return nil
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
