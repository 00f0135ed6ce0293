// internal/app/store/media/mediastore.go
package mediastore

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
)

// Store provides access to the media collection, the records behind
// uploaded images. The bytes themselves live in file storage; this
// collection holds the metadata and the storage path.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("media")}
}

// CreateInput holds the metadata for a completed upload.
type CreateInput struct {
	FileName    string
	StoragePath string
	ContentType string
	Size        int64
	Width       int
	Height      int
	Alt         string
	UploadedBy  primitive.ObjectID
}

// Create records an upload. The caller has already written the bytes to
// storage; on error the caller is responsible for cleaning that up.
func (s *Store) Create(ctx context.Context, p authz.Principal, input CreateInput) (models.Media, error) {
	if !p.CanManageContent() {
		return models.Media{}, authz.ErrForbidden
	}

	m := models.Media{
		ID:          primitive.NewObjectID(),
		FileName:    normalize.Name(input.FileName),
		StoragePath: input.StoragePath,
		ContentType: input.ContentType,
		Size:        input.Size,
		Width:       input.Width,
		Height:      input.Height,
		Alt:         normalize.Name(input.Alt),
		UploadedBy:  input.UploadedBy,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Media{}, err
	}
	return m, nil
}

// GetByID loads a media record. No principal: the serving endpoint is
// public, the URL itself is the capability.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Media, error) {
	var m models.Media
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns uploads for the media picker, newest first.
func (s *Store) List(ctx context.Context, p authz.Principal, limit, page int64) ([]models.Media, error) {
	if !p.CanManageContent() {
		return nil, authz.ErrForbidden
	}
	opts := storeutil.Paginate(limit, page).SetSort(storeutil.SortNewest())
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Media
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a media record and returns the deleted document so the
// caller can remove the stored bytes too.
func (s *Store) Delete(ctx context.Context, p authz.Principal, id primitive.ObjectID) (*models.Media, error) {
	if !p.CanManageContent() {
		return nil, authz.ErrForbidden
	}
	var m models.Media
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}
