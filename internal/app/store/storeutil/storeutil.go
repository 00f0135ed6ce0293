// internal/app/store/storeutil/storeutil.go
package storeutil

import (
	"errors"
	"regexp"

	"github.com/clearpathvisa/clearpath/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrBadStatus is returned by SetStatus and Create when the value is
// not a valid publish status.
var ErrBadStatus = errors.New(`status must be "draft"|"published"|"archived"`)

// InitialStatus resolves the publish status for a new entity: draft
// when unspecified, the given status when valid, ErrBadStatus otherwise.
func InitialStatus(s models.Status) (models.Status, error) {
	if s == "" {
		return models.StatusDraft, nil
	}
	if !models.IsValidStatus(string(s)) {
		return "", ErrBadStatus
	}
	return s, nil
}

// Paginate returns *options.FindOptions with skip/limit given a 1-based page.
func Paginate(limit, page int64) *options.FindOptions {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	sk := (page - 1) * limit
	return options.Find().SetLimit(limit).SetSkip(sk)
}

// SortFeaturedNewest orders public content lists: featured entries first,
// then newest by created_at.
func SortFeaturedNewest() bson.D {
	return bson.D{{Key: "featured", Value: -1}, {Key: "created_at", Value: -1}}
}

// SortFeaturedOrdered orders curated lists (team members, testimonials):
// featured entries first, then by the admin-assigned display order.
func SortFeaturedOrdered() bson.D {
	return bson.D{{Key: "featured", Value: -1}, {Key: "order", Value: 1}, {Key: "created_at", Value: -1}}
}

// SortNewest orders lists newest-first by creation time.
func SortNewest() bson.D {
	return bson.D{{Key: "created_at", Value: -1}}
}

// SortRecentlyUpdated orders admin lists by most recent edit.
func SortRecentlyUpdated() bson.D {
	return bson.D{{Key: "updated_at", Value: -1}}
}

// SubstringMatch builds a regex filter matching values containing q.
// Callers fold q first for case/diacritic-insensitive matching.
func SubstringMatch(q string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(q)}
}
