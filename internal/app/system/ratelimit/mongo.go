// internal/app/system/ratelimit/mongo.go
package ratelimit

import (
	"context"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// bucket is the persisted fixed-window counter for one key.
type bucket struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Key         string             `bson:"key"`
	Count       int                `bson:"count"`
	WindowStart time.Time          `bson:"window_start"`
	LastSeen    time.Time          `bson:"last_seen"` // for TTL cleanup
}

// Mongo is a fixed-window limiter backed by a shared collection, so the
// limit holds across server replicas. On database errors it fails open:
// dropping a legitimate lead is worse than letting a burst through.
type Mongo struct {
	c           *mongo.Collection
	maxRequests int
	windowSize  time.Duration

	// now is replaceable in tests.
	now func() time.Time
}

// NewMongo creates a Mongo-backed limiter using the "rate_limits"
// collection of db.
func NewMongo(db *mongo.Database, maxRequests int, windowSize time.Duration) *Mongo {
	return &Mongo{
		c:           db.Collection("rate_limits"),
		maxRequests: maxRequests,
		windowSize:  windowSize,
		now:         time.Now,
	}
}

// Allow implements Limiter. Counting within a live window is a single
// FindOneAndUpdate with $inc, so concurrent requests across replicas
// never read a stale count.
func (m *Mongo) Allow(ctx context.Context, key string) bool {
	now := m.now()
	cutoff := now.Add(-m.windowSize)

	b, err := m.increment(ctx, key, now, cutoff)
	if err == nil {
		return b.Count <= m.maxRequests
	}
	if err != mongo.ErrNoDocuments {
		return true
	}

	// No live window for this key: start one. The window reset rides on
	// the same filter, so a denied burst never pushes the reset point
	// out. The upsert races other replicas; the unique index on key
	// turns the loser's insert into a duplicate error, and the loser
	// falls back to counting against the winner's fresh window.
	_, err = m.c.UpdateOne(ctx,
		bson.M{"key": key, "window_start": bson.M{"$lte": cutoff}},
		bson.M{"$set": bson.M{"count": 1, "window_start": now, "last_seen": now}},
		options.Update().SetUpsert(true),
	)
	if err == nil {
		return true
	}
	if !wafflemongo.IsDup(err) {
		return true
	}

	b, err = m.increment(ctx, key, now, cutoff)
	if err != nil {
		return true
	}
	return b.Count <= m.maxRequests
}

// increment bumps the counter of the key's live window in one atomic
// round trip and returns the post-increment bucket. ErrNoDocuments
// means there is no window newer than cutoff.
func (m *Mongo) increment(ctx context.Context, key string, now, cutoff time.Time) (bucket, error) {
	var b bucket
	err := m.c.FindOneAndUpdate(ctx,
		bson.M{"key": key, "window_start": bson.M{"$gt": cutoff}},
		bson.M{"$inc": bson.M{"count": 1}, "$set": bson.M{"last_seen": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	return b, err
}
