package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/octobees/lead-enrichment/internal/entity"
)

// HistoryRepository stores per-user lookup history, one entry per
// (user, domain) pair.
type HistoryRepository interface {
	Upsert(ctx context.Context, userID, domain string, at time.Time) error
	ListByUser(ctx context.Context, userID string) ([]entity.HistoryEntry, error)
}

// MongoHistoryRepository implements HistoryRepository on top of the
// user_history collection.
type MongoHistoryRepository struct {
	c *mongo.Collection
}

// NewMongoHistoryRepository wires a mongo backed repository.
func NewMongoHistoryRepository(db *mongo.Database) *MongoHistoryRepository {
	return &MongoHistoryRepository{c: db.Collection("user_history")}
}

// Upsert replaces the last-visited timestamp for the (user, domain)
// pair, creating the entry on first lookup. Other domains in the user's
// history are untouched.
func (r *MongoHistoryRepository) Upsert(ctx context.Context, userID, domain string, at time.Time) error {
	filter := bson.M{"user_id": userID, "domain": domain}
	update := bson.M{"$set": bson.M{"last_visited": at.UTC()}}

	if _, err := r.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("upsert history entry: %w", err)
	}
	return nil
}

// ListByUser returns every history entry recorded for the user.
func (r *MongoHistoryRepository) ListByUser(ctx context.Context, userID string) ([]entity.HistoryEntry, error) {
	cursor, err := r.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	var entries []entity.HistoryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode history entries: %w", err)
	}
	return entries, nil
}

var _ HistoryRepository = (*MongoHistoryRepository)(nil)
