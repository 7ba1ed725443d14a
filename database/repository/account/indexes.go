package accountRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates indexes on both actor collections.
func (r *MongoAccountRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	base := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.clients.Indexes().CreateMany(ctx, base); err != nil {
		return fmt.Errorf("failed to create client indexes: %w", err)
	}

	providerIdx := append(base, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}, {Key: "isAvailable", Value: 1}},
	})
	if _, err := r.providers.Indexes().CreateMany(ctx, providerIdx); err != nil {
		return fmt.Errorf("failed to create provider indexes: %w", err)
	}
	return nil
}
