package accountRepo

import (
	"context"
	"fmt"
	"time"

	"fixhub/database"
	"fixhub/database/repository"
	"fixhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAccountRepo implements AccountRepository over the clients and
// providers collections.
type MongoAccountRepo struct {
	clients   *mongo.Collection
	providers *mongo.Collection
}

// NewMongoAccountRepo creates a new instance of AccountRepository using MongoDB.
func NewMongoAccountRepo() AccountRepository {
	db := database.MongoClient.Database("fixhub")
	return &MongoAccountRepo{
		clients:   db.Collection("clients"),
		providers: db.Collection("providers"),
	}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAccountRepo) collFor(kind models.ActorKind) *mongo.Collection {
	if kind == models.ActorProvider {
		return r.providers
	}
	return r.clients
}

func (r *MongoAccountRepo) CreateClient(c *models.Client) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.clients.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *MongoAccountRepo) CreateProvider(p *models.Provider) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.providers.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

func (r *MongoAccountRepo) GetClient(id string) (*models.Client, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var c models.Client
	if err := r.clients.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch client with id %s: %w", id, err)
	}
	return &c, nil
}

func (r *MongoAccountRepo) GetProvider(id string) (*models.Provider, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.Provider
	if err := r.providers.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	return &p, nil
}

func (r *MongoAccountRepo) GetClientByEmail(email string) (*models.Client, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var c models.Client
	if err := r.clients.FindOne(ctx, bson.M{"email": email}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch client with email %s: %w", email, err)
	}
	return &c, nil
}

func (r *MongoAccountRepo) GetProviderByEmail(email string) (*models.Provider, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.Provider
	if err := r.providers.FindOne(ctx, bson.M{"email": email}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider with email %s: %w", email, err)
	}
	return &p, nil
}

func (r *MongoAccountRepo) ListProvidersByCategory(category string) ([]models.Provider, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.providers.Find(ctx, bson.M{"category": category})
	if err != nil {
		return nil, fmt.Errorf("failed to find providers for category %s: %w", category, err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}

// guardedUpdate runs an UpdateOne whose filter carries the mutation's
// precondition, mapping a zero match to ErrConflict or ErrNotFound.
func (r *MongoAccountRepo) guardedUpdate(coll *mongo.Collection, id string, filter, update bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter["id"] = id
	result, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update account with id %s: %w", id, err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	count, countErr := coll.CountDocuments(ctx, bson.M{"id": id})
	if countErr != nil {
		return fmt.Errorf("failed to check account with id %s: %w", id, countErr)
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return repository.ErrConflict
}
