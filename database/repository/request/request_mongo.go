package requestRepo

import (
	"context"
	"fmt"
	"time"

	"fixhub/database"
	"fixhub/database/repository"
	"fixhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRequestRepo implements RequestRepository using MongoDB.
type MongoRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoRequestRepo creates a new instance of RequestRepository using MongoDB.
func NewMongoRequestRepo() RequestRepository {
	coll := database.MongoClient.Database("fixhub").Collection("requests")
	return &MongoRequestRepo{coll: coll}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRequestRepo) Create(req *models.ServiceRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

func (r *MongoRequestRepo) GetByID(id string) (*models.ServiceRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.ServiceRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch request with id %s: %w", id, err)
	}
	return &req, nil
}

func (r *MongoRequestRepo) ListByClient(clientID string, includeArchived bool) ([]models.ServiceRequest, error) {
	filter := bson.M{"clientId": clientID}
	if !includeArchived {
		filter["archivedByClient"] = false
	}
	return r.list(filter, bson.D{{Key: "createdAt", Value: -1}})
}

func (r *MongoRequestRepo) ListByProvider(providerID string, includeArchived bool) ([]models.ServiceRequest, error) {
	filter := bson.M{"providerId": providerID}
	if !includeArchived {
		filter["archivedByProvider"] = false
	}
	return r.list(filter, bson.D{{Key: "createdAt", Value: -1}})
}

func (r *MongoRequestRepo) ListOpenByCategory(category string, from, to time.Time) ([]models.ServiceRequest, error) {
	filter := bson.M{
		"category": category,
		"status":   models.StatusOpen,
	}
	window := bson.M{}
	if !from.IsZero() {
		window["$gte"] = from
	}
	if !to.IsZero() {
		window["$lt"] = to
	}
	if len(window) > 0 {
		filter["scheduledDate"] = window
	}
	return r.list(filter, bson.D{{Key: "scheduledDate", Value: 1}})
}

func (r *MongoRequestRepo) CountActiveByProvider(providerID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{
		"providerId": providerID,
		"status": bson.M{"$in": []models.RequestStatus{
			models.StatusAccepted, models.StatusConfirmed, models.StatusInProgress,
		}},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count active requests for provider %s: %w", providerID, err)
	}
	return count, nil
}

func (r *MongoRequestRepo) list(filter bson.M, sort bson.D) ([]models.ServiceRequest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.ServiceRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode requests: %w", err)
	}
	return requests, nil
}

// conditionalUpdate runs a FindOneAndUpdate whose filter carries the
// transition precondition. A miss is classified as ErrConflict when the
// request exists and ErrNotFound otherwise.
func (r *MongoRequestRepo) conditionalUpdate(id string, filter, update bson.M) (*models.ServiceRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter["id"] = id
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req models.ServiceRequest
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&req)
	if err == nil {
		return &req, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to update request with id %s: %w", id, err)
	}

	count, countErr := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if countErr != nil {
		return nil, fmt.Errorf("failed to check request with id %s: %w", id, countErr)
	}
	if count == 0 {
		return nil, repository.ErrNotFound
	}
	return nil, repository.ErrConflict
}
