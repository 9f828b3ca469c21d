package serviceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trimly/database"
	"trimly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo creates a new instance of ServiceRepository using MongoDB.
func NewMongoServiceRepo() ServiceRepository {
	repo := &MongoServiceRepo{coll: database.Collection("services")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create service indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoServiceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "salonId", Value: 1}}},
		{Keys: bson.D{{Key: "categoryId", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoServiceRepo) Create(service *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	service.CreatedAt = now
	service.UpdatedAt = now
	if service.StylistBlocks == nil {
		service.StylistBlocks = []models.StylistBlock{}
	}

	if _, err := r.coll.InsertOne(ctx, service); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *MongoServiceRepo) GetByID(id string) (*models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var service models.Service
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&service)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	return &service, nil
}

func (r *MongoServiceRepo) ListBySalon(salonID string) ([]models.Service, error) {
	return r.find(bson.M{"salonId": salonID})
}

func (r *MongoServiceRepo) Search(filter SearchFilter) ([]models.Service, error) {
	query := bson.M{}
	if filter.Term != "" {
		query["name"] = bson.M{"$regex": primitive.Regex{Pattern: filter.Term, Options: "i"}}
	}
	if filter.CategoryID != "" {
		query["categoryId"] = filter.CategoryID
	}
	return r.find(query)
}

func (r *MongoServiceRepo) find(query bson.M) ([]models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

// AddTimeBlock first tries to push into an existing stylist block; when the
// stylist has no block yet, it pushes a fresh one. Repeated blocks for the
// same (stylist, date) are kept side by side and merged by concatenation at
// read time.
func (r *MongoServiceRepo) AddTimeBlock(serviceID string, stylistID *string, block models.TimeBlock) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":            serviceID,
		"stylistBlocks": bson.M{"$elemMatch": bson.M{"stylistId": stylistID}},
	}
	update := bson.M{
		"$push": bson.M{"stylistBlocks.$.timeBlocks": block},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to append time block: %w", err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	// No block for this stylist yet.
	newBlock := models.StylistBlock{StylistID: stylistID, TimeBlocks: []models.TimeBlock{block}}
	update = bson.M{
		"$push": bson.M{"stylistBlocks": newBlock},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err = r.coll.UpdateOne(ctx, bson.M{"id": serviceID}, update)
	if err != nil {
		return fmt.Errorf("failed to create stylist block: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("service with id %s not found", serviceID)
	}
	return nil
}
