package salonRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trimly/database"
	"trimly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSalonRepo implements SalonRepository using MongoDB.
type MongoSalonRepo struct {
	coll *mongo.Collection
}

// NewMongoSalonRepo creates a new instance of SalonRepository using MongoDB.
func NewMongoSalonRepo() SalonRepository {
	repo := &MongoSalonRepo{coll: database.Collection("salons")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create salon indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSalonRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ownerId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoSalonRepo) Create(salon *models.Salon) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	salon.CreatedAt = now
	salon.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, salon); err != nil {
		return fmt.Errorf("failed to create salon: %w", err)
	}
	return nil
}

func (r *MongoSalonRepo) Update(salon *models.Salon) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	salon.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": salon.ID}, bson.M{"$set": salon})
	if err != nil {
		return fmt.Errorf("failed to update salon %s: %w", salon.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("salon with id %s not found", salon.ID)
	}
	return nil
}

func (r *MongoSalonRepo) GetByID(id string) (*models.Salon, error) {
	return r.findOne(bson.M{"id": id})
}

func (r *MongoSalonRepo) GetByOwner(ownerID string) (*models.Salon, error) {
	return r.findOne(bson.M{"ownerId": ownerID})
}

func (r *MongoSalonRepo) findOne(filter bson.M) (*models.Salon, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var salon models.Salon
	err := r.coll.FindOne(ctx, filter).Decode(&salon)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch salon: %w", err)
	}
	return &salon, nil
}

func (r *MongoSalonRepo) List() ([]models.Salon, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list salons: %w", err)
	}
	defer cursor.Close(ctx)

	var salons []models.Salon
	if err := cursor.All(ctx, &salons); err != nil {
		return nil, fmt.Errorf("failed to decode salons: %w", err)
	}
	return salons, nil
}
