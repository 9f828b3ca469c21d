package appointmentRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates lookup indexes plus the partial unique index that
// enforces slot uniqueness among non-canceled, stylist-assigned
// appointments at the store level.
func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	slotUnique := mongo.IndexModel{
		Keys: bson.D{
			{Key: "stylistId", Value: 1},
			{Key: "date", Value: 1},
			{Key: "startTime", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.D{
				{Key: "active", Value: true},
				{Key: "stylistId", Value: bson.D{{Key: "$type", Value: "string"}}},
			}),
	}

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "serviceId", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "stylistId", Value: 1}}},
		slotUnique,
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
