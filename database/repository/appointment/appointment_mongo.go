package appointmentRepo

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

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &MongoAppointmentRepo{coll: database.Collection("appointments")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create appointment indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) ListByUser(userID string) ([]models.Appointment, error) {
	return r.find(bson.M{"userId": userID})
}

func (r *MongoAppointmentRepo) ListByStylist(stylistID string) ([]models.Appointment, error) {
	return r.find(bson.M{"stylistId": stylistID})
}

func (r *MongoAppointmentRepo) ListByServices(serviceIDs []string) ([]models.Appointment, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}
	return r.find(bson.M{"serviceId": bson.M{"$in": serviceIDs}})
}

func (r *MongoAppointmentRepo) find(filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// UpdateStatusFrom guards the state machine at the store: the filter pins
// the expected current status, so two concurrent decisions cannot both
// apply.
func (r *MongoAppointmentRepo) UpdateStatusFrom(id string, from, to models.AppointmentStatus, newDate string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{
		"status":    to,
		"active":    to != models.StatusCanceled,
		"updatedAt": time.Now(),
	}
	if newDate != "" {
		set["date"] = newDate
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Appointment
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id, "status": from},
		bson.M{"$set": set},
		opts,
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if mongo.IsDuplicateKeyError(err) {
		// The partial unique index rejected the rescheduled triple.
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	return &updated, nil
}

func (r *MongoAppointmentRepo) CountActiveByServiceDate(serviceID, date string) (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"serviceId": serviceID, "date": date, "active": true}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments for service %s on %s: %w", serviceID, date, err)
	}
	return int(count), nil
}

func (r *MongoAppointmentRepo) HasActiveForUserService(userID, serviceID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"userId": userID, "serviceId": serviceID, "active": true}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check appointments for user %s: %w", userID, err)
	}
	return count > 0, nil
}
