package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trimly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// conflictFilter builds the double-booking query for one candidate
// appointment under the given scope. A nil filter means nothing can
// conflict (unassigned booking under perStylist scope).
func conflictFilter(appt *models.Appointment, scope ConflictScope) bson.M {
	base := bson.M{
		"date":      appt.Date,
		"startTime": appt.StartTime,
		"active":    true,
	}
	if appt.StylistID != nil {
		base["stylistId"] = *appt.StylistID
		return base
	}
	if scope == ScopePerSalon {
		base["serviceId"] = appt.ServiceID
		base["stylistId"] = nil
		return base
	}
	return nil
}

// SlotTaken runs the conflict query against the current store state,
// excluding the candidate itself so reschedules do not collide with their
// own record.
func (r *MongoAppointmentRepo) SlotTaken(appt *models.Appointment, scope ConflictScope) (bool, error) {
	filter := conflictFilter(appt, scope)
	if filter == nil {
		return false, nil
	}
	filter["id"] = bson.M{"$ne": appt.ID}

	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("conflict check failed: %w", err)
	}
	return count > 0, nil
}

// Insert runs the conflict check and the insert inside one Mongo session
// transaction. The partial unique index on (stylistId, date, startTime)
// backstops the check, so a duplicate-key error also reports ErrSlotTaken.
func (r *MongoAppointmentRepo) Insert(ctx context.Context, appt *models.Appointment, scope ConflictScope) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	filter := conflictFilter(appt, scope)

	txnFn := func(sc mongo.SessionContext) error {
		if filter != nil {
			count, err := r.coll.CountDocuments(sc, filter)
			if err != nil {
				return fmt.Errorf("conflict check failed: %w", err)
			}
			if count > 0 {
				return ErrSlotTaken
			}
		}
		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}
