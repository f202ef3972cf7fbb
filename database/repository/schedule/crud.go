package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"curabot/database/repository"
	"curabot/models"
	"curabot/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoScheduleRepo) UpsertDay(ctx context.Context, doctorID string, expected *models.DaySlots, next models.DaySlots) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	next.Date = utils.DayStart(next.Date)
	if next.Times == nil {
		next.Times = []models.TimeSlot{}
	}
	if expected != nil {
		return r.replaceDay(ctx, doctorID, *expected, next)
	}

	filter := bson.M{
		"doctorId":            doctorID,
		"availableSlots.date": bson.M{"$ne": next.Date},
	}
	update := bson.M{
		"$push": bson.M{"availableSlots": next},
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"createdAt": time.Now(),
		},
	}
	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		// The upsert collides with the unique doctorId index when the
		// schedule exists and already holds this day.
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrStale
		}
		return fmt.Errorf("failed to add day %s for doctor %s: %w", utils.FormatDisplayDay(next.Date), doctorID, err)
	}
	return nil
}

func (r *mongoScheduleRepo) replaceDay(ctx context.Context, doctorID string, expected, next models.DaySlots) error {
	filter := bson.M{
		"doctorId": doctorID,
		"availableSlots": bson.M{
			"$elemMatch": bson.M{"date": next.Date, "times": expected.Times},
		},
	}
	update := bson.M{"$set": bson.M{"availableSlots.$.times": next.Times}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to replace day %s for doctor %s: %w", utils.FormatDisplayDay(next.Date), doctorID, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrStale
	}
	return nil
}
