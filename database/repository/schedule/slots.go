package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"curabot/database/repository"
	"curabot/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoScheduleRepo) ReserveSlot(ctx context.Context, doctorID string, date time.Time, slotTime string) error {
	return r.flipSlot(ctx, doctorID, date, slotTime, false, true)
}

func (r *mongoScheduleRepo) ReleaseSlot(ctx context.Context, doctorID string, date time.Time, slotTime string) error {
	return r.flipSlot(ctx, doctorID, date, slotTime, true, false)
}

// flipSlot sets isBooked from `from` to `to` for a single time entry in one
// conditional update, so two concurrent reservations cannot both match.
func (r *mongoScheduleRepo) flipSlot(ctx context.Context, doctorID string, date time.Time, slotTime string, from, to bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	day := utils.DayStart(date)
	filter := bson.M{
		"doctorId": doctorID,
		"availableSlots": bson.M{
			"$elemMatch": bson.M{
				"date": day,
				"times": bson.M{
					"$elemMatch": bson.M{"time": slotTime, "isBooked": from},
				},
			},
		},
	}
	update := bson.M{
		"$set": bson.M{"availableSlots.$[day].times.$[slot].isBooked": to},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"day.date": day},
			bson.M{"slot.time": slotTime, "slot.isBooked": from},
		},
	})

	res, err := r.coll.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to update slot %s on %s: %w", slotTime, utils.FormatDisplayDay(day), err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	exists, err := r.slotExists(ctx, doctorID, day, slotTime)
	if err != nil {
		return err
	}
	if !exists {
		return repository.ErrSlotNotFound
	}
	return repository.ErrSlotNotAvailable
}

func (r *mongoScheduleRepo) slotExists(ctx context.Context, doctorID string, day time.Time, slotTime string) (bool, error) {
	filter := bson.M{
		"doctorId": doctorID,
		"availableSlots": bson.M{
			"$elemMatch": bson.M{
				"date":       day,
				"times.time": slotTime,
			},
		},
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to probe slot %s: %w", slotTime, err)
	}
	return n > 0, nil
}
