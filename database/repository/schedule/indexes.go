package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoScheduleRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_schedule_id"),
		},
		{
			Keys:    bson.D{{Key: "doctorId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_schedule_doctor"),
		},
		{
			Keys:    bson.D{{Key: "doctorId", Value: 1}, {Key: "availableSlots.date", Value: 1}},
			Options: options.Index().SetName("idx_schedule_doctor_day"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create schedule indexes: %w", err)
	}
	return nil
}
