package scheduleRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"curabot/database/repository"
	"curabot/models"
	"curabot/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoScheduleRepo) GetByDoctorID(ctx context.Context, doctorID string) (*models.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var schedule models.Schedule
	if err := r.coll.FindOne(ctx, bson.M{"doctorId": doctorID}).Decode(&schedule); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch schedule for doctor %s: %w", doctorID, err)
	}
	return &schedule, nil
}

func (r *mongoScheduleRepo) FindDaySlots(ctx context.Context, doctorID string, date time.Time) (*models.Schedule, *models.DaySlots, error) {
	schedule, err := r.GetByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, nil, err
	}
	for i := range schedule.AvailableSlots {
		if utils.SameDay(schedule.AvailableSlots[i].Date, date) {
			return schedule, &schedule.AvailableSlots[i], nil
		}
	}
	return schedule, nil, repository.ErrNotFound
}
