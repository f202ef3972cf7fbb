package scheduleRepo

import (
	"context"
	"time"

	"curabot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ScheduleRepository stores one availability document per doctor and
// performs the atomic slot transitions on it.
type ScheduleRepository interface {
	GetByDoctorID(ctx context.Context, doctorID string) (*models.Schedule, error)
	// FindDaySlots returns the schedule and the day entry matching date.
	FindDaySlots(ctx context.Context, doctorID string, date time.Time) (*models.Schedule, *models.DaySlots, error)
	// ReserveSlot flips one free time to booked. It fails with
	// ErrSlotNotAvailable when the time is already booked and with
	// ErrSlotNotFound when the day or time does not exist.
	ReserveSlot(ctx context.Context, doctorID string, date time.Time, slotTime string) error
	// ReleaseSlot flips one booked time back to free.
	ReleaseSlot(ctx context.Context, doctorID string, date time.Time, slotTime string) error
	// UpsertDay writes one day's times. With expected nil the day must not
	// exist yet (the schedule is created on demand); otherwise the stored
	// times must still equal expected.Times. Both cases fail with ErrStale
	// when a concurrent writer got there first.
	UpsertDay(ctx context.Context, doctorID string, expected *models.DaySlots, next models.DaySlots) error
	EnsureIndexes(ctx context.Context) error
}

type mongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a ScheduleRepository over the "schedules" collection.
func NewMongoScheduleRepo(db *mongo.Database) ScheduleRepository {
	return &mongoScheduleRepo{coll: db.Collection("schedules")}
}
