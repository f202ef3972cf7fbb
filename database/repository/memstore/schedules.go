package memstore

import (
	"context"
	"reflect"
	"time"

	"curabot/database/repository"
	"curabot/models"
	"curabot/utils"

	"github.com/google/uuid"
)

type ScheduleRepo struct{ s *Store }

func (r *ScheduleRepo) GetByDoctorID(_ context.Context, doctorID string) (*models.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sch, ok := r.s.schedules[doctorID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneSchedule(sch), nil
}

func (r *ScheduleRepo) FindDaySlots(ctx context.Context, doctorID string, date time.Time) (*models.Schedule, *models.DaySlots, error) {
	sch, err := r.GetByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, nil, err
	}
	for i := range sch.AvailableSlots {
		if utils.SameDay(sch.AvailableSlots[i].Date, date) {
			return sch, &sch.AvailableSlots[i], nil
		}
	}
	return sch, nil, repository.ErrNotFound
}

func (r *ScheduleRepo) ReserveSlot(_ context.Context, doctorID string, date time.Time, slotTime string) error {
	return r.flip(doctorID, date, slotTime, false, true)
}

func (r *ScheduleRepo) ReleaseSlot(_ context.Context, doctorID string, date time.Time, slotTime string) error {
	return r.flip(doctorID, date, slotTime, true, false)
}

func (r *ScheduleRepo) flip(doctorID string, date time.Time, slotTime string, from, to bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sch, ok := r.s.schedules[doctorID]
	if !ok {
		return repository.ErrSlotNotFound
	}
	for i := range sch.AvailableSlots {
		day := &sch.AvailableSlots[i]
		if !utils.SameDay(day.Date, date) {
			continue
		}
		for j := range day.Times {
			if day.Times[j].Time != slotTime {
				continue
			}
			if day.Times[j].IsBooked != from {
				return repository.ErrSlotNotAvailable
			}
			day.Times[j].IsBooked = to
			return nil
		}
	}
	return repository.ErrSlotNotFound
}

func (r *ScheduleRepo) UpsertDay(_ context.Context, doctorID string, expected *models.DaySlots, next models.DaySlots) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	next.Date = utils.DayStart(next.Date)
	next.Times = append([]models.TimeSlot{}, next.Times...)

	sch, ok := r.s.schedules[doctorID]
	if !ok {
		if expected != nil {
			return repository.ErrStale
		}
		r.s.schedules[doctorID] = &models.Schedule{
			ID:             uuid.New().String(),
			DoctorID:       doctorID,
			AvailableSlots: []models.DaySlots{next},
			CreatedAt:      time.Now(),
		}
		return nil
	}
	for i := range sch.AvailableSlots {
		if !utils.SameDay(sch.AvailableSlots[i].Date, next.Date) {
			continue
		}
		if expected == nil || !reflect.DeepEqual(sch.AvailableSlots[i].Times, expected.Times) {
			return repository.ErrStale
		}
		sch.AvailableSlots[i] = next
		return nil
	}
	if expected != nil {
		return repository.ErrStale
	}
	sch.AvailableSlots = append(sch.AvailableSlots, next)
	return nil
}

func (r *ScheduleRepo) EnsureIndexes(context.Context) error { return nil }
