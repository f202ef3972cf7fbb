package booking

import (
	"context"
	"errors"
	"fmt"

	"curabot/database/repository"
	"curabot/models"
	"curabot/utils"

	"go.uber.org/zap"
)

const maxDayWriteAttempts = 3

func (s *DefaultBookingService) SetAvailability(ctx context.Context, doctorUserID string, in models.AvailabilityInput) (*models.Schedule, error) {
	return s.writeDay(ctx, doctorUserID, in, true)
}

func (s *DefaultBookingService) UpdateAvailability(ctx context.Context, doctorUserID string, in models.AvailabilityInput) (*models.Schedule, error) {
	return s.writeDay(ctx, doctorUserID, in, false)
}

func (s *DefaultBookingService) GetAvailability(ctx context.Context, doctorID string) (*models.Schedule, error) {
	schedule, err := s.Schedules.GetByDoctorID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	return schedule, nil
}

// writeDay regenerates one day from a working window and stores it with an
// optimistic check against the day it was merged from.
func (s *DefaultBookingService) writeDay(ctx context.Context, doctorUserID string, in models.AvailabilityInput, allowCreate bool) (*models.Schedule, error) {
	doctor, err := s.Doctors.GetByUserID(ctx, doctorUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to load doctor profile: %w", err)
	}
	day, err := utils.ParseCalendarDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	fresh, err := GenerateTimeSlots(in.StartTime, in.EndTime, in.Interval)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxDayWriteAttempts; attempt++ {
		_, current, err := s.Schedules.FindDaySlots(ctx, doctor.ID, day)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to load schedule: %w", err)
		}
		if current == nil && !allowCreate {
			return nil, ErrDayNotFound
		}

		next, err := MergeDay(current, day, fresh)
		if err != nil {
			return nil, err
		}

		err = s.Schedules.UpsertDay(ctx, doctor.ID, current, next)
		if errors.Is(err, repository.ErrStale) {
			s.logger().Debug("Schedule day changed underneath, retrying",
				zap.String("doctorID", doctor.ID), zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return nil, err
		}
		return s.GetAvailability(ctx, doctor.ID)
	}
	return nil, ErrScheduleContention
}
