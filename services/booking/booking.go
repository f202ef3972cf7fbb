package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"curabot/database"
	"curabot/database/repository"
	appointmentRepo "curabot/database/repository/appointment"
	"curabot/models"
	"curabot/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Book reserves (doctorID, date, slotTime) for the patient and records a
// pending appointment. The reservation is a single conditional update, so
// concurrent callers for the same slot get exactly one success.
func (s *DefaultBookingService) Book(ctx context.Context, patientID, doctorID string, date time.Time, slotTime string) (*models.Appointment, error) {
	if patientID == "" || doctorID == "" {
		return nil, fmt.Errorf("%w: patient and doctor are required", ErrInvalidInput)
	}
	slotTime, err := NormalizeClock(slotTime)
	if err != nil {
		return nil, err
	}
	day := utils.DayStart(date)
	logger := s.logger().With(
		zap.String("doctorID", doctorID),
		zap.String("date", day.Format(utils.DayLayout)),
		zap.String("time", slotTime),
	)

	doctor, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}

	schedule, _, err := s.Schedules.FindDaySlots(ctx, doctor.ID, day)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoScheduleForDate
		}
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	appt := &models.Appointment{
		ID:         uuid.New().String(),
		PatientID:  patientID,
		DoctorID:   doctor.ID,
		ScheduleID: schedule.ID,
		Date:       day,
		Time:       slotTime,
		Status:     models.StatusPending,
		CreatedAt:  s.now(),
	}

	tx := s.tx()
	err = tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.Schedules.ReserveSlot(ctx, doctor.ID, day, slotTime); err != nil {
			if errors.Is(err, repository.ErrSlotNotAvailable) || errors.Is(err, repository.ErrSlotNotFound) {
				return ErrSlotUnavailable
			}
			return fmt.Errorf("failed to reserve slot: %w", err)
		}
		if err := s.Appointments.Create(ctx, appt); err != nil {
			if !database.Atomic(tx) {
				s.compensate(ctx, logger, doctor.ID, day, slotTime)
			}
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrSlotUnavailable) {
			outcome = "conflict"
		}
		s.Metrics.ObserveBooking("book", outcome)
		return nil, err
	}

	s.Metrics.ObserveBooking("book", "ok")
	logger.Info("Appointment booked", zap.String("appointmentID", appt.ID), zap.String("patientID", patientID))

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(ctx, appt); err != nil {
			logger.Warn("Failed to schedule appointment reminder", zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}
	return appt, nil
}

// compensate frees a slot whose appointment insert failed outside a transaction.
func (s *DefaultBookingService) compensate(ctx context.Context, logger *zap.Logger, doctorID string, day time.Time, slotTime string) {
	if err := s.Schedules.ReleaseSlot(context.WithoutCancel(ctx), doctorID, day, slotTime); err != nil {
		logger.Error("Failed to release slot after appointment insert failure", zap.Error(err))
		return
	}
	logger.Warn("Released slot after appointment insert failure")
}

// Cancel marks the appointment cancelled and then frees its slot. The status
// is the source of truth; a slot that cannot be found is treated as released.
func (s *DefaultBookingService) Cancel(ctx context.Context, requesterID, requesterRole, appointmentID string) error {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("failed to load appointment: %w", err)
	}
	if appt.PatientID != requesterID && requesterRole != models.RoleAdmin {
		s.Metrics.ObserveBooking("cancel", "unauthorized")
		return ErrUnauthorized
	}

	active := []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}
	err = s.Appointments.UpdateStatus(ctx, appt.ID, active, models.StatusCancelled)
	switch {
	case errors.Is(err, repository.ErrStale):
		// Already cancelled; the slot was released by whoever did it.
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrAppointmentNotFound
	case err != nil:
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	err = s.Schedules.ReleaseSlot(ctx, appt.DoctorID, appt.Date, appt.Time)
	if err != nil && !errors.Is(err, repository.ErrSlotNotFound) && !errors.Is(err, repository.ErrSlotNotAvailable) {
		s.logger().Warn("Failed to release slot of cancelled appointment",
			zap.String("appointmentID", appt.ID), zap.Error(err))
	}
	s.Metrics.ObserveBooking("cancel", "ok")
	return nil
}

func (s *DefaultBookingService) ListAll(ctx context.Context) ([]models.AppointmentView, error) {
	appts, err := s.Appointments.List(ctx, appointmentRepo.ListFilter{})
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, appts, true)
}

func (s *DefaultBookingService) ListForPatient(ctx context.Context, patientID string) ([]models.AppointmentView, error) {
	appts, err := s.Appointments.List(ctx, appointmentRepo.ListFilter{PatientID: patientID})
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, appts, false)
}

// populate resolves the doctor (and optionally the patient) of each appointment.
func (s *DefaultBookingService) populate(ctx context.Context, appts []models.Appointment, withPatient bool) ([]models.AppointmentView, error) {
	ids := make([]string, 0, len(appts))
	seen := map[string]bool{}
	for _, a := range appts {
		if !seen[a.DoctorID] {
			seen[a.DoctorID] = true
			ids = append(ids, a.DoctorID)
		}
	}
	doctors, err := s.Doctors.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load doctors: %w", err)
	}
	byID := make(map[string]*models.Doctor, len(doctors))
	for i := range doctors {
		byID[doctors[i].ID] = &doctors[i]
	}

	patients := map[string]*models.PublicUser{}
	views := make([]models.AppointmentView, 0, len(appts))
	for _, a := range appts {
		view := models.AppointmentView{Appointment: a, Doctor: byID[a.DoctorID]}
		if withPatient && s.Users != nil {
			p, ok := patients[a.PatientID]
			if !ok {
				if u, err := s.Users.GetByID(ctx, a.PatientID); err == nil {
					pub := u.Public()
					p = &pub
				} else if !errors.Is(err, repository.ErrNotFound) {
					return nil, fmt.Errorf("failed to load patient: %w", err)
				}
				patients[a.PatientID] = p
			}
			view.Patient = p
		}
		views = append(views, view)
	}
	return views, nil
}
