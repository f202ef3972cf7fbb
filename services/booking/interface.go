package booking

import (
	"context"
	"time"

	"curabot/models"
)

// BookingService reserves and releases doctor slots and manages the
// availability they are cut from.
type BookingService interface {
	Book(ctx context.Context, patientID, doctorID string, date time.Time, slotTime string) (*models.Appointment, error)
	Cancel(ctx context.Context, requesterID, requesterRole, appointmentID string) error
	ListAll(ctx context.Context) ([]models.AppointmentView, error)
	ListForPatient(ctx context.Context, patientID string) ([]models.AppointmentView, error)

	// SetAvailability creates or replaces one day of the calling doctor's schedule.
	SetAvailability(ctx context.Context, doctorUserID string, in models.AvailabilityInput) (*models.Schedule, error)
	// UpdateAvailability replaces a day that must already exist.
	UpdateAvailability(ctx context.Context, doctorUserID string, in models.AvailabilityInput) (*models.Schedule, error)
	GetAvailability(ctx context.Context, doctorID string) (*models.Schedule, error)
}

// ReminderScheduler enqueues the pre-appointment reminder of a fresh booking.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt *models.Appointment) error
}
