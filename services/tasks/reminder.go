package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"curabot/models"
	"curabot/services/booking"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:appointment"

// NewReminderTask builds the task for one appointment. The task id is derived
// from the appointment so rescheduling the same appointment is a no-op.
func NewReminderTask(payload models.ReminderPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(payload.FireDate),
		asynq.TaskID("reminder:" + payload.AppointmentID),
		asynq.MaxRetry(5),
	}
	return task, opts, nil
}

// Enqueuer is the subset of *asynq.Client used to schedule reminders.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AppointmentReminders schedules a chat reminder Lead before each booked slot.
type AppointmentReminders struct {
	Client Enqueuer
	Lead   time.Duration
	Logger *zap.Logger
	Now    func() time.Time
}

var _ booking.ReminderScheduler = (*AppointmentReminders)(nil)

func (r *AppointmentReminders) ScheduleReminder(ctx context.Context, appt *models.Appointment) error {
	slotAt, err := SlotTime(appt)
	if err != nil {
		return err
	}
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}
	if !slotAt.After(now) {
		return nil
	}
	fireAt := slotAt.Add(-r.Lead)
	if fireAt.Before(now) {
		fireAt = now
	}

	task, opts, err := NewReminderTask(models.ReminderPayload{
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		FireDate:      fireAt,
	})
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}
	info, err := r.Client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	if r.Logger != nil {
		r.Logger.Debug("Scheduled appointment reminder",
			zap.String("appointmentID", appt.ID), zap.String("taskID", info.ID), zap.Time("fireAt", fireAt))
	}
	return nil
}

// SlotTime combines the appointment's calendar date and "HH:MM" time in UTC.
func SlotTime(appt *models.Appointment) (time.Time, error) {
	clock, err := time.Parse("15:04", appt.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid appointment time %q: %w", appt.Time, err)
	}
	y, m, d := appt.Date.UTC().Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, time.UTC), nil
}
