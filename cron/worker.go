package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"curabot/database/repository"
	appointmentRepo "curabot/database/repository/appointment"
	chatRepo "curabot/database/repository/chat"
	doctorRepo "curabot/database/repository/doctor"
	"curabot/models"
	"curabot/services/tasks"
	"curabot/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderWorker consumes appointment reminder tasks and posts them into
// the patient's chatbot history.
type ReminderWorker struct {
	srv          *asynq.Server
	appointments appointmentRepo.AppointmentRepository
	doctors      doctorRepo.DoctorRepository
	chats        chatRepo.ChatRepository
	logger       *zap.Logger
}

func NewReminderWorker(
	redisOpts asynq.RedisClientOpt,
	appointments appointmentRepo.AppointmentRepository,
	doctors doctorRepo.DoctorRepository,
	chats chatRepo.ChatRepository,
	logger *zap.Logger,
) *ReminderWorker {
	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"default": 1,
		},
		Logger: logger.Sugar(),
	})
	return &ReminderWorker{
		srv:          srv,
		appointments: appointments,
		doctors:      doctors,
		chats:        chats,
		logger:       logger,
	}
}

// Start runs the worker in the background, retrying the initial connection.
func (w *ReminderWorker) Start(ctx context.Context) {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, w.HandleReminder)

	go func() {
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := w.srv.Start(mux)
			if err == nil {
				w.logger.Info("Reminder worker started")
				return
			}
			w.logger.Error("Failed to start reminder worker",
				zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempt*2) * time.Second):
			}
		}
		w.logger.Error("Reminder worker disabled after repeated start failures")
	}()
}

func (w *ReminderWorker) Shutdown() {
	w.srv.Shutdown()
}

// HandleReminder writes the reminder unless the appointment was cancelled or removed.
func (w *ReminderWorker) HandleReminder(ctx context.Context, task *asynq.Task) error {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		w.logger.Error("Invalid reminder payload", zap.Error(err))
		return fmt.Errorf("decode reminder payload: %v: %w", err, asynq.SkipRetry)
	}

	appt, err := w.appointments.GetByID(ctx, p.AppointmentID)
	if errors.Is(err, repository.ErrNotFound) {
		w.logger.Info("Skipping reminder for missing appointment", zap.String("appointmentID", p.AppointmentID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("load appointment: %w", err)
	}
	if !appt.Status.Holds() {
		w.logger.Info("Skipping reminder for inactive appointment",
			zap.String("appointmentID", appt.ID), zap.String("status", string(appt.Status)))
		return nil
	}

	doctorName := "your doctor"
	doc, err := w.doctors.GetByID(ctx, appt.DoctorID)
	switch {
	case err == nil:
		doctorName = "Dr. " + doc.Name
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("load doctor: %w", err)
	}

	msg := models.ChatMessage{
		Sender:    models.SenderBot,
		Message:   ReminderText(doctorName, appt),
		Timestamp: time.Now(),
	}
	if err := w.chats.AppendMessages(ctx, appt.PatientID, msg); err != nil {
		return fmt.Errorf("save reminder: %w", err)
	}
	w.logger.Info("Delivered appointment reminder", zap.String("appointmentID", appt.ID), zap.String("patientID", appt.PatientID))
	return nil
}

func ReminderText(doctorName string, appt *models.Appointment) string {
	return fmt.Sprintf("Reminder: you have an appointment with %s on %s at %s.",
		doctorName, utils.FormatDisplayDay(appt.Date), appt.Time)
}
