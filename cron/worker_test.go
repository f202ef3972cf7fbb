package cron

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"curabot/database/repository/memstore"
	"curabot/models"
	"curabot/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestWorker(t *testing.T) (*ReminderWorker, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	ctx := context.Background()
	require.NoError(t, store.Doctors().Create(ctx, &models.Doctor{ID: "d1", Name: "Alice Smith"}))
	require.NoError(t, store.Appointments().Create(ctx, &models.Appointment{
		ID: "a1", PatientID: "p1", DoctorID: "d1",
		Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Time: "09:00", Status: models.StatusPending,
	}))
	w := &ReminderWorker{
		appointments: store.Appointments(),
		doctors:      store.Doctors(),
		chats:        store.Chats(),
		logger:       zap.NewNop(),
	}
	return w, store
}

func reminderTask(t *testing.T, appointmentID string) *asynq.Task {
	t.Helper()
	task, _, err := tasks.NewReminderTask(models.ReminderPayload{AppointmentID: appointmentID, PatientID: "p1", FireDate: time.Now()})
	require.NoError(t, err)
	return task
}

func TestHandleReminder_WritesChatMessage(t *testing.T) {
	w, store := newTestWorker(t)
	ctx := context.Background()

	require.NoError(t, w.HandleReminder(ctx, reminderTask(t, "a1")))

	chat, err := store.Chats().GetByUserID(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, chat.Messages, 1)
	assert.Equal(t, models.SenderBot, chat.Messages[0].Sender)
	assert.Equal(t, "Reminder: you have an appointment with Dr. Alice Smith on Sat Jun 01 2024 at 09:00.", chat.Messages[0].Message)
}

func TestHandleReminder_SkipsCancelledAndMissing(t *testing.T) {
	w, store := newTestWorker(t)
	ctx := context.Background()
	require.NoError(t, store.Appointments().UpdateStatus(ctx, "a1",
		[]models.AppointmentStatus{models.StatusPending}, models.StatusCancelled))

	require.NoError(t, w.HandleReminder(ctx, reminderTask(t, "a1")))
	require.NoError(t, w.HandleReminder(ctx, reminderTask(t, "missing")))

	_, err := store.Chats().GetByUserID(ctx, "p1")
	assert.Error(t, err)
}

func TestHandleReminder_BadPayloadSkipsRetry(t *testing.T) {
	w, _ := newTestWorker(t)
	err := w.HandleReminder(context.Background(), asynq.NewTask(tasks.TypeSendReminder, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestReminderPayloadShape(t *testing.T) {
	task := reminderTask(t, "a1")
	var raw map[string]any
	require.NoError(t, json.Unmarshal(task.Payload(), &raw))
	assert.Equal(t, "a1", raw["appointmentId"])
}
