package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"curabot/database/repository/memstore"
	"curabot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var slotDay = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

type recordingReminders struct {
	mu    sync.Mutex
	appts []string
	err   error
}

func (r *recordingReminders) ScheduleReminder(_ context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appts = append(r.appts, appt.ID)
	return r.err
}

func newTestService(t *testing.T) (*DefaultBookingService, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	svc := &DefaultBookingService{
		Doctors:      store.Doctors(),
		Schedules:    store.Schedules(),
		Appointments: store.Appointments(),
		Users:        store.Users(),
	}
	ctx := context.Background()
	require.NoError(t, store.Doctors().Create(ctx, &models.Doctor{
		ID: "doc-alice", UserID: "user-alice", Name: "Alice Smith", Speciality: "Neurology",
	}))
	_, err := svc.SetAvailability(ctx, "user-alice", models.AvailabilityInput{
		Date: "2024-06-01", StartTime: "09:00", EndTime: "10:00", Interval: 30,
	})
	require.NoError(t, err)
	return svc, store
}

func freeTimes(t *testing.T, svc *DefaultBookingService) []string {
	t.Helper()
	_, day, err := svc.Schedules.FindDaySlots(context.Background(), "doc-alice", slotDay)
	require.NoError(t, err)
	return day.FreeTimes()
}

func TestBook_ReservesSlotAndCreatesPendingAppointment(t *testing.T) {
	svc, _ := newTestService(t)

	appt, err := svc.Book(context.Background(), "patient-1", "doc-alice", slotDay.Add(15*time.Hour), "9:00")
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, "09:00", appt.Time)
	assert.True(t, appt.Date.Equal(slotDay))
	assert.NotEmpty(t, appt.ScheduleID)
	assert.Equal(t, []string{"09:30"}, freeTimes(t, svc))
}

func TestBook_ConcurrentRequestsYieldExactlyOneSuccess(t *testing.T) {
	svc, _ := newTestService(t)

	const n = 25
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Book(context.Background(), "patient-1", "doc-alice", slotDay, "09:00")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotUnavailable):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)
}

func TestBook_Errors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, "patient-1", "missing", slotDay, "09:00")
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	_, err = svc.Book(ctx, "patient-1", "doc-alice", slotDay.AddDate(0, 0, 1), "09:00")
	assert.ErrorIs(t, err, ErrNoScheduleForDate)

	_, err = svc.Book(ctx, "patient-1", "doc-alice", slotDay, "11:00")
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	_, err = svc.Book(ctx, "patient-1", "doc-alice", slotDay, "nine")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBook_ReleasesSlotWhenAppointmentInsertFails(t *testing.T) {
	svc, store := newTestService(t)
	store.FailAppointmentCreate = errors.New("write concern timeout")

	_, err := svc.Book(context.Background(), "patient-1", "doc-alice", slotDay, "09:00")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, []string{"09:00", "09:30"}, freeTimes(t, svc))
}

func TestBook_SchedulesReminderAndIgnoresItsFailure(t *testing.T) {
	svc, _ := newTestService(t)
	reminders := &recordingReminders{err: errors.New("redis down")}
	svc.Reminders = reminders

	appt, err := svc.Book(context.Background(), "patient-1", "doc-alice", slotDay, "09:30")
	require.NoError(t, err)
	assert.Equal(t, []string{appt.ID}, reminders.appts)
}

func TestCancel_ThenRebookSucceeds(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	appt, err := svc.Book(ctx, "patient-1", "doc-alice", slotDay, "09:00")
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, "patient-1", models.RolePatient, appt.ID))
	stored, err := svc.Appointments.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)
	assert.Contains(t, freeTimes(t, svc), "09:00")

	// A second cancel is a no-op and must not free the rebooked slot.
	_, err = svc.Book(ctx, "patient-2", "doc-alice", slotDay, "09:00")
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, "patient-1", models.RolePatient, appt.ID))
	assert.NotContains(t, freeTimes(t, svc), "09:00")
}

func TestCancel_Authorization(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	appt, err := svc.Book(ctx, "patient-1", "doc-alice", slotDay, "09:00")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Cancel(ctx, "patient-2", models.RolePatient, appt.ID), ErrUnauthorized)
	assert.ErrorIs(t, svc.Cancel(ctx, "patient-2", models.RoleDoctor, appt.ID), ErrUnauthorized)
	assert.ErrorIs(t, svc.Cancel(ctx, "patient-1", models.RolePatient, "nope"), ErrAppointmentNotFound)
	assert.NoError(t, svc.Cancel(ctx, "admin-1", models.RoleAdmin, appt.ID))
}

func TestListForPatient_ResolvesDoctor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, "patient-1", "doc-alice", slotDay, "09:30")
	require.NoError(t, err)
	_, err = svc.Book(ctx, "patient-2", "doc-alice", slotDay, "09:00")
	require.NoError(t, err)

	views, err := svc.ListForPatient(ctx, "patient-1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Doctor)
	assert.Equal(t, "Alice Smith", views[0].Doctor.Name)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "09:00", all[0].Time)
}
