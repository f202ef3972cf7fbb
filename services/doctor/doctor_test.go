package doctor

import (
	"context"
	"testing"
	"time"

	"curabot/database/repository/memstore"
	"curabot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDoctorService(t *testing.T) (*DefaultDoctorService, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, &models.User{ID: "u-doc", Name: "Alice Smith", Email: "alice@example.com", Role: models.RoleDoctor}))
	require.NoError(t, store.Users().Create(ctx, &models.User{ID: "u-pat", Name: "Jane", Email: "jane@example.com", Role: models.RolePatient}))
	return &DefaultDoctorService{
		Doctors:      store.Doctors(),
		Users:        store.Users(),
		Appointments: store.Appointments(),
		Now:          func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) },
	}, store
}

func TestAddDoctor(t *testing.T) {
	svc, _ := newTestDoctorService(t)
	ctx := context.Background()

	_, err := svc.AddDoctor(ctx, models.DoctorInput{UserID: "u-pat", Name: "Jane"})
	assert.ErrorIs(t, err, ErrInvalidDoctorUser)
	_, err = svc.AddDoctor(ctx, models.DoctorInput{UserID: "missing"})
	assert.ErrorIs(t, err, ErrInvalidDoctorUser)

	doc, err := svc.AddDoctor(ctx, models.DoctorInput{UserID: "u-doc", Speciality: "Neurology"})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", doc.Name)
	assert.NotNil(t, doc.Expertise)

	_, err = svc.AddDoctor(ctx, models.DoctorInput{UserID: "u-doc"})
	assert.ErrorIs(t, err, ErrDoctorExists)

	got, err := svc.GetDoctorByUserID(ctx, "u-doc")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
}

func TestUpdateAndDeleteDoctor(t *testing.T) {
	svc, _ := newTestDoctorService(t)
	ctx := context.Background()
	doc, err := svc.AddDoctor(ctx, models.DoctorInput{UserID: "u-doc", Speciality: "Neurology", Qualification: "MD"})
	require.NoError(t, err)

	updated, err := svc.UpdateDoctor(ctx, doc.ID, models.DoctorInput{Speciality: "Cardiology"})
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", updated.Speciality)
	assert.Equal(t, "MD", updated.Qualification)

	_, err = svc.UpdateDoctor(ctx, "missing", models.DoctorInput{Name: "x"})
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	require.NoError(t, svc.DeleteDoctor(ctx, doc.ID))
	assert.ErrorIs(t, svc.DeleteDoctor(ctx, doc.ID), ErrDoctorNotFound)

	list, err := svc.ListDoctors(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDoctorAppointmentViews(t *testing.T) {
	svc, store := newTestDoctorService(t)
	ctx := context.Background()
	doc, err := svc.AddDoctor(ctx, models.DoctorInput{UserID: "u-doc"})
	require.NoError(t, err)

	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, a := range []models.Appointment{
		{ID: "a2", PatientID: "u-pat", DoctorID: doc.ID, Date: today, Time: "10:00", Status: models.StatusPending},
		{ID: "a1", PatientID: "u-pat", DoctorID: doc.ID, Date: today, Time: "09:00", Status: models.StatusPending},
		{ID: "a3", PatientID: "u-pat", DoctorID: doc.ID, Date: today.AddDate(0, 0, 1), Time: "09:00", Status: models.StatusPending},
	} {
		appt := a
		require.NoError(t, store.Appointments().Create(ctx, &appt))
	}

	views, err := svc.TodayAppointments(ctx, "u-doc")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "09:00", views[0].Time)
	assert.Equal(t, "Jane", views[0].Patient.Name)

	views, err = svc.AppointmentsByDate(ctx, "u-doc", "2024-06-02")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "a3", views[0].ID)

	_, err = svc.AppointmentsByDate(ctx, "u-doc", "")
	assert.ErrorIs(t, err, ErrDateRequired)
	_, err = svc.AppointmentsByDate(ctx, "u-doc", "someday")
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = svc.TodayAppointments(ctx, "u-pat")
	assert.ErrorIs(t, err, ErrDoctorProfileNotFound)
}
