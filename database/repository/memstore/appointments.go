package memstore

import (
	"context"
	"sort"
	"time"

	"curabot/database/repository"
	appointmentRepo "curabot/database/repository/appointment"
	"curabot/models"

	"github.com/google/uuid"
)

type AppointmentRepo struct{ s *Store }

func (r *AppointmentRepo) Create(_ context.Context, a *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailAppointmentCreate != nil {
		return r.s.FailAppointmentCreate
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	r.s.appointments[a.ID] = *a
	return nil
}

func (r *AppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *AppointmentRepo) UpdateStatus(_ context.Context, id string, from []models.AppointmentStatus, status models.AppointmentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	if len(from) > 0 && !containsStatus(from, a.Status) {
		return repository.ErrStale
	}
	a.Status = status
	r.s.appointments[id] = a
	return nil
}

func (r *AppointmentRepo) List(_ context.Context, f appointmentRepo.ListFilter) ([]models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range r.s.appointments {
		switch {
		case f.PatientID != "" && a.PatientID != f.PatientID,
			f.DoctorID != "" && a.DoctorID != f.DoctorID,
			f.AppointmentID != "" && a.ID != f.AppointmentID,
			len(f.Statuses) > 0 && !containsStatus(f.Statuses, a.Status),
			!f.From.IsZero() && a.Date.Before(f.From),
			!f.To.IsZero() && !a.Date.Before(f.To):
			continue
		}
		out = append(out, a)
	}
	less := func(a, b models.Appointment) bool {
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Time < b.Time
	}
	sort.SliceStable(out, func(i, j int) bool {
		if f.Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	if f.Limit > 0 && int64(len(out)) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *AppointmentRepo) EnsureIndexes(context.Context) error { return nil }

func containsStatus(list []models.AppointmentStatus, s models.AppointmentStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
