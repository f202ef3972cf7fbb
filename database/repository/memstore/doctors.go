package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"curabot/database/repository"
	"curabot/models"

	"github.com/google/uuid"
)

type DoctorRepo struct{ s *Store }

func (r *DoctorRepo) Create(_ context.Context, d *models.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	r.s.doctors[d.ID] = *d
	return nil
}

func (r *DoctorRepo) GetByID(_ context.Context, id string) (*models.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.doctors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (r *DoctorRepo) GetByUserID(_ context.Context, userID string) (*models.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.doctors {
		if d.UserID == userID {
			return &d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *DoctorRepo) GetByIDs(_ context.Context, ids []string) ([]models.Doctor, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	return r.filter(func(d models.Doctor) bool { return want[d.ID] }), nil
}

func (r *DoctorRepo) List(context.Context) ([]models.Doctor, error) {
	return r.filter(func(models.Doctor) bool { return true }), nil
}

func (r *DoctorRepo) SearchByName(_ context.Context, fragment string) ([]models.Doctor, error) {
	fragment = strings.ToLower(fragment)
	return r.filter(func(d models.Doctor) bool {
		return strings.Contains(strings.ToLower(d.Name), fragment)
	}), nil
}

func (r *DoctorRepo) filter(keep func(models.Doctor) bool) []models.Doctor {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Doctor{}
	for _, d := range r.s.doctors {
		if keep(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *DoctorRepo) Update(_ context.Context, d *models.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.doctors[d.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Name, cur.ProfilePic, cur.Speciality = d.Name, d.ProfilePic, d.Speciality
	cur.Qualification, cur.Overview, cur.Expertise = d.Qualification, d.Overview, d.Expertise
	r.s.doctors[d.ID] = cur
	return nil
}

func (r *DoctorRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.doctors[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.doctors, id)
	return nil
}

func (r *DoctorRepo) EnsureIndexes(context.Context) error { return nil }
