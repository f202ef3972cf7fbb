package memstore

import (
	"context"
	"strings"
	"time"

	"curabot/database/repository"
	"curabot/models"
)

type UserRepo struct{ s *Store }

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == strings.ToLower(email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.Email = strings.ToLower(user.Email)
	for _, u := range r.s.users {
		if u.ID == user.ID || u.Email == user.Email || (user.Phone != "" && u.Phone == user.Phone) {
			return repository.ErrDuplicate
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) EnsureIndexes(context.Context) error { return nil }
