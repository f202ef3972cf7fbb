package doctorRepo

import (
	"context"
	"fmt"
	"time"

	"curabot/database/repository"
	"curabot/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func (r *mongoDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if doctor.ID == "" {
		doctor.ID = uuid.New().String()
	}
	if doctor.CreatedAt.IsZero() {
		doctor.CreatedAt = time.Now()
	}
	if doctor.Expertise == nil {
		doctor.Expertise = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, doctor); err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

// Update replaces the mutable profile fields of an existing doctor.
func (r *mongoDoctorRepo) Update(ctx context.Context, doctor *models.Doctor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":          doctor.Name,
		"profilePic":    doctor.ProfilePic,
		"speciality":    doctor.Speciality,
		"qualification": doctor.Qualification,
		"overview":      doctor.Overview,
		"expertise":     doctor.Expertise,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": doctor.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update doctor with id %s: %w", doctor.ID, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoDoctorRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete doctor with id %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
