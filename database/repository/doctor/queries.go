package doctorRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"curabot/database/repository"
	"curabot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoDoctorRepo) GetByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *mongoDoctorRepo) findOne(ctx context.Context, filter bson.M) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, filter).Decode(&doctor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	return &doctor, nil
}

func (r *mongoDoctorRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Doctor, error) {
	if len(ids) == 0 {
		return []models.Doctor{}, nil
	}
	return r.find(ctx, bson.M{"id": bson.M{"$in": ids}})
}

func (r *mongoDoctorRepo) List(ctx context.Context) ([]models.Doctor, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoDoctorRepo) SearchByName(ctx context.Context, fragment string) ([]models.Doctor, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(fragment), Options: "i"}
	return r.find(ctx, bson.M{"name": pattern})
}

func (r *mongoDoctorRepo) find(ctx context.Context, filter bson.M) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve doctors: %w", err)
	}
	defer cursor.Close(ctx)

	doctors := []models.Doctor{}
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return doctors, nil
}
