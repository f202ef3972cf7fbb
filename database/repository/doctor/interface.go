package doctorRepo

import (
	"context"

	"curabot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// DoctorRepository defines methods for doctor profile access.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	GetByUserID(ctx context.Context, userID string) (*models.Doctor, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Doctor, error)
	// List returns the whole roster ordered by name.
	List(ctx context.Context) ([]models.Doctor, error)
	// SearchByName matches a case-insensitive substring of the doctor's name.
	SearchByName(ctx context.Context, fragment string) ([]models.Doctor, error)
	Update(ctx context.Context, doctor *models.Doctor) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo constructs a DoctorRepository over the "doctors" collection.
func NewMongoDoctorRepo(db *mongo.Database) DoctorRepository {
	return &mongoDoctorRepo{coll: db.Collection("doctors")}
}
