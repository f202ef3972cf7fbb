package appointmentRepo

import (
	"context"
	"time"

	"curabot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ListFilter narrows appointment listings. Zero values are ignored.
type ListFilter struct {
	PatientID     string
	DoctorID      string
	AppointmentID string
	Statuses      []models.AppointmentStatus
	// From and To bound the appointment date, To exclusive.
	From       time.Time
	To         time.Time
	Limit      int64
	Descending bool
}

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// UpdateStatus moves the appointment to status when its current status is
	// one of from (any status when from is empty). A status mismatch yields ErrStale.
	UpdateStatus(ctx context.Context, id string, from []models.AppointmentStatus, status models.AppointmentStatus) error
	// List returns matching appointments ordered by date then time.
	List(ctx context.Context, filter ListFilter) ([]models.Appointment, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs an AppointmentRepository over the "appointments" collection.
func NewMongoAppointmentRepo(db *mongo.Database) AppointmentRepository {
	return &mongoAppointmentRepo{coll: db.Collection("appointments")}
}
