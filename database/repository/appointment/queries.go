package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"curabot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoAppointmentRepo) List(ctx context.Context, f ListFilter) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	order := 1
	if f.Descending {
		order = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: order}, {Key: "time", Value: order}})
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cursor, err := r.coll.Find(ctx, buildFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

func buildFilter(f ListFilter) bson.M {
	filter := bson.M{}
	if f.PatientID != "" {
		filter["patientId"] = f.PatientID
	}
	if f.DoctorID != "" {
		filter["doctorId"] = f.DoctorID
	}
	if f.AppointmentID != "" {
		filter["id"] = f.AppointmentID
	}
	if len(f.Statuses) > 0 {
		filter["status"] = bson.M{"$in": f.Statuses}
	}
	dateRange := bson.M{}
	if !f.From.IsZero() {
		dateRange["$gte"] = f.From
	}
	if !f.To.IsZero() {
		dateRange["$lt"] = f.To
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}
	return filter
}
