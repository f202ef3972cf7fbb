package models

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Holds reports whether the appointment still occupies its slot.
func (s AppointmentStatus) Holds() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Appointment links a patient to one reserved slot of a doctor's schedule.
type Appointment struct {
	ID         string            `bson:"id" json:"id"`
	PatientID  string            `bson:"patientId" json:"patientId"`
	DoctorID   string            `bson:"doctorId" json:"doctorId"`
	ScheduleID string            `bson:"scheduleId" json:"scheduleId"`
	Date       time.Time         `bson:"date" json:"date"`
	Time       string            `bson:"time" json:"time"`
	Status     AppointmentStatus `bson:"status" json:"status"`
	CreatedAt  time.Time         `bson:"createdAt" json:"createdAt"`
}

// BookingInput is the patient-facing booking payload.
type BookingInput struct {
	DoctorID string `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
}

// AppointmentView is an appointment with its doctor resolved for listing endpoints.
type AppointmentView struct {
	Appointment `bson:",inline"`
	Doctor      *Doctor     `json:"doctor,omitempty"`
	Patient     *PublicUser `json:"patient,omitempty"`
}
