package handlers

import (
	"context"

	"curabot/models"
	"curabot/services/booking"
	"curabot/services/doctor"
	"curabot/services/user"
)

// ChatResponder answers one chatbot message.
type ChatResponder interface {
	Respond(ctx context.Context, userID, message string) models.ChatReply
}

// PatientSummarizer produces the doctor-facing summary of a patient's chat history.
type PatientSummarizer interface {
	PatientSummary(ctx context.Context, doctorUserID, appointmentID string) (*models.PatientSummary, error)
}

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	Auth         *AuthHandler
	Doctors      *DoctorHandler
	Schedule     *ScheduleHandler
	Appointments *AppointmentHandler
	Chatbot      *ChatbotHandler
}

func NewHandlerBundle(
	users user.UserService,
	doctors doctor.DoctorService,
	bookings booking.BookingService,
	chat ChatResponder,
	summaries PatientSummarizer,
) *HandlerBundle {
	return &HandlerBundle{
		Auth:         &AuthHandler{Service: users},
		Doctors:      &DoctorHandler{Service: doctors, Summaries: summaries},
		Schedule:     &ScheduleHandler{Service: bookings},
		Appointments: &AppointmentHandler{Service: bookings},
		Chatbot:      &ChatbotHandler{Service: chat},
	}
}
