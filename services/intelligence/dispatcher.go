package ai

import (
	"context"
	"time"

	appointmentRepo "curabot/database/repository/appointment"
	doctorRepo "curabot/database/repository/doctor"
	scheduleRepo "curabot/database/repository/schedule"
	userRepo "curabot/database/repository/user"
	"curabot/models"

	"go.uber.org/zap"
)

const (
	unknownIntentReply = "I'm not sure how to help with that. You can ask me about doctor availability, your appointments, describe your symptoms, or ask for health tips."
	genericApology     = "I'm sorry, I encountered an error processing your request. Please try again."
)

var unknownIntentSuggestions = []string{
	"Find a doctor for my headache",
	"When is my next appointment?",
	"Show me my profile",
	"Give me health tips",
}

// Query is one classified chat message.
type Query struct {
	UserID  string
	Message string
	Intent  models.ClassifiedIntent
}

type intentHandler func(ctx context.Context, q Query) models.ChatReply

// DispatcherDeps are the collaborators the intent handlers read from.
type DispatcherDeps struct {
	Triage       *Triage
	LLM          *ResilientLLM
	Doctors      doctorRepo.DoctorRepository
	Schedules    scheduleRepo.ScheduleRepository
	Appointments appointmentRepo.AppointmentRepository
	Users        userRepo.UserRepository
	Logger       *zap.Logger
	Now          func() time.Time
}

// Dispatcher routes a classified message to the handler of its intent kind.
type Dispatcher struct {
	DispatcherDeps
	handlers map[models.IntentType]intentHandler
}

func NewDispatcher(deps DispatcherDeps) *Dispatcher {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	d := &Dispatcher{DispatcherDeps: deps}
	d.handlers = map[models.IntentType]intentHandler{
		models.IntentSymptomAnalysis:    d.handleSymptomAnalysis,
		models.IntentDoctorAvailability: d.handleDoctorAvailability,
		models.IntentAppointmentInfo:    d.handleAppointmentInfo,
		models.IntentDoctorInfo:         d.handleDoctorInfo,
		models.IntentRescheduleRequest:  d.handleRescheduleRequest,
		models.IntentGeneralQuestion:    d.handleGeneralQuestion,
		models.IntentMedicationReminder: d.handleMedicationReminder,
		models.IntentHealthTips:         d.handleHealthTips,
		models.IntentEmergencyInfo:      d.handleEmergencyInfo,
		models.IntentUserProfile:        d.handleUserProfile,
	}
	return d
}

// Handles reports whether kind has a registered handler.
func (d *Dispatcher) Handles(kind models.IntentType) bool {
	_, ok := d.handlers[kind]
	return ok
}

// Dispatch always produces a reply; handler panics degrade to an apology.
func (d *Dispatcher) Dispatch(ctx context.Context, q Query) (reply models.ChatReply) {
	handler, ok := d.handlers[q.Intent.Type]
	if !ok {
		return models.ChatReply{Message: unknownIntentReply, Suggestions: unknownIntentSuggestions}
	}
	defer func() {
		if r := recover(); r != nil {
			d.Logger.Error("Intent handler panicked",
				zap.String("intent", string(q.Intent.Type)), zap.Any("panic", r))
			reply = models.ChatReply{Response: genericApology}
		}
	}()
	return handler(ctx, q)
}

func (d *Dispatcher) handleSymptomAnalysis(ctx context.Context, q Query) models.ChatReply {
	return d.Triage.Handle(ctx, q.UserID, q.Message)
}

// fail logs a handler failure and returns its apology text.
func (d *Dispatcher) fail(intent models.IntentType, err error, apology string) models.ChatReply {
	d.Logger.Error("Intent handler failed", zap.String("intent", string(intent)), zap.Error(err))
	return models.ChatReply{Response: apology}
}
