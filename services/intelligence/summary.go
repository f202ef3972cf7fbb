package ai

import (
	"context"
	"errors"
	"fmt"

	"curabot/database/repository"
	appointmentRepo "curabot/database/repository/appointment"
	chatRepo "curabot/database/repository/chat"
	doctorRepo "curabot/database/repository/doctor"
	userRepo "curabot/database/repository/user"
	"curabot/models"

	"go.uber.org/zap"
)

const summaryHistoryWindow = 10

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrNoChatHistory       = errors.New("no chat history found for this patient")
	ErrNoChatMessages      = errors.New("no chat messages found for this patient")
	ErrNotDoctorsPatient   = errors.New("appointment belongs to another doctor")
	ErrSummaryUnavailable  = errors.New("patient summary could not be generated")
)

// SummaryService produces the doctor-facing digest of a patient's chat history.
type SummaryService struct {
	appointments appointmentRepo.AppointmentRepository
	doctors      doctorRepo.DoctorRepository
	users        userRepo.UserRepository
	chats        chatRepo.ChatRepository
	llm          *ResilientLLM
	logger       *zap.Logger
}

func NewSummaryService(
	appointments appointmentRepo.AppointmentRepository,
	doctors doctorRepo.DoctorRepository,
	users userRepo.UserRepository,
	chats chatRepo.ChatRepository,
	llm *ResilientLLM,
	logger *zap.Logger,
) *SummaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryService{
		appointments: appointments,
		doctors:      doctors,
		users:        users,
		chats:        chats,
		llm:          llm,
		logger:       logger,
	}
}

// PatientSummary summarises the last messages of the patient behind
// appointmentID. The requesting doctor must own the appointment.
func (s *SummaryService) PatientSummary(ctx context.Context, doctorUserID, appointmentID string) (*models.PatientSummary, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	doctor, err := s.doctors.GetByUserID(ctx, doctorUserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("load doctor profile: %w", err)
	}
	if doctor == nil || doctor.ID != appt.DoctorID {
		return nil, ErrNotDoctorsPatient
	}

	patient, err := s.users.GetByID(ctx, appt.PatientID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}

	chat, err := s.chats.GetByUserID(ctx, patient.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoChatHistory
	}
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	if len(chat.Messages) == 0 {
		return nil, ErrNoChatMessages
	}

	history := chat.Messages
	if len(history) > summaryHistoryWindow {
		history = history[len(history)-summaryHistoryWindow:]
	}
	turns := make([]ChatMessage, 0, len(history)+1)
	for _, m := range history {
		role := ChatRoleAssistant
		if m.Sender == models.SenderUser {
			role = ChatRoleUser
		}
		turns = append(turns, ChatMessage{Role: role, Content: m.Message})
	}
	turns = append(turns, ChatMessage{Role: ChatRoleUser, Content: "Summarize the conversation above in the requested JSON format."})

	var summary models.PatientSummary
	ok := s.llm.JSON(ctx, "patient_summary", LLMRequest{
		System:      []string{patientSummaryPrompt(patient.Name)},
		Messages:    turns,
		Temperature: 0.3,
		MaxTokens:   1024,
		TopP:        0.9,
	}, &summary)
	if !ok {
		return nil, ErrSummaryUnavailable
	}

	if summary.PatientName == "" {
		summary.PatientName = patient.Name
	}
	if summary.Symptoms == nil {
		summary.Symptoms = []string{}
	}
	s.logger.Info("Generated patient summary", zap.String("appointmentID", appt.ID), zap.String("patientID", patient.ID))
	return &summary, nil
}
