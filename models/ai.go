package models

import "time"

// ChatbotRequest is the payload of POST /api/ai/chatbot.
type ChatbotRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// RecommendedDoctor is one ranked entry of a triage recommendation.
type RecommendedDoctor struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Speciality    string `json:"speciality"`
	Qualification string `json:"qualification"`
	Reasoning     string `json:"reasoning"`
}

// ChatReply is the uniform chatbot reply: either a plain Response or the
// recommendation shape (Message, Doctors, Note).
type ChatReply struct {
	Response    string              `json:"response,omitempty"`
	Message     string              `json:"message,omitempty"`
	Doctors     []RecommendedDoctor `json:"doctors,omitempty"`
	Note        string              `json:"note,omitempty"`
	Suggestions []string            `json:"suggestions,omitempty"`
}

// Text returns the human-readable part of the reply for chat history.
func (r ChatReply) Text() string {
	if r.Response != "" {
		return r.Response
	}
	return r.Message
}

type TriageStage string

const (
	StageInitial        TriageStage = "initial"
	StageFollowUp       TriageStage = "follow_up"
	StageRecommendation TriageStage = "recommendation"
)

// ConversationSession tracks one user's in-progress symptom triage.
type ConversationSession struct {
	UserID        string      `json:"userId"`
	Stage         TriageStage `json:"stage"`
	Symptoms      []string    `json:"symptoms"`
	FollowUpCount int         `json:"followUpCount"`
	Responses     []string    `json:"responses"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func NewConversationSession(userID string) *ConversationSession {
	return &ConversationSession{
		UserID:    userID,
		Stage:     StageInitial,
		Symptoms:  []string{},
		Responses: []string{},
	}
}

type IntentType string

const (
	IntentSymptomAnalysis    IntentType = "symptom_analysis"
	IntentDoctorAvailability IntentType = "doctor_availability"
	IntentAppointmentInfo    IntentType = "appointment_info"
	IntentDoctorInfo         IntentType = "doctor_info"
	IntentRescheduleRequest  IntentType = "reschedule_request"
	IntentGeneralQuestion    IntentType = "general_question"
	IntentMedicationReminder IntentType = "medication_reminder"
	IntentHealthTips         IntentType = "health_tips"
	IntentEmergencyInfo      IntentType = "emergency_info"
	IntentUserProfile        IntentType = "user_profile"
)

// IntentTypes lists every intent kind the classifier may produce.
var IntentTypes = []IntentType{
	IntentSymptomAnalysis,
	IntentDoctorAvailability,
	IntentAppointmentInfo,
	IntentDoctorInfo,
	IntentRescheduleRequest,
	IntentGeneralQuestion,
	IntentMedicationReminder,
	IntentHealthTips,
	IntentEmergencyInfo,
	IntentUserProfile,
}

func (t IntentType) Valid() bool {
	for _, known := range IntentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ClassifiedIntent is produced per message and never persisted.
type ClassifiedIntent struct {
	Type           IntentType `json:"type"`
	DoctorID       string     `json:"doctorId,omitempty"`
	AppointmentID  string     `json:"appointmentId,omitempty"`
	Date           string     `json:"date,omitempty"`
	NewDate        string     `json:"newDate,omitempty"`
	NewTime        string     `json:"newTime,omitempty"`
	MedicationName string     `json:"medicationName,omitempty"`
	Time           string     `json:"time,omitempty"`
	Category       string     `json:"category,omitempty"`
}

// PatientSummary is the doctor-facing digest of a patient's chat history.
type PatientSummary struct {
	PatientName       string   `json:"patientName"`
	Symptoms          []string `json:"symptoms"`
	PossibleDiagnosis string   `json:"possibleDiagnosis"`
	AdditionalNotes   string   `json:"additionalNotes"`
}

// ReminderPayload is the body of an appointment reminder task.
type ReminderPayload struct {
	AppointmentID string    `json:"appointmentId"`
	PatientID     string    `json:"patientId"`
	FireDate      time.Time `json:"fireDate"`
}
