package ai

import (
	"fmt"
	"strings"

	"curabot/models"
)

const overviewPromptLimit = 300

func classifyPrompt(message string) string {
	return fmt.Sprintf(`You are an AI assistant for a healthcare application. Analyze the following user message and determine the user's intent.

User message: %q

Identify the primary intent from these categories:
1. symptom_analysis - User is describing symptoms or health concerns
2. doctor_availability - User is asking when a doctor is available (extract doctorId if mentioned and date if specified)
3. appointment_info - User is asking about their appointment details (extract appointmentId if mentioned)
4. doctor_info - User is asking about a specific doctor's information (extract doctorId)
5. reschedule_request - User wants to reschedule an appointment (extract appointmentId, newDate, newTime if mentioned)
6. general_question - User is asking a general healthcare question
7. medication_reminder - User wants to set or check medication reminders (extract medicationName and time if mentioned)
8. health_tips - User is asking for health tips or advice (extract category if mentioned)
9. emergency_info - User is asking about emergency services or procedures
10. user_profile - User wants to see or update their profile information

For doctorId use the doctor's id if given, otherwise the doctor's name as written.
Write dates as YYYY-MM-DD.

Respond in JSON format:
{
  "type": "intent_type",
  "doctorId": "doctor_id_or_name_if_mentioned_or_null",
  "appointmentId": "appointment_id_if_mentioned_or_null",
  "date": "date_if_mentioned_or_null",
  "newDate": "new_date_if_mentioned_for_reschedule_or_null",
  "newTime": "new_time_if_mentioned_for_reschedule_or_null",
  "medicationName": "medication_name_if_mentioned_or_null",
  "time": "time_if_mentioned_for_medication_or_null",
  "category": "health_tip_category_if_mentioned_or_null"
}`, message)
}

func followUpPrompt(symptoms []string, questionNumber int) string {
	return fmt.Sprintf(`You are a medical assistant AI that helps understand patient symptoms.

Patient has described: %q

Generate follow-up question #%d of 2 to better understand their condition.
Make this question conversational, specific, and focused on gathering important medical information.
The question should be direct and easy to answer.

Return ONLY the question text in JSON format:
{
  "question": "your follow-up question here"
}`, strings.Join(symptoms, ". "), questionNumber)
}

func recommendationPrompt(symptoms []string, roster []models.Doctor) string {
	var sb strings.Builder
	for _, d := range roster {
		fmt.Fprintf(&sb, "ID: %s\nName: %s\nSpeciality: %s\nQualification: %s\nExpertise: %s\nOverview: %s\n\n",
			d.ID, d.Name, d.Speciality, d.Qualification, strings.Join(d.Expertise, ", "), truncate(d.Overview, overviewPromptLimit))
	}

	return fmt.Sprintf(`You are a medical assistant AI that helps recommend the best doctors based on patient symptoms.

Patient has described: %q

Here is the list of available doctors:
%s
Based on the symptoms described, recommend the 3 most suitable doctors from this list only, using their exact IDs.
Provide a brief, empathetic reassurance message and a simple 2-line reasoning for each doctor.

Respond in JSON format:
{
  "reassurance": "Brief empathetic reassurance",
  "recommendedDoctors": [
    {
      "id": "doctor_id",
      "name": "Doctor's Name",
      "speciality": "Doctor's Speciality",
      "qualification": "Doctor's Qualification",
      "reasoning": "Simple reason (2 lines max)"
    }
  ]
}`, strings.Join(symptoms, ". "), sb.String())
}

func generalQuestionPrompt(message string) string {
	return fmt.Sprintf(`You are a helpful healthcare assistant. Answer the following question with accurate,
medically sound information. Keep your answer concise (maximum 3-4 sentences) and helpful.
If the question requires a doctor's specific medical advice, politely explain that the user
should consult with a healthcare professional.

User question: %q`, message)
}

func healthTipsPrompt(category string) string {
	topic := "general health tips that most people would benefit from"
	if category != "" {
		topic = "tips about " + category
	}
	return fmt.Sprintf(`You are a healthcare assistant providing brief, helpful health tips.
Give 3 practical, evidence-based %s.
Each tip should be 1-2 sentences maximum.
Format as a numbered list.`, topic)
}

func patientSummaryPrompt(patientName string) string {
	return fmt.Sprintf(`Patient Name: %s

Based on the following chat history between a patient and a medical chatbot,
generate a structured summary of the patient's symptoms and concerns.

Please return the response in the following JSON format:
{
  "patientName": %q,
  "symptoms": ["symptom1", "symptom2"],
  "possibleDiagnosis": "potential diagnosis based on symptoms",
  "additionalNotes": "any other relevant information from the chat"
}`, patientName, patientName)
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
