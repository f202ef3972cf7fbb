package ai

import (
	"context"
	"errors"
	"fmt"

	"curabot/database/repository"
	"curabot/models"
)

const (
	generalQuestionApology = "I'm sorry, I'm having trouble answering your question right now. Please try again later."
	healthTipsApology      = "I'm having trouble retrieving health tips right now. Please try again later."
	medicationApology      = "I'm having trouble setting up your medication reminder right now. Please try again later."

	emergencyInfo = "For medical emergencies, please call emergency services immediately:\n\n" +
		"- Call 911 (or your local emergency number) for life-threatening situations\n" +
		"- For poison control: 1-800-222-1222\n" +
		"- If you're experiencing severe symptoms, go to the nearest emergency room\n\n" +
		"This is general advice and not a substitute for professional medical help. Always call emergency services in critical situations."
)

func (d *Dispatcher) handleGeneralQuestion(ctx context.Context, q Query) models.ChatReply {
	answer, ok := d.LLM.Text(ctx, "general_question", LLMRequest{
		Messages:    userTurn(generalQuestionPrompt(q.Message)),
		Temperature: 0.3,
		MaxTokens:   300,
	})
	if !ok {
		return models.ChatReply{Response: generalQuestionApology}
	}
	return models.ChatReply{Response: answer}
}

func (d *Dispatcher) handleHealthTips(ctx context.Context, q Query) models.ChatReply {
	category := q.Intent.Category
	tips, ok := d.LLM.Text(ctx, "health_tips", LLMRequest{
		Messages:    userTurn(healthTipsPrompt(category)),
		Temperature: 0.5,
		MaxTokens:   300,
	})
	if !ok {
		return models.ChatReply{Response: healthTipsApology}
	}
	if category != "" {
		return models.ChatReply{Response: fmt.Sprintf("Here are some health tips about %s:\n\n%s", category, tips)}
	}
	return models.ChatReply{Response: "Here are some general health tips:\n\n" + tips}
}

// handleMedicationReminder acknowledges the request; nothing is stored.
func (d *Dispatcher) handleMedicationReminder(ctx context.Context, q Query) models.ChatReply {
	medication, at := q.Intent.MedicationName, q.Intent.Time
	if medication == "" {
		return models.ChatReply{Response: "I can help you set medication reminders. Please specify which medication you'd like to be reminded about and when."}
	}
	if at == "" {
		return models.ChatReply{Response: fmt.Sprintf("I'll set up a reminder for %s. What time would you like to be reminded?", medication)}
	}

	name := "there"
	user, err := d.Users.GetByID(ctx, q.UserID)
	switch {
	case err == nil:
		name = user.Name
	case !errors.Is(err, repository.ErrNotFound):
		return d.fail(q.Intent.Type, err, medicationApology)
	}
	return models.ChatReply{Response: fmt.Sprintf(
		"Great! I've set a reminder for you to take %s at %s. I'll send you a notification at %s, %s. Is there anything else you'd like me to help you with?",
		medication, at, at, name)}
}

func (d *Dispatcher) handleEmergencyInfo(context.Context, Query) models.ChatReply {
	return models.ChatReply{Response: emergencyInfo}
}
