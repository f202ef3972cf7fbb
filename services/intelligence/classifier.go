package ai

import (
	"context"
	"strings"

	"curabot/models"
)

// IntentClassifier maps a free-text chat message to one of the intent kinds.
type IntentClassifier struct {
	llm *ResilientLLM
}

func NewIntentClassifier(llm *ResilientLLM) *IntentClassifier {
	return &IntentClassifier{llm: llm}
}

// Classify never fails: any upstream or decoding problem yields general_question.
func (c *IntentClassifier) Classify(ctx context.Context, message string) models.ClassifiedIntent {
	var raw models.ClassifiedIntent
	ok := c.llm.JSON(ctx, "classify", LLMRequest{
		Messages:    userTurn(classifyPrompt(message)),
		Temperature: 0.2,
		MaxTokens:   500,
	}, &raw)
	if !ok {
		return models.ClassifiedIntent{Type: models.IntentGeneralQuestion}
	}

	intent := models.ClassifiedIntent{
		Type:           models.IntentType(strings.ToLower(strings.TrimSpace(string(raw.Type)))),
		DoctorID:       cleanField(raw.DoctorID),
		AppointmentID:  cleanField(raw.AppointmentID),
		Date:           cleanField(raw.Date),
		NewDate:        cleanField(raw.NewDate),
		NewTime:        cleanField(raw.NewTime),
		MedicationName: cleanField(raw.MedicationName),
		Time:           cleanField(raw.Time),
		Category:       cleanField(raw.Category),
	}
	if !intent.Type.Valid() {
		return models.ClassifiedIntent{Type: models.IntentGeneralQuestion}
	}
	return intent
}

// cleanField drops the placeholder values models emit for "not mentioned".
func cleanField(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "null", "none", "n/a", "undefined":
		return ""
	}
	return v
}
