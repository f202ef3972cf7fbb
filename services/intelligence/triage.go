package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"curabot/database/repository"
	doctorRepo "curabot/database/repository/doctor"
	userRepo "curabot/database/repository/user"
	"curabot/models"

	"go.uber.org/zap"
)

const (
	maxRecommendedDoctors = 3

	followUpFallback1     = "Can you tell me when these symptoms started and how severe they are?"
	followUpFallback2     = "Are you experiencing any other symptoms like fever, nausea, or dizziness?"
	fallbackReasoning     = "This doctor specializes in conditions similar to what you've described."
	fallbackReassurance   = "I've analyzed your symptoms and found some doctors who might be able to help."
	defaultRecommendation = "Based on what you've described, here are some doctors who might be able to help:"
	recommendationNote    = "Remember, this is just a suggestion based on the information provided. A proper medical consultation is always recommended."
	triageApology         = "I'm sorry, I'm having trouble analyzing your symptoms right now. This could be due to a technical issue. You can try again or describe your symptoms differently."
)

// Triage drives the symptom dialogue: two follow-up questions, then a
// doctor recommendation, after which the session is discarded.
type Triage struct {
	sessions SessionStore
	llm      *ResilientLLM
	doctors  doctorRepo.DoctorRepository
	users    userRepo.UserRepository
	logger   *zap.Logger
}

func NewTriage(sessions SessionStore, llm *ResilientLLM, doctors doctorRepo.DoctorRepository, users userRepo.UserRepository, logger *zap.Logger) *Triage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Triage{sessions: sessions, llm: llm, doctors: doctors, users: users, logger: logger}
}

// Handle advances the user's session by one message. It either completes a
// transition or deletes the session and apologises.
func (t *Triage) Handle(ctx context.Context, userID, message string) models.ChatReply {
	reply, err := t.advance(ctx, userID, message)
	if err != nil {
		t.logger.Error("Symptom triage failed, resetting session", zap.String("userID", userID), zap.Error(err))
		if delErr := t.sessions.Delete(ctx, userID); delErr != nil {
			t.logger.Error("Failed to reset triage session", zap.String("userID", userID), zap.Error(delErr))
		}
		return models.ChatReply{Response: triageApology}
	}
	return reply
}

func (t *Triage) advance(ctx context.Context, userID, message string) (models.ChatReply, error) {
	session, err := CreateOrGet(ctx, t.sessions, userID)
	if err != nil {
		return models.ChatReply{}, err
	}
	name, err := t.userName(ctx, userID)
	if err != nil {
		return models.ChatReply{}, err
	}

	session.Responses = append(session.Responses, message)
	session.Symptoms = append(session.Symptoms, message)

	switch {
	case session.Stage == models.StageInitial:
		session.Stage = models.StageFollowUp
		session.FollowUpCount = 1
		return t.ask(ctx, session, name)
	case session.FollowUpCount < 2:
		session.FollowUpCount = 2
		return t.ask(ctx, session, name)
	}

	session.Stage = models.StageRecommendation
	roster, err := t.doctors.List(ctx)
	if err != nil {
		return models.ChatReply{}, fmt.Errorf("load doctor roster: %w", err)
	}
	reply := t.recommend(ctx, session.Symptoms, roster)
	if err := t.sessions.Delete(ctx, userID); err != nil {
		return models.ChatReply{}, err
	}
	return reply, nil
}

func (t *Triage) ask(ctx context.Context, session *models.ConversationSession, name string) (models.ChatReply, error) {
	question := t.followUpQuestion(ctx, session.Symptoms, session.FollowUpCount)
	if err := t.sessions.Put(ctx, session); err != nil {
		return models.ChatReply{}, err
	}
	return models.ChatReply{Response: personalize(name, question)}, nil
}

func (t *Triage) followUpQuestion(ctx context.Context, symptoms []string, n int) string {
	var out struct {
		Question string `json:"question"`
	}
	ok := t.llm.JSON(ctx, "follow_up", LLMRequest{
		Messages:    userTurn(followUpPrompt(symptoms, n)),
		Temperature: 0.3,
		MaxTokens:   200,
	}, &out)
	if ok && strings.TrimSpace(out.Question) != "" {
		return strings.TrimSpace(out.Question)
	}
	if n == 1 {
		return followUpFallback1
	}
	return followUpFallback2
}

type recommendation struct {
	Reassurance        string                     `json:"reassurance"`
	RecommendedDoctors []models.RecommendedDoctor `json:"recommendedDoctors"`
}

func (t *Triage) recommend(ctx context.Context, symptoms []string, roster []models.Doctor) models.ChatReply {
	var out recommendation
	ok := t.llm.JSON(ctx, "recommend", LLMRequest{
		Messages:    userTurn(recommendationPrompt(symptoms, roster)),
		Temperature: 0.4,
		MaxTokens:   1024,
	}, &out)

	doctors := clampToRoster(out.RecommendedDoctors, roster)
	if !ok || len(doctors) == 0 {
		out.Reassurance = fallbackReassurance
		doctors = fallbackDoctors(roster)
	}

	message := strings.TrimSpace(out.Reassurance)
	if message == "" {
		message = defaultRecommendation
	}
	return models.ChatReply{Message: message, Doctors: doctors, Note: recommendationNote}
}

// clampToRoster keeps at most three distinct recommendations that name a
// real doctor, using the roster's own profile fields.
func clampToRoster(recs []models.RecommendedDoctor, roster []models.Doctor) []models.RecommendedDoctor {
	byID := make(map[string]models.Doctor, len(roster))
	byName := make(map[string]models.Doctor, len(roster))
	for _, d := range roster {
		byID[d.ID] = d
		byName[strings.ToLower(stripDoctorTitle(d.Name))] = d
	}

	out := []models.RecommendedDoctor{}
	seen := map[string]bool{}
	for _, rec := range recs {
		if len(out) == maxRecommendedDoctors {
			break
		}
		d, ok := byID[strings.TrimSpace(rec.ID)]
		if !ok {
			d, ok = byName[strings.ToLower(stripDoctorTitle(rec.Name))]
		}
		if !ok || seen[d.ID] {
			continue
		}
		seen[d.ID] = true

		reasoning := strings.TrimSpace(rec.Reasoning)
		if reasoning == "" {
			reasoning = fallbackReasoning
		}
		out = append(out, recommendedFrom(d, reasoning))
	}
	return out
}

func fallbackDoctors(roster []models.Doctor) []models.RecommendedDoctor {
	out := []models.RecommendedDoctor{}
	for i := 0; i < len(roster) && i < maxRecommendedDoctors; i++ {
		out = append(out, recommendedFrom(roster[i], fallbackReasoning))
	}
	return out
}

func recommendedFrom(d models.Doctor, reasoning string) models.RecommendedDoctor {
	return models.RecommendedDoctor{
		ID:            d.ID,
		Name:          d.Name,
		Speciality:    d.Speciality,
		Qualification: d.Qualification,
		Reasoning:     reasoning,
	}
}

func (t *Triage) userName(ctx context.Context, userID string) (string, error) {
	if t.users == nil {
		return "", nil
	}
	u, err := t.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}
	return u.Name, nil
}

func personalize(name, text string) string {
	if name == "" {
		return text
	}
	return name + ", " + text
}
