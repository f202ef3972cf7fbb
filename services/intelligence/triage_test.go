package ai

import (
	"context"
	"errors"
	"testing"

	"curabot/database/repository/memstore"
	"curabot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingUsers struct {
	*memstore.UserRepo
	err error
}

func (f failingUsers) GetByID(context.Context, string) (*models.User, error) { return nil, f.err }

func TestTriage_ThreeMessageDialogue(t *testing.T) {
	store := seedStore(t)
	sessions := NewMemorySessionStore(0)
	client := replies(
		`{"question":"When did the headache start?"}`,
		`{"question":"Any nausea?"}`,
		`{"reassurance":"I'm sorry you're unwell.","recommendedDoctors":[
			{"id":"4b7f0f1c-6a47-4f43-9d0e-3b0a9e1f2c01","name":"Alice Smith","reasoning":"Neurologist for headaches"},
			{"id":"ghost","name":"Dr. Nobody","reasoning":"made up"},
			{"name":"Dr. Bob Jones"},
			{"id":"4b7f0f1c-6a47-4f43-9d0e-3b0a9e1f2c01","name":"Alice Smith","reasoning":"duplicate"},
			{"name":"Carol White","reasoning":"skin"},
			{"name":"Dan Brown","reasoning":"general"}
		]}`,
	)
	triage := NewTriage(sessions, newTestLLM(client), store.Doctors(), store.Users(), nil)
	ctx := context.Background()

	first := triage.Handle(ctx, "patient-1", "I have a headache")
	assert.Equal(t, "Jane, When did the headache start?", first.Response)
	session, err := sessions.Get(ctx, "patient-1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, models.StageFollowUp, session.Stage)
	assert.Equal(t, 1, session.FollowUpCount)

	second := triage.Handle(ctx, "patient-1", "Since yesterday, quite bad")
	assert.Equal(t, "Jane, Any nausea?", second.Response)
	session, err = sessions.Get(ctx, "patient-1")
	require.NoError(t, err)
	assert.Equal(t, 2, session.FollowUpCount)
	assert.Equal(t, []string{"I have a headache", "Since yesterday, quite bad"}, session.Symptoms)

	third := triage.Handle(ctx, "patient-1", "No nausea")
	assert.Equal(t, "I'm sorry you're unwell.", third.Message)
	assert.Equal(t, recommendationNote, third.Note)
	require.Len(t, third.Doctors, 3)
	assert.Equal(t, "Alice Smith", third.Doctors[0].Name)
	assert.Equal(t, "Neurology", third.Doctors[0].Speciality)
	assert.Equal(t, "Bob Jones", third.Doctors[1].Name)
	assert.Equal(t, fallbackReasoning, third.Doctors[1].Reasoning)
	assert.Equal(t, "Carol White", third.Doctors[2].Name)
	for _, d := range third.Doctors {
		assert.NotEmpty(t, d.Reasoning)
	}

	session, err = sessions.Get(ctx, "patient-1")
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Contains(t, client.requests[2].Messages[0].Content, "No nausea")
}

func TestTriage_FallbacksWithoutLLM(t *testing.T) {
	store := seedStore(t)
	triage := NewTriage(NewMemorySessionStore(0), newTestLLM(UnavailableLLMClient{}), store.Doctors(), store.Users(), nil)
	ctx := context.Background()

	assert.Equal(t, "Jane, "+followUpFallback1, triage.Handle(ctx, "patient-1", "rash").Response)
	assert.Equal(t, "Jane, "+followUpFallback2, triage.Handle(ctx, "patient-1", "two days").Response)

	reply := triage.Handle(ctx, "patient-1", "itchy")
	assert.Equal(t, fallbackReassurance, reply.Message)
	assert.Len(t, reply.Doctors, 3)
}

func TestTriage_UnknownUserIsNotPersonalized(t *testing.T) {
	store := seedStore(t)
	triage := NewTriage(NewMemorySessionStore(0), newTestLLM(UnavailableLLMClient{}), store.Doctors(), store.Users(), nil)

	reply := triage.Handle(context.Background(), "stranger", "cough")
	assert.Equal(t, followUpFallback1, reply.Response)
}

func TestTriage_ErrorResetsSession(t *testing.T) {
	store := seedStore(t)
	sessions := NewMemorySessionStore(0)
	triage := NewTriage(sessions, newTestLLM(UnavailableLLMClient{}), store.Doctors(), store.Users(), nil)
	ctx := context.Background()

	triage.Handle(ctx, "patient-1", "fever")
	require.Equal(t, 1, sessions.Len())

	triage.users = failingUsers{err: errors.New("db down")}
	reply := triage.Handle(ctx, "patient-1", "high fever")
	assert.Equal(t, triageApology, reply.Response)
	assert.Equal(t, 0, sessions.Len())
}

func TestClampToRoster_Empty(t *testing.T) {
	assert.Empty(t, clampToRoster(nil, nil))
	assert.Empty(t, clampToRoster([]models.RecommendedDoctor{{Name: "Who"}}, nil))
}
