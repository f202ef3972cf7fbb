package ai

import (
	"context"
	"fmt"
	"testing"
	"time"

	"curabot/database/repository/memstore"
	"curabot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSummaryFixture(t *testing.T, client LLMClient) (*SummaryService, *memstore.Store) {
	t.Helper()
	store := seedStore(t)
	require.NoError(t, store.Appointments().Create(context.Background(), &models.Appointment{
		ID: "a1", PatientID: "patient-1", DoctorID: aliceID, Date: testDay, Time: "09:00", Status: models.StatusPending,
	}))
	svc := NewSummaryService(store.Appointments(), store.Doctors(), store.Users(), store.Chats(), newTestLLM(client), nil)
	return svc, store
}

func TestPatientSummary(t *testing.T) {
	client := replies(`{"patientName":"Jane","symptoms":["headache"],"possibleDiagnosis":"Tension headache","additionalNotes":"Hydrate"}`)
	svc, store := newSummaryFixture(t, client)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		require.NoError(t, store.Chats().AppendMessages(ctx, "patient-1", models.ChatMessage{
			Sender: models.SenderUser, Message: fmt.Sprintf("message %d", i), Timestamp: time.Now(),
		}))
	}

	summary, err := svc.PatientSummary(ctx, "user-alice", "a1")
	require.NoError(t, err)
	assert.Equal(t, "Tension headache", summary.PossibleDiagnosis)
	assert.Equal(t, []string{"headache"}, summary.Symptoms)

	req := client.requests[0]
	require.Len(t, req.Messages, 11)
	assert.Equal(t, "message 2", req.Messages[0].Content)
	assert.Equal(t, ChatRoleUser, req.Messages[10].Role)
	assert.True(t, req.JSON)
}

func TestPatientSummary_Errors(t *testing.T) {
	ctx := context.Background()

	svc, store := newSummaryFixture(t, UnavailableLLMClient{})
	_, err := svc.PatientSummary(ctx, "user-alice", "missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = svc.PatientSummary(ctx, "user-bob", "a1")
	assert.ErrorIs(t, err, ErrNotDoctorsPatient)

	_, err = svc.PatientSummary(ctx, "user-alice", "a1")
	assert.ErrorIs(t, err, ErrNoChatHistory)

	require.NoError(t, store.Chats().AppendMessages(ctx, "patient-1", models.ChatMessage{Sender: models.SenderUser, Message: "hi"}))
	_, err = svc.PatientSummary(ctx, "user-alice", "a1")
	assert.ErrorIs(t, err, ErrSummaryUnavailable)
}
