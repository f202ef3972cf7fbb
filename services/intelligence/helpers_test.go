package ai

import (
	"context"
	"sync"
	"testing"
	"time"

	"curabot/database/repository/memstore"
	"curabot/models"

	"github.com/stretchr/testify/require"
)

// fakeLLM replays replies in order; the last one repeats once exhausted.
type fakeLLM struct {
	mu       sync.Mutex
	replies  []fakeReply
	requests []LLMRequest
}

type fakeReply struct {
	text string
	err  error
}

func (f *fakeLLM) Complete(_ context.Context, req LLMRequest) (LLMResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if len(f.replies) == 0 {
		return LLMResponse{}, ErrLLMUnavailable
	}
	r := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return LLMResponse{Text: r.text}, r.err
}

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func replies(texts ...string) *fakeLLM {
	f := &fakeLLM{}
	for _, t := range texts {
		f.replies = append(f.replies, fakeReply{text: t})
	}
	return f
}

func newTestLLM(client LLMClient) *ResilientLLM {
	return NewResilientLLM(client, "test-model", nil,
		WithRetryInterval(time.Millisecond), WithCallTimeout(time.Second))
}

var (
	testDay = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	testNow = time.Date(2024, 5, 30, 10, 0, 0, 0, time.UTC)
)

func seedStore(t *testing.T) *memstore.Store {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Users().Create(ctx, &models.User{
		ID: "patient-1", Name: "Jane", Email: "jane@example.com", Phone: "555-0100", Role: models.RolePatient,
		CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, store.Users().Create(ctx, &models.User{
		ID: "user-alice", Name: "Alice Smith", Email: "alice@example.com", Role: models.RoleDoctor,
	}))
	for _, d := range []models.Doctor{
		{ID: "4b7f0f1c-6a47-4f43-9d0e-3b0a9e1f2c01", UserID: "user-alice", Name: "Alice Smith", Speciality: "Neurology", Qualification: "MD"},
		{ID: "4b7f0f1c-6a47-4f43-9d0e-3b0a9e1f2c02", UserID: "user-bob", Name: "Bob Jones", Speciality: "Cardiology", Qualification: "MBBS"},
		{ID: "4b7f0f1c-6a47-4f43-9d0e-3b0a9e1f2c03", UserID: "user-carol", Name: "Carol White", Speciality: "Dermatology", Qualification: "MD"},
		{ID: "4b7f0f1c-6a47-4f43-9d0e-3b0a9e1f2c04", UserID: "user-dan", Name: "Dan Brown", Speciality: "General Practice", Qualification: "MBBS"},
	} {
		doc := d
		require.NoError(t, store.Doctors().Create(ctx, &doc))
	}
	require.NoError(t, store.Schedules().UpsertDay(ctx, aliceID, nil, models.DaySlots{
		Date:  testDay,
		Times: []models.TimeSlot{{Time: "09:00"}, {Time: "09:30"}},
	}))
	return store
}

const aliceID = "4b7f0f1c-6a47-4f43-9d0e-3b0a9e1f2c01"

func newTestDispatcher(store *memstore.Store, client LLMClient, sessions SessionStore) *Dispatcher {
	llm := newTestLLM(client)
	return NewDispatcher(DispatcherDeps{
		Triage:       NewTriage(sessions, llm, store.Doctors(), store.Users(), nil),
		LLM:          llm,
		Doctors:      store.Doctors(),
		Schedules:    store.Schedules(),
		Appointments: store.Appointments(),
		Users:        store.Users(),
		Now:          func() time.Time { return testNow },
	})
}
