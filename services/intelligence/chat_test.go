package ai

import (
	"context"
	"testing"
	"time"

	"curabot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatService_GreetsOnEmptyMessage(t *testing.T) {
	store := seedStore(t)
	llm := newTestLLM(UnavailableLLMClient{})
	d := newTestDispatcher(store, UnavailableLLMClient{}, NewMemorySessionStore(0))
	svc := NewChatService(NewIntentClassifier(llm), d, store.Chats(), store.Users(), nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	reply := svc.Respond(ctx, "patient-1", "  ")
	assert.Equal(t, "Good afternoon! Hi Jane! I'm CuraBot! How can I assist you today? Please describe your symptoms or health concerns.", reply.Response)

	assert.Equal(t, defaultGreeting, svc.Respond(ctx, "stranger", "").Response)

	chat, err := store.Chats().GetByUserID(ctx, "patient-1")
	require.NoError(t, err)
	require.Len(t, chat.Messages, 1)
	assert.Equal(t, models.SenderBot, chat.Messages[0].Sender)
}

func TestChatService_ClassifiesDispatchesAndRecords(t *testing.T) {
	store := seedStore(t)
	client := replies(`{"type":"emergency_info"}`)
	d := newTestDispatcher(store, UnavailableLLMClient{}, NewMemorySessionStore(0))
	svc := NewChatService(NewIntentClassifier(newTestLLM(client)), d, store.Chats(), store.Users(), nil, nil)
	ctx := context.Background()

	reply := svc.Respond(ctx, "patient-1", "I can't breathe")
	assert.Equal(t, emergencyInfo, reply.Response)

	chat, err := store.Chats().GetByUserID(ctx, "patient-1")
	require.NoError(t, err)
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, models.SenderUser, chat.Messages[0].Sender)
	assert.Equal(t, "I can't breathe", chat.Messages[0].Message)
	assert.Equal(t, emergencyInfo, chat.Messages[1].Message)
}
