package ai

import (
	"context"
	"testing"
	"time"

	"curabot/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore_EvictsIdleSessions(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, models.NewConversationSession("a")))
	require.NoError(t, store.Put(ctx, models.NewConversationSession("b")))

	now = now.Add(30 * time.Second)
	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)

	require.NoError(t, store.Put(ctx, got))
	now = now.Add(45 * time.Second)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())

	now = now.Add(2 * time.Minute)
	got, err = store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemorySessionStore_ReturnsCopies(t *testing.T) {
	store := NewMemorySessionStore(0)
	ctx := context.Background()

	s := models.NewConversationSession("a")
	s.Symptoms = []string{"cough"}
	require.NoError(t, store.Put(ctx, s))
	s.Symptoms[0] = "mutated"

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"cough"}, got.Symptoms)
}

func TestCreateOrGet_StartsInitialSession(t *testing.T) {
	session, err := CreateOrGet(context.Background(), NewMemorySessionStore(0), "new-user")
	require.NoError(t, err)
	assert.Equal(t, models.StageInitial, session.Stage)
	assert.Equal(t, "new-user", session.UserID)
}

func TestRedisSessionStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisSessionStore(client, 10*time.Minute)
	ctx := context.Background()

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	s := models.NewConversationSession("u1")
	s.Stage = models.StageFollowUp
	s.FollowUpCount = 1
	s.Symptoms = []string{"headache"}
	require.NoError(t, store.Put(ctx, s))
	assert.True(t, mr.Exists(triageSessionPrefix+"u1"))

	got, err = store.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StageFollowUp, got.Stage)
	assert.Equal(t, []string{"headache"}, got.Symptoms)

	mr.FastForward(11 * time.Minute)
	got, err = store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Put(ctx, s))
	require.NoError(t, store.Delete(ctx, "u1"))
	assert.False(t, mr.Exists(triageSessionPrefix+"u1"))
}
