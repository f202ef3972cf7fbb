package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"curabot/models"

	"github.com/go-redis/redis/v8"
)

// SessionStore keeps the in-progress triage dialogue of each user.
// Get returns nil without error when the user has no session.
type SessionStore interface {
	Get(ctx context.Context, userID string) (*models.ConversationSession, error)
	Put(ctx context.Context, session *models.ConversationSession) error
	Delete(ctx context.Context, userID string) error
}

// CreateOrGet returns the stored session or a fresh one in the initial stage.
func CreateOrGet(ctx context.Context, store SessionStore, userID string) (*models.ConversationSession, error) {
	session, err := store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = models.NewConversationSession(userID)
	}
	return session, nil
}

// MemorySessionStore is a process-wide map. A restart drops every
// in-flight dialogue; sessions idle longer than ttl are evicted.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.ConversationSession
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionStore builds a store; ttl <= 0 disables eviction.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: map[string]models.ConversationSession{},
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Get(_ context.Context, userID string) (*models.ConversationSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[userID]
	if !ok {
		return nil, nil
	}
	if s.expired(session) {
		delete(s.sessions, userID)
		return nil, nil
	}
	return cloneSession(session), nil
}

func (s *MemorySessionStore) Put(_ context.Context, session *models.ConversationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *cloneSession(*session)
	stored.UpdatedAt = s.now()
	s.sessions[session.UserID] = stored
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

// Sweep evicts every idle session and returns how many were dropped.
func (s *MemorySessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, session := range s.sessions {
		if s.expired(session) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// RunJanitor sweeps every interval until ctx is done.
func (s *MemorySessionStore) RunJanitor(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemorySessionStore) expired(session models.ConversationSession) bool {
	return s.ttl > 0 && s.now().Sub(session.UpdatedAt) > s.ttl
}

func cloneSession(in models.ConversationSession) *models.ConversationSession {
	out := in
	out.Symptoms = append([]string{}, in.Symptoms...)
	out.Responses = append([]string{}, in.Responses...)
	return &out
}

const triageSessionPrefix = "triage:session:"

// RedisSessionStore keeps sessions as JSON with a sliding TTL so dialogues
// survive restarts and are shared across instances.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, userID string) (*models.ConversationSession, error) {
	data, err := s.client.Get(ctx, triageSessionPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load triage session: %w", err)
	}
	var session models.ConversationSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode triage session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, session *models.ConversationSession) error {
	stored := *session
	stored.UpdatedAt = time.Now()
	b, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode triage session: %w", err)
	}
	if err := s.client.Set(ctx, triageSessionPrefix+session.UserID, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("save triage session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, triageSessionPrefix+userID).Err(); err != nil {
		return fmt.Errorf("clear triage session: %w", err)
	}
	return nil
}
