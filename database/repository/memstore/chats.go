package memstore

import (
	"context"
	"time"

	"curabot/database/repository"
	"curabot/models"

	"github.com/google/uuid"
)

type ChatRepo struct{ s *Store }

func (r *ChatRepo) AppendMessages(_ context.Context, userID string, messages ...models.ChatMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	chat, ok := r.s.chats[userID]
	if !ok {
		chat = &models.Chat{ID: uuid.New().String(), UserID: userID, CreatedAt: now}
		r.s.chats[userID] = chat
	}
	chat.Messages = append(chat.Messages, messages...)
	chat.UpdatedAt = now
	return nil
}

func (r *ChatRepo) GetByUserID(_ context.Context, userID string) (*models.Chat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	chat, ok := r.s.chats[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *chat
	out.Messages = append([]models.ChatMessage(nil), chat.Messages...)
	return &out, nil
}

func (r *ChatRepo) EnsureIndexes(context.Context) error { return nil }
