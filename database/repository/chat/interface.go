package chatRepo

import (
	"context"

	"curabot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ChatRepository persists the chatbot history of each user.
type ChatRepository interface {
	// AppendMessages adds messages to the user's history, creating it on first use.
	AppendMessages(ctx context.Context, userID string, messages ...models.ChatMessage) error
	GetByUserID(ctx context.Context, userID string) (*models.Chat, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoChatRepo struct {
	coll *mongo.Collection
}

func NewMongoChatRepo(db *mongo.Database) ChatRepository {
	return &mongoChatRepo{coll: db.Collection("chats")}
}
