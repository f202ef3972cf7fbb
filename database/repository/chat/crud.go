package chatRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"curabot/database/repository"
	"curabot/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoChatRepo) AppendMessages(ctx context.Context, userID string, messages ...models.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$push": bson.M{"messages": bson.M{"$each": messages}},
		"$set":  bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"createdAt": now,
		},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to append chat messages for user %s: %w", userID, err)
	}
	return nil
}

func (r *mongoChatRepo) GetByUserID(ctx context.Context, userID string) (*models.Chat, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var chat models.Chat
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&chat); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch chat for user %s: %w", userID, err)
	}
	return &chat, nil
}

func (r *mongoChatRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_chat_user"),
	})
	if err != nil {
		return fmt.Errorf("failed to create chat indexes: %w", err)
	}
	return nil
}
