package models

import "time"

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

type ChatMessage struct {
	Sender    string    `bson:"sender" json:"sender"`
	Message   string    `bson:"message" json:"message"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// Chat is the persisted chatbot history of one user.
type Chat struct {
	ID        string        `bson:"id" json:"id"`
	UserID    string        `bson:"userId" json:"userId"`
	Messages  []ChatMessage `bson:"messages" json:"messages"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}
