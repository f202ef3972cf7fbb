package ai

import (
	"context"
	"strings"
	"time"

	chatRepo "curabot/database/repository/chat"
	userRepo "curabot/database/repository/user"
	"curabot/models"
	"curabot/utils"

	"go.uber.org/zap"
)

const defaultGreeting = "Hi there! I'm CuraBot! How can I assist you today? Please describe your symptoms or health concerns."

// ChatService is the chatbot entry point: it greets, classifies, dispatches
// and keeps the user's chat history.
type ChatService struct {
	classifier *IntentClassifier
	dispatcher *Dispatcher
	chats      chatRepo.ChatRepository
	users      userRepo.UserRepository
	metrics    *utils.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

func NewChatService(
	classifier *IntentClassifier,
	dispatcher *Dispatcher,
	chats chatRepo.ChatRepository,
	users userRepo.UserRepository,
	metrics *utils.Metrics,
	logger *zap.Logger,
) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		classifier: classifier,
		dispatcher: dispatcher,
		chats:      chats,
		users:      users,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Respond never fails; an empty message yields a personalised greeting.
func (s *ChatService) Respond(ctx context.Context, userID, message string) models.ChatReply {
	message = strings.TrimSpace(message)
	if message == "" {
		reply := models.ChatReply{Response: s.greeting(ctx, userID)}
		s.record(ctx, userID, models.SenderBot, reply.Text())
		return reply
	}

	s.record(ctx, userID, models.SenderUser, message)

	intent := s.classifier.Classify(ctx, message)
	s.metrics.ObserveIntent(string(intent.Type))
	s.logger.Debug("Classified chat message", zap.String("userID", userID), zap.String("intent", string(intent.Type)))

	reply := s.dispatcher.Dispatch(ctx, Query{UserID: userID, Message: message, Intent: intent})
	s.record(ctx, userID, models.SenderBot, reply.Text())
	return reply
}

func (s *ChatService) greeting(ctx context.Context, userID string) string {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Debug("Greeting without user profile", zap.String("userID", userID), zap.Error(err))
		return defaultGreeting
	}

	var timeGreeting string
	switch hour := s.now().Hour(); {
	case hour < 12:
		timeGreeting = "Good morning! "
	case hour < 18:
		timeGreeting = "Good afternoon! "
	default:
		timeGreeting = "Good evening! "
	}
	return timeGreeting + "Hi " + user.Name + "! I'm CuraBot! How can I assist you today? Please describe your symptoms or health concerns."
}

// record appends to the chat history; failures are logged and ignored.
func (s *ChatService) record(ctx context.Context, userID, sender, text string) {
	if text == "" {
		return
	}
	msg := models.ChatMessage{Sender: sender, Message: text, Timestamp: s.now()}
	if err := s.chats.AppendMessages(ctx, userID, msg); err != nil {
		s.logger.Warn("Failed to save chat message", zap.String("userID", userID), zap.String("sender", sender), zap.Error(err))
	}
}
