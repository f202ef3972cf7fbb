package ai

import (
	"context"
	"errors"
)

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one role-tagged turn sent to the completion service.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type LLMRequest struct {
	Model       string
	System      []string
	Messages    []ChatMessage
	MaxTokens   int32
	Temperature float32
	TopP        float32
	// JSON asks the service to answer with a single JSON object.
	JSON bool
}

type LLMResponse struct {
	Text       string
	StopReason string
}

type LLMClient interface {
	Complete(ctx context.Context, req LLMRequest) (LLMResponse, error)
}

// ErrLLMUnavailable is returned when no completion service is configured.
var ErrLLMUnavailable = errors.New("ai: completion service not configured")

// UnavailableLLMClient fails every call; every caller falls back to canned text.
type UnavailableLLMClient struct{}

func (UnavailableLLMClient) Complete(context.Context, LLMRequest) (LLMResponse, error) {
	return LLMResponse{}, ErrLLMUnavailable
}

func userTurn(content string) []ChatMessage {
	return []ChatMessage{{Role: ChatRoleUser, Content: content}}
}
