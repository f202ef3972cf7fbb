package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"curabot/utils"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

var (
	errEmptyCompletion = errors.New("ai: empty completion")
	errMalformedJSON   = errors.New("ai: malformed JSON completion")
)

// ResilientLLM is the single degradation policy shared by every completion
// call site: per-call timeout, bounded exponential retries on transport
// failures, and a boolean outcome so callers fall back to canned text.
type ResilientLLM struct {
	client          LLMClient
	model           string
	timeout         time.Duration
	maxAttempts     uint
	initialInterval time.Duration
	metrics         *utils.Metrics
	logger          *zap.Logger
}

type ResilientOption func(*ResilientLLM)

func WithCallTimeout(d time.Duration) ResilientOption {
	return func(r *ResilientLLM) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithMaxAttempts(n int) ResilientOption {
	return func(r *ResilientLLM) {
		if n > 0 {
			r.maxAttempts = uint(n)
		}
	}
}

func WithRetryInterval(d time.Duration) ResilientOption {
	return func(r *ResilientLLM) {
		if d > 0 {
			r.initialInterval = d
		}
	}
}

func WithMetrics(m *utils.Metrics) ResilientOption {
	return func(r *ResilientLLM) { r.metrics = m }
}

func NewResilientLLM(client LLMClient, model string, logger *zap.Logger, opts ...ResilientOption) *ResilientLLM {
	if client == nil {
		client = UnavailableLLMClient{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &ResilientLLM{
		client:          client,
		model:           model,
		timeout:         20 * time.Second,
		maxAttempts:     2,
		initialInterval: 500 * time.Millisecond,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Text returns the trimmed completion, or false when every attempt failed.
func (r *ResilientLLM) Text(ctx context.Context, purpose string, req LLMRequest) (string, bool) {
	text, err := r.run(ctx, purpose, req, nil)
	return text, err == nil
}

// JSON decodes the completion into out. Malformed JSON is not retried.
func (r *ResilientLLM) JSON(ctx context.Context, purpose string, req LLMRequest, out any) bool {
	req.JSON = true
	_, err := r.run(ctx, purpose, req, func(text string) error {
		if err := json.Unmarshal([]byte(stripCodeFence(text)), out); err != nil {
			return fmt.Errorf("%w: %v", errMalformedJSON, err)
		}
		return nil
	})
	return err == nil
}

func (r *ResilientLLM) run(ctx context.Context, purpose string, req LLMRequest, decode func(string) error) (string, error) {
	if req.Model == "" {
		req.Model = r.model
	}
	start := time.Now()
	attempts := 0

	op := func() (string, error) {
		attempts++
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		resp, err := r.client.Complete(callCtx, req)
		if err != nil {
			if errors.Is(err, ErrLLMUnavailable) {
				return "", backoff.Permanent(err)
			}
			return "", err
		}
		text := strings.TrimSpace(resp.Text)
		if text == "" {
			return "", errEmptyCompletion
		}
		if decode != nil {
			if err := decode(text); err != nil {
				return "", backoff.Permanent(err)
			}
		}
		return text, nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.initialInterval
	text, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(r.maxAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			r.logger.Debug("Retrying completion call",
				zap.String("purpose", purpose), zap.Duration("backoff", next), zap.Error(err))
		}),
	)

	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrLLMUnavailable):
		outcome = "unavailable"
	case errors.Is(err, errMalformedJSON):
		outcome = "malformed"
	default:
		outcome = "error"
	}
	r.metrics.ObserveLLMCall(purpose, outcome, time.Since(start).Seconds())

	if err != nil {
		level := r.logger.Warn
		if outcome == "unavailable" {
			level = r.logger.Debug
		}
		level("Completion call failed, using fallback",
			zap.String("purpose", purpose),
			zap.String("outcome", outcome),
			zap.Int("attempts", attempts),
			zap.Error(err))
		return "", err
	}
	return text, nil
}

// stripCodeFence removes a ```json ... ``` wrapper some models add.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}
