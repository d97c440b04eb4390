package generator

import (
	"context"
	"time"
)

// LLMClient abstracts the chat model so it can be swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings is the configuration handed to a concrete client.
type LLMSettings struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
}
