package generator

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnconfigured means the generation service has no usable credential. The
// caller goes straight to the template without any network I/O.
var ErrUnconfigured = errors.New("generator: not configured")

// TextGenerator turns a request into post text via the generation service.
type TextGenerator interface {
	Generate(ctx context.Context, req PostRequest) (string, error)
}

// Agent is the live TextGenerator: it builds the prompt, issues one LLM call
// and post-processes the answer.
type Agent struct {
	llm           LLMClient
	stripMarkdown bool
}

type AgentOption func(*Agent)

// WithStripMarkdown flattens markdown in the model output to plain text.
func WithStripMarkdown(strip bool) AgentOption {
	return func(a *Agent) { a.stripMarkdown = strip }
}

func NewAgent(llm LLMClient, opts ...AgentOption) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	a := &Agent{llm: llm}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *Agent) Generate(ctx context.Context, req PostRequest) (string, error) {
	raw, err := a.llm.Complete(ctx, BuildPostPrompt(req))
	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}
	return PostProcess(raw, a.stripMarkdown)
}

// Unconfigured is the TextGenerator used when no credential is present.
type Unconfigured struct{}

func (Unconfigured) Generate(context.Context, PostRequest) (string, error) {
	return "", ErrUnconfigured
}

// Failing always fails with Err. Useful to exercise the fallback path.
type Failing struct {
	Err error
}

func (f Failing) Generate(context.Context, PostRequest) (string, error) {
	if f.Err == nil {
		return "", errors.New("generator: failing")
	}
	return "", f.Err
}
