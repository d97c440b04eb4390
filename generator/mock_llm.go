package generator

import (
	"context"
	"sync"
)

// MockLLM is a canned LLMClient for local runs and tests. It never touches the network.
type MockLLM struct {
	Reply string
	Err   error

	mu      sync.Mutex
	prompts []Prompt
}

func (m *MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

// Prompts returns every prompt received so far.
func (m *MockLLM) Prompts() []Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Prompt(nil), m.prompts...)
}
