package generator

import (
	"fmt"
	"time"

	"postgen/config"
)

// FromConfig picks the TextGenerator for cfg: Unconfigured when the key is
// missing or implausible, an OpenAI-backed Agent otherwise.
func FromConfig(cfg *config.LLMConfig, timeout time.Duration) (TextGenerator, error) {
	if !cfg.Configured() {
		return Unconfigured{}, nil
	}
	switch cfg.Provider {
	case "", "openai", "deepseek":
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
	llm, err := NewOpenAILLMFromConfig(&LLMSettings{
		Provider:    cfg.Provider,
		Model:       cfg.Model,
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     timeout,
	})
	if err != nil {
		return nil, err
	}
	return NewAgent(llm, WithStripMarkdown(cfg.StripMarkdown))
}
