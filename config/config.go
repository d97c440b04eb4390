package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

const (
	DefaultServerAddr      = ":8080"
	DefaultProvider        = "openai"
	DefaultModel           = "gpt-3.5-turbo"
	DefaultTemperature     = 0.8
	DefaultMaxTokens       = 150
	DefaultAirtableBaseURL = "https://api.airtable.com/v0"
	DefaultAirtableTable   = "PostIdeas"
	DefaultShutdownTimeout = 15 * time.Second

	// openAIKeyPrefix is the prefix every OpenAI secret key carries.
	openAIKeyPrefix = "sk-"
)

// Config holds everything the service needs. It is loaded once at start-up and
// handed to constructors explicitly.
type Config struct {
	ServerAddr string          `json:"server_addr,omitempty" yaml:"server_addr,omitempty"`
	LLM        *LLMConfig      `json:"llm,omitempty" yaml:"llm,omitempty"`
	Airtable   *AirtableConfig `json:"airtable,omitempty" yaml:"airtable,omitempty"`
	Tracing    *TracingConfig  `json:"tracing,omitempty" yaml:"tracing,omitempty"`

	// RequestTimeout bounds each downstream call. Zero leaves the transport default in place.
	RequestTimeout  Duration `json:"request_timeout,omitempty" yaml:"request_timeout,omitempty"`
	ShutdownTimeout Duration `json:"shutdown_timeout,omitempty" yaml:"shutdown_timeout,omitempty"`
}

// LLMConfig configures the text generation service.
type LLMConfig struct {
	Provider      string  `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model         string  `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey        string  `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL       string  `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Temperature   float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens     int64   `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	StripMarkdown bool    `json:"strip_markdown,omitempty" yaml:"strip_markdown,omitempty"`
}

// Configured reports whether a plausible API key is present.
func (c *LLMConfig) Configured() bool {
	if c == nil {
		return false
	}
	key := strings.TrimSpace(c.APIKey)
	return key != "" && strings.HasPrefix(key, openAIKeyPrefix)
}

// AirtableConfig configures the record store.
type AirtableConfig struct {
	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseID  string `json:"base_id,omitempty" yaml:"base_id,omitempty"`
	Table   string `json:"table,omitempty" yaml:"table,omitempty"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// Configured reports whether both the key and the base id are set.
func (c *AirtableConfig) Configured() bool {
	if c == nil {
		return false
	}
	return strings.TrimSpace(c.APIKey) != "" && strings.TrimSpace(c.BaseID) != ""
}

type TracingConfig struct {
	Enabled bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Output  string `json:"output,omitempty" yaml:"output,omitempty"`
}

// Default returns a Config populated with built-in defaults and no credentials.
func Default() Config {
	return Config{
		ServerAddr: DefaultServerAddr,
		LLM: &LLMConfig{
			Provider:    DefaultProvider,
			Model:       DefaultModel,
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultMaxTokens,
		},
		Airtable: &AirtableConfig{
			Table:   DefaultAirtableTable,
			BaseURL: DefaultAirtableBaseURL,
		},
		Tracing:         &TracingConfig{},
		ShutdownTimeout: Duration(DefaultShutdownTimeout),
	}
}

// Load builds a Config from defaults, the optional file at location and the
// environment, in that order of precedence. location may be a local path or
// any URL supported by afs; an empty location skips the file.
func Load(ctx context.Context, location string) (Config, error) {
	cfg := Default()
	if location != "" {
		if err := loadFile(ctx, location, &cfg); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv(os.Getenv)
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(ctx context.Context, location string, cfg *Config) error {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return fmt.Errorf("read config %s: %w", location, err)
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", location, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if c.LLM == nil {
		c.LLM = &LLMConfig{}
	}
	if c.Airtable == nil {
		c.Airtable = &AirtableConfig{}
	}
	setIf(&c.LLM.APIKey, getenv("OPENAI_API_KEY"))
	setIf(&c.LLM.Model, getenv("OPENAI_MODEL"))
	setIf(&c.LLM.BaseURL, getenv("OPENAI_BASE_URL"))
	setIf(&c.Airtable.APIKey, getenv("AIRTABLE_API_KEY"))
	setIf(&c.Airtable.BaseID, getenv("AIRTABLE_BASE_ID"))
	setIf(&c.Airtable.Table, getenv("AIRTABLE_TABLE"))
	if port := getenv("PORT"); port != "" {
		c.ServerAddr = ":" + strings.TrimPrefix(port, ":")
	}
}

// fillDefaults restores defaults a config file may have blanked out.
func (c *Config) fillDefaults() {
	if c.ServerAddr == "" {
		c.ServerAddr = DefaultServerAddr
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = DefaultProvider
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = DefaultTemperature
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = DefaultMaxTokens
	}
	if c.Airtable.Table == "" {
		c.Airtable.Table = DefaultAirtableTable
	}
	if c.Airtable.BaseURL == "" {
		c.Airtable.BaseURL = DefaultAirtableBaseURL
	}
	if c.Tracing == nil {
		c.Tracing = &TracingConfig{}
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = Duration(DefaultShutdownTimeout)
	}
}

// Validate rejects malformed values. Missing credentials are not an error:
// they only switch the matching collaborator off.
func (c *Config) Validate() error {
	var errs []error
	if c.LLM != nil {
		switch c.LLM.Provider {
		case "", "openai":
		case "deepseek":
			// DeepSeek only speaks the OpenAI protocol through its own endpoint.
			if c.LLM.BaseURL == "" {
				errs = append(errs, errors.New("llm provider deepseek requires base_url (OpenAI-compatible endpoint)"))
			}
		default:
			errs = append(errs, fmt.Errorf("llm provider %s not supported", c.LLM.Provider))
		}
		if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
			errs = append(errs, fmt.Errorf("llm temperature %v out of range [0,2]", c.LLM.Temperature))
		}
		if c.LLM.MaxTokens < 0 {
			errs = append(errs, fmt.Errorf("llm max_tokens must be positive, got %d", c.LLM.MaxTokens))
		}
		if err := checkURL("llm base_url", c.LLM.BaseURL); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Airtable != nil {
		if err := checkURL("airtable base_url", c.Airtable.BaseURL); err != nil {
			errs = append(errs, err)
		}
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, errors.New("request_timeout must not be negative"))
	}
	return errors.Join(errs...)
}

func checkURL(name, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s %q must be an http(s) URL", name, raw)
	}
	return nil
}

func setIf(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
