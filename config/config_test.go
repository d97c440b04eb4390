package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL", "AIRTABLE_API_KEY", "AIRTABLE_BASE_ID", "AIRTABLE_TABLE", "PORT"} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultServerAddr, cfg.ServerAddr)
	assert.Equal(t, DefaultModel, cfg.LLM.Model)
	assert.Equal(t, DefaultTemperature, cfg.LLM.Temperature)
	assert.EqualValues(t, DefaultMaxTokens, cfg.LLM.MaxTokens)
	assert.Equal(t, DefaultAirtableTable, cfg.Airtable.Table)
	assert.False(t, cfg.LLM.Configured())
	assert.False(t, cfg.Airtable.Configured())
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout.Std())
}

func TestLoad_JSONFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	location := filepath.Join(dir, "config.json")
	content := `{
  "server_addr": ":9090",
  "llm": {"api_key": "sk-test", "model": "gpt-4o-mini", "max_tokens": 200},
  "airtable": {"api_key": "pat123", "base_id": "app123"},
  "request_timeout": "20s"
}`
	require.NoError(t, os.WriteFile(location, []byte(content), 0o644))

	cfg, err := Load(context.Background(), location)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.EqualValues(t, 200, cfg.LLM.MaxTokens)
	assert.Equal(t, DefaultTemperature, cfg.LLM.Temperature)
	assert.True(t, cfg.LLM.Configured())
	assert.True(t, cfg.Airtable.Configured())
	assert.Equal(t, DefaultAirtableTable, cfg.Airtable.Table)
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout.Std())
}

func TestLoad_YAMLFileAndEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	location := filepath.Join(dir, "config.yaml")
	content := "llm:\n  api_key: sk-from-file\n  strip_markdown: true\nairtable:\n  table: Drafts\ntracing:\n  enabled: true\n"
	require.NoError(t, os.WriteFile(location, []byte(content), 0o644))

	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("AIRTABLE_BASE_ID", "appEnv")
	t.Setenv("PORT", "3000")

	cfg, err := Load(context.Background(), location)
	require.NoError(t, err)

	assert.Equal(t, "sk-from-env", cfg.LLM.APIKey)
	assert.True(t, cfg.LLM.StripMarkdown)
	assert.Equal(t, "Drafts", cfg.Airtable.Table)
	assert.Equal(t, "appEnv", cfg.Airtable.BaseID)
	assert.False(t, cfg.Airtable.Configured())
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, ":3000", cfg.ServerAddr)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLLMConfig_Configured(t *testing.T) {
	cases := []struct {
		name string
		cfg  *LLMConfig
		want bool
	}{
		{name: "nil", cfg: nil, want: false},
		{name: "empty", cfg: &LLMConfig{}, want: false},
		{name: "wrong prefix", cfg: &LLMConfig{APIKey: "pk-123"}, want: false},
		{name: "whitespace", cfg: &LLMConfig{APIKey: "   "}, want: false},
		{name: "valid", cfg: &LLMConfig{APIKey: "sk-proj-abc"}, want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.cfg.Configured())
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.LLM.Provider = "deepseek"
	assert.Error(t, cfg.Validate())
	cfg.LLM.BaseURL = "https://api.deepseek.com/v1"
	assert.NoError(t, cfg.Validate())

	cfg.LLM.Provider = "bard"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LLM.Temperature = 3
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Airtable.BaseURL = "ftp://example.com"
	assert.Error(t, cfg.Validate())
}
