package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sourcequiz/internal/interpreter"
	"github.com/abhisek/sourcequiz/internal/llm"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SOURCEQUIZ_INTERPRETER", "SOURCEQUIZ_LOG_LEVEL", "SOURCEQUIZ_DB",
		"SOURCEQUIZ_QUALITY_THRESHOLD", "SOURCEQUIZ_PORT", "SOURCEQUIZ_CONFIG",
		"SOURCEQUIZ_LLM_PROVIDER", "SOURCEQUIZ_LLM_MODEL", "SOURCEQUIZ_LLM_TEMPERATURE",
		"GEMINI_API_KEY", "GOOGLE_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, interpreter.DefaultCommand, cfg.Interpreter.Command)
	assert.Equal(t, 10, cfg.Interpreter.TimeoutSeconds)
	assert.Equal(t, 3, cfg.Pipeline.MaxAttempts)
	assert.Equal(t, 60.0, cfg.Pipeline.QualityThreshold)
	assert.Equal(t, 3, cfg.Pipeline.Distractors)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  provider: openai
  model: gpt-4o
interpreter:
  command: ["node", "/opt/slang/run.js"]
  timeout_seconds: 30
pipeline:
  max_attempts: 5
  quality_threshold: 70
  enforce_difficulty: true
data:
  traps: /etc/sourcequiz/traps.json
server:
  port: 9000
log:
  level: debug
`), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"node", "/opt/slang/run.js"}, cfg.Interpreter.Command)
	assert.Equal(t, 30*time.Second, cfg.InterpreterSettings().Timeout)
	assert.Equal(t, "127.0.0.1", cfg.Server.Bind, "unset keys keep defaults")
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, "/etc/sourcequiz/traps.json", cfg.CurriculumPaths().Traps)

	p := cfg.PipelineSettings()
	assert.Equal(t, 5, p.MaxAttempts)
	assert.Equal(t, 70.0, p.QualityThreshold)
	assert.True(t, p.EnforceDifficulty)
	assert.Equal(t, 3, p.Distractors)

	l := cfg.LLMSettings()
	assert.Equal(t, llm.ProviderOpenAI, l.Provider)
	assert.Equal(t, "gpt-4o", l.Model())
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline: [unclosed"), 0o644))

	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOURCEQUIZ_INTERPRETER", "deno run wrapper.ts")
	t.Setenv("SOURCEQUIZ_QUALITY_THRESHOLD", "45.5")
	t.Setenv("SOURCEQUIZ_PORT", "not-a-port")
	t.Setenv("SOURCEQUIZ_LOG_LEVEL", "warn")
	t.Setenv("SOURCEQUIZ_DB", "/tmp/q.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"deno", "run", "wrapper.ts"}, cfg.Interpreter.Command)
	assert.Equal(t, 45.5, cfg.Pipeline.QualityThreshold)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel())
	assert.Equal(t, "/tmp/q.db", cfg.Data.DB)
}

func TestLLMSettings_EnvWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOURCEQUIZ_LLM_PROVIDER", "anthropic")

	cfg := Default()
	cfg.LLM.Provider = "openai"
	assert.Equal(t, llm.ProviderAnthropic, cfg.LLMSettings().Provider)
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Pipeline.Seed = 42
	cfg.LLM.Model = "gemma"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaultPath(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sourcequiz", "config.yaml"), p)

	t.Setenv("SOURCEQUIZ_CONFIG", "/etc/sq.yaml")
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/sq.yaml", p)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"loud":  slog.LevelInfo,
		"":      slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
