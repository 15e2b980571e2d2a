// Package config loads the sourcequiz YAML configuration file and maps it
// onto the settings of each component.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/sourcequiz/internal/curriculum"
	"github.com/abhisek/sourcequiz/internal/interpreter"
	"github.com/abhisek/sourcequiz/internal/llm"
	"github.com/abhisek/sourcequiz/internal/pipeline"
	"github.com/abhisek/sourcequiz/internal/quality"
)

// Config is the on-disk configuration.
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Interpreter InterpreterConfig `yaml:"interpreter"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Data        DataConfig        `yaml:"data"`
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
}

// LLMConfig selects the model. API keys are only read from the
// environment.
type LLMConfig struct {
	Provider    string  `yaml:"provider,omitempty"`
	Model       string  `yaml:"model,omitempty"`
	Temperature float64 `yaml:"temperature,omitempty"`
}

// InterpreterConfig holds the external interpreter settings.
type InterpreterConfig struct {
	Command        []string `yaml:"command"`
	Dir            string   `yaml:"dir,omitempty"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// PipelineConfig holds the retry and acceptance settings.
type PipelineConfig struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	QualityThreshold  float64 `yaml:"quality_threshold"`
	Distractors       int     `yaml:"distractors"`
	InputSize         int     `yaml:"input_size"`
	EnforceDifficulty bool    `yaml:"enforce_difficulty"`
	// Seed fixes the random source; 0 seeds from the clock.
	Seed uint64 `yaml:"seed,omitempty"`
}

// DataConfig points at override documents and the database.
type DataConfig struct {
	Syllabus string `yaml:"syllabus,omitempty"`
	Traps    string `yaml:"traps,omitempty"`
	Rules    string `yaml:"operational_rules,omitempty"`
	DB       string `yaml:"db,omitempty"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Bind           string   `yaml:"bind"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	p := pipeline.DefaultConfig()
	return &Config{
		Interpreter: InterpreterConfig{
			Command:        slices.Clone(interpreter.DefaultCommand),
			TimeoutSeconds: int(interpreter.DefaultTimeout / time.Second),
		},
		Pipeline: PipelineConfig{
			MaxAttempts:      p.MaxAttempts,
			QualityThreshold: quality.DefaultThreshold,
			Distractors:      p.Distractors,
			InputSize:        p.InputSize,
		},
		Server: ServerConfig{
			Bind:           "127.0.0.1",
			Port:           8080,
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Dir returns $XDG_CONFIG_HOME/sourcequiz, or ~/.config/sourcequiz.
func Dir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "sourcequiz"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "sourcequiz"), nil
}

// DefaultPath returns SOURCEQUIZ_CONFIG, or config.yaml under Dir.
func DefaultPath() (string, error) {
	if p := os.Getenv("SOURCEQUIZ_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads path over the defaults and applies environment overrides. A
// missing file yields the defaults; a malformed one is an error.
func Load(path string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		logger.Debug("no config file, using defaults", "path", path)
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv(logger)
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(logger *slog.Logger) {
	if v := os.Getenv("SOURCEQUIZ_INTERPRETER"); v != "" {
		c.Interpreter.Command = strings.Fields(v)
	}
	if v := os.Getenv("SOURCEQUIZ_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SOURCEQUIZ_DB"); v != "" {
		c.Data.DB = v
	}
	if v := os.Getenv("SOURCEQUIZ_QUALITY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Pipeline.QualityThreshold = f
		} else {
			logger.Warn("ignoring invalid SOURCEQUIZ_QUALITY_THRESHOLD", "value", v)
		}
	}
	if v := os.Getenv("SOURCEQUIZ_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Server.Port = n
		} else {
			logger.Warn("ignoring invalid SOURCEQUIZ_PORT", "value", v)
		}
	}
}

// LLMSettings merges the file's model choice into the environment-derived
// LLM configuration. Environment variables win.
func (c *Config) LLMSettings() llm.Config {
	cfg := llm.ConfigFromEnv()
	if os.Getenv("SOURCEQUIZ_LLM_PROVIDER") == "" && c.LLM.Provider != "" {
		cfg.Provider = c.LLM.Provider
	}
	if os.Getenv("SOURCEQUIZ_LLM_MODEL") == "" && c.LLM.Model != "" {
		cfg.SetModel(c.LLM.Model)
	}
	if os.Getenv("SOURCEQUIZ_LLM_TEMPERATURE") == "" && c.LLM.Temperature > 0 {
		cfg.Temperature = c.LLM.Temperature
	}
	return cfg
}

// InterpreterSettings converts the interpreter section.
func (c *Config) InterpreterSettings() interpreter.Config {
	return interpreter.Config{
		Command: c.Interpreter.Command,
		Dir:     c.Interpreter.Dir,
		Timeout: time.Duration(c.Interpreter.TimeoutSeconds) * time.Second,
	}
}

// PipelineSettings converts the pipeline section.
func (c *Config) PipelineSettings() pipeline.Config {
	p := pipeline.DefaultConfig()
	if c.Pipeline.MaxAttempts > 0 {
		p.MaxAttempts = c.Pipeline.MaxAttempts
	}
	if c.Pipeline.Distractors > 0 {
		p.Distractors = c.Pipeline.Distractors
	}
	if c.Pipeline.InputSize > 0 {
		p.InputSize = c.Pipeline.InputSize
	}
	p.QualityThreshold = c.Pipeline.QualityThreshold
	p.EnforceDifficulty = c.Pipeline.EnforceDifficulty
	return p
}

// CurriculumPaths converts the data section.
func (c *Config) CurriculumPaths() curriculum.Paths {
	return curriculum.Paths{
		Syllabus: c.Data.Syllabus,
		Traps:    c.Data.Traps,
		Rules:    c.Data.Rules,
	}
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}

// LogLevel parses the configured level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	return ParseLevel(c.Log.Level)
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else
// is info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}
