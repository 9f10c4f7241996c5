// Package config loads process configuration: provider credentials, model
// selection, and the two pipeline thresholds. Configuration is read once at
// startup and treated as immutable for the process lifetime.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all scopevoice configuration.
type Config struct {
	// LLM configures the semantic parsing tier.
	LLM LLMConfig `yaml:"llm"`

	// STT configures speech-to-text transcription.
	STT STTConfig `yaml:"stt"`

	// Pipeline holds the parse and validation policy.
	Pipeline PipelineConfig `yaml:"pipeline"`

	// Store configures the decision history database.
	Store StoreConfig `yaml:"store"`
}

// LLMConfig configures the semantic parser's provider.
type LLMConfig struct {
	Provider string `yaml:"provider"` // openai, gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// STTConfig configures transcription.
type STTConfig struct {
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

// PipelineConfig holds the two independent confidence thresholds. The
// fallback threshold decides which tier's result is used; the confidence
// threshold later and separately decides whether that result is safe to
// execute.
type PipelineConfig struct {
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	FallbackThreshold   float64 `yaml:"fallback_threshold"`
	ParseTimeout        string  `yaml:"parse_timeout"`
}

// StoreConfig configures the decision history database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Timeout: "10s",
		},
		STT: STTConfig{
			Model:   "whisper-1",
			Timeout: "60s",
		},
		Pipeline: PipelineConfig{
			ConfidenceThreshold: 0.7,
			FallbackThreshold:   0.5,
			ParseTimeout:        "15s",
		},
		Store: StoreConfig{
			Path: "data/history.db",
		},
	}
}

// Load reads YAML config from path, layered over defaults, then applies
// environment overrides and validates. A missing file is not an error; the
// defaults plus environment carry a working setup.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults + env only.
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv fills credentials and provider selection from the environment
// when the file left them blank. Env never overrides an explicit file value.
func (c *Config) applyEnv() {
	if c.LLM.Provider == "" {
		switch {
		case os.Getenv("OPENAI_API_KEY") != "":
			c.LLM.Provider = "openai"
		case os.Getenv("GEMINI_API_KEY") != "":
			c.LLM.Provider = "gemini"
		}
	}
	if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case "openai":
			c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "gemini":
			c.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
}

// Validate rejects configurations the pipeline cannot safely run with.
func (c Config) Validate() error {
	if c.Pipeline.ConfidenceThreshold < 0 || c.Pipeline.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold %v outside [0,1]", c.Pipeline.ConfidenceThreshold)
	}
	if c.Pipeline.FallbackThreshold < 0 || c.Pipeline.FallbackThreshold > 1 {
		return fmt.Errorf("fallback_threshold %v outside [0,1]", c.Pipeline.FallbackThreshold)
	}
	switch c.LLM.Provider {
	case "", "openai", "gemini":
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
	if _, err := c.llmTimeout(); err != nil {
		return err
	}
	if _, err := c.parseTimeout(); err != nil {
		return err
	}
	if _, err := c.sttTimeout(); err != nil {
		return err
	}
	return nil
}

// LLMTimeout returns the semantic provider timeout.
func (c Config) LLMTimeout() time.Duration {
	d, _ := c.llmTimeout()
	return d
}

// ParseTimeout bounds one fallback parse, semantic round-trip included.
func (c Config) ParseTimeout() time.Duration {
	d, _ := c.parseTimeout()
	return d
}

// STTTimeout bounds one transcription request.
func (c Config) STTTimeout() time.Duration {
	d, _ := c.sttTimeout()
	return d
}

func (c Config) llmTimeout() (time.Duration, error) {
	return parseTimeout("llm.timeout", c.LLM.Timeout, 10*time.Second)
}

func (c Config) parseTimeout() (time.Duration, error) {
	return parseTimeout("pipeline.parse_timeout", c.Pipeline.ParseTimeout, 15*time.Second)
}

func (c Config) sttTimeout() (time.Duration, error) {
	return parseTimeout("stt.timeout", c.STT.Timeout, 60*time.Second)
}

func parseTimeout(field, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}
