// Package config loads codescope configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all codescope configuration.
type Config struct {
	// LLM backend selection
	LLM LLMConfig `yaml:"llm"`

	// Output is the base directory for run artifacts.
	Output string `yaml:"output"`

	// Chunker budgets
	Chunker ChunkerConfig `yaml:"chunker"`

	// Analysis orchestration policy
	Analysis AnalysisConfig `yaml:"analysis"`

	// Debug enables debug-level category logs.
	Debug bool `yaml:"debug"`
}

// LLMConfig configures the backend gateway.
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // gemini, openai, ollama
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	Timeout     string  `yaml:"timeout"`
}

// ChunkerConfig configures token budgeting (values in tokens).
type ChunkerConfig struct {
	ChunkSize        int `yaml:"chunk_size"`
	OverlapSize      int `yaml:"overlap_size"`
	RecursionLimit   int `yaml:"recursion_limit"`
	ContextThreshold int `yaml:"context_threshold"`
}

// AnalysisConfig configures orchestration policy.
type AnalysisConfig struct {
	MaxRetries     int    `yaml:"max_retries"`
	InterCallDelay string `yaml:"inter_call_delay"`
	RemoteTimeout  string `yaml:"remote_timeout"`
	LocalTimeout   string `yaml:"local_timeout"`
}

// Default returns the standard configuration.
func Default() *Config {
	return &Config{
		Output: "codescope-out",
		Chunker: ChunkerConfig{
			ChunkSize:        3500,
			OverlapSize:      100,
			RecursionLimit:   3,
			ContextThreshold: 3800,
		},
		Analysis: AnalysisConfig{
			MaxRetries:     3,
			InterCallDelay: "1s",
			RemoteTimeout:  "5m",
			LocalTimeout:   "15m",
		},
	}
}

// Load reads a config file over the defaults, then applies environment
// overrides. A missing file is not an error: defaults plus environment
// apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets environment variables override file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("CODESCOPE_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("CODESCOPE_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("CODESCOPE_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("CODESCOPE_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("CODESCOPE_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("CODESCOPE_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

// Duration parses a duration string field, falling back when empty or
// malformed.
func Duration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
