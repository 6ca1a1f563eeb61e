package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "CORPUS_REPROCESSOR_CONFIG"
	databaseDSNEnv = "DATABASE_DSN"
	llmAPIKeyEnv   = "LLM_API_KEY"
	llmModelEnv    = "LLM_MODEL"
	llmEndpointEnv = "LLM_ENDPOINT"
)

// Config holds high-level settings required across the application.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	LLM      LLMConfig      `yaml:"llm"`
	Breaker  BreakerConfig  `yaml:"breaker"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Classify ClassifyConfig `yaml:"classify"`
}

// DatabaseConfig describes Postgres connection details. An empty DSN
// selects the in-memory store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// LoggingConfig sets the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LLMConfig defines how to contact the chat-completions endpoint.
type LLMConfig struct {
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"apiKey"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Timeout resolves the per-call HTTP timeout.
func (l LLMConfig) Timeout() time.Duration {
	if l.TimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// BreakerConfig tunes the circuit breaker shared by all LLM calls.
type BreakerConfig struct {
	FailureThreshold       int `yaml:"failureThreshold"`
	RecoveryTimeoutSeconds int `yaml:"recoveryTimeoutSeconds"`
}

// RecoveryTimeout resolves the OPEN-state cool-down.
func (b BreakerConfig) RecoveryTimeout() time.Duration {
	if b.RecoveryTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(b.RecoveryTimeoutSeconds) * time.Second
}

// ScoringConfig carries the swappable quality-scoring tables. New domains
// or vocabulary terms are data changes, not code changes.
type ScoringConfig struct {
	TrustedDomains map[string]float64 `yaml:"trustedDomains"`
	TechnicalTerms []string           `yaml:"technicalTerms"`
}

// ClassifyConfig carries per-category keyword indicator lists.
type ClassifyConfig struct {
	CategoryKeywords map[string][]string `yaml:"categoryKeywords"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(llmAPIKeyEnv); v != "" {
		c.LLM.APIKey = v
	}

	if v := os.Getenv(llmModelEnv); v != "" {
		c.LLM.Model = v
	}

	if v := os.Getenv(llmEndpointEnv); v != "" {
		c.LLM.Endpoint = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.LLM.Endpoint != "" {
		base.LLM.Endpoint = override.LLM.Endpoint
	}
	if override.LLM.Model != "" {
		base.LLM.Model = override.LLM.Model
	}
	if override.LLM.APIKey != "" {
		base.LLM.APIKey = override.LLM.APIKey
	}
	if override.LLM.TimeoutSeconds > 0 {
		base.LLM.TimeoutSeconds = override.LLM.TimeoutSeconds
	}

	if override.Breaker.FailureThreshold > 0 {
		base.Breaker.FailureThreshold = override.Breaker.FailureThreshold
	}
	if override.Breaker.RecoveryTimeoutSeconds > 0 {
		base.Breaker.RecoveryTimeoutSeconds = override.Breaker.RecoveryTimeoutSeconds
	}

	if len(override.Scoring.TrustedDomains) > 0 {
		base.Scoring.TrustedDomains = override.Scoring.TrustedDomains
	}
	if len(override.Scoring.TechnicalTerms) > 0 {
		base.Scoring.TechnicalTerms = override.Scoring.TechnicalTerms
	}

	if len(override.Classify.CategoryKeywords) > 0 {
		base.Classify.CategoryKeywords = override.Classify.CategoryKeywords
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Database: DatabaseConfig{DSN: ""},
		Logging:  LoggingConfig{Level: "info"},
		LLM: LLMConfig{
			Endpoint:       "https://api.openai.com/v1/chat/completions",
			Model:          "gpt-4o-mini",
			APIKey:         "",
			TimeoutSeconds: 20,
		},
		Breaker: BreakerConfig{
			FailureThreshold:       3,
			RecoveryTimeoutSeconds: 60,
		},
		Scoring: ScoringConfig{
			TrustedDomains: DefaultTrustedDomains(),
			TechnicalTerms: DefaultTechnicalTerms(),
		},
		Classify: ClassifyConfig{
			CategoryKeywords: DefaultCategoryKeywords(),
		},
	}
}
