// Package config handles application configuration management.
package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all Skillpath data (~/.skillpath)
	BaseDir string

	// Identity resolution settings
	Identity IdentityConfig

	// Embedding settings
	Embedding EmbeddingConfig

	// LLM settings for plan and content generation
	LLM LLMConfig
}

// IdentityConfig controls how course requests are deduplicated.
type IdentityConfig struct {
	// SimilarityThreshold is the minimum cosine similarity for two course
	// descriptors to share a roadmap (default: 0.92)
	SimilarityThreshold float32
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	// OpenAI API key for embeddings (OPENAI_API_KEY env var)
	APIKey string
	// Model for embeddings (default: text-embedding-3-small)
	Model string
	// DataDir for chromem-go persistence (default: ~/.skillpath/vectors)
	DataDir string
	// RequestsPerSecond limits embedding API calls (default: 5)
	RequestsPerSecond float64
	// Enabled toggles semantic deduplication (default: false until API key set)
	Enabled bool
}

// LLMConfig holds LLM provider configuration for generation.
type LLMConfig struct {
	// API keys for different providers
	AnthropicAPIKey  string
	OpenAIAPIKey     string
	OpenRouterAPIKey string

	// Default provider: "anthropic", "openai", "openrouter" (auto-detected if empty)
	DefaultProvider string
	// Default model (provider-specific, uses sensible default if empty)
	DefaultModel string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.Embedding.APIKey = apiKey
		cfg.Embedding.Enabled = true
		cfg.LLM.OpenAIAPIKey = apiKey
	}

	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		cfg.LLM.AnthropicAPIKey = apiKey
	}

	if apiKey := os.Getenv("OPENROUTER_API_KEY"); apiKey != "" {
		cfg.LLM.OpenRouterAPIKey = apiKey
	}

	if provider := os.Getenv("SKILLPATH_LLM_PROVIDER"); provider != "" {
		cfg.LLM.DefaultProvider = provider
	}

	if model := os.Getenv("SKILLPATH_LLM_MODEL"); model != "" {
		cfg.LLM.DefaultModel = model
	}

	if threshold := os.Getenv("SKILLPATH_SIMILARITY_THRESHOLD"); threshold != "" {
		if v, err := strconv.ParseFloat(threshold, 32); err == nil && v > 0 && v <= 1 {
			cfg.Identity.SimilarityThreshold = float32(v)
		}
	}

	if baseDir := os.Getenv("SKILLPATH_HOME"); baseDir != "" {
		cfg.BaseDir = baseDir
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	dirs := []string{
		cfg.BaseDir,
		filepath.Join(cfg.BaseDir, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
