package config

// DefaultSimilarityThreshold is the minimum cosine similarity at which two
// course descriptors are treated as the same curriculum. Short descriptors
// embed noisily, so the threshold sits well above typical unrelated-topic
// similarity (~0.7-0.8 for text-embedding-3-small).
const DefaultSimilarityThreshold = 0.92

// DefaultEmbeddingModel is the embedding model used for fingerprints.
const DefaultEmbeddingModel = "text-embedding-3-small"

// DefaultEmbeddingRPS limits embedding API calls per second.
const DefaultEmbeddingRPS = 5

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),
		Identity: IdentityConfig{
			SimilarityThreshold: DefaultSimilarityThreshold,
		},
		Embedding: EmbeddingConfig{
			Model:             DefaultEmbeddingModel,
			DataDir:           "", // Will use ~/.skillpath/vectors
			RequestsPerSecond: DefaultEmbeddingRPS,
			Enabled:           false,
		},
		LLM: LLMConfig{
			DefaultProvider: "", // Auto-detect based on available keys
			DefaultModel:    "", // Provider-specific defaults
		},
	}
}
