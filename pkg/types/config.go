// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// VectorizerConfig holds settings for TF-IDF fitting.
type VectorizerConfig struct {
	// MaxFeatures caps the vocabulary size. Terms are kept by highest
	// document frequency; ties resolve alphabetically. Zero means no cap.
	MaxFeatures int `json:"max_features" yaml:"max_features"`

	// NgramMax is the largest n-gram length to index (default 2:
	// unigrams and bigrams).
	NgramMax int `json:"ngram_max" yaml:"ngram_max"`
}

// PolicyConfig holds the decision-policy thresholds. The defaults are
// hand-tuned starting points, not derived optima; deployments should tune
// them against their own corpus.
type PolicyConfig struct {
	// SemanticThreshold is the strict lower bound a cosine score must
	// exceed for the semantic strategy to accept (default 0.3).
	SemanticThreshold float64 `json:"semantic_threshold" yaml:"semantic_threshold"`

	// KeywordMinOverlap is the minimum weighted token-overlap score for
	// the keyword strategy to accept (default 2).
	KeywordMinOverlap int `json:"keyword_min_overlap" yaml:"keyword_min_overlap"`

	// TopK is how many semantic candidates to retrieve; only the best is
	// accepted (default 3).
	TopK int `json:"top_k" yaml:"top_k"`

	// GenericConfidence is the confidence reported by the generic
	// fallback (default 0.1).
	GenericConfidence float64 `json:"generic_confidence" yaml:"generic_confidence"`
}

// HistoryConfig holds settings for the feedback and conversation store.
type HistoryConfig struct {
	// DataDir is the directory holding the SQLite database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// FeedbackAlpha is the exponential-moving-average learning rate for
	// feedback multipliers (default 0.1).
	FeedbackAlpha float64 `json:"feedback_alpha" yaml:"feedback_alpha"`
}

// GeneratorConfig holds settings for the optional neural fallback client.
// An empty Endpoint disables the generator entirely.
type GeneratorConfig struct {
	// Endpoint is the URL of the external text-generation service.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// APIKey authenticates requests to the endpoint.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout bounds one generation call (default 5s). Generation runs
	// off the matching hot path; on timeout the policy degrades to the
	// remaining strategies.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries is the retry budget for rate-limited calls (default 2).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ServerConfig holds settings for the HTTP serving shell.
type ServerConfig struct {
	// Addr is the listen address (default "127.0.0.1:5000").
	Addr string `json:"addr" yaml:"addr"`
}

// EngineConfig groups all component configurations.
type EngineConfig struct {
	CorpusPath string           `json:"corpus_path" yaml:"corpus_path"`
	IntentPath string           `json:"intent_path,omitempty" yaml:"intent_path,omitempty"`
	Vectorizer VectorizerConfig `json:"vectorizer" yaml:"vectorizer"`
	Policy     PolicyConfig     `json:"policy" yaml:"policy"`
	History    HistoryConfig    `json:"history" yaml:"history"`
	Generator  GeneratorConfig  `json:"generator" yaml:"generator"`
	Server     ServerConfig     `json:"server" yaml:"server"`
}

// DefaultEngineConfig returns the documented defaults for every component.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Vectorizer: VectorizerConfig{
			MaxFeatures: 1000,
			NgramMax:    2,
		},
		Policy: PolicyConfig{
			SemanticThreshold: 0.3,
			KeywordMinOverlap: 2,
			TopK:              3,
			GenericConfidence: 0.1,
		},
		History: HistoryConfig{
			DataDir:       "data",
			FeedbackAlpha: 0.1,
		},
		Generator: GeneratorConfig{
			Timeout:    5 * time.Second,
			MaxRetries: 2,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:5000",
		},
	}
}
