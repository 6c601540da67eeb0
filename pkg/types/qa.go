// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the records and configuration structs shared across
// answer-engine components.
package types

// QARecord is one curated question/answer pair. Records are immutable after
// corpus load; identity is the record's position in the corpus.
type QARecord struct {
	// Question is the canonical phrasing the record matches against.
	Question string `json:"question" yaml:"question"`

	// Answer is the prewritten response returned on a match.
	Answer string `json:"answer" yaml:"answer"`

	// Category is a coarse grouping label (default "general").
	Category string `json:"category" yaml:"category"`

	// Hospital scopes the record to a facility (default "both").
	Hospital string `json:"hospital" yaml:"hospital"`
}

// MatchResult is one retrieval hit: a corpus record with its similarity
// score. Always derived per query, never stored.
type MatchResult struct {
	// RecordIndex is the position of the matched record in the corpus.
	RecordIndex int `json:"record_index"`

	// Score is the cosine similarity in [0, 1].
	Score float64 `json:"score"`

	// Question and Answer are copied from the matched record.
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ResponseSource identifies which strategy produced a response.
type ResponseSource string

const (
	SourceSemantic        ResponseSource = "semantic"
	SourceIntentTemplate  ResponseSource = "intent_template"
	SourceKeywordOverlap  ResponseSource = "keyword_overlap"
	SourceNeuralGenerator ResponseSource = "neural_generator"
	SourceGenericFallback ResponseSource = "generic_fallback"
)

// ResponsePayload is the unit returned to callers for every answered query.
// Every strategy produces the same shape.
type ResponsePayload struct {
	// Text is the response text shown to the user.
	Text string `json:"text"`

	// Confidence is the strategy's confidence in [0, 1].
	Confidence float64 `json:"confidence"`

	// Source names the strategy that accepted the query.
	Source ResponseSource `json:"source"`

	// Intent is the classified intent label for the query, when the
	// accepting strategy consulted the classifier.
	Intent string `json:"intent,omitempty"`
}

// ReadinessState tracks service startup. Core matching is usable at
// CoreReady; the optional neural generator flips the service to FullyReady
// in the background.
type ReadinessState int32

const (
	StateInitializing ReadinessState = iota
	StateCoreReady
	StateFullyReady
)

// String returns the state name used in health reporting.
func (s ReadinessState) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateCoreReady:
		return "core_ready"
	case StateFullyReady:
		return "fully_ready"
	default:
		return "unknown"
	}
}

// Conversation is one recorded query/response exchange.
type Conversation struct {
	// Timestamp is the RFC 3339 time the exchange was answered.
	Timestamp string `json:"timestamp" yaml:"timestamp"`

	// Query is the raw user input.
	Query string `json:"query" yaml:"query"`

	// Response is the returned answer text.
	Response string `json:"response" yaml:"response"`

	// Confidence and Source are copied from the ResponsePayload.
	Confidence float64        `json:"confidence" yaml:"confidence"`
	Source     ResponseSource `json:"source" yaml:"source"`
}
