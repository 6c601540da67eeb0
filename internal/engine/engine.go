// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine runs the decision policy: an ordered cascade of answer
// strategies over an atomically swappable serving generation. The cascade
// is precision-over-recall: exact semantic matching first, cheap keyword
// heuristics late, and a generic fallback that guarantees every valid
// query gets some answer.
package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pdiddy/answer-engine/internal/corpus"
	"github.com/pdiddy/answer-engine/internal/intent"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// Caller-facing errors. Everything else the policy absorbs: a failing
// strategy declines and the cascade moves on.
var (
	ErrEmptyQuery = errors.New("engine: empty query")
	ErrNotReady   = errors.New("engine: service not ready")
)

// promptHistoryCap bounds the rolling context handed to the generator.
const promptHistoryCap = 20

// Recorder persists feedback multipliers and the conversation log.
// Implemented by history.Store; a nil Recorder disables both.
type Recorder interface {
	Multiplier(ctx context.Context, query, response string) float64
	Record(ctx context.Context, conv types.Conversation) error
}

// Generator is the optional neural fallback. Implemented by
// generator.Client; Ready is false until its background warmup completes.
type Generator interface {
	Ready() bool
	Generate(ctx context.Context, promptHistory []string) (string, error)
}

// Options configures an Engine.
type Options struct {
	Policy     types.PolicyConfig
	Vectorizer types.VectorizerConfig

	// Classifier defaults to the built-in hospital-domain set.
	Classifier *intent.Classifier

	// Recorder and Generator are optional.
	Recorder  Recorder
	Generator Generator
}

// Engine answers queries against the current serving generation.
type Engine struct {
	policy     types.PolicyConfig
	vectorizer types.VectorizerConfig
	classifier *intent.Classifier
	recorder   Recorder
	generator  Generator

	gen   atomic.Pointer[Generation]
	state atomic.Int32

	mu            sync.Mutex
	promptHistory []string
}

// New builds an Engine in the Initializing state. Callers must Load a
// corpus before the engine will answer.
func New(opts Options) *Engine {
	policy := opts.Policy
	if policy.SemanticThreshold == 0 {
		policy.SemanticThreshold = 0.3
	}
	if policy.KeywordMinOverlap <= 0 {
		policy.KeywordMinOverlap = 2
	}
	if policy.TopK <= 0 {
		policy.TopK = 3
	}
	if policy.GenericConfidence <= 0 {
		policy.GenericConfidence = 0.1
	}
	classifier := opts.Classifier
	if classifier == nil {
		classifier = intent.Default()
	}
	e := &Engine{
		policy:     policy,
		vectorizer: opts.Vectorizer,
		classifier: classifier,
		recorder:   opts.Recorder,
		generator:  opts.Generator,
	}
	e.state.Store(int32(types.StateInitializing))
	return e
}

// Load builds a generation from the store and publishes it. The first
// successful Load moves the engine from Initializing to CoreReady. A
// failed Load (or reload) leaves the previous generation serving.
func (e *Engine) Load(store *corpus.Store) error {
	gen, err := BuildGeneration(store, e.vectorizer)
	if err != nil {
		return err
	}
	e.gen.Store(gen)
	e.state.CompareAndSwap(int32(types.StateInitializing), int32(types.StateCoreReady))
	return nil
}

// State returns the readiness state.
func (e *Engine) State() types.ReadinessState {
	return types.ReadinessState(e.state.Load())
}

// SetFullyReady marks the optional generator as available. Called after
// background warmup; core matching has been serving since CoreReady.
func (e *Engine) SetFullyReady() {
	e.state.CompareAndSwap(int32(types.StateCoreReady), int32(types.StateFullyReady))
}

// Generation returns the current serving snapshot, or nil before the
// first Load.
func (e *Engine) Generation() *Generation {
	return e.gen.Load()
}

// Answer runs the strategy cascade for one query. The only caller errors
// are blank input and a not-yet-loaded engine; every other input receives
// a payload, worst case from the generic fallback.
func (e *Engine) Answer(ctx context.Context, text string) (types.ResponsePayload, error) {
	if strings.TrimSpace(text) == "" {
		return types.ResponsePayload{}, ErrEmptyQuery
	}
	gen := e.gen.Load()
	if gen == nil || e.State() == types.StateInitializing {
		return types.ResponsePayload{}, ErrNotReady
	}

	strategies := []func(context.Context, *Generation, string) (types.ResponsePayload, bool){
		e.semanticMatch,
		e.intentTemplate,
		e.neuralGenerate,
		e.keywordOverlap,
	}

	payload := e.genericFallback()
	for _, strategy := range strategies {
		if p, ok := strategy(ctx, gen, text); ok {
			payload = p
			break
		}
	}

	e.remember(ctx, text, payload)
	return payload, nil
}

// remember appends the exchange to the generator's prompt history and the
// conversation log. Both are best-effort; neither failure reaches the
// caller.
func (e *Engine) remember(ctx context.Context, query string, payload types.ResponsePayload) {
	e.mu.Lock()
	e.promptHistory = append(e.promptHistory, "User: "+query, "Bot: "+payload.Text)
	if len(e.promptHistory) > promptHistoryCap {
		e.promptHistory = e.promptHistory[len(e.promptHistory)-promptHistoryCap:]
	}
	e.mu.Unlock()

	if e.recorder != nil {
		_ = e.recorder.Record(ctx, types.Conversation{
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Query:      query,
			Response:   payload.Text,
			Confidence: payload.Confidence,
			Source:     payload.Source,
		})
	}
}

func (e *Engine) snapshotHistory(query string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	history := make([]string, 0, len(e.promptHistory)+1)
	history = append(history, e.promptHistory...)
	return append(history, "User: "+query)
}
