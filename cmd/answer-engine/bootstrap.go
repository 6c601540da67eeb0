// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/pdiddy/answer-engine/internal/corpus"
	"github.com/pdiddy/answer-engine/internal/engine"
	"github.com/pdiddy/answer-engine/internal/intent"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// loadClassifier returns the configured intent set, or the built-in
// hospital-domain defaults when no path is given.
func loadClassifier(cfg types.EngineConfig) (*intent.Classifier, error) {
	if cfg.IntentPath == "" {
		return intent.Default(), nil
	}
	return intent.LoadConfig(cfg.IntentPath)
}

// loadCorpus reads the corpus CSV and reports skipped rows on stderr.
func loadCorpus(cfg types.EngineConfig) (*corpus.Store, error) {
	if cfg.CorpusPath == "" {
		return nil, fmt.Errorf("no corpus configured: pass --corpus or set corpus_path")
	}
	store, skipped, err := corpus.LoadCSV(cfg.CorpusPath)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "corpus: skipped %d malformed row(s)\n", skipped)
	}
	fmt.Fprintf(os.Stderr, "corpus: loaded %d Q&A pairs from %s\n", store.Size(), cfg.CorpusPath)
	return store, nil
}

// newEngine builds an engine over the configured corpus and classifier.
// Recorder and generator are wired by the caller when wanted.
func newEngine(cfg types.EngineConfig, recorder engine.Recorder, gen engine.Generator) (*engine.Engine, error) {
	classifier, err := loadClassifier(cfg)
	if err != nil {
		return nil, err
	}

	e := engine.New(engine.Options{
		Policy:     cfg.Policy,
		Vectorizer: cfg.Vectorizer,
		Classifier: classifier,
		Recorder:   recorder,
		Generator:  gen,
	})

	store, err := loadCorpus(cfg)
	if err != nil {
		return nil, err
	}
	if err := e.Load(store); err != nil {
		return nil, fmt.Errorf("building serving generation: %w", err)
	}
	return e, nil
}
