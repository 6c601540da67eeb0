// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"fmt"

	"github.com/pdiddy/answer-engine/internal/corpus"
	"github.com/pdiddy/answer-engine/internal/matcher"
	"github.com/pdiddy/answer-engine/internal/vectorizer"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// Generation is one immutable serving snapshot: the corpus, the vector
// space fitted over it, and the aligned index. Request handlers hold a
// Generation for the duration of one call; a reload builds a complete new
// Generation and swaps a single pointer, so no reader ever observes a
// partially built index.
type Generation struct {
	Corpus *corpus.Store
	Space  *vectorizer.VectorSpace
	Index  *matcher.Index
}

// BuildGeneration fits a vector space over the store's questions and
// indexes every record. Fails only when the corpus has no indexable text
// (vectorizer.ErrModelNotTrainable), which callers treat as fatal at
// startup and as a rejected reload afterwards.
func BuildGeneration(store *corpus.Store, cfg types.VectorizerConfig) (*Generation, error) {
	space, err := vectorizer.Fit(store.Questions(), cfg)
	if err != nil {
		return nil, fmt.Errorf("fitting vector space over %d records: %w", store.Size(), err)
	}
	idx := matcher.Build(space, store.Records())
	return &Generation{Corpus: store, Space: space, Index: idx}, nil
}
