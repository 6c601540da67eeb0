// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package matcher scores query vectors against the corpus index by exact
// cosine scan. Corpus sizes are in the low thousands, so a full scan is
// both fast enough and simple to verify; no approximate index is used.
package matcher

import (
	"fmt"
	"sort"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// Index holds one L2-normalized TF-IDF row per corpus record, aligned by
// record index. Immutable after Build; a corpus change requires a rebuild.
type Index struct {
	rows      [][]float64
	questions []string
	answers   []string
}

// Transformer maps text into the fitted vector space. Implemented by
// vectorizer.VectorSpace.
type Transformer interface {
	Transform(text string) []float64
}

// Build applies the transformer to every record's question and returns the
// aligned index. The invariant RowCount() == len(records) holds for every
// corpus the engine serves.
func Build(t Transformer, records []types.QARecord) *Index {
	idx := &Index{
		rows:      make([][]float64, len(records)),
		questions: make([]string, len(records)),
		answers:   make([]string, len(records)),
	}
	for i, rec := range records {
		idx.rows[i] = t.Transform(rec.Question)
		idx.questions[i] = rec.Question
		idx.answers[i] = rec.Answer
	}
	return idx
}

// RowCount returns the number of indexed records.
func (idx *Index) RowCount() int { return len(idx.rows) }

// Match returns the top-k records by cosine similarity to the query
// vector, descending. Ties break toward the lowest record index, so
// repeated queries against an unchanged index are deterministic. An empty
// index yields an empty result, not an error.
func (idx *Index) Match(queryVec []float64, k int) ([]types.MatchResult, error) {
	if len(idx.rows) == 0 {
		return nil, nil
	}
	if len(queryVec) != len(idx.rows[0]) {
		return nil, fmt.Errorf("matcher: query dimension %d does not match index dimension %d",
			len(queryVec), len(idx.rows[0]))
	}
	if k <= 0 {
		k = 1
	}

	scores := make([]float64, len(idx.rows))
	for i, row := range idx.rows {
		scores[i] = dot(row, queryVec)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}
	results := make([]types.MatchResult, 0, k)
	for _, i := range order[:k] {
		results = append(results, types.MatchResult{
			RecordIndex: i,
			Score:       clamp01(scores[i]),
			Question:    idx.questions[i],
			Answer:      idx.answers[i],
		})
	}
	return results, nil
}

// dot is the cosine similarity for unit-length vectors. Either operand
// being the zero vector scores 0, never NaN.
func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// clamp01 guards against floating-point drift pushing a score a hair
// outside [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
