// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vectorizer builds the TF-IDF vector space over the corpus
// question set and transforms text into that space.
package vectorizer

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/pdiddy/answer-engine/internal/textnorm"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// ErrModelNotTrainable reports a corpus with no indexable text after
// normalization and stop-word removal. Callers treat this as fatal at
// startup: the service must not become ready with an empty space.
var ErrModelNotTrainable = errors.New("vectorizer: corpus contains no indexable text")

// VectorSpace is a fitted TF-IDF model: a term-to-dimension vocabulary and
// per-dimension smoothed inverse document frequencies. Immutable once
// fitted; a corpus change requires a full refit.
type VectorSpace struct {
	vocabulary map[string]int
	idf        []float64
	ngramMax   int
}

// Fit derives a VectorSpace from the corpus questions. Terms are unigrams
// through cfg.NgramMax-grams of normalized, stop-word-filtered tokens.
// IDF is smoothed as log((1+N)/(1+df)) + 1 so unseen terms never divide by
// zero. When cfg.MaxFeatures > 0 the vocabulary keeps the terms with the
// highest document frequency, ties resolved alphabetically.
func Fit(questions []string, cfg types.VectorizerConfig) (*VectorSpace, error) {
	ngramMax := cfg.NgramMax
	if ngramMax <= 0 {
		ngramMax = 2
	}

	df := make(map[string]int)
	docs := 0
	for _, q := range questions {
		terms := extractTerms(q, ngramMax)
		if len(terms) == 0 {
			continue
		}
		docs++
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	if docs == 0 || len(df) == 0 {
		return nil, ErrModelNotTrainable
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	if cfg.MaxFeatures > 0 && len(terms) > cfg.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if df[terms[i]] != df[terms[j]] {
				return df[terms[i]] > df[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:cfg.MaxFeatures]
	}
	sort.Strings(terms)

	space := &VectorSpace{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
		ngramMax:   ngramMax,
	}
	n := float64(docs)
	for i, term := range terms {
		space.vocabulary[term] = i
		space.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	return space, nil
}

// Dimension returns the size of the fitted vector space.
func (s *VectorSpace) Dimension() int { return len(s.idf) }

// Transform maps text into the fitted space as an L2-normalized TF-IDF
// vector. Text with no in-vocabulary terms yields the zero vector, which
// scores similarity 0 against every indexed row.
func (s *VectorSpace) Transform(text string) []float64 {
	vec := make([]float64, len(s.idf))
	tf := make(map[int]int)
	total := 0
	for _, term := range extractTerms(text, s.ngramMax) {
		if idx, ok := s.vocabulary[term]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec
	}
	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * s.idf[idx]
	}
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// extractTerms normalizes text, drops stop words, and emits 1..ngramMax
// grams of the surviving tokens. Bigrams join tokens with a single space.
func extractTerms(text string, ngramMax int) []string {
	tokens := textnorm.Tokens(text)
	if len(tokens) == 0 {
		return nil
	}
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		return nil
	}

	terms := make([]string, 0, len(kept)*ngramMax)
	terms = append(terms, kept...)
	for n := 2; n <= ngramMax; n++ {
		for i := 0; i+n <= len(kept); i++ {
			terms = append(terms, strings.Join(kept[i:i+n], " "))
		}
	}
	return terms
}

// stopwords is a fixed English stop-word list applied during tokenization.
var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "this", "that",
		"these", "those", "from", "up", "down", "over", "under", "again",
		"further", "than", "so", "such", "into", "about", "between",
		"through", "during", "before", "after", "above", "below", "out",
		"off", "own", "same", "too", "very", "can", "will", "just",
		"should", "now", "i", "you", "your", "we", "our", "they", "them",
		"he", "she", "his", "her", "my", "me", "do", "does", "did",
		"have", "has", "had", "what", "which", "who", "whom", "when",
		"where", "why", "how", "all", "any", "both", "each", "few",
		"more", "most", "other", "some", "no", "nor", "not", "only",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
