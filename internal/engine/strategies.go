// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"

	"github.com/pdiddy/answer-engine/internal/textnorm"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// genericFallbackText is the total fallback returned when every other
// strategy declines.
const genericFallbackText = "I'm sorry, I couldn't find a good answer for that. " +
	"You can ask me about appointments, services, pricing, departments, insurance, or emergency contacts."

// semanticMatch is strategy 1: TF-IDF cosine retrieval. Accepts only when
// the best score strictly exceeds the semantic threshold; a score exactly
// at the threshold falls through. The matched answer is augmented with the
// query's intent and its confidence is scaled by the recorded feedback
// multiplier for this query/answer pattern.
func (e *Engine) semanticMatch(ctx context.Context, gen *Generation, text string) (types.ResponsePayload, bool) {
	results, err := gen.Index.Match(gen.Space.Transform(text), e.policy.TopK)
	if err != nil || len(results) == 0 {
		return types.ResponsePayload{}, false
	}
	best := results[0]
	if best.Score <= e.policy.SemanticThreshold {
		return types.ResponsePayload{}, false
	}

	label := e.classifier.Classify(text)
	confidence := best.Score
	if e.recorder != nil {
		confidence *= e.recorder.Multiplier(ctx, text, best.Answer)
	}
	return types.ResponsePayload{
		Text:       e.classifier.Augment(best.Answer, label),
		Confidence: clamp01(confidence),
		Source:     types.SourceSemantic,
		Intent:     label,
	}, true
}

// intentTemplate is strategy 2: classify the query and return the canned
// response for its intent. Declines only when no template is configured
// for the classified label.
func (e *Engine) intentTemplate(_ context.Context, _ *Generation, text string) (types.ResponsePayload, bool) {
	label := e.classifier.Classify(text)
	tpl, ok := e.classifier.TemplateFor(label, text)
	if !ok {
		return types.ResponsePayload{}, false
	}
	return types.ResponsePayload{
		Text:       tpl.Text,
		Confidence: clamp01(tpl.Confidence),
		Source:     types.SourceIntentTemplate,
		Intent:     label,
	}, true
}

// neuralGenerate consults the optional conversational model. It runs only
// once the generator's background warmup has finished, and any failure or
// empty generation degrades to the remaining strategies.
func (e *Engine) neuralGenerate(ctx context.Context, _ *Generation, text string) (types.ResponsePayload, bool) {
	if e.generator == nil || !e.generator.Ready() {
		return types.ResponsePayload{}, false
	}
	generated, err := e.generator.Generate(ctx, e.snapshotHistory(text))
	if err != nil || generated == "" {
		return types.ResponsePayload{}, false
	}
	return types.ResponsePayload{
		Text:       generated,
		Confidence: 0.7,
		Source:     types.SourceNeuralGenerator,
	}, true
}

// keywordOverlap is strategy 3: weighted token-set overlap against every
// record, question hits counting double. Accepts the best-scoring record
// when its score reaches the configured minimum; ties keep the earliest
// record.
func (e *Engine) keywordOverlap(_ context.Context, gen *Generation, text string) (types.ResponsePayload, bool) {
	queryWords := textnorm.TokenSet(text)
	if len(queryWords) == 0 {
		return types.ResponsePayload{}, false
	}

	bestScore := 0
	bestAnswer := ""
	for _, rec := range gen.Corpus.Records() {
		score := 2*overlap(queryWords, textnorm.TokenSet(rec.Question)) +
			overlap(queryWords, textnorm.TokenSet(rec.Answer))
		if score > bestScore {
			bestScore = score
			bestAnswer = rec.Answer
		}
	}
	if bestScore < e.policy.KeywordMinOverlap {
		return types.ResponsePayload{}, false
	}
	return types.ResponsePayload{
		Text:       bestAnswer,
		Confidence: clamp01(float64(bestScore) / 10.0),
		Source:     types.SourceKeywordOverlap,
	}, true
}

// genericFallback is strategy 4: always accepts.
func (e *Engine) genericFallback() types.ResponsePayload {
	return types.ResponsePayload{
		Text:       genericFallbackText,
		Confidence: e.policy.GenericConfidence,
		Source:     types.SourceGenericFallback,
	}
}

func overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
