// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/answer-engine/internal/corpus"
	"github.com/pdiddy/answer-engine/internal/intent"
	"github.com/pdiddy/answer-engine/internal/vectorizer"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// --- test doubles ---

type fakeRecorder struct {
	mu         sync.Mutex
	multiplier float64
	recorded   []types.Conversation
}

func (f *fakeRecorder) Multiplier(context.Context, string, string) float64 {
	if f.multiplier == 0 {
		return 1.0
	}
	return f.multiplier
}

func (f *fakeRecorder) Record(_ context.Context, conv types.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, conv)
	return nil
}

type fakeGenerator struct {
	ready bool
	text  string
	err   error
}

func (f *fakeGenerator) Ready() bool { return f.ready }

func (f *fakeGenerator) Generate(context.Context, []string) (string, error) {
	return f.text, f.err
}

// --- helpers ---

func loadedStore(t *testing.T, records []types.QARecord) *corpus.Store {
	t.Helper()
	store, skipped := corpus.NewStore(records)
	require.Zero(t, skipped)
	return store
}

func returnPolicyCorpus() []types.QARecord {
	return []types.QARecord{
		{Question: "What is the return policy?", Answer: "Returns accepted within 7 days."},
	}
}

// bareClassifier has labels but no templates, so strategy 2 always
// declines and the cascade's tail is reachable.
func bareClassifier() *intent.Classifier {
	return intent.NewClassifier([]intent.Label{{Name: intent.General}}, nil)
}

func newLoadedEngine(t *testing.T, opts Options, records []types.QARecord) *Engine {
	t.Helper()
	e := New(opts)
	require.NoError(t, e.Load(loadedStore(t, records)))
	return e
}

// --- lifecycle ---

func TestAnswerBeforeLoadIsNotReady(t *testing.T) {
	e := New(Options{})
	assert.Equal(t, types.StateInitializing, e.State())

	_, err := e.Answer(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestLoadTransitionsToCoreReady(t *testing.T) {
	e := newLoadedEngine(t, Options{}, returnPolicyCorpus())
	assert.Equal(t, types.StateCoreReady, e.State())

	e.SetFullyReady()
	assert.Equal(t, types.StateFullyReady, e.State())
}

func TestLoadEmptyCorpusFails(t *testing.T) {
	e := New(Options{})
	store, _ := corpus.NewStore([]types.QARecord{{Question: "???", Answer: "symbols only"}})
	err := e.Load(store)
	require.ErrorIs(t, err, vectorizer.ErrModelNotTrainable)
	assert.Equal(t, types.StateInitializing, e.State())
}

func TestReloadKeepsOldGenerationOnFailure(t *testing.T) {
	e := newLoadedEngine(t, Options{}, returnPolicyCorpus())

	bad, _ := corpus.NewStore([]types.QARecord{{Question: "!!!", Answer: "x"}})
	require.Error(t, e.Load(bad))

	// Still serving the original generation.
	resp, err := e.Answer(context.Background(), "what's your return policy")
	require.NoError(t, err)
	assert.Equal(t, "Returns accepted within 7 days.", resp.Text)
}

func TestIndexAlignedWithCorpusAfterReload(t *testing.T) {
	e := newLoadedEngine(t, Options{}, returnPolicyCorpus())

	records := make([]types.QARecord, 0, 500)
	for i := 0; i < 500; i++ {
		records = append(records, types.QARecord{
			Question: fmt.Sprintf("question number %d about topic %d", i, i),
			Answer:   fmt.Sprintf("answer %d", i),
		})
	}
	require.NoError(t, e.Load(loadedStore(t, records)))

	gen := e.Generation()
	assert.Equal(t, gen.Corpus.Size(), gen.Index.RowCount())
	assert.Equal(t, 500, gen.Corpus.Size())
}

// --- caller errors ---

func TestEmptyQueryRejected(t *testing.T) {
	e := newLoadedEngine(t, Options{}, returnPolicyCorpus())
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := e.Answer(context.Background(), input)
		assert.ErrorIs(t, err, ErrEmptyQuery, "input %q", input)
	}
}

// --- strategy cascade ---

func TestSemanticMatchScenario(t *testing.T) {
	e := newLoadedEngine(t, Options{}, returnPolicyCorpus())

	resp, err := e.Answer(context.Background(), "what's your return policy")
	require.NoError(t, err)
	assert.Equal(t, "Returns accepted within 7 days.", resp.Text)
	assert.Equal(t, types.SourceSemantic, resp.Source)
	assert.Greater(t, resp.Confidence, 0.3)
	assert.LessOrEqual(t, resp.Confidence, 1.0)
}

func TestUnrelatedQueryFallsToGenericScenario(t *testing.T) {
	e := newLoadedEngine(t, Options{Classifier: bareClassifier()}, returnPolicyCorpus())

	resp, err := e.Answer(context.Background(), "tell me about quantum physics")
	require.NoError(t, err)
	assert.Equal(t, types.SourceGenericFallback, resp.Source)
	assert.LessOrEqual(t, resp.Confidence, 0.1)
}

func TestScoreAtThresholdIsNotAccepted(t *testing.T) {
	// With the threshold at the maximum cosine score, even an exact
	// repeat of a corpus question must not be accepted semantically:
	// acceptance is strictly greater-than.
	e := newLoadedEngine(t, Options{
		Policy: types.PolicyConfig{SemanticThreshold: 1.0},
	}, returnPolicyCorpus())

	resp, err := e.Answer(context.Background(), "What is the return policy?")
	require.NoError(t, err)
	assert.NotEqual(t, types.SourceSemantic, resp.Source)
	// The default classifier's template set catches it instead.
	assert.Equal(t, types.SourceIntentTemplate, resp.Source)
}

func TestIntentTemplateStrategy(t *testing.T) {
	e := newLoadedEngine(t, Options{}, returnPolicyCorpus())

	resp, err := e.Answer(context.Background(), "I need an ambulance, this is urgent")
	require.NoError(t, err)
	assert.Equal(t, types.SourceIntentTemplate, resp.Source)
	assert.Equal(t, "emergency", resp.Intent)
	assert.InDelta(t, 0.9, resp.Confidence, 1e-9)
	assert.Contains(t, resp.Text, "EMERGENCY CONTACTS")
}

func TestGreetingVariant(t *testing.T) {
	e := newLoadedEngine(t, Options{}, returnPolicyCorpus())

	resp, err := e.Answer(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, types.SourceIntentTemplate, resp.Source)
	assert.Contains(t, resp.Text, "Welcome")
	assert.InDelta(t, 0.9, resp.Confidence, 1e-9)
}

func TestKeywordOverlapStrategy(t *testing.T) {
	// The query shares words only with the answer text, so the semantic
	// strategy (which indexes questions) scores zero, and with no
	// templates configured the keyword strategy gets its turn.
	e := newLoadedEngine(t, Options{Classifier: bareClassifier()}, returnPolicyCorpus())

	resp, err := e.Answer(context.Background(), "accepted within 7 days")
	require.NoError(t, err)
	assert.Equal(t, types.SourceKeywordOverlap, resp.Source)
	assert.Equal(t, "Returns accepted within 7 days.", resp.Text)
	assert.Greater(t, resp.Confidence, 0.0)
	assert.LessOrEqual(t, resp.Confidence, 1.0)
}

func TestNeuralGeneratorStrategy(t *testing.T) {
	gen := &fakeGenerator{ready: true, text: "a generated reply"}
	e := newLoadedEngine(t, Options{Classifier: bareClassifier(), Generator: gen}, returnPolicyCorpus())

	resp, err := e.Answer(context.Background(), "something entirely unmatched")
	require.NoError(t, err)
	assert.Equal(t, types.SourceNeuralGenerator, resp.Source)
	assert.Equal(t, "a generated reply", resp.Text)
}

func TestGeneratorFailureDegrades(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"not warmed up", &fakeGenerator{ready: false, text: "ignored"}},
		{"returns error", &fakeGenerator{ready: true, err: errors.New("timeout")}},
		{"returns empty", &fakeGenerator{ready: true, text: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newLoadedEngine(t, Options{Classifier: bareClassifier(), Generator: tt.gen}, returnPolicyCorpus())
			resp, err := e.Answer(context.Background(), "entirely unmatched query")
			require.NoError(t, err)
			assert.Equal(t, types.SourceGenericFallback, resp.Source)
		})
	}
}

func TestFeedbackMultiplierScalesSemanticConfidence(t *testing.T) {
	baseline := newLoadedEngine(t, Options{}, returnPolicyCorpus())
	respBase, err := baseline.Answer(context.Background(), "what's your return policy")
	require.NoError(t, err)

	halved := newLoadedEngine(t, Options{Recorder: &fakeRecorder{multiplier: 0.5}}, returnPolicyCorpus())
	respHalf, err := halved.Answer(context.Background(), "what's your return policy")
	require.NoError(t, err)

	assert.Equal(t, types.SourceSemantic, respHalf.Source)
	assert.InDelta(t, respBase.Confidence*0.5, respHalf.Confidence, 1e-9)
}

func TestConversationsRecorded(t *testing.T) {
	rec := &fakeRecorder{}
	e := newLoadedEngine(t, Options{Recorder: rec}, returnPolicyCorpus())

	_, err := e.Answer(context.Background(), "what's your return policy")
	require.NoError(t, err)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.recorded, 1)
	assert.Equal(t, "what's your return policy", rec.recorded[0].Query)
	assert.Equal(t, types.SourceSemantic, rec.recorded[0].Source)
}

// --- properties ---

func TestAnswerIsTotalForNonEmptyInput(t *testing.T) {
	e := newLoadedEngine(t, Options{Classifier: bareClassifier()}, returnPolicyCorpus())

	inputs := []string{
		"what's your return policy",
		"zzz qqq xxx",
		"1234567890",
		"ñ ü ø unicode text",
		"a",
		"the the the the",
	}
	for _, input := range inputs {
		resp, err := e.Answer(context.Background(), input)
		require.NoError(t, err, "input %q", input)
		assert.NotEmpty(t, resp.Text, "input %q", input)
		assert.GreaterOrEqual(t, resp.Confidence, 0.0, "input %q", input)
		assert.LessOrEqual(t, resp.Confidence, 1.0, "input %q", input)
		assert.NotEmpty(t, resp.Source, "input %q", input)
	}
}

func TestAnswerDeterministic(t *testing.T) {
	e := newLoadedEngine(t, Options{}, returnPolicyCorpus())

	first, err := e.Answer(context.Background(), "what's your return policy")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		resp, err := e.Answer(context.Background(), "what's your return policy")
		require.NoError(t, err)
		assert.Equal(t, first.Text, resp.Text)
		assert.Equal(t, first.Source, resp.Source)
		assert.InDelta(t, first.Confidence, resp.Confidence, 1e-12)
	}
}

func TestConcurrentAnswersDuringReload(t *testing.T) {
	e := newLoadedEngine(t, Options{}, returnPolicyCorpus())

	big := make([]types.QARecord, 0, 500)
	for i := 0; i < 500; i++ {
		big = append(big, types.QARecord{
			Question: fmt.Sprintf("topic %d question variant %d", i, i%7),
			Answer:   fmt.Sprintf("answer for topic %d", i),
		})
	}
	bigStore := loadedStore(t, big)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				resp, err := e.Answer(context.Background(), "what's your return policy")
				assert.NoError(t, err)
				assert.NotEmpty(t, resp.Text)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			assert.NoError(t, e.Load(bigStore))
		}
	}()
	wg.Wait()

	gen := e.Generation()
	assert.Equal(t, gen.Corpus.Size(), gen.Index.RowCount())
}
