// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/answer-engine/internal/corpus"
	"github.com/pdiddy/answer-engine/internal/engine"
	"github.com/pdiddy/answer-engine/internal/history"
	"github.com/pdiddy/answer-engine/pkg/types"
)

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e := engine.New(engine.Options{})
	store, _ := corpus.NewStore([]types.QARecord{
		{Question: "What is the return policy?", Answer: "Returns accepted within 7 days."},
	})
	require.NoError(t, e.Load(store))
	return e
}

func testHistory(t *testing.T) *history.Store {
	t.Helper()
	h, err := history.NewStore(types.HistoryConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestChat(t *testing.T) {
	srv := New(testEngine(t), nil, nil)
	handler := srv.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/chat", `{"message": "what's your return policy"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Returns accepted within 7 days.", resp.Response)
	assert.Equal(t, "semantic", resp.Source)
	assert.Equal(t, "success", resp.Status)
	assert.Greater(t, resp.Confidence, 0.3)
}

func TestChatEmptyMessage(t *testing.T) {
	srv := New(testEngine(t), nil, nil)
	handler := srv.Handler()

	for _, body := range []string{`{"message": ""}`, `{"message": "   "}`, `{}`} {
		rec := doJSON(t, handler, http.MethodPost, "/chat", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestChatInvalidJSON(t *testing.T) {
	srv := New(testEngine(t), nil, nil)
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/chat", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatNotReady(t *testing.T) {
	srv := New(engine.New(engine.Options{}), nil, nil)
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/chat", `{"message": "hello"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealth(t *testing.T) {
	srv := New(testEngine(t), nil, nil)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "core_ready", body["state"])
	assert.EqualValues(t, 1, body["qa_pairs_loaded"])
}

func TestHealthWhileInitializing(t *testing.T) {
	srv := New(engine.New(engine.Options{}), nil, nil)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStats(t *testing.T) {
	srv := New(testEngine(t), testHistory(t), nil)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body["total_qa_pairs"])
	assert.Contains(t, body, "vector_dimension")
	assert.Contains(t, body, "learning")
}

func TestFeedback(t *testing.T) {
	h := testHistory(t)
	srv := New(testEngine(t), h, nil)
	handler := srv.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/feedback",
		`{"user_input": "q", "response": "r", "feedback_score": 1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])

	tests := []struct {
		name string
		body string
	}{
		{"missing fields", `{"feedback_score": 1}`},
		{"score too high", `{"user_input": "q", "response": "r", "feedback_score": 2}`},
		{"score too low", `{"user_input": "q", "response": "r", "feedback_score": -1.5}`},
		{"score absent", `{"user_input": "q", "response": "r"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, handler, http.MethodPost, "/feedback", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestFeedbackWithoutStore(t *testing.T) {
	srv := New(testEngine(t), nil, nil)
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/feedback",
		`{"user_input": "q", "response": "r", "feedback_score": 0}`)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestReload(t *testing.T) {
	e := testEngine(t)
	called := false
	srv := New(e, nil, func(ctx context.Context) error {
		called = true
		return nil
	})
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/reload", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestReloadFailure(t *testing.T) {
	srv := New(testEngine(t), nil, func(ctx context.Context) error {
		return errors.New("corpus file missing")
	})
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/reload", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestReloadNotConfigured(t *testing.T) {
	srv := New(testEngine(t), nil, nil)
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/reload", "")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestRoot(t *testing.T) {
	srv := New(testEngine(t), nil, nil)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "endpoints")
}
