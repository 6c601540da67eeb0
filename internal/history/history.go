// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists user feedback and the conversation log in a
// local SQLite database. Feedback adjusts a per-pattern confidence
// multiplier by exponential moving average; it is purely advisory and
// never touches the corpus or the vector space.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/answer-engine/pkg/types"
)

const dbFile = "answer-engine.db"

// patternKeyLen bounds each half of a pattern key, so near-identical long
// queries collapse onto one feedback bucket.
const patternKeyLen = 50

// Store manages the feedback and conversation SQLite database.
type Store struct {
	db    *sql.DB
	alpha float64
}

// NewStore opens or creates the database at cfg.DataDir/answer-engine.db
// and creates the schema if needed.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	alpha := cfg.FeedbackAlpha
	if alpha <= 0 || alpha > 1 {
		alpha = 0.1
	}

	s := &Store{db: db, alpha: alpha}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS feedback (
			pattern_key TEXT PRIMARY KEY,
			multiplier REAL NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS conversations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			query TEXT NOT NULL,
			response TEXT NOT NULL,
			confidence REAL NOT NULL,
			source TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_source ON conversations(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ApplyFeedback folds a score in [-1, 1] into the pattern's confidence
// multiplier: new = old*(1-alpha) + score*alpha, starting from 1.0 for an
// unseen pattern. Returns the updated multiplier.
func (s *Store) ApplyFeedback(ctx context.Context, query, response string, score float64) (float64, error) {
	if score < -1 || score > 1 {
		return 0, fmt.Errorf("feedback score %v out of range [-1, 1]", score)
	}

	key := patternKey(query, response)
	current := 1.0
	err := s.db.QueryRowContext(ctx,
		`SELECT multiplier FROM feedback WHERE pattern_key = ?`, key,
	).Scan(&current)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("looking up feedback pattern: %w", err)
	}

	updated := current*(1-s.alpha) + score*s.alpha
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO feedback (pattern_key, multiplier, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(pattern_key) DO UPDATE SET
			multiplier=excluded.multiplier, updated_at=excluded.updated_at`,
		key, updated, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("storing feedback: %w", err)
	}
	return updated, nil
}

// Multiplier returns the stored confidence multiplier for a query/response
// pattern, or 1.0 when the pattern is unseen. Lookup failures also return
// 1.0: feedback must never break the answering hot path.
func (s *Store) Multiplier(ctx context.Context, query, response string) float64 {
	var m float64
	err := s.db.QueryRowContext(ctx,
		`SELECT multiplier FROM feedback WHERE pattern_key = ?`,
		patternKey(query, response),
	).Scan(&m)
	if err != nil {
		return 1.0
	}
	return m
}

// Record appends one exchange to the conversation log.
func (s *Store) Record(ctx context.Context, conv types.Conversation) error {
	timestamp := conv.Timestamp
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (timestamp, query, response, confidence, source)
		 VALUES (?, ?, ?, ?, ?)`,
		timestamp, conv.Query, conv.Response, conv.Confidence, string(conv.Source),
	)
	if err != nil {
		return fmt.Errorf("recording conversation: %w", err)
	}
	return nil
}

// Stats summarizes learning state for health and stats reporting.
type Stats struct {
	Conversations     int     `json:"conversations"`
	FeedbackPatterns  int     `json:"feedback_patterns"`
	AverageMultiplier float64 `json:"average_multiplier"`
}

// LearningStats returns counts over the conversation log and feedback
// table. AverageMultiplier is 1.0 when no feedback has been recorded.
func (s *Store) LearningStats(ctx context.Context) (Stats, error) {
	stats := Stats{AverageMultiplier: 1.0}

	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM conversations`,
	).Scan(&stats.Conversations); err != nil {
		return Stats{}, fmt.Errorf("counting conversations: %w", err)
	}

	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*), avg(multiplier) FROM feedback`,
	).Scan(&stats.FeedbackPatterns, &avg)
	if err != nil {
		return Stats{}, fmt.Errorf("summarizing feedback: %w", err)
	}
	if avg.Valid {
		stats.AverageMultiplier = avg.Float64
	}
	return stats, nil
}

// patternKey buckets a query/response pair the way feedback is keyed:
// lowercased query prefix, a separator, then the response prefix.
func patternKey(query, response string) string {
	return truncate(strings.ToLower(query), patternKeyLen) + "||" + truncate(response, patternKeyLen)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
