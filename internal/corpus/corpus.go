// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus loads and holds the fixed question/answer record set the
// engine retrieves from. A Store is immutable after load; a reload builds
// a new Store and the engine swaps it in wholesale.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// ErrEmptyCorpus reports a load that produced zero valid records.
var ErrEmptyCorpus = errors.New("corpus: no valid records loaded")

// Store is an immutable snapshot of the loaded corpus. Record identity is
// positional and stable for the Store's lifetime.
type Store struct {
	records []types.QARecord
}

// NewStore wraps validated records in a Store. Records with an empty
// question or answer after trimming are skipped; the skipped count is
// returned so callers can report data quality without failing the load.
func NewStore(records []types.QARecord) (*Store, int) {
	kept := make([]types.QARecord, 0, len(records))
	skipped := 0
	for _, rec := range records {
		rec.Question = trimQuoted(rec.Question)
		rec.Answer = trimQuoted(rec.Answer)
		if rec.Question == "" || rec.Answer == "" {
			skipped++
			continue
		}
		if rec.Category == "" {
			rec.Category = "general"
		}
		if rec.Hospital == "" {
			rec.Hospital = "both"
		}
		kept = append(kept, rec)
	}
	return &Store{records: kept}, skipped
}

// Size returns the number of records.
func (s *Store) Size() int { return len(s.records) }

// Get returns the record at index i.
func (s *Store) Get(i int) (types.QARecord, error) {
	if i < 0 || i >= len(s.records) {
		return types.QARecord{}, fmt.Errorf("corpus: index %d out of range [0, %d)", i, len(s.records))
	}
	return s.records[i], nil
}

// Records returns the full record slice. Callers must not mutate it.
func (s *Store) Records() []types.QARecord { return s.records }

// Questions returns the question column, aligned by record index.
func (s *Store) Questions() []string {
	questions := make([]string, len(s.records))
	for i, rec := range s.records {
		questions[i] = rec.Question
	}
	return questions
}

// LoadCSV reads records from a headered CSV file. Both question/answer and
// Question/Answer header spellings are accepted; category and hospital
// columns are optional with defaults applied. Malformed rows are skipped,
// not fatal; the skipped count covers both unparseable and empty rows.
func LoadCSV(path string) (*Store, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening corpus %s: %w", path, err)
	}
	defer f.Close()

	store, skipped, err := ReadCSV(f)
	if err != nil {
		return nil, 0, fmt.Errorf("reading corpus %s: %w", path, err)
	}
	return store, skipped, nil
}

// ReadCSV parses CSV corpus data from r. See LoadCSV.
func ReadCSV(r io.Reader) (*Store, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, 0, ErrEmptyCorpus
		}
		return nil, 0, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	qCol, qOK := cols["question"]
	aCol, aOK := cols["answer"]
	if !qOK || !aOK {
		return nil, 0, fmt.Errorf("corpus header missing question/answer columns: %v", header)
	}

	var records []types.QARecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		rec := types.QARecord{
			Question: field(row, qCol),
			Answer:   field(row, aCol),
		}
		if i, ok := cols["category"]; ok {
			rec.Category = field(row, i)
		}
		if i, ok := cols["hospital"]; ok {
			rec.Hospital = field(row, i)
		}
		records = append(records, rec)
	}

	store, emptySkipped := NewStore(records)
	skipped += emptySkipped
	if store.Size() == 0 {
		return nil, skipped, ErrEmptyCorpus
	}
	return store, skipped, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// trimQuoted trims whitespace and one layer of surrounding double quotes.
func trimQuoted(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	return strings.TrimSpace(s)
}
