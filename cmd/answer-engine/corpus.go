// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/answer-engine/internal/corpus"
	"github.com/pdiddy/answer-engine/internal/engine"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Validate and inspect corpus files",
}

var corpusValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that a corpus file loads and can be indexed",
	RunE:  runCorpusValidate,
}

var corpusStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print per-category record counts for a corpus file",
	RunE:  runCorpusStats,
}

var corpusExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the cleaned corpus as YAML",
	Long: `Export loads a corpus CSV, applies the same cleaning the service
applies at startup, and writes the surviving records as YAML to stdout
or to --out.`,
	RunE: runCorpusExport,
}

func init() {
	corpusExportCmd.Flags().String("out", "", "write YAML to this file instead of stdout")
	corpusCmd.AddCommand(corpusValidateCmd)
	corpusCmd.AddCommand(corpusStatsCmd)
	corpusCmd.AddCommand(corpusExportCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusValidate(cmd *cobra.Command, args []string) error {
	cfg := engineConfig(cmd)
	if cfg.CorpusPath == "" {
		return fmt.Errorf("no corpus configured: pass --corpus or set corpus_path")
	}

	store, skipped, err := corpus.LoadCSV(cfg.CorpusPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", cfg.CorpusPath, err)
	}

	// Exercise the full index build so vocabulary problems surface here
	// rather than at serve time.
	if _, err := engine.BuildGeneration(store, cfg.Vectorizer); err != nil {
		return fmt.Errorf("indexing %s: %w", cfg.CorpusPath, err)
	}

	fmt.Printf("%s: %d records, %d skipped\n", cfg.CorpusPath, store.Size(), skipped)
	return nil
}

func runCorpusStats(cmd *cobra.Command, args []string) error {
	cfg := engineConfig(cmd)
	if cfg.CorpusPath == "" {
		return fmt.Errorf("no corpus configured: pass --corpus or set corpus_path")
	}

	store, _, err := corpus.LoadCSV(cfg.CorpusPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", cfg.CorpusPath, err)
	}

	byCategory := map[string]int{}
	byHospital := map[string]int{}
	for _, rec := range store.Records() {
		byCategory[rec.Category]++
		byHospital[rec.Hospital]++
	}

	fmt.Printf("records: %d\n\ncategories:\n", store.Size())
	printCounts(byCategory)
	fmt.Println("\nhospitals:")
	printCounts(byHospital)
	return nil
}

func runCorpusExport(cmd *cobra.Command, args []string) error {
	cfg := engineConfig(cmd)
	if cfg.CorpusPath == "" {
		return fmt.Errorf("no corpus configured: pass --corpus or set corpus_path")
	}

	store, _, err := corpus.LoadCSV(cfg.CorpusPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", cfg.CorpusPath, err)
	}

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}

	enc := yaml.NewEncoder(out)
	defer enc.Close()
	if err := enc.Encode(store.Records()); err != nil {
		return fmt.Errorf("encoding corpus: %w", err)
	}
	return nil
}

func printCounts(counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-20s %d\n", k, counts[k])
	}
}
