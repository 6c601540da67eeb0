// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single question from the corpus",
	Long: `Ask loads the corpus, builds the retrieval model, and answers one
question. The answer, its confidence, and the strategy that produced
it are printed to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Bool("json", false, "print the full response payload as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := engineConfig(cmd)

	e, err := newEngine(cfg, nil, nil)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	payload, err := e.Answer(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("answering %q: %w", query, err)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	fmt.Println(payload.Text)
	fmt.Fprintf(os.Stderr, "confidence=%.3f source=%s", payload.Confidence, payload.Source)
	if payload.Intent != "" {
		fmt.Fprintf(os.Stderr, " intent=%s", payload.Intent)
	}
	fmt.Fprintln(os.Stderr)
	return nil
}
