// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/answer-engine/internal/engine"
	"github.com/pdiddy/answer-engine/internal/generator"
	"github.com/pdiddy/answer-engine/internal/history"
	"github.com/pdiddy/answer-engine/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP question answering API",
	Long: `Serve loads the corpus, builds the retrieval model, and listens for
HTTP requests. The service answers queries as soon as the corpus is
indexed; when a neural generator endpoint is configured it is warmed
up in the background and joins the fallback chain once reachable.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default: 127.0.0.1:5000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := engineConfig(cmd)
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	cfg.Generator.Timeout = durationOrDefault(cfg.Generator.Timeout, 5*time.Second)

	hist, err := history.NewStore(cfg.History)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer hist.Close()

	gen := generator.New(cfg.Generator)

	var engineGen engine.Generator
	if gen != nil {
		engineGen = gen
	}
	e, err := newEngine(cfg, hist, engineGen)
	if err != nil {
		return err
	}

	if gen == nil {
		// No generator configured, so the retrieval stack is the whole service.
		e.SetFullyReady()
	} else {
		go warmupGenerator(cmd.Context(), e, gen)
	}

	reload := func(ctx context.Context) error {
		store, err := loadCorpus(cfg)
		if err != nil {
			return err
		}
		return e.Load(store)
	}

	srv := httpapi.New(e, hist, reload)
	fmt.Fprintf(os.Stderr, "answer-engine listening on %s\n", cfg.Server.Addr)
	return http.ListenAndServe(cfg.Server.Addr, srv.Handler())
}

// warmupGenerator probes the generator endpoint off the serving path and
// promotes the engine once the endpoint responds.
func warmupGenerator(ctx context.Context, e *engine.Engine, gen *generator.Client) {
	if err := gen.Warmup(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "generator warmup failed, continuing without it: %v\n", err)
		return
	}
	e.SetFullyReady()
	fmt.Fprintln(os.Stderr, "generator ready")
}
