// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the answer-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the answer-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "answer-engine",
	Short: "Closed-domain question answering over a curated Q&A corpus",
	Long: `answer-engine matches free-text questions against a fixed corpus of
question/answer pairs using TF-IDF retrieval, falling back to intent-based
templates, keyword matching, and a generic response when no match is
confident.

Use "ask" for one-shot queries, "serve" to run the HTTP API, and "corpus"
to validate or inspect a corpus file.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./answer-engine.yaml or ~/.config/answer-engine/config.yaml)")
	rootCmd.PersistentFlags().String("corpus", "", "path to the corpus CSV file")
	rootCmd.PersistentFlags().String("intents", "", "path to an intent configuration YAML file (default: built-in hospital set)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("answer-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "answer-engine"))
		}
	}

	viper.SetEnvPrefix("ANSWER_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig resolves the effective configuration: defaults, overridden
// by the config file and environment, overridden by flags.
func engineConfig(cmd *cobra.Command) types.EngineConfig {
	cfg := types.DefaultEngineConfig()

	cfg.CorpusPath = stringSetting(cmd, "corpus", "corpus_path", cfg.CorpusPath)
	cfg.IntentPath = stringSetting(cmd, "intents", "intent_path", cfg.IntentPath)

	if viper.IsSet("vectorizer.max_features") {
		cfg.Vectorizer.MaxFeatures = viper.GetInt("vectorizer.max_features")
	}
	if viper.IsSet("vectorizer.ngram_max") {
		cfg.Vectorizer.NgramMax = viper.GetInt("vectorizer.ngram_max")
	}
	if viper.IsSet("policy.semantic_threshold") {
		cfg.Policy.SemanticThreshold = viper.GetFloat64("policy.semantic_threshold")
	}
	if viper.IsSet("policy.keyword_min_overlap") {
		cfg.Policy.KeywordMinOverlap = viper.GetInt("policy.keyword_min_overlap")
	}
	if viper.IsSet("policy.top_k") {
		cfg.Policy.TopK = viper.GetInt("policy.top_k")
	}
	if viper.IsSet("history.data_dir") {
		cfg.History.DataDir = viper.GetString("history.data_dir")
	}
	if viper.IsSet("history.feedback_alpha") {
		cfg.History.FeedbackAlpha = viper.GetFloat64("history.feedback_alpha")
	}
	if viper.IsSet("generator.endpoint") {
		cfg.Generator.Endpoint = viper.GetString("generator.endpoint")
	}
	if viper.IsSet("generator.api_key") {
		cfg.Generator.APIKey = viper.GetString("generator.api_key")
	}
	if viper.IsSet("generator.timeout") {
		cfg.Generator.Timeout = viper.GetDuration("generator.timeout")
	}
	if viper.IsSet("server.addr") {
		cfg.Server.Addr = viper.GetString("server.addr")
	}
	return cfg
}

// stringSetting applies flag > config > default precedence.
func stringSetting(cmd *cobra.Command, flag, key, fallback string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return fallback
}

// durationOrDefault guards against a zero timeout from partial config.
func durationOrDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
