// Copyright AuthorForge, 2026. All rights reserved.

// Package main is the entry point for the arc-engine CLI: story arc
// graph storage, seeding, mutation, character beat integration, and
// diagnostic analysis.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/authorforge/arc-engine/internal/arcs"
	"github.com/authorforge/arc-engine/internal/arcstore"
	"github.com/authorforge/arc-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the arc-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "arc-engine",
	Short: "Story arc graph engine for novel structure diagnostics",
	Long: `arc-engine maintains a per-project story arc graph: one intensity
measurement per chapter across seven narrative layers, plus the canonical
plot beats. It folds character-level arc beats into the graph and runs
sliding-window heuristics to flag structural weaknesses (flat tension,
low stakes, premature pacing spikes).

Each concern is a subcommand: graph, point, beat, character, integrate,
and analyze. Graphs are seeded on first read and mutated through
whole-document, version-checked saves.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arc-engine.yaml or ~/.config/arc-engine/config.yaml)")
	rootCmd.PersistentFlags().String("project", "default-project", "project identifier")
	rootCmd.PersistentFlags().String("data-dir", "", "base directory for the arc store (default: arcdata)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arc-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arc-engine"))
		}
	}

	viper.SetEnvPrefix("ARC_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the CLI logger writing to stderr.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}

// engineConfig assembles the engine configuration from viper and flags.
// Flags win over config file values.
func engineConfig(cmd *cobra.Command) types.EngineConfig {
	cfg := types.EngineConfig{
		Store: types.StoreConfig{
			DataDir:     viper.GetString("store.data_dir"),
			SaveRetries: viper.GetInt("store.save_retries"),
		},
		Seed: types.SeedConfig{
			TotalChapters: viper.GetInt("seed.total_chapters"),
			Act1End:       viper.GetInt("seed.act1_end"),
			Act2End:       viper.GetInt("seed.act2_end"),
		},
		Analysis: types.AnalysisConfig{
			FlatWindow:   viper.GetInt("analysis.flat_window"),
			FlatRange:    viper.GetFloat64("analysis.flat_range"),
			StakesWindow: viper.GetInt("analysis.stakes_window"),
			StakesFloor:  viper.GetFloat64("analysis.stakes_floor"),
			ActionSpike:  viper.GetFloat64("analysis.action_spike"),
		},
	}

	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.Store.DataDir = dataDir
	}
	if cfg.Store.DataDir == "" {
		cfg.Store.DataDir = "arcdata"
	}
	return cfg
}

// openService opens the store and wires the service layer. The caller
// closes the returned store.
func openService(cmd *cobra.Command) (*arcs.Service, *arcstore.Store, error) {
	cfg := engineConfig(cmd)
	store, err := arcstore.Open(cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	return arcs.New(store, cfg, newLogger(cmd)), store, nil
}

func projectID(cmd *cobra.Command) string {
	project, _ := cmd.Flags().GetString("project")
	return project
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
