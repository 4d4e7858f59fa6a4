// Copyright AuthorForge, 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/authorforge/arc-engine/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run structural diagnostics over the project's graph",
	Long: `Analyze runs the sliding-window heuristics over the stored graph
(or a graph file passed with --graph) and prints the scored report:
flat emotional stretches, low-stakes runs, and premature action spikes.`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	svc, store, err := openService(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	var graph *types.StoryArcGraph
	if path, _ := cmd.Flags().GetString("graph"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		graph = &types.StoryArcGraph{}
		if err := yaml.Unmarshal(data, graph); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	report, err := svc.AnalyzeArcGraph(context.Background(), projectID(cmd), graph)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printAnalysis(report)
	return nil
}

func printAnalysis(a types.ArcAnalysis) {
	fmt.Printf("Overall score: %d/100\n\n", a.OverallScore)
	fmt.Println(a.Summary)

	if len(a.FlatArcs) > 0 {
		fmt.Printf("\nFlat arcs (%d):\n", len(a.FlatArcs))
		for _, f := range a.FlatArcs {
			fmt.Printf("  %s chapters %s\n    %s\n", f.Layer, joinChapters(f.Chapters), f.Suggestion)
		}
	}
	if len(a.LowStakes) > 0 {
		fmt.Printf("\nLow stakes (%d):\n", len(a.LowStakes))
		for _, f := range a.LowStakes {
			fmt.Printf("  chapters %s\n    %s\n", joinChapters(f.Chapters), f.Suggestion)
		}
	}
	if len(a.PacingIssues) > 0 {
		fmt.Printf("\nPacing issues (%d):\n", len(a.PacingIssues))
		for _, f := range a.PacingIssues {
			fmt.Printf("  [%s] chapter %d\n    %s\n", f.Type, f.Chapter, f.Suggestion)
		}
	}
}

func joinChapters(chapters []int) string {
	parts := make([]string, len(chapters))
	for i, c := range chapters {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return strings.Join(parts, ", ")
}

func init() {
	analyzeCmd.Flags().String("graph", "", "analyze a graph YAML file instead of the stored graph")
	analyzeCmd.Flags().Bool("json", false, "output the report as JSON")

	rootCmd.AddCommand(analyzeCmd)
}
