// Copyright AuthorForge, 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/authorforge/arc-engine/internal/seed"
	"github.com/authorforge/arc-engine/pkg/types"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Read, seed, export, or clear a project's story arc graph",
}

// --- get subcommand ---

var graphGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Fetch the project's graph, seeding one if absent",
	Long: `Get fetches the story arc graph for a project. When the project has
no graph yet, a canonical three-act graph is generated, saved, and
returned.`,
	RunE: runGraphGet,
}

func runGraphGet(cmd *cobra.Command, args []string) error {
	svc, store, err := openService(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	graph, err := svc.GetStoryArcGraph(context.Background(), projectID(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(graph)
	}
	printGraphSummary(graph)
	return nil
}

func printGraphSummary(g *types.StoryArcGraph) {
	fmt.Printf("Graph %s (project %s)\n", g.ID, g.ProjectID)
	fmt.Printf("  points:     %d\n", len(g.Points))
	fmt.Printf("  plot beats: %d\n", len(g.PlotBeats))
	fmt.Printf("  version:    %d\n", g.Version)
	fmt.Printf("  updated:    %s\n", g.UpdatedAt.Format("2006-01-02 15:04:05"))
}

// --- seed subcommand ---

var graphSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the project's graph with a freshly generated one",
	Long: `Seed clears any existing graph for the project and generates the
canonical three-act graph: per-chapter intensity curves across the seven
layers plus the standard plot beats.`,
	RunE: runGraphSeed,
}

func runGraphSeed(cmd *cobra.Command, args []string) error {
	svc, store, err := openService(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	project := projectID(cmd)

	if err := svc.ClearProject(ctx, project); err != nil {
		return err
	}

	cfg := engineConfig(cmd)
	if chapters, _ := cmd.Flags().GetInt("chapters"); chapters > 0 {
		cfg.Seed.TotalChapters = chapters
	}
	graph := seed.Generate(project, seed.FromConfig(cfg.Seed))
	if err := svc.SaveStoryArcGraph(ctx, graph); err != nil {
		return err
	}

	fmt.Printf("Seeded %d-chapter graph for project %s\n", len(graph.Points), project)
	return nil
}

// --- export subcommand ---

var graphExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the project's graph to YAML or JSON",
	RunE:  runGraphExport,
}

func runGraphExport(cmd *cobra.Command, args []string) error {
	svc, store, err := openService(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	graph, err := svc.GetStoryArcGraph(context.Background(), projectID(cmd))
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	var data []byte
	switch format {
	case "yaml", "":
		data, err = yaml.Marshal(graph)
	case "json":
		data, err = json.MarshalIndent(graph, "", "  ")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}

	if len(args) == 0 {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", args[0], err)
	}
	fmt.Printf("Exported to %s\n", args[0])
	return nil
}

// --- clear subcommand ---

var graphClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the project's graph (or every graph with --all)",
	RunE:  runGraphClear,
}

func runGraphClear(cmd *cobra.Command, args []string) error {
	_, store, err := openService(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if all, _ := cmd.Flags().GetBool("all"); all {
		if err := store.ClearAll(ctx); err != nil {
			return err
		}
		fmt.Println("Cleared all graphs")
		return nil
	}

	project := projectID(cmd)
	if err := store.Clear(ctx, project); err != nil {
		return err
	}
	fmt.Printf("Cleared graph for project %s\n", project)
	return nil
}

func init() {
	graphGetCmd.Flags().Bool("json", false, "output the full graph as JSON")
	graphSeedCmd.Flags().Int("chapters", 0, "total chapters for the seeded graph (default 30)")
	graphExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	graphClearCmd.Flags().Bool("all", false, "clear graphs for every project")

	graphCmd.AddCommand(graphGetCmd)
	graphCmd.AddCommand(graphSeedCmd)
	graphCmd.AddCommand(graphExportCmd)
	graphCmd.AddCommand(graphClearCmd)

	rootCmd.AddCommand(graphCmd)
}
