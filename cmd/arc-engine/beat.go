// Copyright AuthorForge, 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/authorforge/arc-engine/internal/arcs"
	"github.com/authorforge/arc-engine/pkg/types"
)

var beatCmd = &cobra.Command{
	Use:   "beat",
	Short: "Add, update, or delete plot beats",
}

// --- add subcommand ---

var beatAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a plot beat to the project's graph",
	RunE:  runBeatAdd,
}

func runBeatAdd(cmd *cobra.Command, args []string) error {
	beatType, _ := cmd.Flags().GetString("type")
	chapter, _ := cmd.Flags().GetInt("chapter")
	percent, _ := cmd.Flags().GetFloat64("word-count-percent")
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	icon, _ := cmd.Flags().GetString("icon")

	if beatType == "" {
		return fmt.Errorf("--type is required")
	}
	if chapter < 1 {
		return fmt.Errorf("--chapter is required and must be positive")
	}
	if title == "" {
		return fmt.Errorf("--title is required")
	}

	beat := types.PlotBeat{
		Type:             types.PlotBeatType(beatType),
		Chapter:          chapter,
		WordCountPercent: percent,
		Title:            title,
		Description:      description,
		Icon:             icon,
	}

	svc, store, err := openService(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := svc.AddPlotBeat(context.Background(), projectID(cmd), beat); err != nil {
		return err
	}
	fmt.Printf("Added plot beat %q at chapter %d\n", title, chapter)
	return nil
}

// --- update subcommand ---

var beatUpdateCmd = &cobra.Command{
	Use:   "update <beat-id>",
	Short: "Apply a partial update to a plot beat",
	Args:  cobra.ExactArgs(1),
	RunE:  runBeatUpdate,
}

func runBeatUpdate(cmd *cobra.Command, args []string) error {
	patch := beatPatchFromFlags(cmd)
	if patch.IsEmpty() {
		return fmt.Errorf("no fields to update: pass at least one field flag")
	}

	svc, store, err := openService(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := svc.UpdatePlotBeat(context.Background(), projectID(cmd), args[0], patch); err != nil {
		return err
	}
	fmt.Printf("Updated plot beat %s\n", args[0])
	return nil
}

func beatPatchFromFlags(cmd *cobra.Command) arcs.BeatPatch {
	var patch arcs.BeatPatch

	if cmd.Flags().Changed("type") {
		v, _ := cmd.Flags().GetString("type")
		t := types.PlotBeatType(v)
		patch.Type = &t
	}
	if cmd.Flags().Changed("chapter") {
		v, _ := cmd.Flags().GetInt("chapter")
		patch.Chapter = &v
	}
	if cmd.Flags().Changed("word-count-percent") {
		v, _ := cmd.Flags().GetFloat64("word-count-percent")
		patch.WordCountPercent = &v
	}
	if cmd.Flags().Changed("title") {
		v, _ := cmd.Flags().GetString("title")
		patch.Title = &v
	}
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		patch.Description = &v
	}
	if cmd.Flags().Changed("icon") {
		v, _ := cmd.Flags().GetString("icon")
		patch.Icon = &v
	}

	return patch
}

// --- delete subcommand ---

var beatDeleteCmd = &cobra.Command{
	Use:   "delete <beat-id>",
	Short: "Delete a plot beat from the project's graph",
	Args:  cobra.ExactArgs(1),
	RunE:  runBeatDelete,
}

func runBeatDelete(cmd *cobra.Command, args []string) error {
	svc, store, err := openService(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := svc.DeletePlotBeat(context.Background(), projectID(cmd), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted plot beat %s\n", args[0])
	return nil
}

func init() {
	for _, c := range []*cobra.Command{beatAddCmd, beatUpdateCmd} {
		c.Flags().String("type", "", "beat type: inciting-incident, first-plot-point, midpoint, dark-night, climax, resolution")
		c.Flags().Int("chapter", 0, "chapter the beat attaches to")
		c.Flags().Float64("word-count-percent", 0, "word-count position (0-100)")
		c.Flags().String("title", "", "beat title")
		c.Flags().String("description", "", "beat description")
		c.Flags().String("icon", "", "display icon name")
	}

	beatCmd.AddCommand(beatAddCmd)
	beatCmd.AddCommand(beatUpdateCmd)
	beatCmd.AddCommand(beatDeleteCmd)

	rootCmd.AddCommand(beatCmd)
}
