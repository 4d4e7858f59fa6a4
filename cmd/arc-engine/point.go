// Copyright AuthorForge, 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/authorforge/arc-engine/internal/arcs"
)

var pointCmd = &cobra.Command{
	Use:   "point",
	Short: "Update per-chapter arc points",
}

var pointUpdateCmd = &cobra.Command{
	Use:   "update <chapter>",
	Short: "Apply a partial update to one chapter's point",
	Long: `Update applies a field-level patch to the point at the given chapter.
Only the flags you pass are changed; intensity values are clamped to
0-100. Chapter and act are structural and cannot be patched.`,
	Args: cobra.ExactArgs(1),
	RunE: runPointUpdate,
}

func runPointUpdate(cmd *cobra.Command, args []string) error {
	var chapter int
	if _, err := fmt.Sscanf(args[0], "%d", &chapter); err != nil {
		return fmt.Errorf("invalid chapter %q", args[0])
	}

	patch := pointPatchFromFlags(cmd)
	if patch.IsEmpty() {
		return fmt.Errorf("no fields to update: pass at least one field flag")
	}

	svc, store, err := openService(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := svc.UpdateArcPoint(context.Background(), projectID(cmd), chapter, patch); err != nil {
		return err
	}
	fmt.Printf("Updated point for chapter %d\n", chapter)
	return nil
}

// pointPatchFromFlags builds a patch from the flags the caller set.
// Unset flags stay nil so the corresponding fields are untouched.
func pointPatchFromFlags(cmd *cobra.Command) arcs.PointPatch {
	var patch arcs.PointPatch

	floatFlag := func(name string, dst **float64) {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetFloat64(name)
			*dst = &v
		}
	}
	stringFlag := func(name string, dst **string) {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			*dst = &v
		}
	}

	floatFlag("word-count-percent", &patch.WordCountPercent)
	floatFlag("emotional", &patch.Emotional)
	floatFlag("stakes", &patch.Stakes)
	floatFlag("world-pressure", &patch.WorldPressure)
	floatFlag("internal-conflict", &patch.InternalConflict)
	floatFlag("theme-resonance", &patch.ThemeResonance)
	floatFlag("spiritual-intensity", &patch.SpiritualIntensity)
	floatFlag("action-crisis", &patch.ActionCrisis)
	stringFlag("pov-character", &patch.POVCharacterID)
	stringFlag("title", &patch.ChapterTitle)
	stringFlag("notes", &patch.Notes)

	return patch
}

func init() {
	pointUpdateCmd.Flags().Float64("word-count-percent", 0, "cumulative word-count position (0-100)")
	pointUpdateCmd.Flags().Float64("emotional", 0, "emotional intensity (0-100)")
	pointUpdateCmd.Flags().Float64("stakes", 0, "stakes intensity (0-100)")
	pointUpdateCmd.Flags().Float64("world-pressure", 0, "world pressure intensity (0-100)")
	pointUpdateCmd.Flags().Float64("internal-conflict", 0, "internal conflict intensity (0-100)")
	pointUpdateCmd.Flags().Float64("theme-resonance", 0, "theme resonance intensity (0-100)")
	pointUpdateCmd.Flags().Float64("spiritual-intensity", 0, "spiritual intensity (0-100)")
	pointUpdateCmd.Flags().Float64("action-crisis", 0, "action/crisis intensity (0-100)")
	pointUpdateCmd.Flags().String("pov-character", "", "POV character arc id")
	pointUpdateCmd.Flags().String("title", "", "chapter title")
	pointUpdateCmd.Flags().String("notes", "", "free-text notes")

	pointCmd.AddCommand(pointUpdateCmd)
	rootCmd.AddCommand(pointCmd)
}
