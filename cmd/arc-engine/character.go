// Copyright AuthorForge, 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/authorforge/arc-engine/pkg/types"
)

var characterCmd = &cobra.Command{
	Use:   "character",
	Short: "Manage character arcs referenced by the graph",
}

// --- import subcommand ---

var characterImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import character arc YAML files into the store",
	Long: `Import reads character arc YAML files and stores them under the
current project. Imported arcs are what the integrate command folds
into the graph. A file may hold a single arc or a list of arcs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCharacterImport,
}

func runCharacterImport(cmd *cobra.Command, args []string) error {
	_, store, err := openService(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	project := projectID(cmd)

	var count int
	for _, path := range args {
		arcs, err := readCharacterArcs(path)
		if err != nil {
			return err
		}
		for i := range arcs {
			if arcs[i].ProjectID == "" {
				arcs[i].ProjectID = project
			}
			if err := store.PutCharacterArc(ctx, &arcs[i]); err != nil {
				return fmt.Errorf("storing %s: %w", arcs[i].ID, err)
			}
			count++
		}
	}

	fmt.Printf("Imported %d character arc(s)\n", count)
	return nil
}

// readCharacterArcs parses a YAML file holding one arc or a list.
func readCharacterArcs(path string) ([]types.CharacterArc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var list []types.CharacterArc
	if err := yaml.Unmarshal(data, &list); err == nil && len(list) > 0 {
		return list, nil
	}

	var single types.CharacterArc
	if err := yaml.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if single.ID == "" {
		return nil, fmt.Errorf("parsing %s: no character arc found", path)
	}
	return []types.CharacterArc{single}, nil
}

// --- list subcommand ---

var characterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored character arcs for the project",
	RunE:  runCharacterList,
}

func runCharacterList(cmd *cobra.Command, args []string) error {
	_, store, err := openService(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	arcs, err := store.CharacterArcs(context.Background(), projectID(cmd))
	if err != nil {
		return err
	}
	if len(arcs) == 0 {
		fmt.Println("No character arcs stored.")
		return nil
	}

	for _, arc := range arcs {
		fmt.Printf("%-20s  %-16s  %d beat(s)\n", arc.ID, arc.Name, len(arc.Beats))
	}
	return nil
}

func init() {
	characterCmd.AddCommand(characterImportCmd)
	characterCmd.AddCommand(characterListCmd)

	rootCmd.AddCommand(characterCmd)
}
