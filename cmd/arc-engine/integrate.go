// Copyright AuthorForge, 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var integrateCmd = &cobra.Command{
	Use:   "integrate",
	Short: "Fold stored character arc beats into the graph points",
	Long: `Integrate rebuilds the arc beat id list on every graph point from the
character arcs stored for the project. Each point's list is replaced in
full, so re-running converges and beats deleted from a character
disappear from the graph. Chapter links that cannot be parsed are
reported and skipped.

The graph must already exist; integrate never seeds one.`,
	RunE: runIntegrate,
}

func runIntegrate(cmd *cobra.Command, args []string) error {
	svc, store, err := openService(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	project := projectID(cmd)
	if err := svc.IntegrateStoredCharacterBeats(context.Background(), project); err != nil {
		return err
	}
	fmt.Printf("Integrated character beats for project %s\n", project)
	return nil
}

func init() {
	rootCmd.AddCommand(integrateCmd)
}
