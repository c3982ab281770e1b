// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/uscode-graph/internal/snapshot"
	"github.com/pdiddy/uscode-graph/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print section and token counts per year",
	Long: `Stats loads every persisted snapshot, one at a time, and prints the
number of records, section-level records, statute tokens, and references
for each year.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := snapshotDir(cmd, pipelineConfig())
		series, err := stats.Series(snapshot.NewStore(dir))
		if err != nil {
			return err
		}

		if jsonOutput(cmd) {
			return writeJSON(series)
		}
		if len(series) == 0 {
			fmt.Printf("No snapshots found in %s.\n", dir)
			return nil
		}

		fmt.Fprintf(os.Stdout, "%-6s  %10s  %10s  %12s  %10s\n", "Year", "Records", "Sections", "Tokens", "References")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 56))
		for _, y := range series {
			fmt.Fprintf(os.Stdout, "%-6d  %10d  %10d  %12d  %10d\n", y.Year, y.Records, y.Sections, y.Tokens, y.References)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("snapshot-dir", "", "directory of <year>.yaml snapshots (default: parse output dir)")
	statsCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(statsCmd)
}
