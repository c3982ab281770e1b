// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/uscode-graph/internal/catalog"
	"github.com/pdiddy/uscode-graph/internal/snapshot"
)

var parseCmd = &cobra.Command{
	Use:   "parse [archives...]",
	Short: "Build yearly snapshots from U.S. Code archives",
	Long: `Parse reads yearly archives and writes one snapshot per year to the
output directory. With no arguments every *.zip in the input directory is
processed, in name order. The year is taken from the archive file name.

Each year is independent: a year whose archive cannot be read or whose
snapshot cannot be written is reported and skipped, and no snapshot file
is left for it.`,
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()

	var archives []snapshot.Archive
	if len(args) > 0 {
		for _, p := range args {
			a, err := snapshot.ArchiveFor(p)
			if err != nil {
				return err
			}
			archives = append(archives, a)
		}
	} else {
		found, err := snapshot.Discover(cfg.Parse.InputDir)
		if err != nil {
			return err
		}
		archives = found
	}
	if len(archives) == 0 {
		return fmt.Errorf("no archives found in %s", cfg.Parse.InputDir)
	}

	b := snapshot.NewBuilder(cfg.Parse, slog.Default())
	if cfg.Parse.Index {
		store, err := catalog.Open(cfg.Catalog)
		if err != nil {
			return err
		}
		defer store.Close()
		b.WithIndexer(store)
	}

	summary, err := b.BuildAll(cmd.Context(), archives, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d year(s) failed", summary.Failed)
	}
	return nil
}

func init() {
	parseCmd.Flags().String("input-dir", "data/input", "directory of yearly <year>.zip archives")
	parseCmd.Flags().String("output-dir", "data/snapshots", "directory for <year>.yaml snapshots")
	parseCmd.Flags().Int("workers", 0, "title documents parsed concurrently (0 = one per CPU)")
	parseCmd.Flags().Bool("index", false, "also index each snapshot into the catalog")

	viper.BindPFlag("parse.input_dir", parseCmd.Flags().Lookup("input-dir"))
	viper.BindPFlag("parse.output_dir", parseCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("parse.workers", parseCmd.Flags().Lookup("workers"))
	viper.BindPFlag("parse.index", parseCmd.Flags().Lookup("index"))

	rootCmd.AddCommand(parseCmd)
}
