// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/uscode-graph/pkg/types"
)

func init() {
	viper.SetDefault("parse.input_dir", "data/input")
	viper.SetDefault("parse.output_dir", "data/snapshots")
	viper.SetDefault("catalog.index_dir", "data/index")
	viper.SetDefault("catalog.max_results", 20)
}

// pipelineConfig reads every stage configuration from viper, which merges
// flags, environment, config file, and defaults.
func pipelineConfig() types.PipelineConfig {
	statsDir := viper.GetString("stats.snapshot_dir")
	if statsDir == "" {
		statsDir = viper.GetString("parse.output_dir")
	}

	return types.PipelineConfig{
		Parse: types.ParseConfig{
			InputDir:  viper.GetString("parse.input_dir"),
			OutputDir: viper.GetString("parse.output_dir"),
			Workers:   viper.GetInt("parse.workers"),
			Index:     viper.GetBool("parse.index"),
		},
		Catalog: types.CatalogConfig{
			IndexDir:   viper.GetString("catalog.index_dir"),
			MaxResults: viper.GetInt("catalog.max_results"),
		},
		Stats: types.StatsConfig{
			SnapshotDir: statsDir,
		},
		LogLevel: viper.GetString("log_level"),
	}
}

// snapshotDir returns the --snapshot-dir flag when set, otherwise the
// configured snapshot directory.
func snapshotDir(cmd *cobra.Command, cfg types.PipelineConfig) string {
	if f := cmd.Flags().Lookup("snapshot-dir"); f != nil && f.Changed {
		return f.Value.String()
	}
	return cfg.Stats.SnapshotDir
}
