// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ParseConfig holds settings for the parse stage.
type ParseConfig struct {
	// InputDir holds one <year>.zip archive per release (default "data/input").
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives one <year>.yaml snapshot per archive (default "data/snapshots").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Workers is the number of title documents parsed concurrently.
	// Zero or negative means one worker per CPU.
	Workers int `json:"workers" yaml:"workers"`

	// Index also records each persisted snapshot in the catalog.
	Index bool `json:"index" yaml:"index"`
}

// CatalogConfig holds settings for the SQLite snapshot catalog.
type CatalogConfig struct {
	// IndexDir is the directory holding uscode.db and exports (default "data/index").
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// StatsConfig holds settings for the statistics stage.
type StatsConfig struct {
	// SnapshotDir is the directory of persisted <year>.yaml snapshots.
	SnapshotDir string `json:"snapshot_dir" yaml:"snapshot_dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Parse    ParseConfig   `json:"parse" yaml:"parse"`
	Catalog  CatalogConfig `json:"catalog" yaml:"catalog"`
	Stats    StatsConfig   `json:"stats" yaml:"stats"`
	LogLevel string        `json:"log_level" yaml:"log_level"`
}
