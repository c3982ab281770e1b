// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes the per-year summaries to <index-dir>/export.yaml and
// returns the file path.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	years, err := s.Years(ctx)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(years)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.indexDir, "export.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the per-year summaries to <index-dir>/export.json and
// returns the file path.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	years, err := s.Years(ctx)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(years, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.indexDir, "export.json")
	return path, os.WriteFile(path, data, 0o644)
}
