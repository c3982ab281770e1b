// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/uscode-graph/internal/catalog"
	"github.com/pdiddy/uscode-graph/internal/snapshot"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Index snapshots into SQLite and query them",
	Long: `Catalog manages a local SQLite database built from persisted snapshots.
Use subcommands to index snapshots, list indexed years, rank cited
sections, search section text, or export the year summaries.`,
}

// --- index subcommand ---

var catalogIndexCmd = &cobra.Command{
	Use:   "index [years...]",
	Short: "Index persisted snapshots into the catalog",
	Long: `Index loads snapshots from the output directory and records them in the
catalog, replacing rows previously indexed for the same year. With no
arguments every snapshot in the directory is indexed.`,
	RunE: runCatalogIndex,
}

func runCatalogIndex(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	snaps := snapshot.NewStore(snapshotDir(cmd, cfg))

	var years []int
	if len(args) > 0 {
		for _, a := range args {
			y, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("invalid year %q", a)
			}
			years = append(years, y)
		}
	} else {
		found, err := snaps.Years()
		if err != nil {
			return err
		}
		years = found
	}
	if len(years) == 0 {
		return fmt.Errorf("no snapshots found in %s", snaps.Dir())
	}

	store, err := catalog.Open(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	var failed int
	for _, y := range years {
		snap, err := snaps.Load(y)
		if err != nil {
			fmt.Fprintf(os.Stdout, "failed  %d: %v\n", y, err)
			failed++
			continue
		}
		if err := store.Index(cmd.Context(), snap, snaps.Path(y)); err != nil {
			fmt.Fprintf(os.Stdout, "failed  %d: %v\n", y, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stdout, "indexed %d (%d sections, %d references)\n", y, len(snap.Sections), len(snap.References))
	}

	if failed > 0 {
		return fmt.Errorf("%d snapshot(s) failed indexing", failed)
	}
	return nil
}

// --- years subcommand ---

var catalogYearsCmd = &cobra.Command{
	Use:   "years",
	Short: "List indexed years with their counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		years, err := store.Years(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput(cmd) {
			return writeJSON(years)
		}
		if len(years) == 0 {
			fmt.Println("No snapshots indexed.")
			return nil
		}

		fmt.Fprintf(os.Stdout, "%-6s  %10s  %10s  %10s  %10s  %10s\n",
			"Year", "Sections", "Nodes", "Edges", "Possible", "References")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 68))
		for _, y := range years {
			fmt.Fprintf(os.Stdout, "%-6d  %10d  %10d  %10d  %10d  %10d\n",
				y.Year, y.Sections, y.Nodes, y.Edges, y.PossibleCites, y.References)
		}
		return nil
	},
}

// --- cited subcommand ---

var catalogCitedCmd = &cobra.Command{
	Use:   "cited",
	Short: "Rank the most referenced sections of a year",
	RunE: func(cmd *cobra.Command, args []string) error {
		year, _ := cmd.Flags().GetInt("year")
		if year == 0 {
			return fmt.Errorf("--year is required")
		}
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		cited, err := store.TopCited(cmd.Context(), year, limit)
		if err != nil {
			return err
		}
		if jsonOutput(cmd) {
			return writeJSON(cited)
		}
		if len(cited) == 0 {
			fmt.Println("No references found.")
			return nil
		}

		fmt.Fprintf(os.Stdout, "%-4s  %-6s  %-12s  %8s  %s\n", "Rank", "Title", "Section", "Count", "Known")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 44))
		for i, c := range cited {
			fmt.Fprintf(os.Stdout, "%-4d  %-6s  %-12s  %8d  %t\n", i+1, c.Title, c.Section, c.Count, c.Known)
		}
		return nil
	},
}

// --- search subcommand ---

var catalogSearchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search section headings and statute text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, _ := cmd.Flags().GetInt("year")
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		hits, err := store.Search(cmd.Context(), year, strings.Join(args, " "), limit)
		if err != nil {
			return err
		}
		if jsonOutput(cmd) {
			return writeJSON(hits)
		}
		if len(hits) == 0 {
			fmt.Println("No results found.")
			return nil
		}

		for _, h := range hits {
			head := strings.Join(strings.Fields(h.Head), " ")
			if len(head) > 60 {
				head = head[:57] + "..."
			}
			fmt.Fprintf(os.Stdout, "%-6d  %-40s  %s\n", h.Year, h.ItemPath, head)
		}
		fmt.Fprintf(os.Stdout, "\n%d results\n", len(hits))
		return nil
	},
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export indexed year summaries to YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		var path string
		switch format {
		case "yaml", "":
			path, err = store.ExportYAML(cmd.Context())
		case "json":
			path, err = store.ExportJSON(cmd.Context())
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
		if err != nil {
			return err
		}
		fmt.Println("Exported to", path)
		return nil
	},
}

// --- shared helpers ---

func openCatalog() (*catalog.Store, error) {
	return catalog.Open(pipelineConfig().Catalog)
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("index-dir", "data/index", "directory holding the catalog database")
	catalogCmd.PersistentFlags().Int("max-results", 20, "default maximum number of query results")
	catalogCmd.PersistentFlags().String("snapshot-dir", "", "directory of <year>.yaml snapshots (default: parse output dir)")
	viper.BindPFlag("catalog.index_dir", catalogCmd.PersistentFlags().Lookup("index-dir"))
	viper.BindPFlag("catalog.max_results", catalogCmd.PersistentFlags().Lookup("max-results"))

	for _, c := range []*cobra.Command{catalogYearsCmd, catalogCitedCmd, catalogSearchCmd} {
		c.Flags().Bool("json", false, "output results as JSON")
	}
	for _, c := range []*cobra.Command{catalogCitedCmd, catalogSearchCmd} {
		c.Flags().Int("year", 0, "snapshot year (search: 0 = all years)")
		c.Flags().Int("limit", 0, "maximum results (0 = use default)")
	}
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	catalogCmd.AddCommand(catalogIndexCmd)
	catalogCmd.AddCommand(catalogYearsCmd)
	catalogCmd.AddCommand(catalogCitedCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
