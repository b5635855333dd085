// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/clockmeta/internal/catalog"
	"github.com/pdiddy/clockmeta/internal/index"
	"github.com/pdiddy/clockmeta/internal/logger"
	"github.com/pdiddy/clockmeta/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over clock names and metadata",
	Long: `Search indexes the clock metadata in a local SQLite database and runs a
full-text query over clock names, citations, and every metadata field.
The index is rebuilt only when the metadata file changes.

Query syntax follows SQLite FTS4: words are ANDed, "quoted phrases" match
exactly, OR combines alternatives, and prefix* matches word prefixes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := openIndex(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer store.Close()

	hits, err := store.Search(cmd.Context(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}
	return formatSearchOutput(cmd.OutOrStdout(), hits, jsonOutput)
}

// openIndex loads the catalog and brings the index up to date with it.
func openIndex(ctx context.Context, logOut io.Writer) (*index.Store, error) {
	cfg := metadataConfig()
	log := logger.New("index", logOut, cfg.Verbose)

	cat, err := catalog.Load(ctx, httpClient(cfg), cfg, log)
	if err != nil {
		return nil, err
	}

	store, err := index.NewStore(types.IndexConfig{DataDir: cfg.DataDir})
	if err != nil {
		return nil, err
	}

	summary, err := store.Sync(ctx, cat, catalog.Path(cfg))
	if err != nil {
		store.Close()
		return nil, err
	}
	if summary.Skipped {
		log.Debug(fmt.Sprintf("Index up to date (%d clocks)", summary.Indexed), 2)
	} else {
		log.Info(fmt.Sprintf("Indexed %d clocks", summary.Indexed), 2)
	}
	return store, nil
}

func formatSearchOutput(w io.Writer, hits []index.Hit, jsonOutput bool) error {
	if jsonOutput {
		if hits == nil {
			hits = []index.Hit{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	if len(hits) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-24s  %-36s  %s\n", "Rank", "Clock", "DOI", "Match")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for i, h := range hits {
		fmt.Fprintf(w, "%-4d  %-24s  %-36s  %s\n",
			i+1, truncate(h.Name, 24), truncate(h.DOI, 36), strings.ReplaceAll(h.Snippet, "\n", " "))
	}
	fmt.Fprintf(w, "\n%d results\n", len(hits))
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = 20)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
