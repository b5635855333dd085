// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/clockmeta/internal/clocks"
)

var findDOICmd = &cobra.Command{
	Use:   "find-doi <doi>",
	Short: "List the clocks published in the paper with the given DOI",
	Long: `Find-doi scans every clock for a DOI equal to the argument. Resolver
prefixes (https://doi.org/, doi:) and letter case are ignored. No match is
reported as a warning, not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := metadataConfig()
		_, err := clocks.FindByDOI(cmd.Context(), httpClient(cfg), args[0], cfg, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(findDOICmd)
}
