// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/clockmeta/internal/clocks"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the clock metadata file if it is not present",
	Long: `Fetch makes sure the shared clock metadata file is in the data directory,
downloading it when missing, and reports how many clocks it describes.
An existing file is never downloaded again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := metadataConfig()
		_, err := clocks.LoadMetadata(cmd.Context(), httpClient(cfg), cfg, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
