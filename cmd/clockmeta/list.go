// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/clockmeta/internal/clocks"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the names of all available clocks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := metadataConfig()
		_, err := clocks.List(cmd.Context(), httpClient(cfg), cfg, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
