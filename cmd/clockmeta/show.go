// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/clockmeta/internal/clocks"
)

var showCmd = &cobra.Command{
	Use:   "show <clock>",
	Short: "Print every metadata field of a clock",
	Long: `Show prints one "key: value" line per metadata field of the clock, in
key order. With --json the fields are written to stdout as a JSON object and
the progress log goes to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := metadataConfig()
		jsonOutput, _ := cmd.Flags().GetBool("json")

		var logOut io.Writer = cmd.OutOrStdout()
		if jsonOutput {
			logOut = cmd.ErrOrStderr()
		}

		meta, err := clocks.Metadata(cmd.Context(), httpClient(cfg), args[0], cfg, logOut)
		if err != nil || meta == nil || !jsonOutput {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	},
}

func init() {
	showCmd.Flags().Bool("json", false, "output the metadata as JSON")

	rootCmd.AddCommand(showCmd)
}
