// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the clock metadata to YAML or JSON",
	Long: `Export writes every clock and its metadata fields to
<data-dir>/index/export.yaml or export.json. Use --stdout to write to
standard output instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		toStdout, _ := cmd.Flags().GetBool("stdout")

		store, err := openIndex(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer store.Close()

		if toStdout {
			switch format {
			case "yaml", "":
				return store.ExportYAML(cmd.Context(), cmd.OutOrStdout())
			case "json":
				return store.ExportJSON(cmd.Context(), cmd.OutOrStdout())
			default:
				return fmt.Errorf("unsupported format %q: use yaml or json", format)
			}
		}

		path, err := store.ExportFile(cmd.Context(), format)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().Bool("stdout", false, "write the export to stdout")

	rootCmd.AddCommand(exportCmd)
}
