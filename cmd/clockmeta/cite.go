// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/clockmeta/internal/citation"
	"github.com/pdiddy/clockmeta/internal/clocks"
	"github.com/pdiddy/clockmeta/internal/secrets"
)

var citeCmd = &cobra.Command{
	Use:   "cite <clock>",
	Short: "Print the citation for a clock",
	Long: `Cite prints the citation recorded for a clock. Clock names are case
insensitive. With --csl the citation is written as CSL-YAML for reference
managers; --crossref fills in title, authors, and journal from CrossRef.`,
	Args: cobra.ExactArgs(1),
	RunE: runCite,
}

func runCite(cmd *cobra.Command, args []string) error {
	cfg := metadataConfig()
	client := httpClient(cfg)

	asCSL, _ := cmd.Flags().GetBool("csl")
	useCrossRef, _ := cmd.Flags().GetBool("crossref")
	if !asCSL && !useCrossRef {
		_, err := clocks.Cite(cmd.Context(), client, args[0], cfg, cmd.OutOrStdout())
		return err
	}

	mailto, _ := cmd.Flags().GetString("mailto")
	opts := clocks.CSLOptions{
		CrossRef: useCrossRef,
		Mailto:   loadedSecrets.Get(secrets.CrossRefMailto, mailto),
	}
	item, err := clocks.CiteCSL(cmd.Context(), client, args[0], opts, cfg, cmd.ErrOrStderr())
	if err != nil || item == nil {
		return err
	}
	return citation.WriteCSL([]citation.CSLItem{*item}, cmd.OutOrStdout())
}

func init() {
	citeCmd.Flags().Bool("csl", false, "write the citation as CSL-YAML")
	citeCmd.Flags().Bool("crossref", false, "enrich the CSL record from CrossRef (implies --csl)")
	citeCmd.Flags().String("mailto", "", "contact address for the CrossRef polite pool")

	rootCmd.AddCommand(citeCmd)
}
