// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the clockmeta CLI.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/clockmeta/internal/secrets"
	"github.com/pdiddy/clockmeta/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Set

// rootCmd is the base command for the clockmeta CLI.
var rootCmd = &cobra.Command{
	Use:   "clockmeta",
	Short: "Look up metadata for precomputed biological-age clocks",
	Long: `clockmeta downloads the shared clock metadata file once and answers
questions about it: which clocks come from a given paper (DOI), how to cite
a clock, which clocks exist, and what metadata a clock carries.

The metadata file is stored in the data directory and reused on later runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/", cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(cmd.ErrOrStderr(), "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./clockmeta.yaml or ~/.config/clockmeta/config.yaml)")
	pf.String("data-dir", types.DefaultDataDir, "directory holding the downloaded metadata file")
	pf.String("url", types.DefaultMetadataURL, "URL the metadata file is downloaded from")
	pf.String("file", types.DefaultFileName, "metadata file name; the extension selects the format (.pt, .json, .yaml)")
	pf.Duration("timeout", types.DefaultTimeout, "HTTP request timeout")
	pf.BoolP("verbose", "v", false, "show debug log lines")

	for key, flag := range map[string]string{
		"data_dir":  "data-dir",
		"url":       "url",
		"file_name": "file",
		"timeout":   "timeout",
		"verbose":   "verbose",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
	viper.SetDefault("user_agent", types.DefaultUserAgent)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("clockmeta")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "clockmeta"))
		}
	}

	viper.SetEnvPrefix("CLOCKMETA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// metadataConfig assembles the metadata settings from flags, config file,
// environment, and secrets.
func metadataConfig() types.MetadataConfig {
	return types.MetadataConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		URL:      viper.GetString("url"),
		DataDir:  viper.GetString("data_dir"),
		FileName: viper.GetString("file_name"),
		Token:    loadedSecrets.Get(secrets.MetadataToken, viper.GetString("token")),
		Verbose:  viper.GetBool("verbose"),
	}.WithDefaults()
}

func httpClient(cfg types.MetadataConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
