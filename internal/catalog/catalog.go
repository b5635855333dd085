// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog locates, downloads, and decodes the shared clock
// metadata file. The file is fetched once; later loads read it from disk.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pdiddy/clockmeta/internal/httputil"
	"github.com/pdiddy/clockmeta/internal/logger"
	"github.com/pdiddy/clockmeta/pkg/types"
)

// Path returns the local path of the metadata file for cfg.
func Path(cfg types.MetadataConfig) string {
	cfg = cfg.WithDefaults()
	return filepath.Join(cfg.DataDir, cfg.FileName)
}

// Ensure makes sure the metadata file exists locally, downloading it when
// it is absent. It returns the path and whether a download happened.
func Ensure(ctx context.Context, client *http.Client, cfg types.MetadataConfig, log *logger.Logger) (string, bool, error) {
	cfg = cfg.WithDefaults()
	path := Path(cfg)

	_, err := os.Stat(path)
	switch {
	case err == nil:
		log.Info(fmt.Sprintf("Data found in %s", path), 2)
		return path, false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return "", false, fmt.Errorf("checking metadata file %s: %w", path, err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return "", false, fmt.Errorf("creating directory %s: %w", cfg.DataDir, err)
	}

	log.Info(fmt.Sprintf("Downloading data to %s", path), 2)
	progress := log.ReportHook(2)
	n, err := httputil.Fetch(ctx, client, httputil.Download{
		URL:       cfg.URL,
		Dest:      path,
		UserAgent: cfg.UserAgent,
		Token:     cfg.Token,
		Progress:  progress.Update,
	})
	if err != nil {
		return "", false, fmt.Errorf("downloading clock metadata: %w", err)
	}
	progress.Finish(n)
	return path, true, nil
}

// Load ensures the metadata file is present and decodes it.
func Load(ctx context.Context, client *http.Client, cfg types.MetadataConfig, log *logger.Logger) (types.Catalog, error) {
	const message = "Load all clock metadata"
	log.StartProgress(message+" started", 1)

	path, _, err := Ensure(ctx, client, cfg, log)
	if err != nil {
		return nil, err
	}

	cat, err := Decode(path)
	if err != nil {
		return nil, err
	}
	log.Debug(fmt.Sprintf("Decoded %d clocks", len(cat)), 2)

	log.FinishProgress(message+" finished", 1)
	return cat, nil
}
