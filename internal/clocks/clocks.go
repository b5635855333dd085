// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clocks implements the clock metadata lookups: load, find by DOI,
// cite, list, and show metadata. Each operation logs its progress to the
// caller's writer and also returns its result.
//
// Lookups for a DOI or clock name that is not in the catalog log a warning
// and return an empty result with a nil error. Download and decode failures
// are returned to the caller.
package clocks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/clockmeta/internal/catalog"
	"github.com/pdiddy/clockmeta/internal/citation"
	"github.com/pdiddy/clockmeta/internal/logger"
	"github.com/pdiddy/clockmeta/pkg/types"
)

// Operation names double as logger names.
const (
	opLoad     = "load_clock_metadata"
	opFindDOI  = "find_clock_by_doi"
	opCite     = "cite_clock"
	opList     = "show_all_clocks"
	opMetadata = "get_clock_metadata"
)

// begin creates the operation logger, logs the opening line, and loads
// the catalog.
func begin(ctx context.Context, client *http.Client, op string, cfg types.MetadataConfig, w io.Writer) (*logger.Logger, types.Catalog, error) {
	log := logger.New(op, w, cfg.Verbose)
	log.FirstInfo(fmt.Sprintf("Starting %s function", op))

	cat, err := catalog.Load(ctx, client, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return log, cat, nil
}

// LoadMetadata downloads the metadata file if needed and returns the
// decoded catalog.
func LoadMetadata(ctx context.Context, client *http.Client, cfg types.MetadataConfig, w io.Writer) (types.Catalog, error) {
	log, cat, err := begin(ctx, client, opLoad, cfg, w)
	if err != nil {
		return nil, err
	}
	log.Info(fmt.Sprintf("%d clocks available", len(cat)), 2)
	log.Done()
	return cat, nil
}

// FindByDOI returns the names of every clock whose DOI matches doi.
// DOIs are compared after normalization, so resolver prefixes and letter
// case do not matter.
func FindByDOI(ctx context.Context, client *http.Client, doi string, cfg types.MetadataConfig, w io.Writer) ([]string, error) {
	log, cat, err := begin(ctx, client, opFindDOI, cfg, w)
	if err != nil {
		return nil, err
	}

	const message = "Searching for clock based on DOI"
	log.StartProgress(message+" started", 1)

	matches := MatchDOI(cat, doi)
	if len(matches) > 0 {
		log.Info(fmt.Sprintf("Clocks with DOI %s: %s", doi, strings.Join(matches, ", ")), 2)
	} else {
		log.Warn(fmt.Sprintf("No files found with DOI %s", doi), 2)
	}

	log.FinishProgress(message+" finished", 1)
	log.Done()
	return matches, nil
}

// MatchDOI scans cat for clocks whose doi field names the same DOI.
// The result is sorted and never nil.
func MatchDOI(cat types.Catalog, doi string) []string {
	matches := []string{}
	for _, name := range cat.Names() {
		if d, ok := cat[name].DOI(); ok && citation.SameDOI(d, doi) {
			matches = append(matches, name)
		}
	}
	return matches
}

// Cite returns the citation text for a clock, or "" when the clock or its
// citation is missing.
func Cite(ctx context.Context, client *http.Client, name string, cfg types.MetadataConfig, w io.Writer) (string, error) {
	name = types.NormalizeName(name)

	log, cat, err := begin(ctx, client, opCite, cfg, w)
	if err != nil {
		return "", err
	}

	message := fmt.Sprintf("Searching for citation of clock %s", name)
	log.StartProgress(message+" started", 1)

	var cit string
	if meta, ok := cat.Lookup(name); ok {
		if c, found := meta.Citation(); found {
			cit = c
			log.Info(fmt.Sprintf("Citation for %s:", name), 2)
			log.Info(cit, 2)
		} else {
			log.Warn(fmt.Sprintf("Citation not found in %s", name), 2)
		}
	} else {
		log.Warn(notAvailable(name), 2)
	}

	log.FinishProgress(message+" finished", 1)
	log.Done()
	return cit, nil
}

// List returns every clock name in the catalog, sorted.
func List(ctx context.Context, client *http.Client, cfg types.MetadataConfig, w io.Writer) ([]string, error) {
	log, cat, err := begin(ctx, client, opList, cfg, w)
	if err != nil {
		return nil, err
	}

	const message = "Showing all available clock names"
	log.StartProgress(message+" started", 1)
	names := cat.Names()
	for _, name := range names {
		log.Info(name, 2)
	}
	log.FinishProgress(message+" finished", 1)

	log.Done()
	return names, nil
}

// Metadata returns the metadata of a single clock and logs one
// "key: value" line per field in key order. A missing clock yields nil.
func Metadata(ctx context.Context, client *http.Client, name string, cfg types.MetadataConfig, w io.Writer) (types.ClockMetadata, error) {
	name = types.NormalizeName(name)

	log, cat, err := begin(ctx, client, opMetadata, cfg, w)
	if err != nil {
		return nil, err
	}

	meta, ok := cat.Lookup(name)
	if !ok {
		log.Warn(notAvailable(name), 2)
		log.Done()
		return nil, nil
	}

	message := fmt.Sprintf("Showing %s metadata", name)
	log.StartProgress(message+" started", 1)
	for _, key := range meta.Keys() {
		log.Info(fmt.Sprintf("%s: %s", key, types.FormatValue(meta[key])), 2)
	}
	log.FinishProgress(message+" finished", 1)

	log.Done()
	return meta, nil
}

func notAvailable(name string) string {
	return fmt.Sprintf("%s is not currently available", name)
}
