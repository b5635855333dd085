// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clocks

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/clockmeta/internal/citation"
	"github.com/pdiddy/clockmeta/pkg/types"
)

const opCiteCSL = "cite_clock_csl"

// CSLOptions controls CiteCSL.
type CSLOptions struct {
	// CrossRef fetches title, authors, and journal from CrossRef.
	CrossRef bool

	// Mailto is passed to CrossRef to use its polite pool.
	Mailto string
}

// CiteCSL builds a CSL record for a clock. It returns nil when the clock
// is not in the catalog. CrossRef failures are logged as warnings and the
// record built from local metadata is returned.
func CiteCSL(ctx context.Context, client *http.Client, name string, opts CSLOptions, cfg types.MetadataConfig, w io.Writer) (*citation.CSLItem, error) {
	name = types.NormalizeName(name)

	log, cat, err := begin(ctx, client, opCiteCSL, cfg, w)
	if err != nil {
		return nil, err
	}

	meta, ok := cat.Lookup(name)
	if !ok {
		log.Warn(notAvailable(name), 2)
		log.Done()
		return nil, nil
	}

	message := fmt.Sprintf("Building CSL record for clock %s", name)
	log.StartProgress(message+" started", 1)

	item := citation.ToCSL(name, meta)
	switch {
	case !opts.CrossRef:
	case item.DOI == "":
		log.Warn(fmt.Sprintf("No DOI recorded for %s, skipping CrossRef", name), 2)
	default:
		if err := citation.EnrichCrossRef(ctx, client, &item, cfg.HTTPConfig, opts.Mailto); err != nil {
			log.Warn(fmt.Sprintf("CrossRef lookup failed: %v", err), 2)
		} else {
			log.Info(fmt.Sprintf("CrossRef record found for %s", item.DOI), 2)
		}
	}

	log.FinishProgress(message+" finished", 1)
	log.Done()
	return &item, nil
}
