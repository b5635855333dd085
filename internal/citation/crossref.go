// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/clockmeta/pkg/types"
)

// CrossRefAPIBase is the CrossRef works endpoint. Tests in this and other
// packages override it to point at an httptest server.
var CrossRefAPIBase = "https://api.crossref.org/works/"

// CrossRef API JSON structures.
type crossrefResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefWork struct {
	Title          []string         `json:"title"`
	ContainerTitle []string         `json:"container-title"`
	Author         []crossrefAuthor `json:"author"`
	Issued         crossrefDate     `json:"issued"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

// EnrichCrossRef fills title, authors, journal, and issue date of item from
// the CrossRef record for its DOI. Items without a DOI are left unchanged.
// mailto, when set, opts into CrossRef's polite pool.
func EnrichCrossRef(ctx context.Context, client *http.Client, item *CSLItem, cfg types.HTTPConfig, mailto string) error {
	if item.DOI == "" {
		return nil
	}

	apiURL := CrossRefAPIBase + item.DOI
	if mailto != "" {
		apiURL += "?mailto=" + url.QueryEscape(mailto)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("CrossRef API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("CrossRef API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return fmt.Errorf("parsing CrossRef response: %w", err)
	}

	if len(cr.Message.Title) > 0 {
		item.Title = strings.TrimSpace(cr.Message.Title[0])
	}
	if len(cr.Message.ContainerTitle) > 0 {
		item.ContainerTitle = strings.TrimSpace(cr.Message.ContainerTitle[0])
	}

	if len(cr.Message.Author) > 0 {
		item.Author = item.Author[:0]
		for _, a := range cr.Message.Author {
			switch {
			case a.Family != "":
				item.Author = append(item.Author, CSLName{Given: a.Given, Family: a.Family})
			case a.Name != "":
				item.Author = append(item.Author, parseAuthorName(a.Name))
			}
		}
	}

	if len(cr.Message.Issued.DateParts) > 0 && len(cr.Message.Issued.DateParts[0]) > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{cr.Message.Issued.DateParts[0]}}
	}
	return nil
}
