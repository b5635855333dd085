// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"fmt"
)

// Hit is a clock matched by a full-text query.
type Hit struct {
	Name     string `json:"name" yaml:"name"`
	DOI      string `json:"doi,omitempty" yaml:"doi,omitempty"`
	Citation string `json:"citation,omitempty" yaml:"citation,omitempty"`
	Snippet  string `json:"snippet,omitempty" yaml:"snippet,omitempty"`
}

// Search runs an FTS4 MATCH query over clock names and metadata text.
// Results are ordered by clock name. A limit of zero uses the store default.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT c.name, c.doi, c.citation,
			snippet(clocks_fts, '[', ']', '...', -1, 12)
		FROM clocks_fts
		JOIN clocks c ON c.rowid = clocks_fts.docid
		WHERE clocks_fts MATCH ?
		ORDER BY c.name
		LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var (
			h        Hit
			doi, cit sql.NullString
		)
		if err := rows.Scan(&h.Name, &doi, &cit, &h.Snippet); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		h.DOI = doi.String
		h.Citation = cit.String
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}
	return hits, nil
}
