// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportEntry holds one indexed clock for export.
type ExportEntry struct {
	Name   string         `json:"name" yaml:"name"`
	Fields map[string]any `json:"fields" yaml:"fields"`
}

// ExportYAML writes every indexed clock to w as YAML.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return nil
}

// ExportJSON writes every indexed clock to w as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

// ExportFile writes the export in format ("yaml" or "json") to
// index/export.<format> and returns the path.
func (s *Store) ExportFile(ctx context.Context, format string) (string, error) {
	var buf bytes.Buffer
	switch format {
	case "yaml", "":
		format = "yaml"
		if err := s.ExportYAML(ctx, &buf); err != nil {
			return "", err
		}
	case "json":
		if err := s.ExportJSON(ctx, &buf); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	path := filepath.Join(s.dir, "export."+format)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, fields FROM clocks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	defer rows.Close()

	entries := []ExportEntry{}
	for rows.Next() {
		var name, fields string
		if err := rows.Scan(&name, &fields); err != nil {
			return nil, fmt.Errorf("scanning clock: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader([]byte(fields)))
		dec.UseNumber()
		var m map[string]any
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("decoding fields of %s: %w", name, err)
		}
		for k, v := range m {
			m[k] = plainNumbers(v)
		}
		entries = append(entries, ExportEntry{Name: name, Fields: m})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clocks: %w", err)
	}
	return entries, nil
}

// plainNumbers converts json.Number values back to int64 or float64 so the
// YAML export writes them unquoted.
func plainNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		for i := range t {
			t[i] = plainNumbers(t[i])
		}
		return t
	case map[string]any:
		for k := range t {
			t[k] = plainNumbers(t[k])
		}
		return t
	default:
		return v
	}
}
