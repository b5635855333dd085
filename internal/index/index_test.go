// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/clockmeta/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	store, err := NewStore(types.IndexConfig{DataDir: tmpDir, MaxResults: 20})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	source := filepath.Join(tmpDir, "all_clock_metadata.json")
	require.NoError(t, os.WriteFile(source, []byte("{}"), 0o644))
	return store, source
}

func sampleCatalog() types.Catalog {
	return types.Catalog{
		"horvath2013": {
			"doi":      "https://doi.org/10.1186/gb-2013-14-10-r115",
			"citation": "Horvath, Steve. DNA methylation age of human tissues and cell types. Genome biology (2013)",
			"year":     2013,
			"species":  "Homo sapiens",
		},
		"petkovich": {
			"doi":      "https://doi.org/10.1016/j.cmet.2017.03.016",
			"citation": "Petkovich, Daniel A., et al. Using DNA methylation profiling to evaluate biological age and longevity interventions. Cell metabolism (2017)",
			"year":     2017,
			"species":  "Mus musculus",
			"tissues":  []any{"blood"},
		},
		"hannum": {
			"year":    2013,
			"species": "Homo sapiens",
			"notes":   nil,
		},
	}
}

func TestNewStoreCreatesDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewStore(types.IndexConfig{DataDir: tmpDir})
	require.NoError(t, err)
	defer store.Close()

	assert.FileExists(t, filepath.Join(tmpDir, indexDir, dbFile))
	assert.Equal(t, types.DefaultMaxResults, store.maxResults)
	assert.Equal(t, filepath.Join(tmpDir, indexDir), store.Dir())
}

func TestSyncSkipsUnchangedSource(t *testing.T) {
	store, source := testSetup(t)
	ctx := context.Background()

	sum, err := store.Sync(ctx, sampleCatalog(), source)
	require.NoError(t, err)
	assert.Equal(t, SyncSummary{Indexed: 3}, sum)

	sum, err = store.Sync(ctx, sampleCatalog(), source)
	require.NoError(t, err)
	assert.Equal(t, SyncSummary{Indexed: 3, Skipped: true}, sum)

	// Touching the source forces a rebuild.
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(source, later, later))

	smaller := sampleCatalog()
	delete(smaller, "hannum")
	sum, err = store.Sync(ctx, smaller, source)
	require.NoError(t, err)
	assert.Equal(t, SyncSummary{Indexed: 2}, sum)

	hits, err := store.Search(ctx, "hannum", 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSyncMissingSource(t *testing.T) {
	store, _ := testSetup(t)
	_, err := store.Sync(context.Background(), sampleCatalog(), filepath.Join(t.TempDir(), "gone.json"))
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	store, source := testSetup(t)
	ctx := context.Background()
	_, err := store.Sync(ctx, sampleCatalog(), source)
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"by species", "sapiens", []string{"hannum", "horvath2013"}},
		{"by name", "petkovich", []string{"petkovich"}},
		{"by citation words", "longevity interventions", []string{"petkovich"}},
		{"by list value", "blood", []string{"petkovich"}},
		{"by year", "2017", []string{"petkovich"}},
		{"no match", "zebrafish", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := store.Search(ctx, tt.query, 0)
			require.NoError(t, err)
			var names []string
			for _, h := range hits {
				names = append(names, h.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestSearchReturnsProvenance(t *testing.T) {
	store, source := testSetup(t)
	ctx := context.Background()
	_, err := store.Sync(ctx, sampleCatalog(), source)
	require.NoError(t, err)

	hits, err := store.Search(ctx, "petkovich", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "https://doi.org/10.1016/j.cmet.2017.03.016", hits[0].DOI)
	assert.Contains(t, hits[0].Citation, "Cell metabolism")
	assert.Contains(t, strings.ToLower(hits[0].Snippet), "[petkovich]")
}

func TestSearchLimit(t *testing.T) {
	store, source := testSetup(t)
	ctx := context.Background()
	_, err := store.Sync(ctx, sampleCatalog(), source)
	require.NoError(t, err)

	hits, err := store.Search(ctx, "sapiens", 1)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestSearchEmptyQuery(t *testing.T) {
	store, _ := testSetup(t)
	_, err := store.Search(context.Background(), "", 0)
	assert.Error(t, err)
}

func TestExportJSON(t *testing.T) {
	store, source := testSetup(t)
	ctx := context.Background()
	_, err := store.Sync(ctx, sampleCatalog(), source)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, store.ExportJSON(ctx, &buf))

	var entries []ExportEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "hannum", entries[0].Name)
	assert.Equal(t, "horvath2013", entries[1].Name)
	assert.Equal(t, "Mus musculus", entries[2].Fields["species"])
	assert.Contains(t, entries[0].Fields, "notes")
}

func TestExportYAMLNumbersUnquoted(t *testing.T) {
	store, source := testSetup(t)
	ctx := context.Background()
	_, err := store.Sync(ctx, sampleCatalog(), source)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, store.ExportYAML(ctx, &buf))
	assert.Contains(t, buf.String(), "year: 2013")

	var entries []ExportEntry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, 2017, entries[2].Fields["year"])
}

func TestExportEmptyIndex(t *testing.T) {
	store, _ := testSetup(t)
	var buf bytes.Buffer
	require.NoError(t, store.ExportJSON(context.Background(), &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestExportFile(t *testing.T) {
	store, source := testSetup(t)
	ctx := context.Background()
	_, err := store.Sync(ctx, sampleCatalog(), source)
	require.NoError(t, err)

	path, err := store.ExportFile(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir(), "export.yaml"), path)
	assert.FileExists(t, path)

	path, err = store.ExportFile(ctx, "json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir(), "export.json"), path)

	_, err = store.ExportFile(ctx, "csv")
	assert.Error(t, err)
}

func TestEncodeFieldsFallsBackToPrintedValues(t *testing.T) {
	got, err := encodeFields(types.ClockMetadata{"weird": func() {}, "year": 2013})
	require.NoError(t, err)
	assert.Contains(t, got, `"year":"2013"`)
}

func TestPlainNumbers(t *testing.T) {
	in := map[string]any{
		"a": json.Number("3"),
		"b": json.Number("0.25"),
		"c": []any{json.Number("7")},
	}
	out := plainNumbers(in).(map[string]any)
	assert.Equal(t, int64(3), out["a"])
	assert.Equal(t, 0.25, out["b"])
	assert.Equal(t, []any{int64(7)}, out["c"])
}
