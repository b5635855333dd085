// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the clockmeta tools:
// the clock metadata catalog and the per-stage configuration records.
package types

import (
	"sort"
	"strings"
)

// Well-known metadata field names.
const (
	FieldDOI          = "doi"
	FieldCitation     = "citation"
	FieldYear         = "year"
	FieldSpecies      = "species"
	FieldDataType     = "data_type"
	FieldApproved     = "approved_by_author"
	FieldNotes        = "notes"
	FieldResearchOnly = "research_only"
	FieldVersion      = "version"
)

// ClockMetadata holds the fields published for a single clock. Values are
// whatever the metadata file carried: strings, numbers, booleans, nil,
// slices, or nested maps.
type ClockMetadata map[string]any

// DOI returns the clock's DOI field if it is present and a string.
func (m ClockMetadata) DOI() (string, bool) {
	return m.stringField(FieldDOI)
}

// Citation returns the clock's citation field. Non-string values are
// rendered with FormatValue; a missing or null field reports false.
func (m ClockMetadata) Citation() (string, bool) {
	v, ok := m[FieldCitation]
	if !ok || v == nil {
		return "", false
	}
	return FormatValue(v), true
}

// Keys returns the field names in sorted order.
func (m ClockMetadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m ClockMetadata) stringField(key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Catalog maps lower-case clock names to their metadata. A loaded catalog
// is treated as read-only.
type Catalog map[string]ClockMetadata

// Names returns every clock name in the catalog, sorted.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a clock by name. The name is trimmed and lower-cased first.
func (c Catalog) Lookup(name string) (ClockMetadata, bool) {
	meta, ok := c[NormalizeName(name)]
	return meta, ok
}

// NormalizeName returns the catalog key form of a clock name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
