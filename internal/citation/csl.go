// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/clockmeta/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL format. The field names
// and structure follow the CSL-JSON/CSL-YAML schema so that output is
// consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id" json:"id"`
	Type           string    `yaml:"type" json:"type"`
	Title          string    `yaml:"title,omitempty" json:"title,omitempty"`
	Author         []CSLName `yaml:"author,omitempty" json:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty" json:"container-title,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty" json:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty" json:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty" json:"URL,omitempty"`
	Note           string    `yaml:"note,omitempty" json:"note,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty" json:"family,omitempty"`
	Given   string `yaml:"given,omitempty" json:"given,omitempty"`
	Literal string `yaml:"literal,omitempty" json:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts" json:"date-parts"`
}

// ToCSL builds a CSL item from a clock's metadata. The free-text citation
// becomes the note; CrossRef enrichment fills title and authors.
func ToCSL(name string, meta types.ClockMetadata) CSLItem {
	item := CSLItem{
		ID:   types.NormalizeName(name),
		Type: "article-journal",
	}

	if doi, ok := meta.DOI(); ok {
		if norm, valid := NormalizeDOI(doi); valid {
			item.DOI = norm
			item.URL = URL(norm)
		}
	}
	if cit, ok := meta.Citation(); ok {
		item.Note = strings.TrimSpace(cit)
	}
	if year, ok := yearOf(meta[types.FieldYear]); ok {
		item.Issued = &CSLDate{DateParts: [][]int{{year}}}
	}
	return item
}

// WriteCSL writes items as a CSL-YAML list to w.
func WriteCSL(items []CSLItem, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// yearOf accepts the numeric shapes the metadata decoders produce.
func yearOf(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case fmt.Stringer:
		n, err := strconv.Atoi(t.String())
		return n, err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	default:
		return 0, false
	}
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
