// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation normalizes DOIs and renders clock citations as CSL
// (Citation Style Language) records, optionally enriched from CrossRef.
package citation

import (
	"regexp"
	"strings"
)

// doiPattern matches DOIs: "10.1186/gb-2013-14-10-r115".
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)

// doiPrefixes are resolver and scheme prefixes stripped before comparison.
var doiPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi.org/",
	"doi:",
}

// NormalizeDOI strips resolver prefixes and lower-cases s. DOIs are
// case-insensitive, so two normalized DOIs can be compared directly.
// The boolean reports whether the result has DOI syntax.
func NormalizeDOI(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range doiPrefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimSpace(s[len(p):])
			break
		}
	}
	return s, doiPattern.MatchString(s)
}

// SameDOI reports whether a and b name the same DOI.
func SameDOI(a, b string) bool {
	na, _ := NormalizeDOI(a)
	nb, _ := NormalizeDOI(b)
	return na != "" && na == nb
}

// URL returns the doi.org resolver URL for a DOI.
func URL(doi string) string {
	norm, ok := NormalizeDOI(doi)
	if !ok {
		return ""
	}
	return "https://doi.org/" + norm
}
