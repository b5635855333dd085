// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file holds one secret: the filename is the key and the trimmed file
// contents are the value.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Known key files.
const (
	// MetadataToken is a bearer token for a private mirror of the metadata file.
	MetadataToken = "metadata-token"

	// CrossRefMailto is the contact address sent to CrossRef's polite pool.
	CrossRefMailto = "crossref-mailto"
)

// Set holds loaded secrets keyed by file name.
type Set map[string]string

// Get returns override when it is non-empty and the secret for key
// otherwise. Values from flags or config win over files.
func (s Set) Get(key, override string) string {
	if override != "" {
		return override
	}
	return s[key]
}

// Load reads all files in dir. A missing directory is not an error and
// yields an empty Set. Unreadable files produce a warning on warn but do
// not abort.
func Load(dir string, warn io.Writer) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	set := make(Set)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			set[name] = value
		}
	}
	return set, nil
}
