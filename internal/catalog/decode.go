// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nlpodyssey/gopickle/pytorch"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/clockmeta/pkg/types"
)

// Format identifies the on-disk encoding of a metadata file.
type Format string

const (
	FormatTorch Format = "torch"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// DetectFormat picks the decoder from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pt", ".pth":
		return FormatTorch, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported metadata file extension %q", filepath.Ext(path))
	}
}

// Decode reads the metadata file at path.
func Decode(path string) (types.Catalog, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	if format == FormatTorch {
		obj, err := pytorch.Load(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return fromPickle(obj)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeReader(f, format)
}

// DecodeReader decodes JSON or YAML metadata from r.
func DecodeReader(r io.Reader, format Format) (types.Catalog, error) {
	raw := map[string]map[string]any{}
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parsing JSON metadata: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
			return nil, fmt.Errorf("parsing YAML metadata: %w", err)
		}
	default:
		return nil, fmt.Errorf("format %q cannot be decoded from a stream", format)
	}

	cat := make(types.Catalog, len(raw))
	origin := make(map[string]string, len(raw))
	for name, fields := range raw {
		meta := make(types.ClockMetadata, len(fields))
		for k, v := range fields {
			meta[k] = v
		}
		if err := addClock(cat, origin, name, meta); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// addClock stores meta under the catalog key for name. Two source names
// that share a key are rejected so no clock is silently dropped.
func addClock(cat types.Catalog, origin map[string]string, name string, meta types.ClockMetadata) error {
	key := types.NormalizeName(name)
	if prev, dup := origin[key]; dup {
		a, b := prev, name
		if b < a {
			a, b = b, a
		}
		return fmt.Errorf("clock names %q and %q both map to %q", a, b, key)
	}
	origin[key] = name
	cat[key] = meta
	return nil
}

// pickleDict and pickleSeq describe the gopickle container values by the
// methods this package needs.
type pickleDict interface {
	Keys() []interface{}
	Get(key interface{}) (interface{}, bool)
}

type pickleSeq interface {
	Len() int
	Get(i int) interface{}
}

func fromPickle(obj interface{}) (types.Catalog, error) {
	top, ok := obj.(pickleDict)
	if !ok {
		return nil, fmt.Errorf("metadata file holds %T, want a dict", obj)
	}

	cat := make(types.Catalog)
	origin := make(map[string]string)
	for _, k := range top.Keys() {
		name, ok := k.(string)
		if !ok {
			return nil, fmt.Errorf("clock name %v is %T, want string", k, k)
		}
		v, _ := top.Get(k)
		fields, ok := v.(pickleDict)
		if !ok {
			return nil, fmt.Errorf("metadata for %s is %T, want a dict", name, v)
		}
		meta := make(types.ClockMetadata)
		for _, fk := range fields.Keys() {
			fv, _ := fields.Get(fk)
			meta[fmt.Sprint(fk)] = convertPickle(fv)
		}
		if err := addClock(cat, origin, name, meta); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// convertPickle turns unpickled containers into plain Go maps and slices.
func convertPickle(v interface{}) any {
	switch t := v.(type) {
	case pickleDict:
		m := make(map[string]any)
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			m[fmt.Sprint(k)] = convertPickle(val)
		}
		return m
	case pickleSeq:
		out := make([]any, t.Len())
		for i := range out {
			out[i] = convertPickle(t.Get(i))
		}
		return out
	default:
		return v
	}
}
