// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Set
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, MetadataToken, "  tok_abc123  \n")
				writeFile(t, dir, CrossRefMailto, "lab@example.org\n")
				return dir
			},
			want: Set{
				MetadataToken:  "tok_abc123",
				CrossRefMailto: "lab@example.org",
			},
		},
		{
			name: "returns empty set for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Set{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, MetadataToken, "valid")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: Set{MetadataToken: "valid"},
		},
		{
			name: "skips dotfiles and directories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "x")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
				writeFile(t, dir, CrossRefMailto, "a@b.c")
				return dir
			},
			want: Set{CrossRefMailto: "a@b.c"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var warn bytes.Buffer
			got, err := Load(tt.setup(t), &warn)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, warn.String())
		})
	}
}

func TestLoadUnreadableFileWarns(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	dir := t.TempDir()
	writeFile(t, dir, MetadataToken, "secret")
	require.NoError(t, os.Chmod(filepath.Join(dir, MetadataToken), 0o000))

	var warn bytes.Buffer
	got, err := Load(dir, &warn)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Contains(t, warn.String(), "could not read secret "+MetadataToken)
}

func TestLoadNotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file", "x")
	_, err := Load(filepath.Join(dir, "file"), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestSetGetOverridePrecedence(t *testing.T) {
	s := Set{MetadataToken: "from-file"}
	tests := []struct {
		name     string
		key      string
		override string
		want     string
	}{
		{"file value when no override", MetadataToken, "", "from-file"},
		{"override beats file", MetadataToken, "from-flag", "from-flag"},
		{"override without file", CrossRefMailto, "me@example.org", "me@example.org"},
		{"neither", CrossRefMailto, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Get(tt.key, tt.override))
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
