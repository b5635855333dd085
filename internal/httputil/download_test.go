// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_WritesFile(t *testing.T) {
	var gotUA, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"horvath": {"year": 2013}}`)
	}))
	defer ts.Close()

	dest := filepath.Join(t.TempDir(), "meta.json")
	n, err := Fetch(context.Background(), ts.Client(), Download{
		URL:       ts.URL,
		Dest:      dest,
		UserAgent: "clockmeta/test",
		Token:     "s3cret",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)
	assert.Contains(t, string(data), "horvath")
	assert.Equal(t, "clockmeta/test", gotUA)
	assert.Equal(t, "Bearer s3cret", gotAuth)
}

func TestFetch_NoAuthHeaderWithoutToken(t *testing.T) {
	var hadAuth bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		fmt.Fprint(w, "ok")
	}))
	defer ts.Close()

	_, err := Fetch(context.Background(), ts.Client(), Download{URL: ts.URL, Dest: filepath.Join(t.TempDir(), "f")})
	require.NoError(t, err)
	assert.False(t, hadAuth)
}

func TestFetch_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "meta.json")
	_, err := Fetch(context.Background(), ts.Client(), Download{URL: ts.URL, Dest: dest})
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no temp files should remain")
}

func TestFetch_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := Fetch(context.Background(), http.DefaultClient, Download{URL: url, Dest: filepath.Join(t.TempDir(), "f")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP request")
}

func TestFetch_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "ok")
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Fetch(ctx, ts.Client(), Download{URL: ts.URL, Dest: filepath.Join(t.TempDir(), "f")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetch_ReportsProgress(t *testing.T) {
	body := strings.Repeat("x", 4096)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", fmt.Sprint(len(body)))
		fmt.Fprint(w, body)
	}))
	defer ts.Close()

	var lastWritten, lastTotal int64
	calls := 0
	_, err := Fetch(context.Background(), ts.Client(), Download{
		URL:  ts.URL,
		Dest: filepath.Join(t.TempDir(), "f"),
		Progress: func(written, total int64) {
			calls++
			lastWritten, lastTotal = written, total
		},
	})
	require.NoError(t, err)
	assert.Positive(t, calls)
	assert.Equal(t, int64(4096), lastWritten)
	assert.Equal(t, int64(4096), lastTotal)
}
