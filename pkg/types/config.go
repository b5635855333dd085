// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Defaults for the shared metadata file.
const (
	DefaultMetadataURL = "https://drive.google.com/uc?id=1w4aR_Z6fY4HAWFk1seYf6ELbZYb3GSmZ"
	DefaultDataDir     = "clockmeta_data"
	DefaultFileName    = "all_clock_metadata.pt"
	DefaultUserAgent   = "clockmeta/0.1"
	DefaultTimeout     = 60 * time.Second
	DefaultMaxResults  = 20
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "clockmeta/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// MetadataConfig holds settings for locating and fetching the metadata file.
type MetadataConfig struct {
	HTTPConfig `yaml:",inline"`

	// URL is where the metadata file is downloaded from when it is not on disk.
	URL string `json:"url" yaml:"url"`

	// DataDir is the local directory holding the downloaded file.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// FileName is the metadata file name inside DataDir. Its extension
	// selects the decoder (.pt, .json, .yaml).
	FileName string `json:"file_name" yaml:"file_name"`

	// Token is an optional bearer token sent with the download request.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// Verbose enables debug-level log lines.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// WithDefaults returns a copy of cfg with empty fields filled in.
func (cfg MetadataConfig) WithDefaults() MetadataConfig {
	if cfg.URL == "" {
		cfg.URL = DefaultMetadataURL
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	if cfg.FileName == "" {
		cfg.FileName = DefaultFileName
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg
}

// IndexConfig holds settings for the full-text clock index.
type IndexConfig struct {
	// DataDir is the base directory; the database lives in DataDir/index/.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
