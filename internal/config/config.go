// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads API credentials from a JSON file.
// The file is a flat JSON object; the "scopus" key holds the Scopus API key.
// The PUBINFO_SCOPUS environment variable overrides the file value.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// scopusKey is the required credentials entry for the citation-count API.
const scopusKey = "scopus"

// Credentials holds the API keys the pipeline needs.
type Credentials struct {
	// ScopusKey authenticates requests to the Scopus search API.
	ScopusKey string
}

// Load reads the credentials file at path. A missing file or a missing or
// empty "scopus" key is an error, reported before any network call is made.
func Load(path string) (Credentials, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix("PUBINFO")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Credentials{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	key := v.GetString(scopusKey)
	if key == "" {
		return Credentials{}, fmt.Errorf("config file %s: missing required key %q", path, scopusKey)
	}
	return Credentials{ScopusKey: key}, nil
}
