// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scopus fetches citation counts from the Elsevier Scopus search API.
package scopus

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pubinfo/pkg/types"
)

// BaseURL is the Scopus search endpoint. Declared as a var so tests can
// substitute an httptest server.
var BaseURL = "https://api.elsevier.com/content/search/scopus"

// batchSize is the maximum number of PMIDs per search query, an external
// constraint of the Scopus API.
const batchSize = 50

// Client queries the Scopus search API.
type Client struct {
	HTTP   *http.Client
	APIKey string
	Log    *logrus.Logger
}

// FetchCitations returns a map from PMID to citation-count string for the
// given identifiers. Identifiers are queried in batches of at most 50, one
// request per batch, issued strictly in sequence. Identifiers with no
// matching Scopus entry are absent from the map; the report stage resolves
// those to empty strings.
func (c *Client) FetchCitations(ctx context.Context, ids []string, cfg types.HTTPConfig) (map[string]string, error) {
	counts := make(map[string]string)
	batches := (len(ids) + batchSize - 1) / batchSize

	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]

		c.Log.WithFields(logrus.Fields{
			"batch": start/batchSize + 1,
			"of":    batches,
			"size":  len(chunk),
		}).Debug("querying scopus")

		if err := c.fetchBatch(ctx, chunk, cfg, counts); err != nil {
			return nil, err
		}
	}
	return counts, nil
}

func (c *Client) fetchBatch(ctx context.Context, chunk []string, cfg types.HTTPConfig, counts map[string]string) error {
	params := url.Values{
		"apiKey":     {c.APIKey},
		"field":      {"citedby-count,pubmed-id"},
		"httpAccept": {"application/json"},
		"count":      {strconv.Itoa(batchSize)},
		"query":      {"PMID(" + strings.Join(chunk, " OR ") + ")"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("scopus API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("scopus API returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return fmt.Errorf("parsing scopus response: %w", err)
	}

	// Pointer fields distinguish a missing key from an empty list: an
	// absent "search-results" or "entry" means the response is not the
	// shape we queried for.
	if sr.SearchResults == nil {
		return fmt.Errorf("scopus response missing %q", "search-results")
	}
	if sr.SearchResults.Entries == nil {
		return fmt.Errorf("scopus response missing %q", "entry")
	}

	for _, e := range *sr.SearchResults.Entries {
		counts[e.PubmedID] = e.CitedByCount
	}
	return nil
}

// Scopus search API JSON structures.
type searchResponse struct {
	SearchResults *searchResults `json:"search-results"`
}

type searchResults struct {
	Entries *[]searchEntry `json:"entry"`
}

type searchEntry struct {
	PubmedID     string `json:"pubmed-id"`
	CitedByCount string `json:"citedby-count"`
}
