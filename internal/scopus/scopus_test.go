// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pubinfo/pkg/types"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testCfg() types.HTTPConfig {
	return types.HTTPConfig{UserAgent: "pubinfo-test/0.1"}
}

// emptyResults is a well-shaped response with no entries.
const emptyResults = `{"search-results":{"entry":[]}}`

func manyIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%d", 1000+i)
	}
	return ids
}

// --- Request construction (URL params, headers) ---

func TestFetchCitationsRequestParams(t *testing.T) {
	var capturedReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, emptyResults)
	}))
	defer ts.Close()

	old := BaseURL
	BaseURL = ts.URL
	defer func() { BaseURL = old }()

	c := &Client{HTTP: ts.Client(), APIKey: "test-key", Log: testLogger()}
	_, err := c.FetchCitations(context.Background(), []string{"100", "200"}, testCfg())
	if err != nil {
		t.Fatalf("FetchCitations: %v", err)
	}

	q := capturedReq.URL.Query()
	if got := q.Get("apiKey"); got != "test-key" {
		t.Errorf("apiKey param = %q, want %q", got, "test-key")
	}
	if got := q.Get("field"); got != "citedby-count,pubmed-id" {
		t.Errorf("field param = %q, want %q", got, "citedby-count,pubmed-id")
	}
	if got := q.Get("httpAccept"); got != "application/json" {
		t.Errorf("httpAccept param = %q, want %q", got, "application/json")
	}
	if got := q.Get("count"); got != "50" {
		t.Errorf("count param = %q, want %q", got, "50")
	}
	if got := q.Get("query"); got != "PMID(100 OR 200)" {
		t.Errorf("query param = %q, want %q", got, "PMID(100 OR 200)")
	}
	if got := capturedReq.Header.Get("User-Agent"); got != "pubinfo-test/0.1" {
		t.Errorf("User-Agent = %q, want %q", got, "pubinfo-test/0.1")
	}
}

// --- Batching ---

func TestFetchCitationsBatching(t *testing.T) {
	tests := []struct {
		n           int
		wantBatches int
	}{
		{0, 0},
		{1, 1},
		{49, 1},
		{50, 1},
		{51, 2},
		{120, 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d ids", tt.n), func(t *testing.T) {
			var queries []string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				queries = append(queries, r.URL.Query().Get("query"))
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, emptyResults)
			}))
			defer ts.Close()

			old := BaseURL
			BaseURL = ts.URL
			defer func() { BaseURL = old }()

			ids := manyIDs(tt.n)
			c := &Client{HTTP: ts.Client(), APIKey: "k", Log: testLogger()}
			_, err := c.FetchCitations(context.Background(), ids, testCfg())
			if err != nil {
				t.Fatalf("FetchCitations: %v", err)
			}
			if len(queries) != tt.wantBatches {
				t.Fatalf("issued %d batches, want %d", len(queries), tt.wantBatches)
			}

			// Each batch query carries exactly its chunk, in order.
			pos := 0
			for i, q := range queries {
				if !strings.HasPrefix(q, "PMID(") || !strings.HasSuffix(q, ")") {
					t.Fatalf("batch %d query = %q, want PMID(...)", i, q)
				}
				got := strings.Split(q[len("PMID("):len(q)-1], " OR ")
				for _, id := range got {
					if id != ids[pos] {
						t.Fatalf("batch %d contains %q at position %d, want %q", i, id, pos, ids[pos])
					}
					pos++
				}
			}
			if pos != tt.n {
				t.Errorf("batches covered %d ids, want %d", pos, tt.n)
			}
		})
	}
}

// --- Response mapping ---

func TestFetchCitationsMapsEntries(t *testing.T) {
	resp := `{"search-results":{"entry":[
		{"pubmed-id":"100","citedby-count":"5"},
		{"pubmed-id":"300","citedby-count":"0"}
	]}}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, resp)
	}))
	defer ts.Close()

	old := BaseURL
	BaseURL = ts.URL
	defer func() { BaseURL = old }()

	c := &Client{HTTP: ts.Client(), APIKey: "k", Log: testLogger()}
	counts, err := c.FetchCitations(context.Background(), []string{"100", "200", "300"}, testCfg())
	if err != nil {
		t.Fatalf("FetchCitations: %v", err)
	}

	if got := counts["100"]; got != "5" {
		t.Errorf("counts[100] = %q, want %q", got, "5")
	}
	if got := counts["300"]; got != "0" {
		t.Errorf("counts[300] = %q, want %q", got, "0")
	}
	// No entry for 200: absent from the map, not empty-valued.
	if _, ok := counts["200"]; ok {
		t.Errorf("counts[200] present, want absent")
	}
}

func TestFetchCitationsNoRequestsForEmptyList(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		fmt.Fprint(w, emptyResults)
	}))
	defer ts.Close()

	old := BaseURL
	BaseURL = ts.URL
	defer func() { BaseURL = old }()

	c := &Client{HTTP: ts.Client(), APIKey: "k", Log: testLogger()}
	counts, err := c.FetchCitations(context.Background(), nil, testCfg())
	if err != nil {
		t.Fatalf("FetchCitations: %v", err)
	}
	if requests != 0 {
		t.Errorf("issued %d requests, want 0", requests)
	}
	if len(counts) != 0 {
		t.Errorf("len(counts) = %d, want 0", len(counts))
	}
}

// --- Error cases ---

func TestFetchCitationsResponseShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"missing search-results", `{"unexpected":{}}`, `missing "search-results"`},
		{"missing entry", `{"search-results":{"opensearch:totalResults":"0"}}`, `missing "entry"`},
		{"malformed JSON", `{not json`, "parsing scopus response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			old := BaseURL
			BaseURL = ts.URL
			defer func() { BaseURL = old }()

			c := &Client{HTTP: ts.Client(), APIKey: "k", Log: testLogger()}
			_, err := c.FetchCitations(context.Background(), []string{"100"}, testCfg())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestFetchCitationsHTTPErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    string
	}{
		{"401 unauthorized", http.StatusUnauthorized, "HTTP 401"},
		{"429 rate limit", http.StatusTooManyRequests, "HTTP 429"},
		{"500 server error", http.StatusInternalServerError, "HTTP 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer ts.Close()

			old := BaseURL
			BaseURL = ts.URL
			defer func() { BaseURL = old }()

			c := &Client{HTTP: ts.Client(), APIKey: "k", Log: testLogger()}
			_, err := c.FetchCitations(context.Background(), []string{"100"}, testCfg())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// A failing batch aborts the whole fetch; earlier batches are not salvaged.
func TestFetchCitationsNoPartialResults(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		if requests == 1 {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"search-results":{"entry":[{"pubmed-id":"1000","citedby-count":"9"}]}}`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	old := BaseURL
	BaseURL = ts.URL
	defer func() { BaseURL = old }()

	c := &Client{HTTP: ts.Client(), APIKey: "k", Log: testLogger()}
	counts, err := c.FetchCitations(context.Background(), manyIDs(60), testCfg())
	if err == nil {
		t.Fatal("expected error")
	}
	if counts != nil {
		t.Errorf("counts = %v, want nil on failure", counts)
	}
	if requests != 2 {
		t.Errorf("issued %d requests, want 2 (no retries)", requests)
	}
}
