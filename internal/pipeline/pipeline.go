// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the report stages in sequence: load identifiers,
// fetch citation counts, fetch metadata, write the merged report.
package pipeline

import (
	"context"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pubinfo/internal/input"
	"github.com/pdiddy/pubinfo/internal/pubmed"
	"github.com/pdiddy/pubinfo/internal/report"
	"github.com/pdiddy/pubinfo/internal/scopus"
	"github.com/pdiddy/pubinfo/pkg/types"
)

// Options holds the inputs the pipeline needs beyond its HTTP client.
type Options struct {
	// InputPath is the newline-delimited PMID list.
	InputPath string

	// ScopusKey authenticates citation-count requests.
	ScopusKey string

	// HTTP holds the shared request settings.
	HTTP types.HTTPConfig
}

// Run executes the four stages in order and writes the report to out. Every
// stage error is fatal; there is no retry and no partial output.
func Run(ctx context.Context, client *http.Client, opts Options, out io.Writer, log *logrus.Logger) error {
	ids, err := input.Load(opts.InputPath)
	if err != nil {
		return err
	}
	log.WithField("identifiers", len(ids)).Info("loaded identifier list")

	citations, err := (&scopus.Client{
		HTTP:   client,
		APIKey: opts.ScopusKey,
		Log:    log,
	}).FetchCitations(ctx, ids, opts.HTTP)
	if err != nil {
		return err
	}
	log.WithField("entries", len(citations)).Info("fetched citation counts")

	metadata, err := (&pubmed.Client{
		HTTP: client,
		Log:  log,
	}).FetchMetadata(ctx, ids, opts.HTTP)
	if err != nil {
		return err
	}
	log.WithField("records", len(metadata)).Info("fetched publication metadata")

	return report.Write(out, ids, citations, metadata)
}
