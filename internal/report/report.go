// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report joins the fetcher outputs by PMID and writes the
// tab-separated report.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pubinfo/pkg/types"
)

// columns is the fixed report header. Publisher, Funding Support, and Study
// Type are reserved for future population and always emitted empty.
var columns = []string{
	"PMID",
	"Journal Name",
	"Journal Pub Date",
	"Electronic Date",
	"Citations",
	"Publisher",
	"Funding Support",
	"Study Type",
	"MeSH Terms",
}

// Write emits the header row followed by one row per identifier, in input
// order. An identifier absent from citations gets an empty Citations column;
// an identifier absent from metadata is an error.
func Write(w io.Writer, ids []string, citations map[string]string, metadata map[string]types.Metadata) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(columns, "\t") + "\n"); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}

	for _, id := range ids {
		md, ok := metadata[id]
		if !ok {
			return fmt.Errorf("no metadata record for %s", id)
		}
		row := []string{
			id,
			md.JournalTitle,
			md.JournalDate,
			md.ElectronicDate,
			citations[id],
			"",
			"",
			"",
			md.MeshTerms,
		}
		if _, err := bw.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return fmt.Errorf("writing report row for %s: %w", id, err)
		}
	}
	return bw.Flush()
}
