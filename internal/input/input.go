// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package input reads the newline-delimited identifier list that seeds the
// report pipeline.
package input

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// headerToken is the literal column header some exported PMID lists carry.
// It is dropped wherever it appears, not just on the first line.
const headerToken = "pmid"

// Load reads path and returns the trimmed, non-empty lines in file order.
// Duplicates are preserved; entries are not validated as numeric PMIDs.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening identifier list: %w", err)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == headerToken {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading identifier list: %w", err)
	}
	return ids, nil
}
