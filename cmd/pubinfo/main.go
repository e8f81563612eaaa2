// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubinfo CLI. It reads a PMID
// list, fetches Scopus citation counts and PubMed metadata, and writes the
// merged tab-separated report.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pubinfo/internal/config"
	"github.com/pdiddy/pubinfo/internal/pipeline"
	"github.com/pdiddy/pubinfo/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "pubinfo/0.1"
)

var rootCmd = &cobra.Command{
	Use:   "pubinfo",
	Short: "Build a citation and metadata report for a list of PMIDs",
	Long: `pubinfo reads a newline-delimited list of PubMed identifiers, fetches
citation counts from the Scopus search API and publication metadata (journal
name, publication dates, MeSH terms) from the NCBI EFetch API, and merges
the results into a single tab-separated report.

The report goes to --output when given, otherwise to standard output.`,
	RunE: runReport,
}

func init() {
	rootCmd.Flags().StringP("input", "i", "", "location of the PMID list file")
	rootCmd.Flags().StringP("output", "o", "", "location of the output file (default: stdout)")
	rootCmd.Flags().StringP("config", "c", "", "credentials file, see example formatting in the conf directory")
	rootCmd.MarkFlagRequired("input")
	rootCmd.MarkFlagRequired("config")
}

func runReport(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	configPath, _ := cmd.Flags().GetString("config")

	log := logrus.New()
	log.SetOutput(os.Stderr)

	// Credentials problems surface before any network call.
	creds, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// The destination is decided once; rows are never split across targets.
	out := io.Writer(os.Stdout)
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	opts := pipeline.Options{
		InputPath: inputPath,
		ScopusKey: creds.ScopusKey,
		HTTP: types.HTTPConfig{
			Timeout:   defaultTimeout,
			UserAgent: defaultUserAgent,
		},
	}
	client := &http.Client{Timeout: opts.HTTP.Timeout}

	return pipeline.Run(cmd.Context(), client, opts, out, log)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
