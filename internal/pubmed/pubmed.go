// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed fetches publication metadata from the NCBI E-utilities
// EFetch API and extracts the report fields from the returned XML.
package pubmed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pubinfo/pkg/types"
)

// BaseURL is the EFetch endpoint. Declared as a var so tests can substitute
// an httptest server.
var BaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"

// Client queries the EFetch API.
type Client struct {
	HTTP *http.Client
	Log  *logrus.Logger
}

// FetchMetadata posts the full identifier list in a single request and
// returns a map from PMID to the extracted metadata record. Identifiers the
// API returns no article for are absent from the map.
//
// A record's PMID and journal title must be present; a missing date or MeSH
// component degrades that field to an empty string instead.
func (c *Client) FetchMetadata(ctx context.Context, ids []string, cfg types.HTTPConfig) (map[string]types.Metadata, error) {
	form := url.Values{
		"id":      ids,
		"db":      {"pubmed"},
		"retmode": {"xml"},
		"rettype": {"abstract"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", cfg.UserAgent)

	c.Log.WithField("identifiers", len(ids)).Debug("querying efetch")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("efetch API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("efetch API returned HTTP %d", resp.StatusCode)
	}

	return parseArticleSet(resp.Body)
}

// parseArticleSet decodes a PubmedArticleSet document and extracts one
// metadata record per article.
func parseArticleSet(r io.Reader) (map[string]types.Metadata, error) {
	var set articleSet
	if err := xml.NewDecoder(r).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}

	records := make(map[string]types.Metadata, len(set.Articles))
	for _, article := range set.Articles {
		cit := article.Citation

		pmid := strings.TrimSpace(cit.PMID)
		if pmid == "" {
			return nil, fmt.Errorf("efetch response: article missing PMID")
		}
		title := cit.Article.Journal.Title
		if title == "" {
			return nil, fmt.Errorf("efetch response: article %s missing journal title", pmid)
		}

		pd := cit.Article.Journal.JournalIssue.PubDate
		var electronic dateParts
		if cit.Article.ArticleDate != nil {
			electronic = *cit.Article.ArticleDate
		}

		records[pmid] = types.Metadata{
			JournalTitle:   title,
			JournalDate:    composeDate(" ", pd),
			ElectronicDate: composeDate("/", electronic),
			MeshTerms:      composeMeshTerms(cit.MeshHeadingList),
		}
	}
	return records, nil
}

// composeDate joins Year, Month, and Day with sep. The date is all or
// nothing: any absent component collapses the whole field to "".
func composeDate(sep string, d dateParts) string {
	if d.Year == "" || d.Month == "" || d.Day == "" {
		return ""
	}
	return d.Year + sep + d.Month + sep + d.Day
}

// composeMeshTerms serializes the heading list: within a heading the
// descriptor UI and qualifier UIs are joined with ";", headings with "|".
// A missing list collapses the field to "".
func composeMeshTerms(list *meshHeadingList) string {
	if list == nil {
		return ""
	}
	groups := make([]string, 0, len(list.Headings))
	for _, h := range list.Headings {
		uis := []string{h.Descriptor.UI}
		for _, q := range h.Qualifiers {
			uis = append(uis, q.UI)
		}
		groups = append(groups, strings.Join(uis, ";"))
	}
	return strings.Join(groups, "|")
}

// PubMed EFetch XML structures. Pointer fields mark the blocks whose absence
// is tolerated.
type articleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID            string           `xml:"PMID"`
	Article         articleElem      `xml:"Article"`
	MeshHeadingList *meshHeadingList `xml:"MeshHeadingList"`
}

type articleElem struct {
	Journal     journalElem `xml:"Journal"`
	ArticleDate *dateParts  `xml:"ArticleDate"`
}

type journalElem struct {
	Title        string           `xml:"Title"`
	JournalIssue journalIssueElem `xml:"JournalIssue"`
}

type journalIssueElem struct {
	PubDate dateParts `xml:"PubDate"`
}

type dateParts struct {
	Year  string `xml:"Year"`
	Month string `xml:"Month"`
	Day   string `xml:"Day"`
}

type meshHeadingList struct {
	Headings []meshHeading `xml:"MeshHeading"`
}

type meshHeading struct {
	Descriptor meshTerm   `xml:"DescriptorName"`
	Qualifiers []meshTerm `xml:"QualifierName"`
}

type meshTerm struct {
	UI string `xml:"UI,attr"`
}
