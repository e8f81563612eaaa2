// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared records and configuration passed between
// pipeline stages.
package types

// Metadata holds the per-publication fields extracted from a PubMed EFetch
// record. Fields that could not be composed from the record are empty
// strings rather than partially filled values.
type Metadata struct {
	// JournalTitle is the full journal name.
	JournalTitle string

	// JournalDate is the print publication date, formatted "YYYY Month Day"
	// exactly as the components appear in the record.
	JournalDate string

	// ElectronicDate is the electronic publication date, formatted
	// "YYYY/Month/Day".
	ElectronicDate string

	// MeshTerms is the serialized MeSH heading list: within one heading the
	// descriptor and qualifier UIs are joined with ";", headings are joined
	// with "|" (e.g. "D001;D002|D003").
	MeshTerms string
}
