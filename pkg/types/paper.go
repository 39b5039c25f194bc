// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the import pipeline:
// the Paper record built from an arXiv entry and the vault Settings.
package types

import "time"

// Default values used when the arXiv entry omits a field.
const (
	UnknownAuthor      = "Unknown author"
	NoAbstract         = "No abstract available"
	UnknownRemoteError = "Unknown error"
)

// Paper holds the metadata of one arXiv paper. It is built once per import
// and never modified afterwards.
type Paper struct {
	// ID is the canonical identifier echoed by the entry (e.g. "2101.00001v1").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title. Never empty and never the API error sentinel.
	Title string `json:"title" yaml:"title"`

	// Authors lists the author display names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the publication timestamp exactly as the API returned it.
	// It may be empty.
	Published string `json:"published" yaml:"published"`

	// Abstract is the whitespace-normalized summary.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Comments is the free-text author comment, possibly empty.
	Comments string `json:"comments,omitempty" yaml:"comments,omitempty"`

	// PDFURL is the https link to the PDF, possibly empty.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`
}

// PublishedTime parses Published as RFC 3339. The boolean is false when the
// field is empty or not a timestamp.
func (p *Paper) PublishedTime() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, p.Published)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
