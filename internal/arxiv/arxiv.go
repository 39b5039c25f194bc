// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv fetches paper metadata from the arXiv Atom API.
package arxiv

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/paper-importer/internal/arxivid"
	"github.com/pdiddy/paper-importer/internal/httputil"
	"github.com/pdiddy/paper-importer/pkg/types"
)

// DefaultAPIBase is the arXiv query endpoint.
const DefaultAPIBase = "https://export.arxiv.org/api/query"

// errorTitle is the title the API puts on an entry that reports a failed lookup.
const errorTitle = "Error"

// ErrMalformedResponse is returned when the feed has no entry element.
var ErrMalformedResponse = errors.New("malformed arXiv response")

// RemoteError carries the message the API reported for a failed lookup.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

// Client queries the arXiv API for one identifier at a time.
type Client struct {
	HTTP      *http.Client
	UserAgent string

	// BaseURL overrides DefaultAPIBase. Tests point it at httptest servers.
	BaseURL string
}

// QueryURL returns the metadata query URL for a canonical identifier.
func (c *Client) QueryURL(id string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultAPIBase
	}
	return fmt.Sprintf("%s?id_list=%s", base, url.QueryEscape(id))
}

// Fetch issues one metadata query for id and parses the single entry.
func (c *Client) Fetch(ctx context.Context, id string) (*types.Paper, error) {
	resp, err := httputil.Get(ctx, c.HTTP, c.QueryURL(id), httputil.RequestOptions{
		UserAgent: c.UserAgent,
		Accept:    "application/atom+xml",
	})
	if err != nil {
		if rerr := remoteErrorFrom(err); rerr != nil {
			return nil, rerr
		}
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	paper, err := ParseEntry(resp.Body)
	if err != nil {
		return nil, err
	}
	if paper.ID == "" {
		paper.ID = id
	}
	return paper, nil
}

// remoteErrorFrom returns the RemoteError carried by a 4xx response whose
// body is an arXiv error feed, or nil.
func remoteErrorFrom(err error) error {
	var se *httputil.StatusError
	if !errors.As(err, &se) || se.StatusCode < 400 || se.StatusCode > 499 || len(se.Body) == 0 {
		return nil
	}
	_, perr := ParseEntry(bytes.NewReader(se.Body))
	var rerr *RemoteError
	if errors.As(perr, &rerr) {
		return rerr
	}
	return nil
}

// arXiv Atom feed XML structures.
type feed struct {
	Entries []entry `xml:"entry"`
}

type entry struct {
	ID        string   `xml:"id"`
	Title     *string  `xml:"title"`
	Summary   string   `xml:"summary"`
	Published string   `xml:"published"`
	Comment   string   `xml:"http://arxiv.org/schemas/atom comment"`
	Authors   []author `xml:"author"`
	Links     []link   `xml:"link"`
}

type author struct {
	Name string `xml:"name"`
}

type link struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
}

// ParseEntry decodes an Atom feed and builds a Paper from its first entry.
// The ID field is left empty when the entry carries no abs/ identifier.
func ParseEntry(r io.Reader) (*types.Paper, error) {
	var f feed
	if err := xml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(f.Entries) == 0 {
		return nil, fmt.Errorf("%w: no entry element", ErrMalformedResponse)
	}
	e := f.Entries[0]

	title := ""
	if e.Title != nil {
		title = collapse(*e.Title)
	}
	if title == "" || title == errorTitle {
		msg := strings.TrimSpace(e.Summary)
		if msg == "" {
			msg = types.UnknownRemoteError
		}
		return nil, &RemoteError{Message: msg}
	}

	p := &types.Paper{
		ID:        arxivid.FromEntryID(e.ID),
		Title:     title,
		Published: strings.TrimSpace(e.Published),
		Abstract:  cleanAbstract(e.Summary),
		Comments:  strings.TrimSpace(e.Comment),
		PDFURL:    forceHTTPS(pdfLink(e.Links)),
	}
	p.Authors = make([]string, 0, len(e.Authors))
	for _, a := range e.Authors {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			name = types.UnknownAuthor
		}
		p.Authors = append(p.Authors, name)
	}
	return p, nil
}

func pdfLink(links []link) string {
	for _, l := range links {
		if l.Title == "pdf" {
			return strings.TrimSpace(l.Href)
		}
	}
	return ""
}

func forceHTTPS(u string) string {
	if len(u) >= len("http://") && strings.EqualFold(u[:len("http://")], "http://") {
		return "https://" + u[len("http://"):]
	}
	return u
}

// cleanAbstract trims the summary, joins its lines with spaces and swaps
// double quotes for single quotes so it embeds in quoted frontmatter.
func cleanAbstract(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return types.NoAbstract
	}
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, `"`, "'")
}

// collapse folds the line breaks arXiv inserts into long titles.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
