// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package note renders the Markdown note written next to an imported paper.
//
// Templates use {{ token }} placeholders, matched case-insensitively with
// optional whitespace inside the braces. Recognized tokens:
//
//	paper_id          canonical identifier
//	title             paper title
//	authors           comma-joined names, or a "- name" list when the token
//	                  stands alone on its line
//	date, published   publication date as YYYY-MM-DD
//	abstract          abstract
//	comments          author comments
//	pdf_link, source  [[vault path]] of the PDF, or its remote URL when no
//	                  PDF was written
//	created, today    render date as YYYY-MM-DD
//	link              abstract page URL
//
// Anything else between double braces is left untouched. Inside a leading
// "---" frontmatter block a token written as "{{ token }}" (wrapped in
// double quotes) is replaced by a YAML double-quoted scalar, so quotes and
// backslashes in titles or comments keep the frontmatter valid.
package note

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/paper-importer/internal/arxivid"
	"github.com/pdiddy/paper-importer/pkg/types"
)

const dateLayout = "2006-01-02"

var (
	tokenPattern = regexp.MustCompile(`(?i)\{\{\s*([a-z_]+)\s*\}\}`)

	// quotedToken is tokenPattern with an optional double quote on each side.
	quotedToken = regexp.MustCompile(`(?i)("?)\{\{\s*([a-z_]+)\s*\}\}("?)`)

	// authorsLine matches an authors token that is the only thing on its line.
	authorsLine = regexp.MustCompile(`(?im)^([ \t]*)\{\{\s*authors\s*\}\}[ \t]*$`)
)

// Input is what a note is rendered from.
type Input struct {
	Paper *types.Paper

	// PDFPath is the vault path of the written PDF; empty for metadata-only imports.
	PDFPath string

	// Now is the render time used for created/today.
	Now time.Time
}

// Render substitutes every recognized token in tpl.
func Render(tpl Template, in Input) string {
	p := in.Paper
	authors := p.Authors
	if len(authors) == 0 {
		authors = []string{types.UnknownAuthor}
	}

	text := authorsLine.ReplaceAllStringFunc(tpl.Text, func(line string) string {
		indent := authorsLine.FindStringSubmatch(line)[1]
		items := make([]string, len(authors))
		for i, a := range authors {
			items[i] = indent + "- " + a
		}
		return strings.Join(items, "\n")
	})

	values := map[string]string{
		"paper_id":  p.ID,
		"title":     p.Title,
		"authors":   strings.Join(authors, ", "),
		"date":      formatPublished(p),
		"published": formatPublished(p),
		"abstract":  p.Abstract,
		"comments":  p.Comments,
		"pdf_link":  pdfLink(p, in.PDFPath),
		"source":    pdfLink(p, in.PDFPath),
		"created":   in.Now.Format(dateLayout),
		"today":     in.Now.Format(dateLayout),
		"link":      arxivid.AbsURL(p.ID),
	}

	front, body := splitFrontmatter(text)
	front = quotedToken.ReplaceAllStringFunc(front, func(tok string) string {
		m := quotedToken.FindStringSubmatch(tok)
		v, ok := values[strings.ToLower(m[2])]
		if !ok {
			return tok
		}
		if m[1] == `"` && m[3] == `"` {
			return strconv.Quote(v)
		}
		return m[1] + v + m[3]
	})
	body = tokenPattern.ReplaceAllStringFunc(body, func(tok string) string {
		name := strings.ToLower(tokenPattern.FindStringSubmatch(tok)[1])
		if v, ok := values[name]; ok {
			return v
		}
		return tok
	})
	return front + body
}

// splitFrontmatter returns the leading "---" block up to, not including,
// its closing "---" line, and the rest. front is empty when text has no
// frontmatter.
func splitFrontmatter(text string) (front, body string) {
	start := 0
	switch {
	case strings.HasPrefix(text, "---\n"):
		start = len("---\n")
	case strings.HasPrefix(text, "---\r\n"):
		start = len("---\r\n")
	default:
		return "", text
	}
	end := strings.Index(text[start:], "\n---")
	if end < 0 {
		return "", text
	}
	end += start + 1
	return text[:end], text[end:]
}

func formatPublished(p *types.Paper) string {
	if t, ok := p.PublishedTime(); ok {
		return t.Format(dateLayout)
	}
	return p.Published
}

func pdfLink(p *types.Paper, pdfPath string) string {
	if pdfPath != "" {
		return "[[" + pdfPath + "]]"
	}
	return p.PDFURL
}
