// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxivid turns free-form user input (bare identifiers, prefixed
// identifiers, arXiv URLs) into canonical arXiv identifiers.
package arxivid

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidIdentifier is returned when the input matches no known shape.
var ErrInvalidIdentifier = errors.New("invalid arXiv ID or URL")

// Shape classifies which input form produced an identifier.
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapePrefixedShort
	ShapePrefixedLong
	ShapeURLShort
	ShapeURLLong
	ShapeBareShort
	ShapeBareLong
)

func (s Shape) String() string {
	switch s {
	case ShapePrefixedShort:
		return "prefixed"
	case ShapePrefixedLong:
		return "prefixed-legacy"
	case ShapeURLShort:
		return "url"
	case ShapeURLLong:
		return "url-legacy"
	case ShapeBareShort:
		return "bare"
	case ShapeBareLong:
		return "bare-legacy"
	default:
		return "unknown"
	}
}

// Base URLs for links derived from an identifier.
var (
	absBase = "https://arxiv.org/abs/"
	pdfBase = "https://arxiv.org/pdf/"
)

const (
	// shortID is the post-2007 form: "2101.00001", "0704.0001v2".
	shortID = `\d{4}\.\d{4,5}(?:v\d+)?`

	// longID is the legacy namespaced form: "hep-th/9901001", "math.AG/0601001v3".
	longID = `[A-Za-z-]+(?:\.[A-Za-z-]+)?/\d{7}(?:v\d+)?`

	prefix  = `(?i:arxiv):`
	urlHead = `(?:https?://)?(?:www\.)?arxiv\.org/(?:abs|pdf|html)/`
)

type rule struct {
	shape   Shape
	pattern *regexp.Regexp
}

// rules are tried in order and the first match wins. Each pattern captures
// the identifier, including any version suffix, in its last group.
var rules = []rule{
	{ShapePrefixedShort, regexp.MustCompile(`^` + prefix + `(` + shortID + `)$`)},
	{ShapePrefixedLong, regexp.MustCompile(`^` + prefix + `(` + longID + `)$`)},
	{ShapeURLShort, regexp.MustCompile(`^` + urlHead + `(` + shortID + `)$`)},
	{ShapeURLLong, regexp.MustCompile(`^` + urlHead + `(` + longID + `)$`)},
	{ShapeBareShort, regexp.MustCompile(`^(` + shortID + `)$`)},
	{ShapeBareLong, regexp.MustCompile(`^(` + longID + `)$`)},
}

// Classify reports the shape of input and its canonical identifier.
// Surrounding whitespace is ignored. Unmatched input yields ShapeUnknown
// and the trimmed input.
func Classify(input string) (Shape, string) {
	input = strings.TrimSpace(input)
	for _, r := range rules {
		if m := r.pattern.FindStringSubmatch(input); m != nil {
			return r.shape, m[len(m)-1]
		}
	}
	return ShapeUnknown, input
}

// Normalize returns the canonical identifier for input or an error wrapping
// ErrInvalidIdentifier that names the offending text.
func Normalize(input string) (string, error) {
	shape, id := Classify(input)
	if shape == ShapeUnknown {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, input)
	}
	return id, nil
}

// AbsURL returns the abstract page for a canonical identifier.
func AbsURL(id string) string {
	return absBase + id
}

// PDFURL returns the PDF endpoint for a canonical identifier.
func PDFURL(id string) string {
	return pdfBase + id
}

// FromEntryID extracts the identifier from an Atom entry id such as
// "http://arxiv.org/abs/hep-th/9901001v1". It returns the text after the
// last "abs/" segment, or "" when there is none.
func FromEntryID(entryID string) string {
	const marker = "abs/"
	idx := strings.LastIndex(entryID, marker)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(entryID[idx+len(marker):])
}

// StripVersion drops a trailing "vN" suffix.
func StripVersion(id string) string {
	if i := strings.LastIndex(id, "v"); i > 0 && i < len(id)-1 {
		for _, c := range id[i+1:] {
			if c < '0' || c > '9' {
				return id
			}
		}
		return id[:i]
	}
	return id
}
