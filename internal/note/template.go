// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package note

import (
	"errors"
	"fmt"

	"github.com/pdiddy/paper-importer/internal/vault"
)

// DefaultTemplate is the built-in note template.
const DefaultTemplate = `---
paper_id: "{{paper_id}}"
title: "{{title}}"
authors:
  {{authors}}
published: {{date}}
created: {{created}}
link: "{{link}}"
pdf: "{{pdf_link}}"
comments: "{{comments}}"
tags:
  - paper
---

# {{title}}

## Abstract

{{abstract}}

## Notes

`

// SourceBuiltin marks a Template that did not come from a file.
const SourceBuiltin = "builtin"

// ErrTemplateUnavailable is returned alongside the built-in template when
// a configured template file cannot be read.
var ErrTemplateUnavailable = errors.New("template file unavailable")

// Template is note text containing {{ token }} placeholders.
type Template struct {
	Text string

	// Source is the vault path the text was read from, or SourceBuiltin.
	Source string
}

// Builtin returns the built-in template.
func Builtin() Template {
	return Template{Text: DefaultTemplate, Source: SourceBuiltin}
}

// LoadTemplate reads the template at path from v. An empty path selects the
// built-in template. When the file is missing or unreadable, LoadTemplate
// still returns the built-in template together with an error wrapping
// ErrTemplateUnavailable; callers treat that as a warning.
func LoadTemplate(v *vault.Vault, path string) (Template, error) {
	if path == "" {
		return Builtin(), nil
	}
	text, err := v.ReadText(path)
	if err != nil {
		return Builtin(), fmt.Errorf("%w: %s: %v", ErrTemplateUnavailable, path, err)
	}
	return Template{Text: text, Source: path}, nil
}

// CreateTemplateFile writes the built-in template to path so the user can
// edit it. It reports created=false without error when the file exists.
func CreateTemplateFile(v *vault.Vault, path string) (created bool, err error) {
	if path == "" {
		return false, errors.New("no template file path configured")
	}
	exists, err := v.Exists(path)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := v.WriteText(path, DefaultTemplate); err != nil {
		return false, fmt.Errorf("writing template %s: %w", path, err)
	}
	return true, nil
}
