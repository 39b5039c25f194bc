// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-importer/pkg/types"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, types.DefaultSettings(), s)
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("noteFolder: Papers\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Assets", s.PDFFolder)
	assert.Equal(t, "Papers", s.NoteFolder)
	assert.Equal(t, "", s.TemplateFilePath)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PAPER_IMPORTER_PDFFOLDER", "Attachments")

	s, err := Load(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Attachments", s.PDFFolder)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pdfFolder: [unterminated\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".paper-importer", "settings.yaml")
	want := types.Settings{PDFFolder: "PDFs", NoteFolder: "Notes/Papers", TemplateFilePath: "Templates/paper.md"}

	require.NoError(t, Save(path, want))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pdfFolder: PDFs")
	assert.Contains(t, string(data), "templateFilePath: Templates/paper.md")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetSet(t *testing.T) {
	s := types.DefaultSettings()

	s, err := Set(s, "PDFFOLDER", "Files")
	require.NoError(t, err)
	assert.Equal(t, "Files", s.PDFFolder)

	v, err := Get(s, "pdfFolder")
	require.NoError(t, err)
	assert.Equal(t, "Files", v)

	v, err = Get(s, "noteFolder")
	require.NoError(t, err)
	assert.Equal(t, "Literature Notes", v)

	_, err = Set(s, "colour", "blue")
	assert.True(t, errors.Is(err, ErrUnknownKey))
	_, err = Get(s, "colour")
	assert.True(t, errors.Is(err, ErrUnknownKey))
}

func TestUpdateSavesImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	_, err := Update(path, "templateFilePath", "Templates/t.md")
	require.NoError(t, err)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Templates/t.md", s.TemplateFilePath)
	assert.Equal(t, "Assets", s.PDFFolder)
}

func TestUpdateIgnoresEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("templateFilePath: Templates/t.md\n"), 0o644))
	t.Setenv("PAPER_IMPORTER_NOTEFOLDER", "Scratch")

	s, err := Update(path, "pdfFolder", "Papers")
	require.NoError(t, err)
	assert.Equal(t, "Literature Notes", s.NoteFolder)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pdfFolder: Papers")
	assert.Contains(t, string(data), "noteFolder: Literature Notes")
	assert.Contains(t, string(data), "templateFilePath: Templates/t.md")
	assert.NotContains(t, string(data), "Scratch")

	// The override still applies when reading.
	s, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Scratch", s.NoteFolder)
	assert.Equal(t, "Papers", s.PDFFolder)
}
