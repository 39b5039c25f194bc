// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Assets", "Assets"},
		{"/Literature Notes/", "Literature Notes"},
		{`Notes\\Papers`, "Notes/Papers"},
		{"a//b///c", "a/b/c"},
		{"Cafe\u0301", "Caf\u00e9"},
		{"non\u00a0breaking", "non breaking"},
		{"", "/"},
		{"///", "/"},
	}
	for _, tt := range tests {
		if got := NormalizePath(tt.in); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Example Paper (2101.00001).pdf", "Example Paper (2101.00001).pdf"},
		{`A/B: "C"? (hep-th/9901001).md`, "A B C (hep-th 9901001).md"},
		{"  spaced   out\ttitle  ", "spaced out title"},
		{"pipes|stars*<angles>", "pipes stars angles"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "Assets/Paper.pdf", Join("Assets/", "/Paper.pdf"))
	assert.Equal(t, "Paper.pdf", Join("", "Paper.pdf"))
}

func TestEnsureFolderAndWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	v := NewWithFs("/vault", fs)

	folder, err := v.EnsureFolder("/Literature Notes/")
	require.NoError(t, err)
	assert.Equal(t, "Literature Notes", folder)

	ok, err := afero.DirExists(fs, "/vault/Literature Notes")
	require.NoError(t, err)
	assert.True(t, ok)

	notePath := Join(folder, "Paper.md")
	exists, err := v.Exists(notePath)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, v.WriteText(notePath, "hello"))

	exists, err = v.Exists(notePath)
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := v.ReadText(notePath)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	// No temp files left behind.
	entries, err := afero.ReadDir(fs, "/vault/Literature Notes")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Paper.md", entries[0].Name())
}

func TestWriteBinaryCreatesParents(t *testing.T) {
	v := NewWithFs("/vault", afero.NewMemMapFs())

	require.NoError(t, v.WriteBinary("Assets/deep/file.pdf", []byte("%PDF")))

	got, err := v.ReadText("Assets/deep/file.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", got)
}

func TestReadTextAbsolutePath(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/elsewhere/template.md", []byte("tpl"), 0o644))
	v := NewWithFs("/vault", fs)

	got, err := v.ReadText("/elsewhere/template.md")
	require.NoError(t, err)
	assert.Equal(t, "tpl", got)
}

func TestReadTextMissing(t *testing.T) {
	v := NewWithFs("/vault", afero.NewMemMapFs())
	_, err := v.ReadText("Templates/missing.md")
	assert.True(t, os.IsNotExist(err), "got %v", err)
}

func TestOsVault(t *testing.T) {
	dir := t.TempDir()
	v := New(dir)

	require.NoError(t, v.WriteBinary("Assets/a.pdf", []byte("%PDF-1.4")))

	data, err := os.ReadFile(filepath.Join(dir, "Assets", "a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}
