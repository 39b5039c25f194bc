// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-importer/pkg/types"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), ".paper-importer")
	s, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func TestOpenCreatesDatabase(t *testing.T) {
	_, dir := openTestStore(t)
	_, err := os.Stat(filepath.Join(dir, DBFile))
	assert.NoError(t, err)
}

func TestRecordAndList(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	first := Record{
		PaperID:    "2101.00001",
		Title:      "Example Paper",
		NotePath:   "Literature Notes/Example Paper (2101.00001).md",
		PDFPath:    "Assets/Example Paper (2101.00001).pdf",
		Mode:       types.ModePDF,
		SessionID:  "s1",
		ImportedAt: at,
	}
	second := Record{
		PaperID:    "hep-th/9901001",
		Title:      "Legacy Paper",
		NotePath:   "Literature Notes/Legacy Paper (hep-th 9901001).md",
		Mode:       types.ModeMetadataOnly,
		SessionID:  "s2",
		ImportedAt: at.Add(time.Hour),
	}
	require.NoError(t, s.Record(ctx, first))
	require.NoError(t, s.Record(ctx, second))

	got, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second, got[0])
	assert.Equal(t, first, got[1])

	limited, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "hep-th/9901001", limited[0].PaperID)
}

func TestReopenKeepsRecords(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Record(context.Background(), Record{
		PaperID: "2101.00001", Title: "T", NotePath: "n.md", Mode: types.ModePDF, SessionID: "s",
		ImportedAt: time.Now(),
	}))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
