// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package importer sequences one paper import: normalize the identifier,
// fetch metadata, optionally download the PDF and write the note.
//
// Stages run one after another; each waits for its I/O before the next
// starts. Progress and user-facing log lines go to the session passed to
// Import. An existing PDF or note is never overwritten: the stage is
// skipped with a warning and the import still succeeds.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pdiddy/paper-importer/internal/arxivid"
	"github.com/pdiddy/paper-importer/internal/download"
	"github.com/pdiddy/paper-importer/internal/library"
	"github.com/pdiddy/paper-importer/internal/logging"
	"github.com/pdiddy/paper-importer/internal/note"
	"github.com/pdiddy/paper-importer/internal/session"
	"github.com/pdiddy/paper-importer/internal/vault"
	"github.com/pdiddy/paper-importer/pkg/types"
)

// StateDir is the vault-relative directory holding settings, the ledger
// and the import lock.
const StateDir = ".paper-importer"

// MetadataFetcher returns the Paper for a canonical identifier.
type MetadataFetcher interface {
	Fetch(ctx context.Context, id string) (*types.Paper, error)
}

// Recorder stores completed imports.
type Recorder interface {
	Record(ctx context.Context, r library.Record) error
}

// Importer holds the collaborators shared by every import in a vault.
type Importer struct {
	Vault     *vault.Vault
	Settings  types.Settings
	Metadata  MetadataFetcher
	HTTP      *http.Client
	UserAgent string

	// Ledger is optional.
	Ledger Recorder
	Logger *slog.Logger
	Now    func() time.Time
}

// Result describes a finished import.
type Result struct {
	Paper    *types.Paper
	NotePath string

	// PDFPath is empty for metadata-only imports.
	PDFPath string

	// PDFExisted and NoteExisted report skipped writes.
	PDFExisted  bool
	NoteExisted bool
}

// Import runs the whole pipeline for input. On failure the session ends in
// StateFailed with progress 0 and an error entry, and the error is returned.
// A session left Done or Failed by an earlier attempt is reset first.
func (im *Importer) Import(ctx context.Context, sess *session.Session, input string, mode types.ImportMode) (*Result, error) {
	log := im.logger().With(slog.String("session", sess.ID), slog.String("mode", string(mode)))

	if sess.State().Terminal() {
		sess.Reset()
	}
	sess.SetProgress(0)
	sess.Info("Importing paper...")

	res, err := im.run(ctx, sess, log, input, mode)
	if err != nil {
		sess.SetState(session.StateFailed)
		sess.SetProgress(0)
		sess.Error(err.Error())
		log.Warn("import failed", slog.String("input", input), slog.Any("error", err))
		return nil, err
	}

	im.record(ctx, sess, log, res, mode)

	sess.SetState(session.StateDone)
	sess.SetProgress(100)
	sess.Success("Paper imported successfully!")
	log.Info("import done", slog.String("paper_id", res.Paper.ID), slog.String("note", res.NotePath))
	return res, nil
}

func (im *Importer) run(ctx context.Context, sess *session.Session, log *slog.Logger, input string, mode types.ImportMode) (*Result, error) {
	sess.SetState(session.StateExtracting)
	id, err := arxivid.Normalize(input)
	if err != nil {
		return nil, err
	}
	log.Debug("identifier normalized", slog.String("input", input), slog.String("id", id))

	sess.SetState(session.StateFetching)
	sess.Info(fmt.Sprintf("Fetching metadata for %s...", id))
	paper, err := im.Metadata.Fetch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching metadata for %s: %w", id, err)
	}
	log.Debug("metadata fetched", slog.String("paper_id", paper.ID), slog.String("title", paper.Title))
	if arxivid.StripVersion(paper.ID) != arxivid.StripVersion(id) {
		sess.Warn(fmt.Sprintf("arXiv returned %s for requested %s", paper.ID, id))
		log.Warn("identifier mismatch", slog.String("requested", id), slog.String("returned", paper.ID))
	}

	res := &Result{Paper: paper}
	if mode == types.ModePDF {
		if err := im.downloadPDF(ctx, sess, paper, res); err != nil {
			return nil, err
		}
	}

	if err := im.writeNote(sess, paper, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *Importer) downloadPDF(ctx context.Context, sess *session.Session, paper *types.Paper, res *Result) error {
	folder, err := im.Vault.EnsureFolder(im.Settings.PDFFolder)
	if err != nil {
		return err
	}
	pdfPath := vault.Join(folder, FileName(paper, ".pdf"))
	res.PDFPath = pdfPath

	exists, err := im.Vault.Exists(pdfPath)
	if err != nil {
		return err
	}
	if exists {
		res.PDFExisted = true
		sess.Warn(fmt.Sprintf("PDF already exists, keeping it: %s", pdfPath))
		return nil
	}

	sess.SetState(session.StateDownloading)
	url := paper.PDFURL
	if url == "" {
		url = arxivid.PDFURL(paper.ID)
	}
	sess.Info("Starting PDF download...")

	data, err := download.Fetch(ctx, im.HTTP, url, sess, download.Options{UserAgent: im.UserAgent})
	if err != nil {
		return fmt.Errorf("PDF download failed: %w", err)
	}
	if err := im.Vault.WriteBinary(pdfPath, data); err != nil {
		return fmt.Errorf("PDF download failed: %w", err)
	}
	sess.Info(fmt.Sprintf("PDF downloaded: %s", pdfPath))
	return nil
}

func (im *Importer) writeNote(sess *session.Session, paper *types.Paper, res *Result) error {
	sess.SetState(session.StateWritingNote)

	folder, err := im.Vault.EnsureFolder(im.Settings.NoteFolder)
	if err != nil {
		return err
	}
	notePath := vault.Join(folder, FileName(paper, ".md"))
	res.NotePath = notePath

	exists, err := im.Vault.Exists(notePath)
	if err != nil {
		return err
	}
	if exists {
		res.NoteExisted = true
		sess.Warn(fmt.Sprintf("Note already exists, keeping it: %s", notePath))
		return nil
	}

	tpl, err := note.LoadTemplate(im.Vault, im.Settings.TemplateFilePath)
	if errors.Is(err, note.ErrTemplateUnavailable) {
		sess.Warn(fmt.Sprintf("%v; using the built-in template", err))
	}

	content := note.Render(tpl, note.Input{Paper: paper, PDFPath: res.PDFPath, Now: im.now()})
	if err := im.Vault.WriteText(notePath, content); err != nil {
		return fmt.Errorf("writing note: %w", err)
	}
	sess.Info(fmt.Sprintf("Note created: %s", notePath))
	return nil
}

func (im *Importer) record(ctx context.Context, sess *session.Session, log *slog.Logger, res *Result, mode types.ImportMode) {
	if im.Ledger == nil {
		return
	}
	err := im.Ledger.Record(ctx, library.Record{
		PaperID:    res.Paper.ID,
		Title:      res.Paper.Title,
		NotePath:   res.NotePath,
		PDFPath:    res.PDFPath,
		Mode:       mode,
		SessionID:  sess.ID,
		ImportedAt: im.now(),
	})
	if err != nil {
		sess.Warn(fmt.Sprintf("Could not update the library ledger: %v", err))
		log.Warn("ledger record failed", slog.Any("error", err))
	}
}

// FileName returns the sanitized "<title> (<id>)<ext>" file name for paper.
func FileName(paper *types.Paper, ext string) string {
	return vault.SanitizeFilename(fmt.Sprintf("%s (%s)%s", paper.Title, paper.ID, ext))
}

func (im *Importer) logger() *slog.Logger {
	if im.Logger == nil {
		return logging.Discard()
	}
	return im.Logger
}

func (im *Importer) now() time.Time {
	if im.Now == nil {
		return time.Now()
	}
	return im.Now()
}
