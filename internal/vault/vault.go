// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vault performs the file operations an import needs inside a
// notes vault: folder creation, existence checks and atomic writes.
// Paths handed to and returned from a Vault are vault-relative and use
// forward slashes; absolute paths are accepted and used as given.
package vault

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"
)

// Vault is a directory tree of notes and attachments.
type Vault struct {
	Root string
	Fs   afero.Fs
}

// New returns a Vault rooted at root on the host filesystem.
func New(root string) *Vault {
	return &Vault{Root: root, Fs: afero.NewOsFs()}
}

// NewWithFs returns a Vault backed by fs. Tests use afero.NewMemMapFs.
func NewWithFs(root string, fs afero.Fs) *Vault {
	return &Vault{Root: root, Fs: fs}
}

var (
	slashRun   = regexp.MustCompile(`/+`)
	spaceRun   = regexp.MustCompile(`\s+`)
	unsafeChar = regexp.MustCompile(`[/\\?%*:|"<>]`)
)

// NormalizePath converts p to the canonical vault form: forward slashes,
// no repeated or surrounding slashes, non-breaking spaces replaced and
// NFC-composed. An empty result becomes "/".
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.ReplaceAll(p, "\u00a0", " ")
	p = strings.ReplaceAll(p, "\u202f", " ")
	p = slashRun.ReplaceAllString(p, "/")
	p = strings.Trim(p, "/")
	p = norm.NFC.String(p)
	if p == "" {
		return "/"
	}
	return p
}

// SanitizeFilename replaces characters that are unsafe in file names with
// spaces and collapses whitespace.
func SanitizeFilename(name string) string {
	name = unsafeChar.ReplaceAllString(name, " ")
	name = spaceRun.ReplaceAllString(name, " ")
	return norm.NFC.String(strings.TrimSpace(name))
}

// Join joins vault-relative segments into a normalized path.
func Join(elem ...string) string {
	return NormalizePath(path.Join(elem...))
}

// resolve maps a vault path onto the backing filesystem.
func (v *Vault) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	p = NormalizePath(p)
	if p == "/" {
		return v.Root
	}
	return filepath.Join(v.Root, filepath.FromSlash(p))
}

// EnsureFolder creates folder (and parents) if missing and returns its
// normalized vault path.
func (v *Vault) EnsureFolder(folder string) (string, error) {
	folder = NormalizePath(folder)
	if err := v.Fs.MkdirAll(v.resolve(folder), 0o755); err != nil {
		return "", fmt.Errorf("creating folder %s: %w", folder, err)
	}
	return folder, nil
}

// Exists reports whether p exists.
func (v *Vault) Exists(p string) (bool, error) {
	ok, err := afero.Exists(v.Fs, v.resolve(p))
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", p, err)
	}
	return ok, nil
}

// ReadText returns the contents of p.
func (v *Vault) ReadText(p string) (string, error) {
	data, err := afero.ReadFile(v.Fs, v.resolve(p))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteText writes content to p atomically.
func (v *Vault) WriteText(p, content string) error {
	return v.WriteBinary(p, []byte(content))
}

// WriteBinary writes data to p through a temporary file in the same
// directory, renaming it into place on success.
func (v *Vault) WriteBinary(p string, data []byte) error {
	dest := v.resolve(p)
	dir := filepath.Dir(dest)
	if err := v.Fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(v.Fs, dir, ".import-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		v.Fs.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", p, writeErr)
	}
	if closeErr != nil {
		v.Fs.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := v.Fs.Chmod(tmpPath, 0o644); err != nil {
		v.Fs.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := v.Fs.Rename(tmpPath, dest); err != nil {
		v.Fs.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
