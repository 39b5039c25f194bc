// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package settings loads and saves the per-vault Settings file.
//
// Values are layered the usual viper way: built-in defaults, then the YAML
// file, then PAPER_IMPORTER_* environment variables. Save writes only the
// three persisted keys back to the file.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-importer/pkg/types"
)

// EnvPrefix is the environment prefix for overrides, e.g. PAPER_IMPORTER_PDFFOLDER.
const EnvPrefix = "PAPER_IMPORTER"

// Keys lists the persisted setting names.
var Keys = []string{"pdfFolder", "noteFolder", "templateFilePath"}

// ErrUnknownKey is returned by Get and Set for names not in Keys.
var ErrUnknownKey = errors.New("unknown setting")

// Load reads the settings at path, filling gaps with defaults and applying
// PAPER_IMPORTER_* overrides. A missing file yields the defaults.
func Load(path string) (types.Settings, error) {
	return load(path, true)
}

// load reads defaults and the file, plus the environment when withEnv is set.
func load(path string, withEnv bool) (types.Settings, error) {
	v := viper.New()
	def := types.DefaultSettings()
	v.SetDefault("pdfFolder", def.PDFFolder)
	v.SetDefault("noteFolder", def.NoteFolder)
	v.SetDefault("templateFilePath", def.TemplateFilePath)

	if withEnv {
		v.SetEnvPrefix(EnvPrefix)
		v.AutomaticEnv()
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Settings{}, fmt.Errorf("reading settings %s: %w", path, err)
		}
	}

	var s types.Settings
	if err := v.Unmarshal(&s); err != nil {
		return types.Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	return s, nil
}

// Save writes s to path as YAML, creating the parent directory.
func Save(path string, s types.Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".settings-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing settings: %w", errors.Join(writeErr, closeErr))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// canonicalKey matches key case-insensitively against Keys.
func canonicalKey(key string) (string, error) {
	for _, k := range Keys {
		if strings.EqualFold(k, key) {
			return k, nil
		}
	}
	valid := append([]string(nil), Keys...)
	sort.Strings(valid)
	return "", fmt.Errorf("%w %q (valid: %s)", ErrUnknownKey, key, strings.Join(valid, ", "))
}

// Get returns the value of key in s.
func Get(s types.Settings, key string) (string, error) {
	k, err := canonicalKey(key)
	if err != nil {
		return "", err
	}
	switch k {
	case "pdfFolder":
		return s.PDFFolder, nil
	case "noteFolder":
		return s.NoteFolder, nil
	default:
		return s.TemplateFilePath, nil
	}
}

// Set returns a copy of s with key changed to value.
func Set(s types.Settings, key, value string) (types.Settings, error) {
	k, err := canonicalKey(key)
	if err != nil {
		return s, err
	}
	switch k {
	case "pdfFolder":
		s.PDFFolder = value
	case "noteFolder":
		s.NoteFolder = value
	default:
		s.TemplateFilePath = value
	}
	return s, nil
}

// Update changes one key in the file at path and saves immediately.
// Environment overrides are not read, so they never reach the file.
func Update(path, key, value string) (types.Settings, error) {
	s, err := load(path, false)
	if err != nil {
		return s, err
	}
	s, err = Set(s, key, value)
	if err != nil {
		return s, err
	}
	return s, Save(path, s)
}
