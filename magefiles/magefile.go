//go:build mage

// Package main contains Mage build targets for paper-importer developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/sh"
)

// devVault is the scratch vault used by Init and Demo.
const devVault = "dev-vault"

// devDirs lists the folders a fresh vault gets with the default settings.
var devDirs = []string{
	".paper-importer",
	"Assets",
	"Literature Notes",
	"Templates",
}

// Init creates a scratch vault with the default folder layout.
func Init() error {
	for _, dir := range devDirs {
		path := filepath.Join(devVault, dir)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		fmt.Println("  ", path)
	}
	fmt.Println("Scratch vault initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "paper-importer"
	cmdPkg  = "./cmd/paper-importer"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests. The SQLite ledger needs cgo.
func Test() error {
	return sh.RunV("go", "test", "-count=1", "./...")
}

// Stats prints Go production and test line counts plus markdown word count.
func Stats() error {
	var prod, tests, words int
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") || d.Name() == devVault || d.Name() == binDir {
				return filepath.SkipDir
			}
			return nil
		}
		switch {
		case strings.HasSuffix(path, "_test.go"):
			n, err := countLines(path)
			tests += n
			return err
		case strings.HasSuffix(path, ".go"):
			n, err := countLines(path)
			prod += n
			return err
		case strings.HasSuffix(path, ".md"):
			data, err := os.ReadFile(path)
			words += len(bytes.Fields(data))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", tests)
	fmt.Printf("Words (markdown):                %d\n", words)
	return nil
}

// countLines counts non-blank lines in path.
func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n, sc.Err()
}
