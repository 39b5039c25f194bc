//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// demoPaper is imported by Demo.
const demoPaper = "arXiv:1706.03762"

// Demo builds the CLI and imports a known paper, metadata only, into the
// scratch vault.
func Demo() error {
	mg.SerialDeps(Init, Build)
	bin := filepath.Join(binDir, binName)
	if err := sh.RunV(bin, "--vault", devVault, "import-meta", demoPaper); err != nil {
		return fmt.Errorf("demo import: %w", err)
	}
	return sh.RunV(bin, "--vault", devVault, "list")
}
