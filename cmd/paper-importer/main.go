// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-importer CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-importer/internal/importer"
	"github.com/pdiddy/paper-importer/internal/logging"
	"github.com/pdiddy/paper-importer/internal/settings"
)

// version is set at build time via ldflags.
var version = "dev"

// settingsFile is the default settings file name inside the state directory.
const settingsFile = "settings.yaml"

// logger is built in PersistentPreRunE from --log-level and --log-format.
var logger = logging.Discard()

// rootCmd is the base command for the paper-importer CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-importer",
	Short: "Import arXiv papers into a notes vault",
	Long: `paper-importer turns an arXiv identifier or URL into a markdown note in a
vault directory, optionally downloading the PDF next to it.

Accepted inputs include 2101.00001, arXiv:2101.00001v2, hep-th/9901001 and
https://arxiv.org/abs/2101.00001. Settings live in
<vault>/.paper-importer/settings.yaml and can be changed with "config set".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(logging.Options{
			Level:  viper.GetString("log-level"),
			Format: viper.GetString("log-format"),
			Output: cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		logger = l.With(slog.String("component", "cli"))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("vault", ".", "vault root directory")
	pf.String("config", "", "settings file (default: <vault>/.paper-importer/settings.yaml)")
	pf.String("log-level", "warn", "diagnostic log level (debug, info, warn, error)")
	pf.String("log-format", "console", "diagnostic log format (console, json)")

	for _, name := range []string{"vault", "config", "log-level", "log-format"} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}
}

func initConfig() {
	viper.SetEnvPrefix(settings.EnvPrefix)
	viper.AutomaticEnv()
}

// vaultRoot returns the absolute vault directory.
func vaultRoot() (string, error) {
	root, err := filepath.Abs(viper.GetString("vault"))
	if err != nil {
		return "", fmt.Errorf("resolving vault path: %w", err)
	}
	return root, nil
}

// settingsPath returns --config or the default settings file for root.
func settingsPath(root string) string {
	if p := viper.GetString("config"); p != "" {
		return p
	}
	return filepath.Join(stateDir(root), settingsFile)
}

func stateDir(root string) string {
	return filepath.Join(root, importer.StateDir)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
