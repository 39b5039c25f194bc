// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-importer/internal/arxiv"
	"github.com/pdiddy/paper-importer/internal/importer"
	"github.com/pdiddy/paper-importer/internal/library"
	"github.com/pdiddy/paper-importer/internal/session"
	"github.com/pdiddy/paper-importer/internal/settings"
	"github.com/pdiddy/paper-importer/internal/vault"
	"github.com/pdiddy/paper-importer/pkg/types"
)

const defaultUserAgent = "paper-importer/0.1"

var importCmd = &cobra.Command{
	Use:   "import [id-or-url]",
	Short: "Import a paper with its PDF",
	Long: `Import fetches the paper's metadata from the arXiv API, downloads the PDF
into the configured PDF folder and writes a note into the note folder. With
no argument the identifier is read from the first line of stdin.

Existing files are never overwritten: the step is skipped with a warning.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args, types.ModePDF)
	},
}

var importMetaCmd = &cobra.Command{
	Use:   "import-meta [id-or-url]",
	Short: "Import a paper's metadata only",
	Long: `Import-meta writes a note for the paper without downloading the PDF. The
note links to the remote PDF instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args, types.ModeMetadataOnly)
	},
}

func init() {
	for _, c := range []*cobra.Command{importCmd, importMetaCmd} {
		c.Flags().Duration("timeout", 0, "HTTP request timeout (0 waits indefinitely)")
		c.Flags().String("user-agent", defaultUserAgent, "User-Agent sent to arXiv")
		rootCmd.AddCommand(c)
	}
}

func runImport(cmd *cobra.Command, args []string, mode types.ImportMode) error {
	input, err := readIdentifier(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	userAgent, _ := cmd.Flags().GetString("user-agent")
	httpCfg := types.HTTPConfig{Timeout: timeout, UserAgent: userAgent}

	root, err := vaultRoot()
	if err != nil {
		return err
	}
	lock, err := importer.AcquireLock(root)
	if err != nil {
		return err
	}
	defer lock.Release()

	s, err := settings.Load(settingsPath(root))
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: httpCfg.Timeout}
	im := &importer.Importer{
		Vault:    vault.New(root),
		Settings: s,
		Metadata: &arxiv.Client{
			HTTP:      client,
			UserAgent: httpCfg.UserAgent,
		},
		HTTP:      client,
		UserAgent: httpCfg.UserAgent,
		Logger:    logger,
	}

	ledger, err := library.Open(stateDir(root))
	if err != nil {
		logger.Warn("library ledger unavailable", slog.Any("error", err))
	} else {
		defer ledger.Close()
		im.Ledger = ledger
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := newRenderer(cmd.ErrOrStderr())
	sess := session.New(r)
	res, err := im.Import(ctx, sess, input, mode)
	r.done()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Note: %s\n", res.NotePath)
	if res.PDFPath != "" {
		fmt.Fprintf(out, "PDF:  %s\n", res.PDFPath)
	}
	return nil
}

// readIdentifier returns the single argument, or the first non-blank line of
// in when no argument is given.
func readIdentifier(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		if strings.TrimSpace(args[0]) == "" {
			return "", errors.New("empty identifier")
		}
		return args[0], nil
	}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return "", errors.New("provide an arXiv ID or URL as an argument or on stdin")
}
