// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-importer/internal/note"
	"github.com/pdiddy/paper-importer/internal/settings"
	"github.com/pdiddy/paper-importer/internal/vault"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage the note template",
}

var templateInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in template to templateFilePath",
	Long: `Init writes the built-in note template to the vault path named by the
templateFilePath setting so it can be edited. An existing file is left alone.`,
	Args: cobra.NoArgs,
	RunE: runTemplateInit,
}

func init() {
	templateCmd.AddCommand(templateInitCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplateInit(cmd *cobra.Command, args []string) error {
	root, err := vaultRoot()
	if err != nil {
		return err
	}
	s, err := settings.Load(settingsPath(root))
	if err != nil {
		return err
	}
	if s.TemplateFilePath == "" {
		return errors.New(`templateFilePath is not set; run "config set templateFilePath <path>" first`)
	}

	created, err := note.CreateTemplateFile(vault.New(root), s.TemplateFilePath)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !created {
		fmt.Fprintf(out, "Template already exists: %s\n", s.TemplateFilePath)
		return nil
	}
	fmt.Fprintf(out, "Template created: %s\n", s.TemplateFilePath)
	return nil
}
