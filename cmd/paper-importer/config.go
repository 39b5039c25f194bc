// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-importer/internal/settings"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change vault settings",
	Long: `Config reads and writes the vault's settings file. Keys are pdfFolder,
noteFolder and templateFilePath. "set" saves immediately.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := vaultRoot()
		if err != nil {
			return err
		}
		s, err := settings.Load(settingsPath(root))
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("marshaling settings: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := vaultRoot()
		if err != nil {
			return err
		}
		s, err := settings.Load(settingsPath(root))
		if err != nil {
			return err
		}
		v, err := settings.Get(s, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting and save",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := vaultRoot()
		if err != nil {
			return err
		}
		path := settingsPath(root)
		if _, err := settings.Update(path, args[0], args[1]); err != nil {
			return err
		}
		logger.Debug("settings saved", "path", path, "key", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configGetCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
