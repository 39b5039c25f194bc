// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-importer/internal/library"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List papers imported into the vault",
	Long: `List prints the import ledger kept in <vault>/.paper-importer/library.db,
newest first. The ledger is informational; the vault files are authoritative.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().Bool("json", false, "print records as JSON")
	listCmd.Flags().Int("limit", 0, "maximum number of records (0 = all)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	limit, _ := cmd.Flags().GetInt("limit")

	root, err := vaultRoot()
	if err != nil {
		return err
	}
	store, err := library.Open(stateDir(root))
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No papers imported yet.")
		return nil
	}
	fmt.Fprintln(out, renderRecords(records))
	return nil
}

func renderRecords(records []library.Record) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Title", "Mode", "Imported", "Note"})
	for _, r := range records {
		tw.AppendRow(table.Row{r.PaperID, r.Title, string(r.Mode), r.ImportedAt.Local().Format(time.DateTime), r.NotePath})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 48},
		{Number: 3, Align: text.AlignCenter},
	})
	return tw.Render()
}
