package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eburon/orbit/pkg/cli"
	"github.com/eburon/orbit/pkg/history"
)

var (
	historyFilter       string
	historyExportTo     string
	historyExportFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse the archived conversation history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived turns for a staff ID",
	Long: `List a staff member's archived turns, oldest first.

Examples:
  orbit history list --id SI1234
  orbit history list --id SI1234 --format json
  orbit history list --id SI1234 --filter '.[] | select(.role == "agent") | .text'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := signIn()
		if err != nil {
			return err
		}
		store, backend, err := openHistory()
		if err != nil {
			return err
		}
		defer backend.Close()

		records, err := store.List(cmd.Context(), user.ID)
		if err != nil {
			return err
		}

		var result any = records
		if historyFilter != "" {
			out, err := cli.Filter(historyFilter, records)
			if err != nil {
				return err
			}
			result = out
		}
		return cli.Output(result, cli.OutputOptions{
			Format: cli.OutputFormat(formatFlag),
			File:   outputFile,
		})
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all archived turns for a staff ID",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := signIn()
		if err != nil {
			return err
		}
		store, backend, err := openHistory()
		if err != nil {
			return err
		}
		defer backend.Close()

		if err := store.Clear(cmd.Context(), user.ID); err != nil {
			return err
		}
		fmt.Printf("history cleared for %s\n", user.ID)
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived turns to the configured storage backend",
	Long: `Export a staff member's archive as a transcript file.

The destination backend (local directory or S3 bucket) comes from the
export section of the config. See 'orbit config set'.

Examples:
  orbit history export --id SI1234 --to transcript.txt
  orbit history export --id SI1234 --to transcript.json --export-format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := signIn()
		if err != nil {
			return err
		}
		if historyExportTo == "" {
			return fmt.Errorf("flag --to is required")
		}
		store, backend, err := openHistory()
		if err != nil {
			return err
		}
		defer backend.Close()

		dst, err := exportStore(cmd)
		if err != nil {
			return err
		}
		format := history.ExportFormat(historyExportFormat)
		if err := store.Export(cmd.Context(), user.ID, dst, historyExportTo, format); err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", historyExportTo)
		return nil
	},
}

func init() {
	historyListCmd.Flags().StringVar(&historyFilter, "filter", "", "jq expression applied to the record list")
	historyExportCmd.Flags().StringVar(&historyExportTo, "to", "", "destination path within the export backend")
	historyExportCmd.Flags().StringVar(&historyExportFormat, "export-format", "text", "export format (text|json)")
	historyCmd.AddCommand(historyListCmd, historyClearCmd, historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
