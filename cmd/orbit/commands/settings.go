package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eburon/orbit/pkg/cli"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage per-staff session overrides",
	Long: `Manage a staff member's persisted session overrides.

Overrides are stored alongside the history archive and layered onto the
session defaults at sign-in. The system prompt override requires the
elevated staff ID.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored overrides for a staff ID",
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

		us, err := store.LoadSettings(cmd.Context(), user.ID)
		if err != nil {
			return err
		}
		return cli.Output(us, cli.OutputOptions{Format: cli.OutputFormat(formatFlag)})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store one override for a staff ID",
	Long: `Store one override for a staff ID.

Keys:
  voice1        Staff voice
  voice2        Guest voice
  systemPrompt  hand-authored instruction text (elevated ID only)`,
	Args: cobra.ExactArgs(2),
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

		us, err := store.LoadSettings(cmd.Context(), user.ID)
		if err != nil {
			return err
		}
		switch args[0] {
		case "voice1":
			us.Voice1 = args[1]
		case "voice2":
			us.Voice2 = args[1]
		case "systemPrompt":
			if !user.SuperAdmin {
				return fmt.Errorf("systemPrompt override requires the elevated staff ID")
			}
			us.SystemPrompt = args[1]
		default:
			return fmt.Errorf("unknown settings key %q", args[0])
		}
		if err := store.SaveSettings(cmd.Context(), user.ID, us); err != nil {
			return err
		}
		fmt.Printf("%s set for %s\n", args[0], user.ID)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
