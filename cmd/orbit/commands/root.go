package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eburon/orbit/cmd/orbit/internal/config"
)

var (
	// Global flags
	verbose    bool
	staffID    string
	formatFlag string
	outputFile string

	// Global configuration (loaded at init time)
	globalConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "orbit",
	Short: "Live two-way speech translation sessions",
	Long: `orbit - live bidirectional translation sessions over the Gemini Live API.

A session pairs a Staff member with a Guest: everything spoken in one
language is rendered in the other, and the running transcript is archived
per staff ID.

Configuration is stored in the OS config directory:
  macOS:   ~/Library/Application Support/orbit/
  Linux:   ~/.config/orbit/
  Windows: %AppData%/orbit/

Examples:
  # Configure the API key once
  orbit config set api_key YOUR_KEY

  # Start an interactive session
  orbit run --id SI1234 --lang2 "Spanish"

  # Browse the archive
  orbit history list --id SI1234 --filter '.[] | select(.role == "user")'
  orbit history export --id SI1234 --to transcript.txt`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&staffID, "id", "", "staff ID (SI followed by 4 characters)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "yaml", "output format (yaml|json)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
}

// configLoadErr stores the error from config.Load() for deferred reporting.
var configLoadErr error

func initConfig() {
	cfg, err := config.Load()
	if err != nil {
		// Deferred so commands that never touch config, like version,
		// still run.
		configLoadErr = err
		return
	}
	globalConfig = cfg
}

// GetConfig returns the global configuration.
func GetConfig() (*config.Config, error) {
	if configLoadErr != nil {
		return nil, fmt.Errorf("load config: %w", configLoadErr)
	}
	if globalConfig == nil {
		return nil, fmt.Errorf("config not initialized")
	}
	return globalConfig, nil
}

// IsVerbose reports whether --verbose was passed.
func IsVerbose() bool { return verbose }
