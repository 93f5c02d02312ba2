package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eburon/orbit/pkg/cli"
	"github.com/eburon/orbit/pkg/prompt"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage orbit configuration",
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Print the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		return cli.Output(cfg, cli.OutputOptions{Format: cli.OutputFormat(formatFlag)})
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		fmt.Println(cfg.Path())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save the config file.

Keys:
  api_key             Gemini API key
  model               live model identifier
  defaults.language1  Staff language (or "auto")
  defaults.language2  Guest language (never "auto")
  defaults.voice1     Staff voice
  defaults.voice2     Guest voice
  export.backend      "local" or "s3"
  export.dir          local export directory
  export.bucket       S3 bucket
  export.prefix       S3 key prefix
  export.region       AWS region`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		key, value := strings.ToLower(args[0]), args[1]
		switch key {
		case "api_key":
			cfg.APIKey = value
		case "model":
			cfg.Model = value
		case "defaults.language1":
			if !prompt.ValidLanguage(value, true) {
				return fmt.Errorf("unknown language %q", value)
			}
			cfg.Defaults.Language1 = value
		case "defaults.language2":
			if !prompt.ValidLanguage(value, false) {
				return fmt.Errorf("guest language must be a concrete language, got %q", value)
			}
			cfg.Defaults.Language2 = value
		case "defaults.voice1":
			cfg.Defaults.Voice1 = value
		case "defaults.voice2":
			cfg.Defaults.Voice2 = value
		case "export.backend":
			cfg.Export.Backend = value
		case "export.dir":
			cfg.Export.Dir = value
		case "export.bucket":
			cfg.Export.Bucket = value
		case "export.prefix":
			cfg.Export.Prefix = value
		case "export.region":
			cfg.Export.Region = value
		default:
			return fmt.Errorf("unknown config key %q", args[0])
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("%s set\n", key)
		return nil
	},
}

var configLanguagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and voices",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Output(map[string]any{
			"languages": prompt.Languages,
			"voices":    prompt.Voices,
		}, cli.OutputOptions{Format: cli.OutputFormat(formatFlag)})
	},
}

func init() {
	configCmd.AddCommand(configViewCmd, configPathCmd, configSetCmd, configLanguagesCmd)
	rootCmd.AddCommand(configCmd)
}
