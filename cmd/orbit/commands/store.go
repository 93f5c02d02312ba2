package commands

import (
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/eburon/orbit/pkg/history"
	"github.com/eburon/orbit/pkg/identity"
	"github.com/eburon/orbit/pkg/kv"
	"github.com/eburon/orbit/pkg/session"
	"github.com/eburon/orbit/pkg/storage"
)

// signIn validates the --id flag and returns the authenticated user.
func signIn() (identity.User, error) {
	if staffID == "" {
		return identity.User{}, fmt.Errorf("flag --id is required")
	}
	user, err := identity.SignIn(staffID)
	if err != nil {
		return identity.User{}, err
	}
	return user, nil
}

// openHistory opens the on-disk history archive.
func openHistory() (*history.Store, kv.Store, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, nil, err
	}
	backend, err := kv.NewBadger(kv.BadgerOptions{Dir: cfg.DataDir()})
	if err != nil {
		return nil, nil, fmt.Errorf("open archive: %w", err)
	}
	return history.NewStore(backend), backend, nil
}

// newSettings builds a settings store seeded from the configured defaults.
func newSettings() (*session.Settings, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	sc := cfg.SessionConfig()
	settings := session.NewSettings()
	settings.SetLanguage1(sc.Language1)
	if err := settings.SetLanguage2(sc.Language2); err != nil {
		return nil, fmt.Errorf("defaults: %w", err)
	}
	settings.SetVoice1(sc.Voice1)
	settings.SetVoice2(sc.Voice2)
	settings.SetModel(sc.Model)
	return settings, nil
}

// restoreUserSettings layers a user's persisted overrides onto settings.
func restoreUserSettings(cmd *cobra.Command, store *history.Store, userID string, settings *session.Settings, admin bool) error {
	us, err := store.LoadSettings(cmd.Context(), userID)
	if err != nil {
		return err
	}
	if us.Voice1 != "" {
		settings.SetVoice1(us.Voice1)
	}
	if us.Voice2 != "" {
		settings.SetVoice2(us.Voice2)
	}
	if us.SystemPrompt != "" && admin {
		settings.SetSystemPrompt(us.SystemPrompt)
	}
	return nil
}

// exportStore builds the configured export destination.
func exportStore(cmd *cobra.Command) (storage.FileStore, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	switch cfg.Export.Backend {
	case "", "local":
		dir := cfg.Export.Dir
		if dir == "" {
			dir = "."
		}
		return storage.NewLocal(dir)
	case "s3":
		if cfg.Export.Bucket == "" {
			return nil, fmt.Errorf("export backend s3 requires a bucket")
		}
		var opts []func(*awsconfig.LoadOptions) error
		if cfg.Export.Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.Export.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(cmd.Context(), opts...)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		return storage.NewS3(s3.NewFromConfig(awsCfg), cfg.Export.Bucket, cfg.Export.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown export backend %q", cfg.Export.Backend)
	}
}
