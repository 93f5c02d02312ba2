package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eburon/orbit/cmd/orbit/internal/config"
	"github.com/eburon/orbit/pkg/prompt"
	"github.com/eburon/orbit/pkg/session"
)

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := config.LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom() = %v, want nil", err)
	}
	if cfg.APIKey != "" || cfg.Model != "" {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "orbit")
	cfg := &config.Config{Dir: dir, APIKey: "k", Model: "m"}
	cfg.Defaults.Language1 = "French"
	cfg.Export.Backend = "s3"
	cfg.Export.Bucket = "transcripts"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() = %v, want nil", err)
	}

	got, err := config.LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom() = %v, want nil", err)
	}
	if got.APIKey != "k" || got.Model != "m" {
		t.Errorf("got %+v", got)
	}
	if got.Defaults.Language1 != "French" {
		t.Errorf("Language1 = %q, want French", got.Defaults.Language1)
	}
	if got.Export.Bucket != "transcripts" {
		t.Errorf("Bucket = %q, want transcripts", got.Export.Bucket)
	}
}

func TestSessionConfigDefaults(t *testing.T) {
	cfg := &config.Config{}
	sc := cfg.SessionConfig()
	if sc.Language1 != prompt.DefaultLanguage1 {
		t.Errorf("Language1 = %q, want %q", sc.Language1, prompt.DefaultLanguage1)
	}
	if sc.Language2 != prompt.DefaultLanguage2 {
		t.Errorf("Language2 = %q, want %q", sc.Language2, prompt.DefaultLanguage2)
	}
	if sc.Model != session.DefaultModel {
		t.Errorf("Model = %q, want %q", sc.Model, session.DefaultModel)
	}
}

func TestSessionConfigOverrides(t *testing.T) {
	cfg := &config.Config{Model: "custom-model"}
	cfg.Defaults.Language2 = "German"
	cfg.Defaults.Voice1 = "Puck"
	sc := cfg.SessionConfig()
	if sc.Language2 != "German" || sc.Voice1 != "Puck" || sc.Model != "custom-model" {
		t.Errorf("got %+v", sc)
	}
}

func TestResolveAPIKeyPrefersEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	cfg := &config.Config{APIKey: "file-key"}
	key, err := cfg.ResolveAPIKey()
	if err != nil {
		t.Fatalf("ResolveAPIKey() = %v, want nil", err)
	}
	if key != "env-key" {
		t.Errorf("key = %q, want env-key", key)
	}

	os.Unsetenv("GEMINI_API_KEY")
	key, err = cfg.ResolveAPIKey()
	if err != nil {
		t.Fatalf("ResolveAPIKey() = %v, want nil", err)
	}
	if key != "file-key" {
		t.Errorf("key = %q, want file-key", key)
	}
}
