package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("missing file error = %v, want os.IsNotExist", err)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.Keybind = "ctrl+shift+w"
	cfg.AuthToken = "tok-123"
	cfg.LocalInstance = true

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Keybind != cfg.Keybind || got.AuthToken != cfg.AuthToken || !got.LocalInstance {
		t.Errorf("roundtrip = %+v, want %+v", got, cfg)
	}
	if got.Debounce != 350*time.Millisecond || got.PollInterval != 15*time.Second {
		t.Errorf("defaults lost in roundtrip: %+v", got)
	}
}

func TestLoadAppliesDefaultsUnderPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "keybind: btn:middle\nauth_token: tok\n"
	if err := os.WriteFile(path, []byte(partial), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.HasBinding() {
		t.Error("HasBinding = false, want true")
	}
	if cfg.Debounce != 350*time.Millisecond {
		t.Errorf("debounce default = %v", cfg.Debounce)
	}
	if cfg.BaseURL() != DefaultExternalURL {
		t.Errorf("BaseURL = %q, want external default", cfg.BaseURL())
	}
}

func TestBaseURLSelection(t *testing.T) {
	cfg := Default()
	if cfg.BaseURL() != DefaultExternalURL {
		t.Errorf("external BaseURL = %q", cfg.BaseURL())
	}
	cfg.LocalInstance = true
	if cfg.BaseURL() != DefaultLocalURL {
		t.Errorf("local BaseURL = %q", cfg.BaseURL())
	}
	cfg.LocalURL = "http://10.0.0.2:9999"
	if cfg.BaseURL() != "http://10.0.0.2:9999" {
		t.Errorf("local override BaseURL = %q", cfg.BaseURL())
	}
}

func TestHasBinding(t *testing.T) {
	cfg := Default()
	if cfg.HasBinding() {
		t.Error("empty config should have no binding")
	}
	cfg.Keybind = "a"
	if cfg.HasBinding() {
		t.Error("binding without token is incomplete")
	}
	cfg.AuthToken = "tok"
	if !cfg.HasBinding() {
		t.Error("binding with token should be complete")
	}
}
