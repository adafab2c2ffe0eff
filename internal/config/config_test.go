package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TODO_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "json" || cfg.Log.Level != "info" || cfg.TUI.Glyphs != "unicode" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TUI.ActivityRows != 3 {
		t.Fatalf("expected 3 activity rows; got %d", cfg.TUI.ActivityRows)
	}
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODO_CONFIG_DIR", dir)

	body := strings.TrimSpace(`
format = "edn"
pretty = true

[log]
level = "debug"
format = "logfmt"

[tui]
glyphs = "ascii"
confirm_delete = true
`)
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TODO_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "edn" || !cfg.Pretty {
		t.Fatalf("expected file values; got format=%q pretty=%v", cfg.Format, cfg.Pretty)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("expected env to override log level; got %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "logfmt" {
		t.Fatalf("expected logfmt; got %q", cfg.Log.Format)
	}
	if cfg.TUI.Glyphs != "ascii" || !cfg.TUI.ConfirmDelete {
		t.Fatalf("unexpected tui config: %+v", cfg.TUI)
	}
	// Unset keys keep their defaults.
	if cfg.TUI.ActivityRows != 3 {
		t.Fatalf("expected default activity rows; got %d", cfg.TUI.ActivityRows)
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODO_CONFIG_DIR", dir)
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("colour = \"red\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "colour") {
		t.Fatalf("expected unknown key error; got %v", err)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("TODO_CONFIG_DIR", t.TempDir())
	t.Setenv("TODO_FORMAT", "xml")
	if _, err := Load(); err == nil {
		t.Fatalf("expected invalid format error")
	}
}

func TestLoad_InvalidPrettyEnv(t *testing.T) {
	t.Setenv("TODO_CONFIG_DIR", t.TempDir())
	t.Setenv("TODO_PRETTY", "sometimes")
	if _, err := Load(); err == nil {
		t.Fatalf("expected TODO_PRETTY parse error")
	}
}

func TestSave_RoundTripAndBackup(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODO_CONFIG_DIR", dir)

	cfg := Default()
	cfg.Format = "edn"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	cfg.TUI.ConfirmDelete = true
	if err := Save(cfg); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Format != "edn" || !got.TUI.ConfirmDelete {
		t.Fatalf("unexpected round-trip: %+v", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.toml.bak")); err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
}
