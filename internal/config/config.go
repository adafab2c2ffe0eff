// Package config loads user preferences from ~/.todo/config.toml, layered
// with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const fileName = "config.toml"

type Config struct {
	// Format is the CLI output format (json|edn|markdown).
	Format string `toml:"format" json:"format"`
	Pretty bool   `toml:"pretty" json:"pretty"`

	Log     LogConfig     `toml:"log" json:"log"`
	TUI     TUIConfig     `toml:"tui" json:"tui"`
	Metrics MetricsConfig `toml:"metrics" json:"metrics"`
}

type LogConfig struct {
	// Level is one of debug|info|warn|error.
	Level string `toml:"level" json:"level"`
	// Format is one of text|json|logfmt.
	Format string `toml:"format" json:"format"`
	// File receives log output. The TUI discards logs when it is empty.
	File string `toml:"file,omitempty" json:"file,omitempty"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set (unicode|ascii).
	Glyphs        string `toml:"glyphs" json:"glyphs"`
	ConfirmDelete bool   `toml:"confirm_delete" json:"confirmDelete"`
	// ActivityRows is how many journal entries the footer shows (0 hides it).
	ActivityRows int `toml:"activity_rows" json:"activityRows"`
}

type MetricsConfig struct {
	// File, when set, receives a Prometheus textfile after script runs.
	File string `toml:"file,omitempty" json:"file,omitempty"`
}

func Default() Config {
	return Config{
		Format: "json",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		TUI: TUIConfig{
			Glyphs:       "unicode",
			ActivityRows: 3,
		},
	}
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.todo).
	if v := strings.TrimSpace(os.Getenv("TODO_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".todo"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load returns defaults overlaid with the config file (if any) and then the
// environment.
func Load() (Config, error) {
	cfg := Default()
	path, err := Path()
	if err != nil {
		return cfg, err
	}
	if err := loadFile(&cfg, path); err != nil {
		return cfg, fmt.Errorf("loading config file %s: %w", path, err)
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, 0, len(undec))
		for _, k := range undec {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv("TODO_FORMAT")); v != "" {
		cfg.Format = v
	}
	if v := strings.TrimSpace(os.Getenv("TODO_PRETTY")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TODO_PRETTY: %w", err)
		}
		cfg.Pretty = b
	}
	if v := strings.TrimSpace(os.Getenv("TODO_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("TODO_LOG_FORMAT")); v != "" {
		cfg.Log.Format = v
	}
	if v := strings.TrimSpace(os.Getenv("TODO_LOG_FILE")); v != "" {
		cfg.Log.File = v
	}
	if v := strings.TrimSpace(os.Getenv("TODO_TUI_GLYPHS")); v != "" {
		cfg.TUI.Glyphs = v
	}
	if v := strings.TrimSpace(os.Getenv("TODO_METRICS_FILE")); v != "" {
		cfg.Metrics.File = v
	}
	return nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Format) {
	case "", "json", "edn", "markdown", "md":
	default:
		return fmt.Errorf("invalid format %q (want json|edn|markdown)", c.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	switch strings.ToLower(c.TUI.Glyphs) {
	case "", "unicode", "utf8", "ascii":
	default:
		return fmt.Errorf("invalid tui glyphs %q (want unicode|ascii)", c.TUI.Glyphs)
	}
	if c.TUI.ActivityRows < 0 {
		return fmt.Errorf("tui activity_rows must be >= 0")
	}
	return nil
}

// Save writes cfg to the config file, keeping a .bak of the previous file.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.toml.bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(dir, "config.toml.*.tmp", path, buf.Bytes(), 0o600)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
