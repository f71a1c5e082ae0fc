package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/treykane/chousei/internal/composer"
	"github.com/treykane/chousei/internal/logging"
)

var log = logging.New("config")

const (
	configDirName  = ".chousei"
	configFileName = "config.json"

	// DefaultTimeIntervalMinutes is the spacing of the time picker grid.
	DefaultTimeIntervalMinutes = 15
)

var ErrNotConfigured = errors.New("chousei is not configured")

// Config stores user-defined composer settings.
type Config struct {
	// Preamble is the first line of every message.
	Preamble string `json:"preamble"`
	// TimeIntervalMinutes spaces the time picker entries.
	TimeIntervalMinutes int `json:"time_interval_minutes"`
	// SlackStamps decorate Slack copies on the standard platform.
	SlackStamps []string `json:"slack_stamps,omitempty"`
	// RestrictedSlackStamps decorate Slack copies on clipboard-restricted
	// platforms.
	RestrictedSlackStamps []string `json:"restricted_slack_stamps,omitempty"`
	// RestrictedMarkers select the clipboard fallback when found in the
	// environment identification string.
	RestrictedMarkers []string `json:"restricted_markers,omitempty"`
	// FallbackCommand, when set, replaces the OSC 52 fallback with an external
	// copy command that reads the text on stdin (e.g. ["termux-clipboard-set"]).
	FallbackCommand []string `json:"fallback_command,omitempty"`
	// Keybindings override action keys, e.g. {"copy.slack": "ctrl+k"}.
	Keybindings map[string]string `json:"keybindings,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Preamble:              composer.DefaultPreamble,
		TimeIntervalMinutes:   DefaultTimeIntervalMinutes,
		SlackStamps:           append([]string(nil), composer.DefaultDecorationTables.Standard...),
		RestrictedSlackStamps: append([]string(nil), composer.DefaultDecorationTables.Restricted...),
		RestrictedMarkers:     append([]string(nil), composer.DefaultRestrictedMarkers...),
	}
}

// DecorationTables returns the configured stamp tables.
func (c Config) DecorationTables() composer.DecorationTables {
	return composer.DecorationTables{
		Standard:   composer.DecorationTable(c.SlackStamps),
		Restricted: composer.DecorationTable(c.RestrictedSlackStamps),
	}
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// Exists reports whether the config file exists.
func Exists() (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	return ExistsFile(path)
}

// ExistsFile reports whether a config file exists at path.
func ExistsFile(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat config path %q: %w", path, err)
}

// Load reads the configuration from the default path.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(path)
}

// LoadFile reads and normalizes the configuration at path. A missing file
// yields ErrNotConfigured.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, ErrNotConfigured
		}
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes configuration to the default path.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile normalizes cfg and writes it to path.
func SaveFile(path string, cfg Config) error {
	if err := cfg.Normalize(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %q: %w", path, err)
	}
	log.Info("saved config", "path", path)
	return nil
}

// Normalize fills defaults and validates values in place.
func (c *Config) Normalize() error {
	if strings.TrimSpace(c.Preamble) == "" {
		c.Preamble = composer.DefaultPreamble
	}
	if !strings.HasSuffix(c.Preamble, "\n") {
		c.Preamble += "\n"
	}

	switch {
	case c.TimeIntervalMinutes == 0:
		c.TimeIntervalMinutes = DefaultTimeIntervalMinutes
	case c.TimeIntervalMinutes < 0 || c.TimeIntervalMinutes > 60 || 60%c.TimeIntervalMinutes != 0:
		return fmt.Errorf("invalid time_interval_minutes %d: must divide 60", c.TimeIntervalMinutes)
	}

	c.SlackStamps = compactStrings(c.SlackStamps)
	c.RestrictedSlackStamps = compactStrings(c.RestrictedSlackStamps)
	c.RestrictedMarkers = compactStrings(c.RestrictedMarkers)
	c.FallbackCommand = compactStrings(c.FallbackCommand)
	return nil
}

// compactStrings trims entries and drops blanks.
func compactStrings(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
