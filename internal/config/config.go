package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Tiliavir/commit-diary/internal/errors"
)

// Config is the root configuration for commit-diary, stored in
// ~/.config/commit-diary/config.yaml. Every key can be overridden through a
// COMMIT_DIARY_<KEY> environment variable.
type Config struct {
	// DiaryRoot is the absolute directory the year/month tree lives under.
	DiaryRoot string `mapstructure:"diary_root"`
	// MessageMaxLength caps the commit message cell, counted in characters.
	MessageMaxLength int `mapstructure:"message_max_length"`
	// Enabled turns recording off without uninstalling the hook.
	Enabled bool `mapstructure:"enabled"`
	// Timezone is the IANA zone used to pick the diary day. Empty = local.
	Timezone string `mapstructure:"timezone"`
	// Remote is the git remote whose URL is logged.
	Remote string `mapstructure:"remote"`
	// LogFile receives diagnostic logs when set.
	LogFile string `mapstructure:"log_file"`

	location *time.Location
}

const (
	// DefaultMessageMaxLength keeps table rows readable.
	DefaultMessageMaxLength = 120
	// DefaultRemote is the remote consulted for the repository URL.
	DefaultRemote = "origin"

	envPrefix = "COMMIT_DIARY"
)

// configTemplate is the annotated config written on first run.
const configTemplate = `# commit-diary configuration – ~/.config/commit-diary/config.yaml
#
# Every key can also be set through the environment, e.g.
# COMMIT_DIARY_ENABLED=false git commit ...

# Directory holding the <YYYY>/<MM>-<Month>/<YYYY-MM-DD>.md tree.
# Required. Must be absolute; a leading ~ is expanded.
# diary_root: ~/Documents/Wiki/Diaries/Commits

# Maximum number of characters kept from a commit message.
message_max_length: 120

# Set to false to stop logging commits without removing the hook.
enabled: true

# IANA timezone deciding which day a commit belongs to, e.g. "Europe/Berlin".
# Leave empty to use the local timezone.
timezone: ""

# Remote whose URL is written to the diary.
remote: origin

# Optional file receiving diagnostic logs.
log_file: ""
`

// DefaultPath returns ~/.config/commit-diary/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "commit-diary", "config.yaml"), nil
}

// Default returns a Config pre-filled with built-in defaults. DiaryRoot has
// no default and must be configured.
func Default() Config {
	return Config{
		MessageMaxLength: DefaultMessageMaxLength,
		Enabled:          true,
		Remote:           DefaultRemote,
	}
}

// Load reads the config file at path (DefaultPath when empty), applies
// environment overrides and validates the result. A missing file is created
// from the annotated template on first run.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, errors.NewConfigError("config path", nil, err)
		}
		path = p
	}

	v := viper.New()
	defaults := Default()
	v.SetDefault("diary_root", "")
	v.SetDefault("message_max_length", defaults.MessageMaxLength)
	v.SetDefault("enabled", defaults.Enabled)
	v.SetDefault("timezone", "")
	v.SetDefault("remote", defaults.Remote)
	v.SetDefault("log_file", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_, err := os.Stat(path)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	case err != nil:
		return Config{}, errors.NewConfigError("config file", path, err)
	default:
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.NewConfigError("config file", path,
				fmt.Errorf("%w\nTip: delete the file to regenerate defaults", err))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.NewConfigError("config file", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate expands and checks every field. It must succeed before any
// filesystem work is done with the config.
func (c *Config) Validate() error {
	root, err := expandHome(strings.TrimSpace(c.DiaryRoot))
	if err != nil {
		return errors.NewConfigError("diary_root", c.DiaryRoot, err)
	}
	if root == "" {
		return errors.NewConfigError("diary_root", nil, errors.New("is required"))
	}
	if !filepath.IsAbs(root) {
		return errors.NewConfigError("diary_root", c.DiaryRoot, errors.New("must be an absolute path"))
	}
	c.DiaryRoot = filepath.Clean(root)

	if c.MessageMaxLength <= 0 {
		return errors.NewConfigError("message_max_length", c.MessageMaxLength, errors.New("must be greater than zero"))
	}

	c.location = time.Local
	if c.Timezone != "" {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return errors.NewConfigError("timezone", c.Timezone, err)
		}
		c.location = loc
	}

	if c.Remote == "" {
		c.Remote = DefaultRemote
	}
	return nil
}

// Location returns the timezone resolved by Validate, or time.Local.
func (c Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
