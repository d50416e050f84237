// Package config handles the XDG configuration directory and the optional config.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional settings filename inside the config directory.
	ConfigFile = "config.toml"

	// Storage backends.
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	// DefaultStorageKey is the key the task list is stored under.
	DefaultStorageKey = "task"

	fileDataName   = "tasks.json"
	sqliteDataName = "tasks.db"
)

// Environment variables overriding config.toml.
const (
	EnvBackend  = "TODO_BACKEND"
	EnvDataFile = "TODO_DATA_FILE"
	EnvLogLevel = "TODO_LOG_LEVEL"
)

var validate = validator.New()

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`

	// Backend selects the storage implementation.
	Backend string `toml:"backend" validate:"oneof=file sqlite memory"`

	// DataFile overrides the data file location. Relative paths are
	// resolved against Dir.
	DataFile string `toml:"data_file"`

	// StorageKey is the key the task list is stored under.
	StorageKey string `toml:"storage_key" validate:"required,printascii"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// LogFormat is one of text, json, logfmt.
	LogFormat string `toml:"log_format" validate:"omitempty,oneof=text json logfmt"`
}

// New creates a new Config with the default or specified config directory
// and default settings. If configDir is empty, uses XDG_CONFIG_HOME/todo or
// $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:        dir,
		Backend:    BackendFile,
		StorageKey: DefaultStorageKey,
		LogLevel:   "warn",
		LogFormat:  "text",
	}, nil
}

// Load creates a Config like New, then applies config.toml (if present) and
// environment overrides, and validates the result.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.readFile(); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.toml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DataPath returns the data file for the configured backend.
func (c *Config) DataPath() string {
	if c.DataFile != "" {
		if filepath.IsAbs(c.DataFile) {
			return c.DataFile
		}
		return filepath.Join(c.Dir, c.DataFile)
	}
	if c.Backend == BackendSQLite {
		return filepath.Join(c.Dir, sqliteDataName)
	}
	return filepath.Join(c.Dir, fileDataName)
}

// Validate checks the settings.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: invalid value %q", tomlName(e.Field()), e.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func (c *Config) readFile() error {
	_, err := toml.DecodeFile(c.ConfigPath(), c)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", c.ConfigPath(), err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvDataFile); v != "" {
		c.DataFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// tomlName maps a struct field name to its config.toml key.
func tomlName(field string) string {
	switch field {
	case "Backend":
		return "backend"
	case "StorageKey":
		return "storage_key"
	case "LogLevel":
		return "log_level"
	case "LogFormat":
		return "log_format"
	}
	return field
}
