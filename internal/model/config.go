package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. TASKLOGGER_DATABASE_PATH.
const EnvPrefix = "TASKLOGGER"

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level    string `mapstructure:"level" yaml:"level"`
	Encoding string `mapstructure:"encoding" yaml:"encoding"`
	File     string `mapstructure:"file" yaml:"file"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// WeekStart is the first day of the "This Week" window.
	WeekStart string `mapstructure:"week_start" yaml:"week_start"`

	// DefaultFilter is the filter applied when the task list first loads.
	DefaultFilter string `mapstructure:"default_filter" yaml:"default_filter"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
}

// WeekStartDay parses Display.WeekStart, falling back to Monday.
func (c *AppConfig) WeekStartDay() time.Weekday {
	d, err := ParseWeekday(c.Display.WeekStart)
	if err != nil {
		return time.Monday
	}
	return d
}

// InitialFilter parses Display.DefaultFilter. A category default cannot
// be expressed without a label, so it falls back to All.
func (c *AppConfig) InitialFilter() Filter {
	kind, err := ParseFilterKind(c.Display.DefaultFilter)
	if err != nil || kind == FilterCategory {
		return AllTasks
	}
	return Filter{Kind: kind}
}

// DefaultConfigDir returns ~/.config/tasklogger.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "tasklogger")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/tasklogger/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	dir := DefaultConfigDir()
	return &AppConfig{
		Database: DatabaseConfig{
			Path: filepath.Join(dir, "tasks.db"),
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
			File:     filepath.Join(dir, "tasklogger.log"),
		},
		Display: DisplayConfig{
			WeekStart:     "monday",
			DefaultFilter: "all",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Values from a .env file in the working directory and TASKLOGGER_*
// environment variables override the file. A missing file is not an error.
func LoadConfig(path string) (*AppConfig, error) {
	_ = godotenv.Load(".env")

	defaults := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values and env
	// overrides are discovered during Unmarshal.
	v.SetDefault("database.path", defaults.Database.Path)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.encoding", defaults.Log.Encoding)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("display.week_start", defaults.Display.WeekStart)
	v.SetDefault("display.default_filter", defaults.Display.DefaultFilter)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Database.Path = expandHome(cfg.Database.Path)
	cfg.Log.File = expandHome(cfg.Log.File)

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("log", cfg.Log)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
