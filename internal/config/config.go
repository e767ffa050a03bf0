// Package config provides configuration management for daybook.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the daybook application.
type Config struct {
	// Journal is the default journal file path. Empty means the
	// platform data directory.
	Journal       string             `mapstructure:"journal"`
	HideCompleted bool               `mapstructure:"hide_completed"`
	FavoriteTags  map[string]string  `mapstructure:"favorite_tags"`
	SavedFilters  map[string]string  `mapstructure:"saved_filters"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Calendar      CalendarConfig     `mapstructure:"calendar"`
	MCP           MCPConfig          `mapstructure:"mcp"`
}

// NotificationConfig holds desktop reminder settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
	// LeadTime is how long before an event's @date the reminder fires.
	LeadTime Duration `mapstructure:"lead_time"`
}

// CalendarConfig holds ICS calendar import settings.
type CalendarConfig struct {
	// Sources are local .ics paths or http(s) URLs.
	Sources         []string `mapstructure:"sources"`
	RefreshInterval Duration `mapstructure:"refresh_interval"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Journal:       "",
		HideCompleted: false,
		FavoriteTags:  map[string]string{},
		SavedFilters:  map[string]string{},
		Notifications: NotificationConfig{
			Enabled:  true,
			Sound:    false,
			LeadTime: Duration(10 * time.Minute),
		},
		Calendar: CalendarConfig{
			Sources:         nil,
			RefreshInterval: Duration(time.Hour),
		},
		MCP: MCPConfig{
			Enabled: true,
		},
	}
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from an explicit path, creating it
// with defaults when missing.
func LoadFrom(configPath string) (*Config, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	setDefaults(v)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(configPath, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.FavoriteTags == nil {
		cfg.FavoriteTags = map[string]string{}
	}
	if cfg.SavedFilters == nil {
		cfg.SavedFilters = map[string]string{}
	}
	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveTo(configPath, cfg)
}

// SaveTo saves the configuration to an explicit path.
func SaveTo(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	v.Set("journal", cfg.Journal)
	v.Set("hide_completed", cfg.HideCompleted)
	v.Set("favorite_tags", cfg.FavoriteTags)
	v.Set("saved_filters", cfg.SavedFilters)
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("notifications.sound", cfg.Notifications.Sound)
	v.Set("notifications.lead_time", cfg.Notifications.LeadTime.String())
	v.Set("calendar.sources", cfg.Calendar.Sources)
	v.Set("calendar.refresh_interval", cfg.Calendar.RefreshInterval.String())
	v.Set("mcp.enabled", cfg.MCP.Enabled)

	return v.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "daybook", "config.toml"), nil
}

// JournalPath resolves the journal file to use: the configured path if
// set, otherwise the platform data directory.
func (c *Config) JournalPath() (string, error) {
	if c.Journal != "" {
		if filepath.IsAbs(c.Journal) {
			return c.Journal, nil
		}
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return filepath.Join(wd, c.Journal), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "daybook", "journal.md"), nil
}

// CachePath returns the path for derived data such as fetched calendars.
func CachePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cache", "daybook"), nil
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("journal", "")
	v.SetDefault("hide_completed", false)
	v.SetDefault("notifications.enabled", true)
	v.SetDefault("notifications.sound", false)
	v.SetDefault("notifications.lead_time", "10m")
	v.SetDefault("calendar.refresh_interval", "1h")
	v.SetDefault("mcp.enabled", true)
}
