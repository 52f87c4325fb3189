// Package config loads the YAML server configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ICSSource describes a single ICS subscription.
type ICSSource struct {
	// ID is the provider alias and internal identifier.
	ID string `yaml:"id"`
	// Name is a human-friendly label.
	Name string `yaml:"name"`
	// URL is the ICS endpoint.
	URL string `yaml:"url"`
}

// Database selects and configures the event store backend.
type Database struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`
	// Path is the SQLite database path (":memory:" supported).
	Path string `yaml:"path"`
	// URL is the PostgreSQL connection URL.
	URL string `yaml:"url"`
}

// Config is the top-level server configuration.
type Config struct {
	// Listen is the HTTP listen address, e.g. ":8080".
	Listen string `yaml:"listen"`

	Database Database `yaml:"database"`

	// Timezone is the IANA timezone periods are normalized into.
	Timezone string `yaml:"timezone"`

	// WeekStart is the weekday a Week begins on ("monday", "sunday", ...).
	WeekStart string `yaml:"week_start"`

	// RefreshCron is a cron-style schedule for ICS refresh, e.g. "*/15 * * * *".
	// Empty disables scheduled refresh.
	RefreshCron string `yaml:"refresh"`

	// Sources is the list of subscribed ICS feeds.
	Sources []ICSSource `yaml:"sources"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Listen:    ":8080",
		Database:  Database{Driver: "sqlite", Path: "calendar.db"},
		Timezone:  "UTC",
		WeekStart: "monday",
	}
}

// Load reads the YAML file at path and fills unset fields with defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if cfg.WeekStart == "" {
		cfg.WeekStart = "monday"
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("config: database.path required for sqlite")
		}
	case "postgres":
		if c.Database.URL == "" {
			return fmt.Errorf("config: database.url required for postgres")
		}
	default:
		return fmt.Errorf("config: unknown database.driver %q", c.Database.Driver)
	}

	if _, err := c.FirstWeekday(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	for _, src := range c.Sources {
		if src.ID == "" || src.URL == "" {
			return fmt.Errorf("config: ics source needs both id and url")
		}
	}
	return nil
}

// FirstWeekday maps the week_start setting onto a time.Weekday.
func (c Config) FirstWeekday() (time.Weekday, error) {
	names := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}
	wd, ok := names[strings.ToLower(c.WeekStart)]
	if !ok {
		return time.Monday, fmt.Errorf("config: unknown week_start %q", c.WeekStart)
	}
	return wd, nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
