package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// PropertyMap is the explicit logical→physical property-name table used
// by the task normalizer. Renaming a column in the task store only needs
// a config change, never a code change. An entry left empty after
// defaulting fails validation.
type PropertyMap struct {
	Title       string `yaml:"title"`
	Status      string `yaml:"status"`
	Date        string `yaml:"date"`
	Category    string `yaml:"category"`
	Type        string `yaml:"type"`
	Priority    string `yaml:"priority"`
	Description string `yaml:"description"`
	Location    string `yaml:"location"`
}

// StatusNames maps the engine's task lifecycle states onto the status
// option names used in the task store.
type StatusNames struct {
	NotStarted string `yaml:"not_started"`
	InProgress string `yaml:"in_progress"`
	Done       string `yaml:"done"`
	Archived   string `yaml:"archived"`
}

// NotionConfig configures the task-store side of the sync.
type NotionConfig struct {
	// Token is the integration token. Usually provided via NOTION_TOKEN
	// rather than the config file.
	Token      string      `yaml:"token"`
	Database   string      `yaml:"database"`
	Properties PropertyMap `yaml:"properties"`
	Statuses   StatusNames `yaml:"statuses"`
}

// CalendarConfig configures the calendar side of the sync.
type CalendarConfig struct {
	ID         string `yaml:"id"`
	WindowDays int    `yaml:"window_days"`
	ThrottleMs int    `yaml:"throttle_ms"`

	// ReminderMinutes is the popup reminder lead time for timed events.
	// Zero disables reminders entirely. Synced events never inherit the
	// calendar's default reminders.
	ReminderMinutes int `yaml:"reminder_minutes"`
}

// MirrorConfig configures the local mirror store.
type MirrorConfig struct {
	Path string `yaml:"path"`
}

// ArchiveConfig configures the archival policy.
type ArchiveConfig struct {
	AfterDays int `yaml:"after_days"`
}

// Config is the full tasksync configuration.
type Config struct {
	Notion   NotionConfig   `yaml:"notion"`
	Calendar CalendarConfig `yaml:"calendar"`
	Mirror   MirrorConfig   `yaml:"mirror"`
	Archive  ArchiveConfig  `yaml:"archive"`
	LogLevel string         `yaml:"log_level"`
	Metrics  bool           `yaml:"metrics"`
}

// Default returns the configuration defaults applied before the file and
// environment are read.
func Default() Config {
	return Config{
		Notion: NotionConfig{
			Properties: PropertyMap{
				Title:       "Name",
				Status:      "Status",
				Date:        "Date",
				Category:    "Category",
				Type:        "Type",
				Priority:    "Priority",
				Description: "Description",
				Location:    "Location",
			},
			Statuses: StatusNames{
				NotStarted: "Not started",
				InProgress: "In progress",
				Done:       "Done",
				Archived:   "Archived",
			},
		},
		Calendar: CalendarConfig{
			ID:              "primary",
			WindowDays:      30,
			ThrottleMs:      50,
			ReminderMinutes: 10,
		},
		Mirror: MirrorConfig{
			Path: defaultMirrorPath(),
		},
		Archive: ArchiveConfig{
			AfterDays: 3,
		},
		LogLevel: "info",
	}
}

// Load reads the config file at path on top of the defaults, applies
// environment overrides and validates the result. An empty path loads
// defaults and environment only.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if token := os.Getenv("NOTION_TOKEN"); token != "" {
		cfg.Notion.Token = token
	}
	if db := os.Getenv("NOTION_DATABASE"); db != "" {
		cfg.Notion.Database = db
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate fails fast on a configuration the engine cannot run with.
func (c *Config) Validate() error {
	if c.Notion.Token == "" {
		return fmt.Errorf("notion token is required (set NOTION_TOKEN or notion.token)")
	}
	if c.Notion.Database == "" {
		return fmt.Errorf("notion database id is required (set NOTION_DATABASE or notion.database)")
	}

	required := map[string]string{
		"title":       c.Notion.Properties.Title,
		"status":      c.Notion.Properties.Status,
		"date":        c.Notion.Properties.Date,
		"category":    c.Notion.Properties.Category,
		"type":        c.Notion.Properties.Type,
		"priority":    c.Notion.Properties.Priority,
		"description": c.Notion.Properties.Description,
		"location":    c.Notion.Properties.Location,
	}
	for logical, physical := range required {
		if physical == "" {
			return fmt.Errorf("notion.properties.%s has no mapping", logical)
		}
	}

	statuses := map[string]string{
		"not_started": c.Notion.Statuses.NotStarted,
		"in_progress": c.Notion.Statuses.InProgress,
		"done":        c.Notion.Statuses.Done,
		"archived":    c.Notion.Statuses.Archived,
	}
	for logical, name := range statuses {
		if name == "" {
			return fmt.Errorf("notion.statuses.%s has no mapping", logical)
		}
	}

	if c.Calendar.WindowDays <= 0 {
		return fmt.Errorf("calendar.window_days must be positive")
	}
	if c.Calendar.ThrottleMs < 0 {
		return fmt.Errorf("calendar.throttle_ms must not be negative")
	}
	if c.Calendar.ReminderMinutes < 0 {
		return fmt.Errorf("calendar.reminder_minutes must not be negative")
	}
	if c.Archive.AfterDays <= 0 {
		return fmt.Errorf("archive.after_days must be positive")
	}
	if c.Mirror.Path == "" {
		return fmt.Errorf("mirror.path is required")
	}
	return nil
}

// Window returns the relevance window as a duration.
func (c *Config) Window() time.Duration {
	return time.Duration(c.Calendar.WindowDays) * 24 * time.Hour
}

// Throttle returns the inter-call delay for calendar mutations.
func (c *Config) Throttle() time.Duration {
	return time.Duration(c.Calendar.ThrottleMs) * time.Millisecond
}

// ArchiveAfter returns the archival threshold as a duration.
func (c *Config) ArchiveAfter() time.Duration {
	return time.Duration(c.Archive.AfterDays) * 24 * time.Hour
}

// DefaultPath returns the default config file location, or "" when the
// user config dir cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tasksync", "config.yaml")
}

func defaultMirrorPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "tasksync.db"
	}
	return filepath.Join(dir, "tasksync", "mirror.db")
}
