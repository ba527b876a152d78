package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Paging
		Links
		Logging
		Tasks
		Purge
		Audit
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		SeedData bool // Seed sample authors and books into an empty database
	}
	Paging struct {
		DefaultPageSize int
		MaxPageSize     int
	}
	Links struct {
		HypermediaMediaType string // Accept value that switches responses to hypermedia
		BaseURL             string // Absolute base for links; derived from the request when empty
	}
	Logging struct {
		Level  string
		Format string // "json" or "console"
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Purge struct {
		Enabled   bool
		Schedule  string        // Cron format: "0 3 * * *" = daily at 03:00
		Retention time.Duration // How long soft-deleted authors are kept
	}
	Audit struct {
		Dir           string
		RetentionDays int // Days to keep audit events (default: 30)
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("seed_data", false)
	v.SetDefault("default_page_size", DefaultPageSize)
	v.SetDefault("max_page_size", MaxPageSize)
	v.SetDefault("hypermedia_media_type", HypermediaMediaType)
	v.SetDefault("base_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("audit_dir", "./audit")
	v.SetDefault("audit_retention_days", 30)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Purge defaults
	v.SetDefault("purge_enabled", false)
	v.SetDefault("purge_schedule", "0 3 * * *")
	v.SetDefault("purge_retention", "720h") // 30 days

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			SeedData: v.GetBool("SEED_DATA"),
		},
		Paging: Paging{
			DefaultPageSize: v.GetInt("DEFAULT_PAGE_SIZE"),
			MaxPageSize:     v.GetInt("MAX_PAGE_SIZE"),
		},
		Links: Links{
			HypermediaMediaType: v.GetString("HYPERMEDIA_MEDIA_TYPE"),
			BaseURL:             v.GetString("BASE_URL"),
		},
		Logging: Logging{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Purge: Purge{
			Enabled:   v.GetBool("PURGE_ENABLED"),
			Schedule:  v.GetString("PURGE_SCHEDULE"),
			Retention: v.GetDuration("PURGE_RETENTION"),
		},
		Audit: Audit{
			Dir:           v.GetString("AUDIT_DIR"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
	}
}

// Validate reports configuration that would make the server misbehave.
func (c *Config) Validate() error {
	if c.Paging.MaxPageSize < 1 {
		return fmt.Errorf("MAX_PAGE_SIZE must be positive, got %d", c.Paging.MaxPageSize)
	}
	if c.Paging.DefaultPageSize < 1 || c.Paging.DefaultPageSize > c.Paging.MaxPageSize {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be between 1 and %d, got %d", c.Paging.MaxPageSize, c.Paging.DefaultPageSize)
	}
	if c.Links.HypermediaMediaType == "" {
		return fmt.Errorf("HYPERMEDIA_MEDIA_TYPE must not be empty")
	}
	if c.Purge.Enabled {
		if _, err := cron.ParseStandard(c.Purge.Schedule); err != nil {
			return fmt.Errorf("invalid PURGE_SCHEDULE %q: %w", c.Purge.Schedule, err)
		}
		if c.Purge.Retention <= 0 {
			return fmt.Errorf("PURGE_RETENTION must be positive, got %s", c.Purge.Retention)
		}
		if !c.Tasks.Enabled {
			return fmt.Errorf("PURGE_ENABLED requires TASKS_ENABLED")
		}
	}
	return nil
}
