package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.False(t, cfg.Database.SeedData)
	assert.Equal(t, 5, cfg.Paging.DefaultPageSize)
	assert.Equal(t, 20, cfg.Paging.MaxPageSize)
	assert.Equal(t, HypermediaMediaType, cfg.Links.HypermediaMediaType)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.False(t, cfg.Purge.Enabled)
	assert.Equal(t, 720*time.Hour, cfg.Purge.Retention)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)

	assert.NoError(t, cfg.Validate())
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_PAGE_SIZE", "50")
	t.Setenv("BASE_URL", "https://library.example.org")
	t.Setenv("PURGE_ENABLED", "true")
	t.Setenv("PURGE_RETENTION", "48h")

	cfg := NewConfig()

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.Equal(t, 50, cfg.Paging.MaxPageSize)
	assert.Equal(t, "https://library.example.org", cfg.Links.BaseURL)
	assert.True(t, cfg.Purge.Enabled)
	assert.Equal(t, 48*time.Hour, cfg.Purge.Retention)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non-positive max page size", func(c *Config) { c.Paging.MaxPageSize = 0 }},
		{"default above max", func(c *Config) { c.Paging.DefaultPageSize = 30 }},
		{"empty media type", func(c *Config) { c.Links.HypermediaMediaType = "" }},
		{"bad purge schedule", func(c *Config) {
			c.Purge.Enabled = true
			c.Purge.Schedule = "every day"
		}},
		{"purge without retention", func(c *Config) {
			c.Purge.Enabled = true
			c.Purge.Retention = 0
		}},
		{"purge without tasks", func(c *Config) {
			c.Purge.Enabled = true
			c.Tasks.Enabled = false
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
