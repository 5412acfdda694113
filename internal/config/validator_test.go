package config

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "directory.timeout_seconds",
		Value:   0,
		Message: "must be at least 1",
	}

	want := "directory.timeout_seconds: must be at least 1 (got: 0)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := (ValidationErrors{}).Error(); got != "" {
			t.Errorf("Error() = %q, want empty", got)
		}
	})

	t.Run("single", func(t *testing.T) {
		errs := ValidationErrors{{Field: "a", Value: 1, Message: "bad"}}
		if got := errs.Error(); got != "a: bad (got: 1)" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("multiple", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "a", Value: 1, Message: "bad"},
			{Field: "b", Value: 2, Message: "worse"},
		}
		got := errs.Error()
		if !strings.HasPrefix(got, "2 validation errors:") {
			t.Errorf("Error() = %q, want count prefix", got)
		}
		if !strings.Contains(got, "1. a: bad") || !strings.Contains(got, "2. b: worse") {
			t.Errorf("Error() = %q, want numbered entries", got)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		fields []string
	}{
		{
			name:   "defaults are valid",
			modify: func(c *Config) {},
		},
		{
			name:   "https base url",
			modify: func(c *Config) { c.Directory.BaseURL = "https://ghe.example.com/api/v3/" },
		},
		{
			name:   "http base url",
			modify: func(c *Config) { c.Directory.BaseURL = "http://127.0.0.1:8080/" },
		},
		{
			name:   "relative base url",
			modify: func(c *Config) { c.Directory.BaseURL = "api/v3" },
			fields: []string{"directory.base_url"},
		},
		{
			name:   "unsupported scheme",
			modify: func(c *Config) { c.Directory.BaseURL = "ftp://example.com/" },
			fields: []string{"directory.base_url"},
		},
		{
			name:   "zero timeout",
			modify: func(c *Config) { c.Directory.TimeoutSeconds = 0 },
			fields: []string{"directory.timeout_seconds"},
		},
		{
			name:   "huge timeout",
			modify: func(c *Config) { c.Directory.TimeoutSeconds = 301 },
			fields: []string{"directory.timeout_seconds"},
		},
		{
			name:   "blank user agent",
			modify: func(c *Config) { c.Directory.UserAgent = "  " },
			fields: []string{"directory.user_agent"},
		},
		{
			name:   "empty theme",
			modify: func(c *Config) { c.TUI.Theme = "" },
			fields: []string{"tui.theme"},
		},
		{
			name:   "bad log level",
			modify: func(c *Config) { c.Logging.Level = "verbose" },
			fields: []string{"logging.level"},
		},
		{
			name:   "empty log level allowed",
			modify: func(c *Config) { c.Logging.Level = "" },
		},
		{
			name:   "zero log size",
			modify: func(c *Config) { c.Logging.MaxSizeMB = 0 },
			fields: []string{"logging.max_size_mb"},
		},
		{
			name:   "oversized log",
			modify: func(c *Config) { c.Logging.MaxSizeMB = 1001 },
			fields: []string{"logging.max_size_mb"},
		},
		{
			name:   "negative backups",
			modify: func(c *Config) { c.Logging.MaxBackups = -1 },
			fields: []string{"logging.max_backups"},
		},
		{
			name: "collects every error",
			modify: func(c *Config) {
				c.Directory.TimeoutSeconds = -5
				c.TUI.Theme = ""
				c.Logging.MaxBackups = -1
			},
			fields: []string{"directory.timeout_seconds", "tui.theme", "logging.max_backups"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			errs := cfg.Validate()
			if len(errs) != len(tt.fields) {
				t.Fatalf("Validate() returned %d errors, want %d: %v", len(errs), len(tt.fields), errs)
			}
			for i, field := range tt.fields {
				if errs[i].Field != field {
					t.Errorf("errs[%d].Field = %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}
