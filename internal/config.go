package internal

import (
	"fmt"
	"log/slog"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/ansuz/internal/origin"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Export  ExportConfig      `yaml:"export"`
	Site    SiteConfig        `yaml:"site"`
	Git     GitConfig         `yaml:"git"`
	Origin  OriginConfig      `yaml:"origin"`
	Journal JournalConfig     `yaml:"journal"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Export.Validate(); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return err
	}
	return c.Origin.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds the preview server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns the preview server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ExportConfig describes where and how raw notes are exported.
type ExportConfig struct {
	// Root is the directory the exporter writes flat markdown files into.
	Root string `yaml:"root"`
	// Tool is the exporter executable looked up on PATH.
	Tool string `yaml:"tool"`
	// FallbackDir is a local checkout searched when Tool is not on PATH.
	FallbackDir string `yaml:"fallback_dir"`
}

// Validate validates the export configuration.
func (c *ExportConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.Tool, validation.Required),
	)
}

// SiteConfig locates the static-site checkout and its content tree.
type SiteConfig struct {
	// Root is the site repository root (where git runs).
	Root string `yaml:"root"`
	// ContentDir is the posts directory relative to Root.
	ContentDir string `yaml:"content_dir"`
}

// ContentPath returns the absolute-ish path of the content tree.
func (c *SiteConfig) ContentPath() string {
	return filepath.Join(c.Root, c.ContentDir)
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.ContentDir, validation.Required),
	)
}

// GitConfig controls the commit/push step at the end of the pipeline.
type GitConfig struct {
	// Disabled skips staging, committing, and pushing entirely.
	Disabled bool `yaml:"disabled"`
}

// OriginConfig controls how publish-state changes flow back to the
// originating note store.
type OriginConfig struct {
	Mode string `yaml:"mode"`
}

// Validate validates the origin configuration.
func (c *OriginConfig) Validate() error {
	// Normalise empty mode to "disabled".
	if c.Mode == "" {
		c.Mode = origin.ModeDisabled
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(origin.ModeDisabled, origin.ModeAppleNotes)),
	)
}

// JournalConfig holds the run-history database location. An empty path
// disables the journal.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Export: ExportConfig{
			Root:        ".notes-export",
			Tool:        "exportnotes.zsh",
			FallbackDir: filepath.Join("tools", "notes-exporter"),
		},
		Site: SiteConfig{
			Root:       ".",
			ContentDir: filepath.Join("content", "posts"),
		},
		Origin: OriginConfig{
			Mode: origin.ModeAppleNotes,
		},
		Journal: JournalConfig{
			Path: "./ansuz.db",
		},
	}
}
