// Package config provides configuration types and defaults for spherenav.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/zjrosen/spherenav/internal/deeplink"
	"github.com/zjrosen/spherenav/internal/log"
	"github.com/zjrosen/spherenav/internal/sphere"
	"github.com/zjrosen/spherenav/internal/tracing"
)

// Config holds all configuration options for spherenav.
type Config struct {
	Locale    string              `mapstructure:"locale"`
	DeepLink  DeepLinkConfig      `mapstructure:"deeplink"`
	History   HistoryConfig       `mapstructure:"history"`
	Sections  SectionsConfig      `mapstructure:"sections"`
	Adjacency map[string][]string `mapstructure:"adjacency"` // replaces the built-in sphere graph when set
	Store     StoreConfig         `mapstructure:"store"`
	Tracing   tracing.Config      `mapstructure:"tracing"`
	Metrics   MetricsConfig       `mapstructure:"metrics"`
	Inbox     InboxConfig         `mapstructure:"inbox"`
	Flags     map[string]bool     `mapstructure:"flags"`
}

// DeepLinkConfig holds the scheme and host used for shareable links.
type DeepLinkConfig struct {
	Scheme string `mapstructure:"scheme"`
	Host   string `mapstructure:"host"`
}

// HistoryConfig bounds navigation history.
type HistoryConfig struct {
	Capacity int `mapstructure:"capacity"` // 0 keeps every entry
}

// SectionsConfig selects the optional sections.
type SectionsConfig struct {
	// Extended lists enabled extended sections. Unset enables all of them,
	// an empty list enables none.
	Extended []string `mapstructure:"extended"`
}

// StoreConfig holds the last-known-location store settings.
type StoreConfig struct {
	Path    string `mapstructure:"path"`    // sqlite file; empty disables the store
	Restore bool   `mapstructure:"restore"` // resume at the stored location on start
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// InboxConfig points the watch command at a deep-link inbox file.
type InboxConfig struct {
	Path     string        `mapstructure:"path"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// DefaultStorePath returns ~/.spherenav/locations.db, or an empty string
// if the home directory is unavailable.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".spherenav", "locations.db")
}

// DefaultTracesFilePath returns ~/.config/spherenav/traces/traces.jsonl or
// an empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "spherenav", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Locale: string(sphere.DefaultLocale),
		DeepLink: DeepLinkConfig{
			Scheme: deeplink.DefaultScheme,
			Host:   deeplink.DefaultHost,
		},
		History: HistoryConfig{
			Capacity: 256,
		},
		Store: StoreConfig{
			Path:    DefaultStorePath(),
			Restore: true,
		},
		Tracing: tracing.DefaultConfig(),
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9464",
		},
		Inbox: InboxConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// ExtendedSectionIDs converts the configured extended sections. A nil
// result enables every extended section.
func (c Config) ExtendedSectionIDs() []sphere.SectionID {
	if c.Sections.Extended == nil {
		return nil
	}
	ids := make([]sphere.SectionID, 0, len(c.Sections.Extended))
	for _, s := range c.Sections.Extended {
		ids = append(ids, sphere.SectionID(s))
	}
	return ids
}

// AdjacencyMap converts the configured adjacency. A nil result keeps the
// built-in graph.
func (c Config) AdjacencyMap() map[sphere.DomainID][]sphere.DomainID {
	if len(c.Adjacency) == 0 {
		return nil
	}
	adj := make(map[sphere.DomainID][]sphere.DomainID, len(c.Adjacency))
	for from, tos := range c.Adjacency {
		ns := make([]sphere.DomainID, 0, len(tos))
		for _, to := range tos {
			ns = append(ns, sphere.DomainID(to))
		}
		adj[sphere.DomainID(from)] = ns
	}
	return adj
}

// DisplayLocale returns the configured locale, or the default locale when unset.
func (c Config) DisplayLocale() sphere.Locale {
	if c.Locale == "" {
		return sphere.DefaultLocale
	}
	return sphere.Locale(c.Locale)
}

// Validate checks the configuration for errors. Empty values fall back to
// defaults and are valid.
func Validate(c Config) error {
	var errs []error
	if err := ValidateLocale(c.Locale); err != nil {
		errs = append(errs, err)
	}
	if c.History.Capacity < 0 {
		errs = append(errs, fmt.Errorf("history.capacity must be >= 0, got %d", c.History.Capacity))
	}
	if err := ValidateSections(c.Sections); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateAdjacency(c.Adjacency); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		errs = append(errs, err)
	}
	if c.Inbox.Debounce < 0 {
		errs = append(errs, fmt.Errorf("inbox.debounce must not be negative, got %s", c.Inbox.Debounce))
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		errs = append(errs, errors.New("metrics.addr is required when metrics are enabled"))
	}
	if c.DeepLink.Scheme != "" && !sphere.ValidSlug(c.DeepLink.Scheme) {
		errs = append(errs, fmt.Errorf("deeplink.scheme %q must be a lowercase slug", c.DeepLink.Scheme))
	}
	return errors.Join(errs...)
}

// ValidateLocale accepts an empty locale or one of the supported locales.
func ValidateLocale(locale string) error {
	switch sphere.Locale(locale) {
	case "", sphere.LocaleEnglish, sphere.LocaleSpanish:
		return nil
	}
	return fmt.Errorf("locale must be %q or %q, got %q", sphere.LocaleEnglish, sphere.LocaleSpanish, locale)
}

// ValidateSections rejects ids that are not extended sections.
func ValidateSections(s SectionsConfig) error {
	known := make([]string, 0)
	for _, sec := range sphere.ExtendedSections() {
		known = append(known, string(sec.ID))
	}
	for i, id := range s.Extended {
		if !slices.Contains(known, id) {
			return fmt.Errorf("sections.extended[%d]: unknown extended section %q (known: %v)", i, id, known)
		}
	}
	return nil
}

// ValidateAdjacency rejects graphs that mention unknown domains.
func ValidateAdjacency(adj map[string][]string) error {
	known := make(map[string]bool)
	for _, d := range sphere.BuiltinDomains() {
		known[string(d.ID)] = true
	}
	for from, tos := range adj {
		if !known[from] {
			return fmt.Errorf("adjacency: unknown domain %q", from)
		}
		for _, to := range tos {
			if !known[to] {
				return fmt.Errorf("adjacency.%s: unknown domain %q", from, to)
			}
		}
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0 || tc.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}
	if tc.Exporter != "" && !tracing.ValidExporter(tc.Exporter) {
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
	}
	if tc.Enabled {
		if tc.Exporter == tracing.ExporterFile && tc.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tc.Exporter == tracing.ExporterOTLP && tc.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Spherenav Configuration

# Display language for titles and breadcrumbs: "en" (default) or "es"
locale: en

# Shareable deep links: <scheme>://<host>/domain/<id>/<section>
deeplink:
  scheme: spherenav
  host: app.spherenav.io

# Navigation history
history:
  capacity: 256   # Oldest entries are dropped beyond this; 0 keeps everything

# Optional sections. Omit the key to enable all, use [] to enable none.
# sections:
#   extended:
#     - clients
#     - invoices
#     - permits
#     - courses
#     - goals

# Replace the built-in sphere graph (directed: each domain lists its neighbours)
# adjacency:
#   business: [finance, personal]
#   finance: [business, home]

# Last known location
store:
  # path: ~/.spherenav/locations.db   # Default; set to "" to disable
  restore: true                       # Resume at the stored location

# Distributed tracing (one span per navigation transition)
tracing:
  enabled: false
  exporter: file          # "none", "file", "stdout", or "otlp"
  # file_path: ~/.config/spherenav/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0

# Prometheus metrics served by 'spherenav watch'
metrics:
  enabled: false
  addr: ":9464"

# Deep-link inbox followed by 'spherenav watch'
inbox:
  # path: /tmp/spherenav.inbox
  debounce: 200ms

# Feature flags
# flags:
#   restore-location: true
#   trace-transitions: true
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "wrote default config", "path", configPath)
	return nil
}
