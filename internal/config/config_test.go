package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spherenav/internal/sphere"
	"github.com/zjrosen/spherenav/internal/tracing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, "en", cfg.Locale)
	require.Equal(t, "spherenav", cfg.DeepLink.Scheme)
	require.Equal(t, "app.spherenav.io", cfg.DeepLink.Host)
	require.Equal(t, 256, cfg.History.Capacity)
	require.Nil(t, cfg.Sections.Extended)
	require.True(t, cfg.Store.Restore)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, tracing.ExporterFile, cfg.Tracing.Exporter)
	require.Equal(t, 200*time.Millisecond, cfg.Inbox.Debounce)
	require.NoError(t, Validate(cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"spanish", func(c *Config) { c.Locale = "es" }, ""},
		{"empty locale", func(c *Config) { c.Locale = "" }, ""},
		{"unknown locale", func(c *Config) { c.Locale = "fr" }, "locale must be"},
		{"negative capacity", func(c *Config) { c.History.Capacity = -1 }, "history.capacity"},
		{"unbounded capacity", func(c *Config) { c.History.Capacity = 0 }, ""},
		{"known extended", func(c *Config) { c.Sections.Extended = []string{"clients", "goals"} }, ""},
		{"no extended", func(c *Config) { c.Sections.Extended = []string{} }, ""},
		{"core as extended", func(c *Config) { c.Sections.Extended = []string{"tasks"} }, "unknown extended section \"tasks\""},
		{"unknown extended", func(c *Config) { c.Sections.Extended = []string{"garage"} }, "sections.extended[0]"},
		{"adjacency", func(c *Config) { c.Adjacency = map[string][]string{"business": {"finance"}} }, ""},
		{"adjacency unknown source", func(c *Config) { c.Adjacency = map[string][]string{"atlantis": {"finance"}} }, "unknown domain \"atlantis\""},
		{"adjacency unknown neighbour", func(c *Config) { c.Adjacency = map[string][]string{"business": {"mars"}} }, "adjacency.business"},
		{"bad exporter", func(c *Config) { c.Tracing.Exporter = "jaeger" }, "tracing.exporter"},
		{"bad sample rate", func(c *Config) { c.Tracing.SampleRate = 1.5 }, "sample_rate"},
		{"file exporter without path", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.FilePath = ""
		}, "file_path is required"},
		{"otlp without endpoint", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Exporter = tracing.ExporterOTLP
			c.Tracing.OTLPEndpoint = ""
		}, "otlp_endpoint is required"},
		{"negative debounce", func(c *Config) { c.Inbox.Debounce = -time.Second }, "inbox.debounce"},
		{"metrics without addr", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Addr = ""
		}, "metrics.addr"},
		{"bad scheme", func(c *Config) { c.DeepLink.Scheme = "Sphere Nav" }, "deeplink.scheme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Locale = "fr"
	cfg.History.Capacity = -5

	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "locale")
	require.Contains(t, err.Error(), "history.capacity")
}

func TestExtendedSectionIDs(t *testing.T) {
	cfg := Defaults()
	require.Nil(t, cfg.ExtendedSectionIDs(), "unset enables every extended section")

	cfg.Sections.Extended = []string{}
	require.Equal(t, []sphere.SectionID{}, cfg.ExtendedSectionIDs())

	cfg.Sections.Extended = []string{"clients"}
	require.Equal(t, []sphere.SectionID{sphere.Clients}, cfg.ExtendedSectionIDs())
}

func TestAdjacencyMap(t *testing.T) {
	cfg := Defaults()
	require.Nil(t, cfg.AdjacencyMap())

	cfg.Adjacency = map[string][]string{"business": {"finance", "personal"}}
	require.Equal(t, map[sphere.DomainID][]sphere.DomainID{
		sphere.Business: {sphere.Finance, sphere.Personal},
	}, cfg.AdjacencyMap())
}

func TestDisplayLocale(t *testing.T) {
	require.Equal(t, sphere.LocaleEnglish, Config{}.DisplayLocale())
	require.Equal(t, sphere.LocaleSpanish, Config{Locale: "es"}.DisplayLocale())
}

func TestWriteDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	require.NoError(t, WriteDefaultConfig(configPath))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(configPath))

	cfg := loadWithViper(t, configPath)
	want := Defaults()

	require.Equal(t, want.Locale, cfg.Locale)
	require.Equal(t, want.DeepLink, cfg.DeepLink)
	require.Equal(t, want.History, cfg.History)
	require.Equal(t, want.Sections, cfg.Sections)
	require.Equal(t, want.Store, cfg.Store)
	require.Equal(t, want.Metrics, cfg.Metrics)
	require.Equal(t, want.Inbox, cfg.Inbox)
	require.Equal(t, want.Tracing.Exporter, cfg.Tracing.Exporter)
	require.InDelta(t, want.Tracing.SampleRate, cfg.Tracing.SampleRate, 0.0001)
	require.NoError(t, Validate(cfg))
}
