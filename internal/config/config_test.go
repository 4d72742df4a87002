package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Countdown/internal/countdown"
)

func TestNewManagerWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	m, err := NewManagerAt(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), m.GetConfig())
	assert.Equal(t, path, m.Path())

	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := NewManagerAt(path)
	require.NoError(t, err)
	assert.Equal(t, m.GetConfig(), again.GetConfig())
}

func TestNewManagerUsesEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	t.Setenv(EnvConfigPath, path)

	m, err := NewManager()
	require.NoError(t, err)
	assert.Equal(t, path, m.Path())
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`countdown:
  start: "2026-01-01 00:00:00"
  target: "2026-02-01 00:00:00"
  update_interval: 500ms
  locale: en-US
  expired_message: "Done"
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	m, err := NewManagerAt(path)
	require.NoError(t, err)
	cfg := m.GetConfig()
	assert.Equal(t, 500*time.Millisecond, cfg.Countdown.UpdateInterval)
	assert.Equal(t, "Done", cfg.Countdown.ExpiredMessage)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel())
	assert.Equal(t, DefaultConfig().App, cfg.App)
	assert.Equal(t, DefaultConfig().Database, cfg.Database)

	settings, err := cfg.Countdown.Settings()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local), settings.Start)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local), settings.Target)
	assert.Equal(t, "en-US", settings.Locale)
}

func TestNewManagerRejectsInvalidWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`countdown:
  start: "2026-02-01 00:00:00"
  target: "2026-01-01 00:00:00"
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err := NewManagerAt(path)
	require.ErrorIs(t, err, countdown.ErrInvalidWindow)
}

func TestNewManagerRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("countdown: [\n"), 0644))

	_, err := NewManagerAt(path)
	require.Error(t, err)
}

func TestParseInstant(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-05-17 00:00:00", time.Date(2025, 5, 17, 0, 0, 0, 0, time.Local)},
		{" 2025-08-31 23:59:59 ", time.Date(2025, 8, 31, 23, 59, 59, 0, time.Local)},
		{"2025-08-31T23:59:59", time.Date(2025, 8, 31, 23, 59, 59, 0, time.Local)},
		{"2025-08-31", time.Date(2025, 8, 31, 0, 0, 0, 0, time.Local)},
		{"2025-08-31T23:59:59Z", time.Date(2025, 8, 31, 23, 59, 59, 0, time.UTC)},
	}
	for _, tc := range tests {
		got, err := ParseInstant(tc.in)
		require.NoError(t, err, tc.in)
		assert.True(t, tc.want.Equal(got), "%s: got %s", tc.in, got)
	}

	_, err := ParseInstant("August 31, 2025")
	require.ErrorIs(t, err, ErrInvalidInstant)
}

func TestDefaultConfigSoundDisabled(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Sound.Enabled)
	require.NoError(t, cfg.Validate())

	cfg.Sound.Enabled = true
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"bad start", func(c *Config) { c.Countdown.Start = "soon" }, false},
		{"bad target", func(c *Config) { c.Countdown.Target = "" }, false},
		{"equal instants", func(c *Config) { c.Countdown.Target = c.Countdown.Start }, false},
		{"negative interval", func(c *Config) { c.Countdown.UpdateInterval = -time.Second }, false},
		{"zero interval", func(c *Config) { c.Countdown.UpdateInterval = 0 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"sound without path", func(c *Config) { c.Sound.Enabled = true; c.Sound.Path = "" }, false},
		{"sound disabled", func(c *Config) { c.Sound.Enabled = false; c.Sound.Path = "" }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestUpdateCountdownConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m, err := NewManagerAt(path)
	require.NoError(t, err)

	bad := m.GetConfig().Countdown
	bad.Target = bad.Start
	require.ErrorIs(t, m.UpdateCountdownConfig(bad), countdown.ErrInvalidWindow)

	good := m.GetConfig().Countdown
	good.Target = "2030-01-01 00:00:00"
	require.NoError(t, m.UpdateCountdownConfig(good))

	reloaded, err := NewManagerAt(path)
	require.NoError(t, err)
	assert.Equal(t, "2030-01-01 00:00:00", reloaded.GetConfig().Countdown.Target)
}
