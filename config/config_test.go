package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.NoError(t, cfg.Validate())

	delay, err := cfg.Raffle.ParseRevealDelay()
	require.NoError(t, err)
	assert.Equal(t, 600*time.Millisecond, delay)
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "raffle.yaml")

	cfg := Default()
	cfg.Database.Path = "/var/lib/raffle/raffle.db"
	cfg.Raffle.GuildID = 424242
	cfg.Raffle.LeaderboardSize = 10
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Database.Path, loaded.Database.Path)
	assert.Equal(t, cfg.Raffle.GuildID, loaded.Raffle.GuildID)
	assert.Equal(t, cfg.Raffle.LeaderboardSize, loaded.Raffle.LeaderboardSize)
	assert.Equal(t, cfg.Web.Addr, loaded.Web.Addr)
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "raffle.json")

	cfg := Default()
	cfg.Raffle.MaxAmount = 500
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(500), loaded.Raffle.MaxAmount)
}

func TestValidateFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing db path", func(c *Config) { c.Database.Path = "" }},
		{"zero leaderboard", func(c *Config) { c.Raffle.LeaderboardSize = 0 }},
		{"zero max amount", func(c *Config) { c.Raffle.MaxAmount = 0 }},
		{"negative reveal steps", func(c *Config) { c.Raffle.RevealSteps = -1 }},
		{"bad reveal delay", func(c *Config) { c.Raffle.RevealDelay = "soon" }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
