package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "richup.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadServerConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
}

func TestLoadServerConfig(t *testing.T) {
	path := writeConfig(t, `
server {
  address   = "0.0.0.0"
  port      = 9000
  log_level = "debug"
  seed      = 42
}

rules {
  auctions      = false
  starting_cash = 2000
}

bot "scrooge" {
  personality = "conservative"
}

bot "gambler" {
  personality = "aggressive"
}
`)

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0", cfg.Server.Address)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, int64(42), cfg.Server.Seed)
	assert.Equal(t, "0.0.0.0:9000", cfg.GetServerAddress())

	require.Len(t, cfg.Bots, 2)
	assert.Equal(t, "scrooge", cfg.Bots[0].Name)
	assert.Equal(t, "conservative", cfg.Bots[0].Personality)

	rules := cfg.GameRules()
	assert.False(t, rules.AuctionEnabled)
	assert.Equal(t, 2000, rules.StartingCash)
	// Untouched toggles keep their defaults.
	assert.True(t, rules.DoubleRentOnFullSet)
	assert.True(t, rules.MortgageEnabled)
}

func TestLoadServerConfigRejectsBadHCL(t *testing.T) {
	path := writeConfig(t, `server { address = `)
	_, err := LoadServerConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultServerConfig()
	require.NoError(t, cfg.Validate())

	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
	cfg.Server.Port = 8080

	cfg.Bots = []BotConfig{{Name: "x", Personality: "chaotic"}}
	assert.Error(t, cfg.Validate())

	cfg.Bots = []BotConfig{{Name: "x", Personality: "balanced"}}
	assert.NoError(t, cfg.Validate())
}

func TestParsePersonality(t *testing.T) {
	p, err := ParsePersonality("")
	require.NoError(t, err)
	assert.Equal(t, "BALANCED", string(p))

	p, err = ParsePersonality("aggressive")
	require.NoError(t, err)
	assert.Equal(t, "AGGRESSIVE", string(p))

	_, err = ParsePersonality("sneaky")
	assert.Error(t, err)
}
