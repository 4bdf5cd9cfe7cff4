package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/richup/internal/game"
)

// ServerConfig is the complete host configuration.
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	Rules  *RulesConfig   `hcl:"rules,block"`
	Bots   []BotConfig    `hcl:"bot,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
	Seed     int64  `hcl:"seed,optional"`
}

// RulesConfig mirrors the engine's rule toggles. Pointers distinguish "not
// set" from "set to false" so partial configs keep the defaults.
type RulesConfig struct {
	DoubleRentOnFullSet *bool `hcl:"double_rent_on_full_set,optional"`
	VacationCash        *bool `hcl:"vacation_cash,optional"`
	AuctionEnabled      *bool `hcl:"auctions,optional"`
	NoRentInJail        *bool `hcl:"no_rent_in_jail,optional"`
	MortgageEnabled     *bool `hcl:"mortgages,optional"`
	EvenBuild           *bool `hcl:"even_build,optional"`
	StartingCash        int   `hcl:"starting_cash,optional"`
	RandomizeOrder      *bool `hcl:"randomize_order,optional"`
}

// BotConfig seats a bot in every new room by default.
type BotConfig struct {
	Name        string `hcl:"name,label"`
	Personality string `hcl:"personality,optional"`
}

// DefaultServerConfig returns default server configuration.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
	}
}

// LoadServerConfig loads server configuration from an HCL file. A missing
// file yields the defaults.
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}

	return &config, nil
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Rules != nil && c.Rules.StartingCash < 0 {
		return fmt.Errorf("starting cash cannot be negative")
	}
	if len(c.Bots) > game.MaxPlayers-1 {
		return fmt.Errorf("at most %d bots can be configured", game.MaxPlayers-1)
	}
	for _, b := range c.Bots {
		if _, err := ParsePersonality(b.Personality); err != nil {
			return fmt.Errorf("bot %s: %w", b.Name, err)
		}
	}
	return nil
}

// GameRules materializes the rule toggles over the engine defaults.
func (c *ServerConfig) GameRules() game.Rules {
	rules := game.DefaultRules()
	rc := c.Rules
	if rc == nil {
		return rules
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&rules.DoubleRentOnFullSet, rc.DoubleRentOnFullSet)
	setBool(&rules.VacationCash, rc.VacationCash)
	setBool(&rules.AuctionEnabled, rc.AuctionEnabled)
	setBool(&rules.NoRentInJail, rc.NoRentInJail)
	setBool(&rules.MortgageEnabled, rc.MortgageEnabled)
	setBool(&rules.EvenBuild, rc.EvenBuild)
	setBool(&rules.RandomizeOrder, rc.RandomizeOrder)
	if rc.StartingCash > 0 {
		rules.StartingCash = rc.StartingCash
	}
	return rules
}

// GetServerAddress returns the full listen address.
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
