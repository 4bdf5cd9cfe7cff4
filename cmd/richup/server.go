package main

import (
	"time"

	"github.com/coder/quartz"

	"github.com/lox/richup/cmd/richup/shared"
	"github.com/lox/richup/internal/server"
)

// ServerCmd runs the WebSocket game server.
type ServerCmd struct {
	Config string `kong:"default='richup.hcl',help='Path to HCL config file'"`
	Addr   string `kong:"help='Listen address, overrides the config file'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ServerCmd) Run() error {
	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := shared.SetupLogger(c.Debug)
	if !c.Debug {
		logger.SetLevel(shared.ParseLevel(cfg.Server.LogLevel))
	}

	seed := cfg.Server.Seed
	if c.Seed != nil {
		seed = *c.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Info("Using random seed", "seed", seed)
	} else {
		logger.Info("Using deterministic seed", "seed", seed)
	}

	addr := cfg.GetServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	s := server.NewServer(addr, logger)
	gs := server.NewGameService(s, logger, seed, quartz.NewReal())
	gs.SetDefaultRules(cfg.GameRules())
	if err := gs.SetDefaultBots(cfg.Bots); err != nil {
		return err
	}
	s.SetGameService(gs)

	logger.Info("Starting richup server", "address", addr, "bots", len(cfg.Bots))

	ctx := shared.SetupSignalHandler(logger)

	serverErr := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		gs.Shutdown()
		return s.Stop()
	case err := <-serverErr:
		return err
	}
}
