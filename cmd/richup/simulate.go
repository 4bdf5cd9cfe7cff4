package main

import (
	"fmt"
	"time"

	"github.com/lox/richup/cmd/richup/shared"
	"github.com/lox/richup/internal/display"
	"github.com/lox/richup/internal/game"
	"github.com/lox/richup/internal/server"
	"github.com/lox/richup/internal/simulator"
)

// SimulateCmd plays bots-only games headlessly and prints a summary.
type SimulateCmd struct {
	Games        int      `kong:"default='100',help='Number of games to play'"`
	Bots         []string `kong:"help='Bot personalities (default: one of each)'"`
	Seed         *int64   `kong:"help='Deterministic RNG seed (optional)'"`
	Parallelism  int      `kong:"default='4',help='Games to play concurrently'"`
	NoAuctions   bool     `kong:"help='Disable auctions for declined properties'"`
	StartingCash int      `kong:"default='1500',help='Starting cash per player'"`
	Debug        bool     `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("Using deterministic seed", "seed", seed)
	} else {
		seed = time.Now().UnixNano()
		logger.Info("Using random seed", "seed", seed)
	}

	personalities := make([]game.Personality, 0, len(c.Bots))
	for _, s := range c.Bots {
		p, err := server.ParsePersonality(s)
		if err != nil {
			return err
		}
		personalities = append(personalities, p)
	}

	rules := game.DefaultRules()
	rules.AuctionEnabled = !c.NoAuctions
	rules.StartingCash = c.StartingCash

	sim := simulator.New(simulator.Config{
		Games:         c.Games,
		Personalities: personalities,
		Rules:         rules,
		Seed:          seed,
		Parallelism:   c.Parallelism,
		Logger:        logger,
	})

	start := time.Now()
	ctx := shared.SetupSignalHandler(logger)
	results, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("Simulation complete", "games", results.Games, "elapsed", time.Since(start))

	fmt.Println(display.Summary(results))
	return nil
}
