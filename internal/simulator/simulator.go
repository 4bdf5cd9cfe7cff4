// Package simulator plays complete bots-only matches headlessly. Each game
// gets its own seeded RNG, so a run is reproducible end to end, and games
// run in parallel since they share nothing.
package simulator

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/richup/internal/bot"
	"github.com/lox/richup/internal/game"
	"github.com/lox/richup/internal/randutil"
)

// A game that reaches this many engine steps is abandoned as unfinished.
// Bots cannot stall the engine, but four conservative bots can grind a long
// time before someone goes broke.
const maxStepsPerGame = 50000

// Config holds configuration for a simulation run.
type Config struct {
	Games         int
	Personalities []game.Personality
	Rules         game.Rules
	Seed          int64
	Parallelism   int
	Logger        *log.Logger
}

// GameResult is the outcome of one match.
type GameResult struct {
	Seed        int64
	Winner      string
	Personality game.Personality
	Turns       int
	Finished    bool
}

// Results aggregates a whole run.
type Results struct {
	Games             int
	Finished          int
	Unfinished        int
	TotalTurns        int
	WinsByName        map[string]int
	WinsByPersonality map[game.Personality]int
	PerGame           []GameResult
}

// AverageTurns returns the mean length of the finished games.
func (r *Results) AverageTurns() float64 {
	if r.Finished == 0 {
		return 0
	}
	return float64(r.TotalTurns) / float64(r.Finished)
}

// Standings returns personalities ordered by wins, most first.
func (r *Results) Standings() []game.Personality {
	ps := make([]game.Personality, 0, len(r.WinsByPersonality))
	for p := range r.WinsByPersonality {
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool {
		if r.WinsByPersonality[ps[i]] != r.WinsByPersonality[ps[j]] {
			return r.WinsByPersonality[ps[i]] > r.WinsByPersonality[ps[j]]
		}
		return ps[i] < ps[j]
	})
	return ps
}

// Simulator runs bots-only matches.
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration.
func New(config Config) *Simulator {
	if len(config.Personalities) == 0 {
		config.Personalities = []game.Personality{
			game.Aggressive, game.Conservative, game.Balanced, game.Opportunistic,
		}
	}
	if config.Parallelism <= 0 {
		config.Parallelism = 4
	}
	return &Simulator{config: config}
}

// Run plays every game and aggregates the results.
func (s *Simulator) Run(ctx context.Context) (*Results, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("nothing to simulate: %d games", s.config.Games)
	}
	if len(s.config.Personalities) < 2 || len(s.config.Personalities) > game.MaxPlayers {
		return nil, fmt.Errorf("need between 2 and %d bots, got %d", game.MaxPlayers, len(s.config.Personalities))
	}

	perGame := make([]GameResult, s.config.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallelism)

	for i := 0; i < s.config.Games; i++ {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			perGame[i] = s.playGame(s.config.Seed + int64(i))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := &Results{
		Games:             s.config.Games,
		WinsByName:        make(map[string]int),
		WinsByPersonality: make(map[game.Personality]int),
		PerGame:           perGame,
	}
	for _, res := range perGame {
		if !res.Finished {
			results.Unfinished++
			continue
		}
		results.Finished++
		results.TotalTurns += res.Turns
		results.WinsByName[res.Winner]++
		results.WinsByPersonality[res.Personality]++
	}
	return results, nil
}

// playGame drives one match to a winner or the step cap.
func (s *Simulator) playGame(seed int64) GameResult {
	rng := randutil.New(seed)
	engine := game.NewEngine(rng, s.config.Logger)
	bots := bot.New(rng, s.config.Logger)

	seats := make([]game.Seat, len(s.config.Personalities))
	for i, p := range s.config.Personalities {
		seats[i] = game.Seat{
			Name:        fmt.Sprintf("%s %d", personalityName(p), i+1),
			IsBot:       true,
			Personality: p,
		}
	}

	state := engine.Apply(nil, game.StartGame{Seats: seats, Rules: s.config.Rules})
	for step := 0; step < maxStepsPerGame; step++ {
		if state.WinnerID != nil {
			winner := state.PlayerByID(*state.WinnerID)
			s.config.Logger.Debug("game finished", "seed", seed, "winner", winner.Name, "turns", state.TurnCount)
			return GameResult{
				Seed:        seed,
				Winner:      winner.Name,
				Personality: winner.Personality,
				Turns:       state.TurnCount,
				Finished:    true,
			}
		}
		state = s.step(engine, bots, state)
	}

	s.config.Logger.Debug("game abandoned", "seed", seed, "turns", state.TurnCount)
	return GameResult{Seed: seed, Turns: state.TurnCount}
}

// step advances the match by one engine transition, standing in for the
// paced driver the server runs.
func (s *Simulator) step(engine *game.Engine, bots *bot.Bot, state *game.GameState) *game.GameState {
	switch state.Phase {
	case game.PhaseMoving:
		return engine.Apply(state, game.MovePlayer{})
	case game.PhaseResolving:
		return engine.Apply(state, game.LandOnTile{})
	case game.PhaseAuction:
		return s.stepAuction(engine, bots, state)
	}

	current := state.CurrentPlayer()
	if cmd := bots.Decide(state, current.ID); cmd != nil {
		next := engine.Apply(state, cmd)
		if next != state {
			return next
		}
	}
	// A command the engine refused or a bankrupt current player; ending the
	// turn always makes progress.
	return engine.Apply(state, game.EndTurn{})
}

func (s *Simulator) stepAuction(engine *game.Engine, bots *bot.Bot, state *game.GameState) *game.GameState {
	for _, id := range state.Auction.Bidders {
		if cmd := bots.Decide(state, id); cmd != nil {
			state = engine.Apply(state, cmd)
		}
		if state.Phase != game.PhaseAuction {
			return state
		}
	}
	state = engine.Apply(state, game.TickAuction{})
	if state.Phase == game.PhaseAuction && state.Auction.Timer == 0 {
		state = engine.Apply(state, game.EndAuction{})
	}
	return state
}

func personalityName(p game.Personality) string {
	switch p {
	case game.Aggressive:
		return "Aggro"
	case game.Conservative:
		return "Cautious"
	case game.Opportunistic:
		return "Sniper"
	default:
		return "Steady"
	}
}
