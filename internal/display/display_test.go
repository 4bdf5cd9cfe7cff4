package display

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/richup/internal/game"
	"github.com/lox/richup/internal/randutil"
	"github.com/lox/richup/internal/simulator"
)

func TestSummary(t *testing.T) {
	results := &simulator.Results{
		Games:      10,
		Finished:   8,
		Unfinished: 2,
		TotalTurns: 400,
		WinsByPersonality: map[game.Personality]int{
			game.Balanced:   5,
			game.Aggressive: 3,
		},
	}

	out := Summary(results)
	for _, want := range []string{"Simulation Results", "BALANCED", "AGGRESSIVE", "62.5%", "50.0 turns"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestStandings(t *testing.T) {
	engine := game.NewEngine(randutil.New(1), log.New(io.Discard))
	rules := game.DefaultRules()
	rules.RandomizeOrder = false
	s := engine.Apply(nil, game.StartGame{
		Seats: []game.Seat{{Name: "Alice"}, {Name: "Bob"}},
		Rules: rules,
	})
	s = s.Clone()
	s.Players[1].IsBankrupt = true
	s.Players[1].Money = 0
	s.WinnerID = &s.Players[0].ID
	s.TurnCount = 42

	out := Standings(s)
	for _, want := range []string{"Final Standings", "Alice", "Bob", "winner", "bankrupt", "42 turns"} {
		if !strings.Contains(out, want) {
			t.Errorf("standings missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Alice") > strings.Index(out, "Bob") {
		t.Error("the solvent player should be listed first")
	}
}
