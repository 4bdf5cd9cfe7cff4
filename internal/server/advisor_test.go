package server

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/richup/internal/game"
	"github.com/lox/richup/internal/randutil"
)

func advisorState(t *testing.T) *game.GameState {
	t.Helper()
	engine := game.NewEngine(randutil.New(1), log.New(io.Discard))
	rules := game.DefaultRules()
	rules.RandomizeOrder = false
	s := engine.Apply(nil, game.StartGame{
		Seats: []game.Seat{{Name: "Alice"}, {Name: "Bob"}},
		Rules: rules,
	})
	require.NotNil(t, s)
	return s
}

func TestRuleAdvisorSuggestsPurchase(t *testing.T) {
	s := advisorState(t).Clone()
	s.Phase = game.PhaseAction
	s.Players[0].Position = 1 // Salvador, unowned

	text, err := RuleAdvisor{}.Advise(context.Background(), s, 0)
	require.NoError(t, err)
	assert.Contains(t, text, "Salvador")
}

func TestRuleAdvisorFlagsSetCompletion(t *testing.T) {
	s := advisorState(t).Clone()
	s.Phase = game.PhaseAction
	s.Players[0].Position = 3
	s.Tiles[1].OwnerID = &s.Players[0].ID // owns the other brown tile

	text, err := RuleAdvisor{}.Advise(context.Background(), s, 0)
	require.NoError(t, err)
	assert.Contains(t, text, "completes")
}

func TestRuleAdvisorSuggestsBuilding(t *testing.T) {
	s := advisorState(t).Clone()
	s.Phase = game.PhaseTurnEnd
	s.Tiles[1].OwnerID = &s.Players[0].ID
	s.Tiles[3].OwnerID = &s.Players[0].ID

	text, err := RuleAdvisor{}.Advise(context.Background(), s, 0)
	require.NoError(t, err)
	assert.Contains(t, text, "build")
}

func TestRuleAdvisorSilentWhenNothingToSay(t *testing.T) {
	s := advisorState(t).Clone()
	s.Phase = game.PhaseRoll

	_, err := RuleAdvisor{}.Advise(context.Background(), s, 0)
	assert.Error(t, err, "no advice on a plain roll")

	_, err = RuleAdvisor{}.Advise(context.Background(), s, 99)
	assert.Error(t, err, "no advice for unknown players")
}
