package server

import (
	"context"
	"fmt"

	"github.com/lox/richup/internal/game"
)

// Advisor produces a short line of advice for a player from a snapshot. The
// engine never sees the advisor; snapshots flow out, nothing flows back in.
// Implementations may call remote services; failures surface to the player
// as a message string, never as an error that touches game state.
type Advisor interface {
	Advise(ctx context.Context, s *game.GameState, playerID int) (string, error)
}

// RuleAdvisor is the built-in advisor. It reads the snapshot the same way a
// spectating player would and points out the obvious move.
type RuleAdvisor struct{}

// Advise implements Advisor.
func (RuleAdvisor) Advise(_ context.Context, s *game.GameState, playerID int) (string, error) {
	p := s.PlayerByID(playerID)
	if p == nil || p.IsBankrupt {
		return "", fmt.Errorf("no advice for absent player %d", playerID)
	}

	switch s.Phase {
	case game.PhaseAction:
		tile := &s.Tiles[p.Position]
		if !tile.Purchasable() || tile.Owned() {
			break
		}
		group := s.GroupTiles(tile.Group)
		if len(group) > 0 && s.OwnedInGroup(playerID, tile.Group) == len(group)-1 {
			return fmt.Sprintf("Buying %s completes your %s set.", tile.Name, tile.Group), nil
		}
		if p.Money < tile.Price+game.StartBonus {
			return fmt.Sprintf("Buying %s would leave you thin; consider the auction.", tile.Name), nil
		}
		return fmt.Sprintf("%s is available for $%d.", tile.Name, tile.Price), nil

	case game.PhaseTurnEnd:
		for _, i := range ownedGroupsReadyToBuild(s, playerID) {
			tile := &s.Tiles[i]
			if p.Money >= tile.HouseCost {
				return fmt.Sprintf("You can build on %s for $%d.", tile.Name, tile.HouseCost), nil
			}
		}

	case game.PhaseRoll:
		if p.InJail && p.Money > game.JailFine*4 {
			return fmt.Sprintf("Paying the $%d fine keeps your turn moving.", game.JailFine), nil
		}
	}
	return "", fmt.Errorf("nothing to suggest")
}

// ownedGroupsReadyToBuild lists buildable tile indexes across the player's
// completed sets, respecting the even build rule.
func ownedGroupsReadyToBuild(s *game.GameState, playerID int) []int {
	var out []int
	for i := range s.Tiles {
		tile := &s.Tiles[i]
		if !tile.OwnedBy(playerID) || tile.HouseCost == 0 || tile.IsMortgaged {
			continue
		}
		if tile.BuildingCount >= game.MaxBuildings || !s.OwnsFullGroup(playerID, tile.Group) {
			continue
		}
		if s.Rules.EvenBuild && tile.BuildingCount > s.GroupMinBuildings(tile.Group) {
			continue
		}
		out = append(out, i)
	}
	return out
}
