// Package bot turns a game snapshot into the next command for an automated
// player. Decisions are pure functions of the snapshot plus an injected
// randomness source, so a seeded bot replays identically.
package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/richup/internal/game"
)

// Rand is the randomness the bot consumes for its probabilistic choices.
type Rand interface {
	IntN(n int) int
}

// Bot produces commands for automated seats.
type Bot struct {
	rng    Rand
	logger *log.Logger
}

// New creates a bot drawing probabilistic choices from rng.
func New(rng Rand, logger *log.Logger) *Bot {
	return &Bot{rng: rng, logger: logger.WithPrefix("bot")}
}

// Decide returns the command the player should issue next, or nil when the
// snapshot leaves the player nothing to do (for example during an opponent's
// auction where the bot declines to bid).
func (b *Bot) Decide(s *game.GameState, playerID int) game.Command {
	p := s.PlayerByID(playerID)
	if p == nil || p.IsBankrupt || s.WinnerID != nil {
		return nil
	}
	prof := profileFor(p.Personality)

	if s.Phase == game.PhaseAuction {
		return b.auctionMove(s, p, prof)
	}
	if s.CurrentPlayer().ID != playerID {
		return nil
	}

	switch s.Phase {
	case game.PhaseRoll:
		if p.InJail {
			return b.jailMove(p, prof)
		}
		return game.RollDice{}

	case game.PhaseMoving:
		return game.MovePlayer{}

	case game.PhaseResolving:
		return game.LandOnTile{}

	case game.PhaseAction:
		return b.actionMove(s, p, prof)

	case game.PhaseTurnEnd:
		return b.turnEndMove(s, p, prof)
	}
	return nil
}

func (b *Bot) jailMove(p *game.Player, prof Profile) game.Command {
	// The first attempt is always a free shot at doubles; after that a rich
	// bot buys its way out rather than losing more turns.
	if p.JailTurns >= 1 && p.Money > prof.JailPayThreshold {
		return game.PayJailFine{}
	}
	return game.AttemptJailRoll{}
}

func (b *Bot) actionMove(s *game.GameState, p *game.Player, prof Profile) game.Command {
	tile := &s.Tiles[p.Position]
	buffer := prof.BuyBuffer
	if b.pivotalTile(s, p.ID, tile) {
		// A tile that completes or denies a monopoly is worth stretching for.
		buffer = 0
	}
	if tile.Purchasable() && !tile.Owned() && p.Money >= tile.Price+buffer {
		return game.BuyProperty{}
	}
	if s.Rules.AuctionEnabled && tile.Purchasable() && !tile.Owned() {
		return game.StartAuction{}
	}
	return game.EndTurn{}
}

// pivotalTile reports whether buying the tile would complete the player's own
// group or stop an opponent one tile short of completing theirs.
func (b *Bot) pivotalTile(s *game.GameState, playerID int, tile *game.Tile) bool {
	group := s.GroupTiles(tile.Group)
	if len(group) == 0 {
		return false
	}
	if s.OwnedInGroup(playerID, tile.Group) == len(group)-1 {
		return true
	}
	for i := range s.Players {
		other := &s.Players[i]
		if other.ID == playerID || other.IsBankrupt {
			continue
		}
		if s.OwnedInGroup(other.ID, tile.Group) == len(group)-1 {
			return true
		}
	}
	return false
}

func (b *Bot) turnEndMove(s *game.GameState, p *game.Player, prof Profile) game.Command {
	// Build on completed sets first, lowest tiles first to satisfy the even
	// build rule.
	if tileID, ok := b.nextUpgrade(s, p, prof); ok {
		return game.UpgradeProperty{TileID: tileID}
	}

	// Lift mortgages when cash-rich; mortgaged tiles earn nothing.
	for i := range s.Tiles {
		tile := &s.Tiles[i]
		if !tile.OwnedBy(p.ID) || !tile.IsMortgaged {
			continue
		}
		cost := tile.Price / 2 * 11 / 10
		if p.Money >= cost+prof.UnmortgageReserve {
			return game.UnmortgageProperty{TileID: i}
		}
	}

	if s.PendingTrade == nil && b.chance(prof.TradeChance) {
		if offer, ok := b.BuildTradeProposal(s, p.ID); ok {
			return game.ProposeTrade{Offer: offer}
		}
	}
	return game.EndTurn{}
}

func (b *Bot) nextUpgrade(s *game.GameState, p *game.Player, prof Profile) (int, bool) {
	for i := range s.Tiles {
		tile := &s.Tiles[i]
		if !tile.OwnedBy(p.ID) || tile.HouseCost == 0 || tile.IsMortgaged {
			continue
		}
		if tile.BuildingCount >= game.MaxBuildings {
			continue
		}
		if !s.OwnsFullGroup(p.ID, tile.Group) {
			continue
		}
		if s.Rules.EvenBuild && tile.BuildingCount > s.GroupMinBuildings(tile.Group) {
			continue
		}
		if p.Money >= tile.HouseCost+prof.BuildBuffer {
			return i, true
		}
	}
	return 0, false
}

// chance samples a probability using integer permille to keep the rng
// interface small.
func (b *Bot) chance(prob float64) bool {
	if prob <= 0 {
		return false
	}
	return b.rng.IntN(1000) < int(prob*1000)
}
