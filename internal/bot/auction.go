package bot

import "github.com/lox/richup/internal/game"

// auctionMove decides whether to raise the current auction and by how much.
func (b *Bot) auctionMove(s *game.GameState, p *game.Player, prof Profile) game.Command {
	a := s.Auction
	if a == nil {
		return nil
	}
	if a.HighestBidderID != nil && *a.HighestBidderID == p.ID {
		return nil
	}
	eligible := false
	for _, id := range a.Bidders {
		if id == p.ID {
			eligible = true
			break
		}
	}
	if !eligible {
		return nil
	}

	ceiling := b.bidCeiling(s, p, prof)
	if a.CurrentBid >= ceiling {
		return nil
	}

	// The bot does not raise on every tick. Urgency climbs as the hammer
	// falls and when a human is about to take the tile.
	urgency := 0.4
	if a.Timer <= 3 {
		urgency = 0.8
	}
	if a.HighestBidderID != nil {
		if leader := s.PlayerByID(*a.HighestBidderID); leader != nil && !leader.IsBot {
			urgency += 0.15
		}
	}
	if !b.chance(urgency) {
		return nil
	}

	bid := a.CurrentBid + game.MinBidIncrement
	if b.chance(prof.JumpBidChance) {
		// Jump halfway to the ceiling to scare off incremental bidders.
		bid = a.CurrentBid + (ceiling-a.CurrentBid+1)/2
	}
	if bid > ceiling {
		bid = ceiling
	}
	if bid <= a.CurrentBid || bid > p.Money {
		return nil
	}
	return game.PlaceBid{PlayerID: p.ID, Amount: bid}
}

// bidCeiling is the most the bot will pay for the tile under the hammer.
func (b *Bot) bidCeiling(s *game.GameState, p *game.Player, prof Profile) int {
	tile := &s.Tiles[s.Auction.TileID]
	value := float64(tile.Price)

	group := s.GroupTiles(tile.Group)
	switch {
	case len(group) > 0 && s.OwnedInGroup(p.ID, tile.Group) == len(group)-1:
		value *= 3.5 // completes the bot's set
	case s.OwnedInGroup(p.ID, tile.Group) > 0:
		value *= 1.8
	default:
		// Denial: an opponent one tile short makes this worth overpaying for.
		for i := range s.Players {
			other := &s.Players[i]
			if other.ID == p.ID || other.IsBankrupt {
				continue
			}
			if len(group) > 0 && s.OwnedInGroup(other.ID, tile.Group) == len(group)-1 {
				value *= 2.5
				break
			}
		}
	}
	if s.TurnCount > game.LateGameTurn {
		value *= 1.5
	}
	value *= prof.BidMult

	ceiling := int(value)
	if limit := int(float64(p.Money) * prof.BidSpendFrac); ceiling > limit {
		ceiling = limit
	}
	return ceiling
}
