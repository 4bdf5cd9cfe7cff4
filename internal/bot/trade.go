package bot

import "github.com/lox/richup/internal/game"

// BuildTradeProposal looks for a group where the bot is one tile short and an
// opponent holds the missing piece, then assembles a cash-plus-sweetener
// offer for it. The second return is false when no worthwhile target exists.
func (b *Bot) BuildTradeProposal(s *game.GameState, playerID int) (game.TradeOffer, bool) {
	p := s.PlayerByID(playerID)
	if p == nil {
		return game.TradeOffer{}, false
	}

	for i := range s.Tiles {
		target := &s.Tiles[i]
		if !target.Owned() || target.OwnedBy(playerID) {
			continue
		}
		group := s.GroupTiles(target.Group)
		if len(group) < 2 || s.OwnedInGroup(playerID, target.Group) != len(group)-1 {
			continue
		}
		owner := s.PlayerByID(*target.OwnerID)
		if owner == nil || owner.IsBankrupt {
			continue
		}

		// Offer up to double the sticker price while keeping a floor of cash.
		cash := target.Price * 2
		if limit := p.Money - 100; cash > limit {
			cash = limit
		}
		if cash <= 0 {
			continue
		}

		offer := game.TradeOffer{
			ProposerID:       playerID,
			TargetID:         owner.ID,
			OfferCash:        cash,
			TargetPropertyID: i,
		}
		// Sweeten with a lone holding that does the bot no structural good.
		if id, ok := b.loneHolding(s, playerID); ok {
			offer.OfferPropertyIDs = []int{id}
		}
		return offer, true
	}
	return game.TradeOffer{}, false
}

// loneHolding returns a property the bot owns alone in its group, excluding
// groups where the bot is building toward a set.
func (b *Bot) loneHolding(s *game.GameState, playerID int) (int, bool) {
	for i := range s.Tiles {
		tile := &s.Tiles[i]
		if !tile.OwnedBy(playerID) || tile.BuildingCount > 0 || tile.IsMortgaged {
			continue
		}
		group := s.GroupTiles(tile.Group)
		if len(group) >= 3 && s.OwnedInGroup(playerID, tile.Group) == 1 {
			return i, true
		}
	}
	return 0, false
}
