package game

import "fmt"

// The auction sub-machine. Opened when the current player declines to buy an
// unowned purchasable tile; always returns control to PhaseTurnEnd.

func (e *Engine) startAuction(s *GameState) *GameState {
	if s.Phase != PhaseAction || !s.Rules.AuctionEnabled {
		return s
	}
	p := s.CurrentPlayer()
	tile := &s.Tiles[p.Position]
	if tile.Owned() || !tile.Purchasable() {
		return s
	}

	next := s.Clone()
	next.Phase = PhaseAuction
	next.Auction = &Auction{
		TileID:  p.Position,
		Bidders: next.ActivePlayers(),
		Timer:   AuctionTimer,
	}
	next.log(fmt.Sprintf("Auction started for %s!", tile.Name))
	return next
}

func (e *Engine) placeBid(s *GameState, playerID, amount int) *GameState {
	if s.Phase != PhaseAuction || s.Auction == nil {
		return s
	}
	if amount <= s.Auction.CurrentBid {
		return s
	}
	bidder := s.PlayerByID(playerID)
	if bidder == nil || bidder.IsBankrupt || bidder.Money < amount {
		return s
	}
	eligible := false
	for _, id := range s.Auction.Bidders {
		if id == playerID {
			eligible = true
			break
		}
	}
	if !eligible {
		return s
	}

	next := s.Clone()
	next.Auction.CurrentBid = amount
	next.Auction.HighestBidderID = intPtr(playerID)
	next.Auction.Timer = AuctionTimer
	next.log(fmt.Sprintf("%s bid $%d on %s.", bidder.Name, amount, next.Tiles[next.Auction.TileID].Name))
	return next
}

func (e *Engine) tickAuction(s *GameState) *GameState {
	if s.Phase != PhaseAuction || s.Auction == nil || s.Auction.Timer == 0 {
		return s
	}
	next := s.Clone()
	next.Auction.Timer--
	return next
}

func (e *Engine) endAuction(s *GameState) *GameState {
	if s.Phase != PhaseAuction || s.Auction == nil {
		return s
	}

	next := s.Clone()
	auction := next.Auction
	tile := &next.Tiles[auction.TileID]
	next.Auction = nil
	next.Phase = PhaseTurnEnd

	if auction.HighestBidderID == nil {
		next.log(fmt.Sprintf("Auction for %s ended with no bids.", tile.Name))
		return next
	}

	winner := next.PlayerByID(*auction.HighestBidderID)
	if winner == nil || winner.IsBankrupt || winner.Money < auction.CurrentBid {
		// The winner spent their cash between bidding and resolution; the
		// auction is voided rather than partially charged.
		next.log(fmt.Sprintf("Auction for %s was voided: the highest bidder could no longer cover the bid.", tile.Name))
		return next
	}

	winner.Money -= auction.CurrentBid
	tile.OwnerID = intPtr(winner.ID)
	next.log(fmt.Sprintf("%s won the auction for %s at $%d!", winner.Name, tile.Name, auction.CurrentBid))
	return next
}
