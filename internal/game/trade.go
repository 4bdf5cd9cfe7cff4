package game

import "fmt"

// Trade flow. Offers targeting a bot are evaluated and settled immediately;
// offers targeting a human wait in PendingTrade for an explicit response.

func (e *Engine) proposeTrade(s *GameState, offer TradeOffer) *GameState {
	if s.Phase != PhaseTurnEnd {
		return s
	}
	if !e.validTrade(s, offer) {
		return s
	}
	target := s.PlayerByID(offer.TargetID)

	if !target.IsBot {
		next := s.Clone()
		o := offer
		o.OfferPropertyIDs = append([]int(nil), offer.OfferPropertyIDs...)
		next.PendingTrade = &o
		next.log(fmt.Sprintf("%s proposed a trade to %s for %s.",
			next.PlayerByID(offer.ProposerID).Name, target.Name, next.Tiles[offer.TargetPropertyID].Name))
		return next
	}

	next := s.Clone()
	if e.evaluateTrade(next, offer) {
		e.executeTrade(next, offer)
		next.log(fmt.Sprintf("%s accepted the trade!", target.Name))
	} else {
		next.log(fmt.Sprintf("%s rejected the trade. The offer was not sufficient.", target.Name))
	}
	return next
}

// acceptTrade executes the pending offer. Like declineTrade it works in any
// phase; a pending trade waits on the target, not on the turn cycle, and
// validTrade below re-checks that the offer is still satisfiable.
func (e *Engine) acceptTrade(s *GameState) *GameState {
	if s.PendingTrade == nil {
		return s
	}
	offer := *s.PendingTrade
	if !e.validTrade(s, offer) {
		next := s.Clone()
		next.PendingTrade = nil
		return next
	}

	next := s.Clone()
	next.PendingTrade = nil
	e.executeTrade(next, offer)
	next.log(fmt.Sprintf("%s accepted the trade.", next.PlayerByID(offer.TargetID).Name))
	return next
}

func (e *Engine) declineTrade(s *GameState) *GameState {
	if s.PendingTrade == nil {
		return s
	}
	next := s.Clone()
	target := next.PlayerByID(next.PendingTrade.TargetID)
	next.PendingTrade = nil
	next.log(fmt.Sprintf("%s declined the trade.", target.Name))
	return next
}

// validTrade checks the structural preconditions shared by proposal and
// acceptance: both parties alive, the target property owned by the target,
// every offered property owned by the proposer, and the cash legs covered.
func (e *Engine) validTrade(s *GameState, offer TradeOffer) bool {
	proposer := s.PlayerByID(offer.ProposerID)
	target := s.PlayerByID(offer.TargetID)
	if proposer == nil || target == nil || proposer.ID == target.ID {
		return false
	}
	if proposer.IsBankrupt || target.IsBankrupt {
		return false
	}
	if offer.OfferCash < 0 || offer.RequestCash < 0 {
		return false
	}
	if proposer.Money < offer.OfferCash || target.Money < offer.RequestCash {
		return false
	}
	if offer.TargetPropertyID < 0 || offer.TargetPropertyID >= len(s.Tiles) {
		return false
	}
	if !s.Tiles[offer.TargetPropertyID].OwnedBy(target.ID) {
		return false
	}
	for _, id := range offer.OfferPropertyIDs {
		if id < 0 || id >= len(s.Tiles) || !s.Tiles[id].OwnedBy(proposer.ID) {
			return false
		}
	}
	return true
}

// evaluateTrade is the bot's acceptance heuristic.
func (e *Engine) evaluateTrade(s *GameState, offer TradeOffer) bool {
	bot := s.PlayerByID(offer.TargetID)
	targetTile := &s.Tiles[offer.TargetPropertyID]
	groupSize := len(s.GroupTiles(targetTile.Group))
	ownedInGroup := s.OwnedInGroup(bot.ID, targetTile.Group)

	// Value of what the bot gives up.
	lossValue := float64(targetTile.Price) * 1.2
	switch {
	case groupSize > 0 && ownedInGroup == groupSize:
		lossValue *= 6 // breaks a completed monopoly
	case ownedInGroup > 1:
		lossValue *= 2.5 // breaks a set the bot is collecting
	}
	lossValue += float64(offer.RequestCash)

	// Value of what the bot receives. Cash is worth more when short on funds.
	gainValue := float64(offer.OfferCash)
	switch {
	case bot.Money < 200:
		gainValue *= 1.5
	case bot.Money < 500:
		gainValue *= 1.2
	}
	for _, id := range offer.OfferPropertyIDs {
		tile := &s.Tiles[id]
		size := len(s.GroupTiles(tile.Group))
		owned := s.OwnedInGroup(bot.ID, tile.Group)
		value := float64(tile.Price)
		switch {
		case size > 0 && owned == size-1:
			value *= 4.5 // completes a monopoly for the bot
		case owned > 0:
			value *= 1.8 // extends a set
		}
		if tile.IsMortgaged {
			value *= 0.4
		}
		gainValue += value
	}

	// Penalty when accepting would hand the proposer a monopoly on the
	// contested group; it grows in the late game.
	penalty := 0.0
	if groupSize > 0 && s.OwnedInGroup(offer.ProposerID, targetTile.Group) == groupSize-1 {
		mult := 3.0
		if s.TurnCount > LateGameTurn {
			mult = 5.0
		}
		penalty = float64(targetTile.Price) * mult
	}

	return gainValue >= lossValue+penalty
}

// executeTrade settles the cash and ownership transfers atomically on a
// private clone. Preconditions are re-checked by validTrade beforehand.
func (e *Engine) executeTrade(next *GameState, offer TradeOffer) {
	proposer := next.PlayerByID(offer.ProposerID)
	target := next.PlayerByID(offer.TargetID)

	proposer.Money -= offer.OfferCash
	target.Money += offer.OfferCash
	target.Money -= offer.RequestCash
	proposer.Money += offer.RequestCash

	next.Tiles[offer.TargetPropertyID].OwnerID = intPtr(proposer.ID)
	for _, id := range offer.OfferPropertyIDs {
		next.Tiles[id].OwnerID = intPtr(target.ID)
	}
}
