package game

import "fmt"

// resolveBankruptcy marks the player bankrupt, clamps their balance to zero
// and releases every tile they owned. With a creditor the tiles transfer to
// them (buildings are lost, mortgages cleared); without one they revert to
// the bank. Operates on a private clone.
func (e *Engine) resolveBankruptcy(next *GameState, playerID int, creditorID *int) {
	p := next.PlayerByID(playerID)
	if p == nil || p.IsBankrupt {
		return
	}
	p.IsBankrupt = true
	p.Money = 0

	for i := range next.Tiles {
		tile := &next.Tiles[i]
		if !tile.OwnedBy(playerID) {
			continue
		}
		tile.BuildingCount = 0
		tile.IsMortgaged = false
		if creditorID != nil {
			tile.OwnerID = intPtr(*creditorID)
		} else {
			tile.OwnerID = nil
		}
	}

	if creditorID != nil {
		if c := next.PlayerByID(*creditorID); c != nil {
			next.log(fmt.Sprintf("%s went bankrupt! Their properties transfer to %s.", p.Name, c.Name))
			return
		}
	}
	next.log(fmt.Sprintf("%s went bankrupt! Their properties return to the bank.", p.Name))
}
