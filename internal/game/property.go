package game

import "fmt"

// Property management commands are valid during the owner's turn-end window.

func (e *Engine) upgradeProperty(s *GameState, tileID int) *GameState {
	if s.Phase != PhaseTurnEnd || tileID < 0 || tileID >= len(s.Tiles) {
		return s
	}
	tile := &s.Tiles[tileID]
	if !tile.Owned() || tile.IsMortgaged || tile.HouseCost == 0 || tile.BuildingCount >= MaxBuildings {
		return s
	}
	owner := s.PlayerByID(*tile.OwnerID)
	if owner == nil || owner.Money < tile.HouseCost {
		return s
	}
	if !s.OwnsFullGroup(owner.ID, tile.Group) {
		return s
	}
	if s.Rules.EvenBuild && tile.BuildingCount > s.GroupMinBuildings(tile.Group) {
		return s
	}

	next := s.Clone()
	nt := &next.Tiles[tileID]
	no := next.PlayerByID(*nt.OwnerID)
	no.Money -= nt.HouseCost
	nt.BuildingCount++
	if nt.BuildingCount == MaxBuildings {
		next.log(fmt.Sprintf("%s built a hotel on %s.", no.Name, nt.Name))
	} else {
		next.log(fmt.Sprintf("%s built a house on %s.", no.Name, nt.Name))
	}
	return next
}

func (e *Engine) mortgageProperty(s *GameState, tileID int) *GameState {
	if s.Phase != PhaseTurnEnd || !s.Rules.MortgageEnabled || tileID < 0 || tileID >= len(s.Tiles) {
		return s
	}
	tile := &s.Tiles[tileID]
	if !tile.Owned() || tile.BuildingCount > 0 || tile.IsMortgaged {
		return s
	}

	next := s.Clone()
	nt := &next.Tiles[tileID]
	owner := next.PlayerByID(*nt.OwnerID)
	value := nt.Price / 2
	owner.Money += value
	nt.IsMortgaged = true
	next.log(fmt.Sprintf("%s mortgaged %s for $%d.", owner.Name, nt.Name, value))
	return next
}

func (e *Engine) unmortgageProperty(s *GameState, tileID int) *GameState {
	if s.Phase != PhaseTurnEnd || tileID < 0 || tileID >= len(s.Tiles) {
		return s
	}
	tile := &s.Tiles[tileID]
	if !tile.Owned() || !tile.IsMortgaged {
		return s
	}
	cost := tile.Price / 2 * 11 / 10
	owner := s.PlayerByID(*tile.OwnerID)
	if owner == nil || owner.Money < cost {
		return s
	}

	next := s.Clone()
	nt := &next.Tiles[tileID]
	no := next.PlayerByID(*nt.OwnerID)
	no.Money -= cost
	nt.IsMortgaged = false
	next.log(fmt.Sprintf("%s lifted the mortgage on %s for $%d.", no.Name, nt.Name, cost))
	return next
}

func (e *Engine) sellProperty(s *GameState, tileID int) *GameState {
	if s.Phase != PhaseTurnEnd || tileID < 0 || tileID >= len(s.Tiles) {
		return s
	}
	tile := &s.Tiles[tileID]
	if !tile.Owned() || tile.BuildingCount > 0 || tile.IsMortgaged {
		return s
	}

	next := s.Clone()
	nt := &next.Tiles[tileID]
	owner := next.PlayerByID(*nt.OwnerID)
	value := nt.Price / 2
	owner.Money += value
	nt.OwnerID = nil
	next.log(fmt.Sprintf("%s sold %s back to the bank for $%d.", owner.Name, nt.Name, value))
	return next
}
