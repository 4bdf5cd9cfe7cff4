package game

import "github.com/lox/richup/internal/board"

// RentFor computes the rent due on a tile for the given dice sum. It is a
// pure function of the tile, the full tile set, and the owner's state.
func RentFor(s *GameState, tile *Tile, diceSum int) int {
	if !tile.Owned() || tile.IsMortgaged {
		return 0
	}
	owner := s.PlayerByID(*tile.OwnerID)
	if owner == nil {
		return 0
	}
	if s.Rules.NoRentInJail && owner.InJail {
		return 0
	}

	switch tile.Type {
	case board.Utility:
		if s.OwnedCount(owner.ID, board.Utility) == 2 {
			return diceSum * 10
		}
		return diceSum * 4

	case board.Railroad:
		n := s.OwnedCount(owner.ID, board.Railroad)
		return 25 << (n - 1)

	case board.Property:
		if len(tile.Rent) == 0 {
			return 0
		}
		if tile.BuildingCount == 0 {
			if s.OwnsFullGroup(owner.ID, tile.Group) && s.Rules.DoubleRentOnFullSet {
				return tile.Rent[0] * 2
			}
			return tile.Rent[0]
		}
		if tile.BuildingCount < len(tile.Rent) {
			return tile.Rent[tile.BuildingCount]
		}
		return tile.Rent[len(tile.Rent)-1]
	}
	return 0
}
