package game

import "testing"

func TestRentFor(t *testing.T) {
	e := newTestEngine()
	s := newTestState(t, e, twoSeats()...)

	own := func(tileID, playerID int) {
		s.Tiles[tileID].OwnerID = intPtr(playerID)
	}

	t.Run("unowned pays nothing", func(t *testing.T) {
		if got := RentFor(s, &s.Tiles[1], 7); got != 0 {
			t.Errorf("rent = %d, want 0", got)
		}
	})

	t.Run("base rent", func(t *testing.T) {
		own(1, 1) // Salvador
		if got := RentFor(s, &s.Tiles[1], 7); got != 2 {
			t.Errorf("rent = %d, want 2", got)
		}
	})

	t.Run("full set doubles base rent", func(t *testing.T) {
		own(1, 1)
		own(3, 1) // Rio completes brown
		if got := RentFor(s, &s.Tiles[1], 7); got != 4 {
			t.Errorf("rent = %d, want 4", got)
		}
	})

	t.Run("buildings use the rent table", func(t *testing.T) {
		own(1, 1)
		own(3, 1)
		s.Tiles[1].BuildingCount = 3
		if got := RentFor(s, &s.Tiles[1], 7); got != 90 {
			t.Errorf("rent = %d, want 90", got)
		}
		s.Tiles[1].BuildingCount = 0
	})

	t.Run("mortgaged pays nothing", func(t *testing.T) {
		own(1, 1)
		s.Tiles[1].IsMortgaged = true
		if got := RentFor(s, &s.Tiles[1], 7); got != 0 {
			t.Errorf("rent = %d, want 0", got)
		}
		s.Tiles[1].IsMortgaged = false
	})

	t.Run("jailed owner collects nothing", func(t *testing.T) {
		own(1, 1)
		s.Players[1].InJail = true
		if got := RentFor(s, &s.Tiles[1], 7); got != 0 {
			t.Errorf("rent = %d, want 0", got)
		}
		s.Players[1].InJail = false
	})

	t.Run("railroads double per station", func(t *testing.T) {
		stations := []int{5, 15, 25, 35}
		want := []int{25, 50, 100, 200}
		for i, id := range stations {
			own(id, 1)
			if got := RentFor(s, &s.Tiles[5], 7); got != want[i] {
				t.Errorf("rent with %d stations = %d, want %d", i+1, got, want[i])
			}
		}
	})

	t.Run("utilities scale with the dice", func(t *testing.T) {
		own(12, 1)
		if got := RentFor(s, &s.Tiles[12], 7); got != 28 {
			t.Errorf("one utility rent = %d, want 28", got)
		}
		own(28, 1)
		if got := RentFor(s, &s.Tiles[12], 7); got != 70 {
			t.Errorf("both utilities rent = %d, want 70", got)
		}
	})
}

func TestSettleRentTransfers(t *testing.T) {
	e := newTestEngine()
	s := newTestState(t, e, twoSeats()...)
	s.Phase = PhaseResolving
	s.Dice = [2]int{3, 4}
	s.Tiles[1].OwnerID = intPtr(1)
	s.CurrentPlayer().Position = 1

	next := e.Apply(s, PayRent{})
	if next.Players[0].Money != 1498 {
		t.Errorf("payer money = %d, want 1498", next.Players[0].Money)
	}
	if next.Players[1].Money != 1502 {
		t.Errorf("owner money = %d, want 1502", next.Players[1].Money)
	}
	if next.Phase != PhaseTurnEnd {
		t.Errorf("phase = %s, want %s", next.Phase, PhaseTurnEnd)
	}
}

func TestLandingOnOwnTileIsFree(t *testing.T) {
	e := newTestEngine()
	s := newTestState(t, e, twoSeats()...)
	s.Phase = PhaseResolving
	s.Tiles[1].OwnerID = intPtr(0)
	s.CurrentPlayer().Position = 1

	next := e.Apply(s, LandOnTile{})
	if next.Players[0].Money != 1500 {
		t.Errorf("money = %d, want 1500", next.Players[0].Money)
	}
	if next.Phase != PhaseTurnEnd {
		t.Errorf("phase = %s, want %s", next.Phase, PhaseTurnEnd)
	}
}
