package game

import (
	"testing"

	"github.com/lox/richup/internal/board"
)

// Card draws consume one scripted value via IntN(deck size), so the scripted
// value is the card index. Surprise: 0-3 relocations (Start, TLV, Venice,
// Shanghai), 4-6 money, 7 go-to-jail, 8 jail-free. Treasure: 0-1 money,
// 2-3 each-player, 4 vacation move, 5-6 money, 7 jail-free.

func TestSurpriseCardAdvanceToStartPaysBonus(t *testing.T) {
	e := newTestEngine(0) // Advance to Start
	s := newTestState(t, e, twoSeats()...)
	s.Phase = PhaseResolving
	s.Players[0].Position = 36

	next := e.Apply(s, LandOnTile{})
	if next.Players[0].Position != board.StartPos {
		t.Errorf("position = %d, want %d", next.Players[0].Position, board.StartPos)
	}
	if next.Players[0].Money != 1700 {
		t.Errorf("money = %d, want 1700 (start bonus on a backwards move)", next.Players[0].Money)
	}
	if next.Phase != PhaseTurnEnd {
		t.Errorf("phase = %s, want %s", next.Phase, PhaseTurnEnd)
	}
}

func TestSurpriseCardRelocationResolvesDestination(t *testing.T) {
	e := newTestEngine(2) // Weekend in Venice
	s := newTestState(t, e, twoSeats()...)
	s.Phase = PhaseResolving
	s.Players[0].Position = 7

	next := e.Apply(s, LandOnTile{})
	if next.Players[0].Position != 11 {
		t.Fatalf("position = %d, want 11", next.Players[0].Position)
	}
	if next.Players[0].Money != 1500 {
		t.Errorf("money = %d, want 1500 (forward move earns no bonus)", next.Players[0].Money)
	}
	if next.Phase != PhaseAction {
		t.Errorf("phase = %s, want %s (unowned destination offers a purchase)", next.Phase, PhaseAction)
	}
}

func TestSurpriseCardRelocationCollectsRent(t *testing.T) {
	e := newTestEngine(3) // Business trip to Shanghai
	s := newTestState(t, e, twoSeats()...)
	s.Phase = PhaseResolving
	s.Players[0].Position = 22
	s.Tiles[24].OwnerID = intPtr(1)

	next := e.Apply(s, LandOnTile{})
	if next.Players[0].Position != 24 {
		t.Fatalf("position = %d, want 24", next.Players[0].Position)
	}
	if next.Players[0].Money != 1480 || next.Players[1].Money != 1520 {
		t.Errorf("money = (%d, %d), want (1480, 1520) after $20 rent",
			next.Players[0].Money, next.Players[1].Money)
	}
	if next.Phase != PhaseTurnEnd {
		t.Errorf("phase = %s, want %s", next.Phase, PhaseTurnEnd)
	}
}

func TestTreasureBirthdayCollectsFromEveryone(t *testing.T) {
	e := newTestEngine(2) // It's your birthday
	s := newTestState(t, e, Seat{Name: "Alice"}, Seat{Name: "Bob"}, Seat{Name: "Carol"})
	s.Phase = PhaseResolving
	s.Players[0].Position = 2

	next := e.Apply(s, LandOnTile{})
	if next.Players[0].Money != 1540 {
		t.Errorf("drawer money = %d, want 1540", next.Players[0].Money)
	}
	for _, i := range []int{1, 2} {
		if next.Players[i].Money != 1480 {
			t.Errorf("%s money = %d, want 1480", next.Players[i].Name, next.Players[i].Money)
		}
	}
}

func TestTreasurePartyPaysEveryone(t *testing.T) {
	e := newTestEngine(3) // Throw a party
	s := newTestState(t, e, Seat{Name: "Alice"}, Seat{Name: "Bob"}, Seat{Name: "Carol"})
	s.Phase = PhaseResolving
	s.Players[0].Position = 17

	next := e.Apply(s, LandOnTile{})
	if next.Players[0].Money != 1450 {
		t.Errorf("drawer money = %d, want 1450", next.Players[0].Money)
	}
	for _, i := range []int{1, 2} {
		if next.Players[i].Money != 1525 {
			t.Errorf("%s money = %d, want 1525", next.Players[i].Name, next.Players[i].Money)
		}
	}
}

func TestTreasureVacationCardCollectsPool(t *testing.T) {
	e := newTestEngine(4) // Take a vacation
	s := newTestState(t, e, twoSeats()...)
	s.Phase = PhaseResolving
	s.Players[0].Position = 17
	s.TaxPool = 300

	next := e.Apply(s, LandOnTile{})
	if next.Players[0].Position != board.VacationPos {
		t.Fatalf("position = %d, want %d", next.Players[0].Position, board.VacationPos)
	}
	if next.Players[0].Money != 1800 {
		t.Errorf("money = %d, want 1800 (tax pool collected)", next.Players[0].Money)
	}
	if next.TaxPool != 0 {
		t.Errorf("tax pool = %d, want 0", next.TaxPool)
	}
}

func TestSurpriseGoToJailCard(t *testing.T) {
	e := newTestEngine(7) // Caught fare dodging
	s := newTestState(t, e, twoSeats()...)
	s.Phase = PhaseResolving
	s.Players[0].Position = 22
	s.DoublesCount = 1

	next := e.Apply(s, LandOnTile{})
	p := next.Players[0]
	if p.Position != board.JailPos || !p.InJail {
		t.Errorf("player at %d, inJail=%v, want jailed at %d", p.Position, p.InJail, board.JailPos)
	}
	if next.DoublesCount != 0 {
		t.Errorf("doubles count = %d, want 0", next.DoublesCount)
	}
	if next.Phase != PhaseTurnEnd {
		t.Errorf("phase = %s, want %s", next.Phase, PhaseTurnEnd)
	}
}

func TestJailFreeCardPaysCash(t *testing.T) {
	e := newTestEngine(8) // Get out of prison, cash stand-in
	s := newTestState(t, e, twoSeats()...)
	s.Phase = PhaseResolving
	s.Players[0].Position = 36

	next := e.Apply(s, LandOnTile{})
	if next.Players[0].Money != 1550 {
		t.Errorf("money = %d, want 1550", next.Players[0].Money)
	}
	if next.Players[0].Position != 36 {
		t.Errorf("position = %d, want 36 (no move)", next.Players[0].Position)
	}
}

func TestCardFineCanBankrupt(t *testing.T) {
	e := newTestEngine(5) // Speeding fine, $100
	s := newTestState(t, e, twoSeats()...)
	s.Phase = PhaseResolving
	s.Players[0].Position = 7
	s.Players[0].Money = 50
	s.Tiles[1].OwnerID = intPtr(0)

	next := e.Apply(s, LandOnTile{})
	p := next.Players[0]
	if !p.IsBankrupt || p.Money != 0 {
		t.Errorf("player bankrupt=%v money=%d, want bankrupt with 0", p.IsBankrupt, p.Money)
	}
	if next.Tiles[1].Owned() {
		t.Error("properties should return to the bank, no card creditor exists")
	}
}
