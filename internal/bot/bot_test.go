package bot

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/richup/internal/game"
)

// fixedRand returns a constant, pinning every probabilistic branch: 0 takes
// every chance, 999 takes none.
type fixedRand struct{ v int }

func (r fixedRand) IntN(n int) int {
	if r.v >= n {
		return n - 1
	}
	return r.v
}

func (r fixedRand) Shuffle(int, func(int, int)) {}

func newGame(t *testing.T, seats ...game.Seat) (*game.Engine, *game.GameState) {
	t.Helper()
	e := game.NewEngine(fixedRand{v: 0}, log.New(io.Discard))
	rules := game.DefaultRules()
	rules.RandomizeOrder = false
	s := e.Apply(nil, game.StartGame{Seats: seats, Rules: rules})
	if s == nil {
		t.Fatal("StartGame returned nil state")
	}
	return e, s
}

func botSeats() []game.Seat {
	return []game.Seat{
		{Name: "Human"},
		{Name: "Bot", IsBot: true, Personality: game.Balanced},
	}
}

func newBot(v int) *Bot {
	return New(fixedRand{v: v}, log.New(io.Discard))
}

func intPtr(v int) *int { return &v }

func TestDecideFollowsTurnPhases(t *testing.T) {
	_, s := newGame(t, botSeats()...)
	b := newBot(999)
	s.CurrentPlayerIndex = 1

	cases := []struct {
		phase game.Phase
		want  string
	}{
		{game.PhaseRoll, "ROLL_DICE"},
		{game.PhaseMoving, "MOVE_PLAYER"},
		{game.PhaseResolving, "LAND_ON_TILE"},
	}
	for _, tc := range cases {
		s.Phase = tc.phase
		cmd := b.Decide(s, 1)
		if cmd == nil || cmd.Name() != tc.want {
			t.Errorf("phase %s: got %v, want %s", tc.phase, cmd, tc.want)
		}
	}
}

func TestDecideReturnsNilOffTurn(t *testing.T) {
	_, s := newGame(t, botSeats()...)
	b := newBot(999)
	s.Phase = game.PhaseRoll
	s.CurrentPlayerIndex = 0

	if cmd := b.Decide(s, 1); cmd != nil {
		t.Errorf("off-turn decision = %v, want nil", cmd)
	}
}

func TestBuyDecisionRespectsBuffer(t *testing.T) {
	_, s := newGame(t, botSeats()...)
	b := newBot(999)
	s.Phase = game.PhaseAction
	s.CurrentPlayerIndex = 1
	s.Players[1].Position = 39 // New York, $400

	// Balanced keeps a $200 buffer: $650 clears it, $500 does not.
	s.Players[1].Money = 650
	if cmd := b.Decide(s, 1); cmd == nil || cmd.Name() != "BUY_PROPERTY" {
		t.Errorf("with buffer cleared: got %v, want BUY_PROPERTY", cmd)
	}
	s.Players[1].Money = 500
	if cmd := b.Decide(s, 1); cmd == nil || cmd.Name() != "START_AUCTION" {
		t.Errorf("below buffer: got %v, want START_AUCTION", cmd)
	}
}

func TestBuyDecisionStretchesForMonopoly(t *testing.T) {
	_, s := newGame(t, botSeats()...)
	b := newBot(999)
	s.Phase = game.PhaseAction
	s.CurrentPlayerIndex = 1
	s.Players[1].Position = 3      // Rio
	s.Tiles[1].OwnerID = intPtr(1) // bot already holds Salvador
	s.Players[1].Money = 60        // exactly the price, no buffer left

	if cmd := b.Decide(s, 1); cmd == nil || cmd.Name() != "BUY_PROPERTY" {
		t.Errorf("pivotal tile: got %v, want BUY_PROPERTY", cmd)
	}
}

func TestJailDecision(t *testing.T) {
	_, s := newGame(t, botSeats()...)
	b := newBot(999)
	s.Phase = game.PhaseRoll
	s.CurrentPlayerIndex = 1
	s.Players[1].InJail = true

	// First turn in jail is always a roll attempt.
	if cmd := b.Decide(s, 1); cmd == nil || cmd.Name() != "ATTEMPT_JAIL_ROLL" {
		t.Errorf("first jail turn: got %v, want ATTEMPT_JAIL_ROLL", cmd)
	}

	// After a failed attempt a rich bot pays up.
	s.Players[1].JailTurns = 1
	if cmd := b.Decide(s, 1); cmd == nil || cmd.Name() != "PAY_JAIL_FINE" {
		t.Errorf("rich bot second jail turn: got %v, want PAY_JAIL_FINE", cmd)
	}

	// A broke bot keeps rolling.
	s.Players[1].Money = 100
	if cmd := b.Decide(s, 1); cmd == nil || cmd.Name() != "ATTEMPT_JAIL_ROLL" {
		t.Errorf("broke bot second jail turn: got %v, want ATTEMPT_JAIL_ROLL", cmd)
	}
}

func TestTurnEndBuildsEvenly(t *testing.T) {
	_, s := newGame(t, botSeats()...)
	b := newBot(999)
	s.Phase = game.PhaseTurnEnd
	s.CurrentPlayerIndex = 1
	s.Tiles[1].OwnerID = intPtr(1)
	s.Tiles[3].OwnerID = intPtr(1)
	s.Tiles[1].BuildingCount = 1

	cmd := b.Decide(s, 1)
	up, ok := cmd.(game.UpgradeProperty)
	if !ok {
		t.Fatalf("got %v, want UpgradeProperty", cmd)
	}
	if up.TileID != 3 {
		t.Errorf("upgrade tile = %d, want 3 (the lagging tile)", up.TileID)
	}
}

func TestTurnEndLiftsMortgageWhenRich(t *testing.T) {
	_, s := newGame(t, botSeats()...)
	b := newBot(999)
	s.Phase = game.PhaseTurnEnd
	s.CurrentPlayerIndex = 1
	s.Tiles[1].OwnerID = intPtr(1)
	s.Tiles[1].IsMortgaged = true

	cmd := b.Decide(s, 1)
	if um, ok := cmd.(game.UnmortgageProperty); !ok || um.TileID != 1 {
		t.Errorf("got %v, want UnmortgageProperty{1}", cmd)
	}

	s.Players[1].Money = 50
	if cmd := b.Decide(s, 1); cmd == nil || cmd.Name() != "END_TURN" {
		t.Errorf("broke bot: got %v, want END_TURN", cmd)
	}
}

func TestAuctionBidding(t *testing.T) {
	_, s := newGame(t, botSeats()...)
	s.Phase = game.PhaseAuction
	s.Auction = &game.Auction{
		TileID:  5, // TLV Airport, $200
		Bidders: []int{0, 1},
		Timer:   game.AuctionTimer,
	}

	// An always-chance bot raises by the minimum increment.
	eager := newBot(0)
	cmd := eager.Decide(s, 1)
	bid, ok := cmd.(game.PlaceBid)
	if !ok {
		t.Fatalf("got %v, want PlaceBid", cmd)
	}
	if bid.PlayerID != 1 || bid.Amount <= 0 {
		t.Errorf("bid = %+v, want a positive bid by player 1", bid)
	}

	// A never-chance bot sits out.
	shy := newBot(999)
	if cmd := shy.Decide(s, 1); cmd != nil {
		t.Errorf("shy bot bid %v, want nil", cmd)
	}

	// Nobody raises their own winning bid.
	s.Auction.CurrentBid = 50
	s.Auction.HighestBidderID = intPtr(1)
	if cmd := eager.Decide(s, 1); cmd != nil {
		t.Errorf("leader re-bid %v, want nil", cmd)
	}
}

func TestBidCeilingStopsRunaways(t *testing.T) {
	_, s := newGame(t, botSeats()...)
	s.Phase = game.PhaseAuction
	s.Auction = &game.Auction{
		TileID:     5,
		CurrentBid: 1000, // far past any sane valuation of a $200 tile
		Bidders:    []int{0, 1},
		Timer:      game.AuctionTimer,
	}
	s.Auction.HighestBidderID = intPtr(0)

	eager := newBot(0)
	if cmd := eager.Decide(s, 1); cmd != nil {
		t.Errorf("bot bid %v above its ceiling, want nil", cmd)
	}
}

func TestTradeProposalTargetsMissingPiece(t *testing.T) {
	_, s := newGame(t, botSeats()...)
	b := newBot(0)
	s.Tiles[1].OwnerID = intPtr(1) // bot holds Salvador
	s.Tiles[3].OwnerID = intPtr(0) // human holds the missing Rio

	offer, ok := b.BuildTradeProposal(s, 1)
	if !ok {
		t.Fatal("expected a proposal")
	}
	if offer.TargetPropertyID != 3 || offer.TargetID != 0 {
		t.Errorf("offer = %+v, want Rio from player 0", offer)
	}
	if offer.OfferCash <= 0 || offer.OfferCash > s.Players[1].Money {
		t.Errorf("offer cash = %d, want a positive affordable amount", offer.OfferCash)
	}
	if offer.RequestCash != 0 {
		t.Errorf("request cash = %d, want 0", offer.RequestCash)
	}
}

func TestNoTradeProposalWithoutNearSets(t *testing.T) {
	_, s := newGame(t, botSeats()...)
	b := newBot(0)

	if _, ok := b.BuildTradeProposal(s, 1); ok {
		t.Error("no near-complete set should mean no proposal")
	}
}
