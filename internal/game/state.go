package game

import (
	"github.com/lox/richup/internal/board"
)

// Phase is the engine's current position in the turn state machine.
type Phase string

const (
	PhaseRoll      Phase = "ROLL"
	PhaseMoving    Phase = "MOVING"
	PhaseResolving Phase = "RESOLVING"
	PhaseAction    Phase = "ACTION"
	PhaseAuction   Phase = "AUCTION"
	PhaseTurnEnd   Phase = "TURN_END"
)

// Personality selects a bot decision profile.
type Personality string

const (
	Aggressive    Personality = "AGGRESSIVE"
	Conservative  Personality = "CONSERVATIVE"
	Balanced      Personality = "BALANCED"
	Opportunistic Personality = "OPPORTUNISTIC"
)

// Fixed game amounts.
const (
	StartBonus      = 200
	IncomeTaxAmount = 200
	LuxuryTaxAmount = 100
	JailFine        = 50
	MaxJailTurns    = 3
	MaxBuildings    = 5
	AuctionTimer    = 10
	MinBidIncrement = 10
	MaxLogEntries   = 100
	MaxPlayers      = 8
	LateGameTurn    = 100
)

// Rules is the flat set of house-rule toggles fixed at game start.
type Rules struct {
	DoubleRentOnFullSet bool `json:"doubleRentOnFullSet"`
	VacationCash        bool `json:"vacationCash"`
	AuctionEnabled      bool `json:"auctionEnabled"`
	NoRentInJail        bool `json:"noRentInJail"`
	MortgageEnabled     bool `json:"mortgageEnabled"`
	EvenBuild           bool `json:"evenBuild"`
	StartingCash        int  `json:"startingCash"`
	RandomizeOrder      bool `json:"randomizeOrder"`
}

// DefaultRules returns the classic rule set.
func DefaultRules() Rules {
	return Rules{
		DoubleRentOnFullSet: true,
		VacationCash:        true,
		AuctionEnabled:      true,
		NoRentInJail:        true,
		MortgageEnabled:     true,
		EvenBuild:           true,
		StartingCash:        1500,
		RandomizeOrder:      true,
	}
}

// Player is one participant. IDs are assigned at game start and never reused.
type Player struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Color       string      `json:"color"`
	Money       int         `json:"money"`
	Position    int         `json:"position"`
	IsBot       bool        `json:"isBot"`
	IsBankrupt  bool        `json:"isBankrupt"`
	InJail      bool        `json:"inJail"`
	JailTurns   int         `json:"jailTurns"`
	Personality Personality `json:"personality,omitempty"`
}

// Tile combines a board definition with its mutable ownership state.
type Tile struct {
	board.Definition
	OwnerID       *int `json:"ownerId"`
	BuildingCount int  `json:"buildingCount"`
	IsMortgaged   bool `json:"isMortgaged"`
}

// Owned reports whether the tile has an owner.
func (t *Tile) Owned() bool { return t.OwnerID != nil }

// OwnedBy reports whether the tile is owned by the given player.
func (t *Tile) OwnedBy(id int) bool { return t.OwnerID != nil && *t.OwnerID == id }

// Auction is the nested bidding state, present only during PhaseAuction.
type Auction struct {
	TileID          int   `json:"tileId"`
	CurrentBid      int   `json:"currentBid"`
	HighestBidderID *int  `json:"highestBidderId"`
	Bidders         []int `json:"bidders"`
	Timer           int   `json:"timer"`
}

// TradeOffer is a proposal to exchange cash and properties for a single
// target property.
type TradeOffer struct {
	ProposerID       int   `json:"proposerId"`
	TargetID         int   `json:"targetId"`
	OfferCash        int   `json:"offerCash"`
	OfferPropertyIDs []int `json:"offerPropertyIds"`
	TargetPropertyID int   `json:"targetPropertyId"`
	RequestCash      int   `json:"requestCash"`
}

// GameState is the single source of truth for a match. Apply never mutates a
// state in place; every command produces a fresh snapshot, which makes the
// whole struct safe to serialize and broadcast.
type GameState struct {
	Players            []Player    `json:"players"`
	Tiles              []Tile      `json:"tiles"`
	CurrentPlayerIndex int         `json:"currentPlayerIndex"`
	Dice               [2]int      `json:"dice"`
	LastRollDoubles    bool        `json:"lastDiceRollDoubles"`
	DoublesCount       int         `json:"doublesCount"`
	Phase              Phase       `json:"phase"`
	TurnCount          int         `json:"turnCount"`
	TaxPool            int         `json:"taxPool"`
	Auction            *Auction    `json:"auction"`
	PendingTrade       *TradeOffer `json:"pendingTrade"`
	WinnerID           *int        `json:"winnerId"`
	Logs               []string    `json:"logs"`
	TurnLogs           []string    `json:"turnLogs"`
	Rules              Rules       `json:"rules"`
}

// Clone returns a deep copy of the state.
func (s *GameState) Clone() *GameState {
	c := *s

	c.Players = make([]Player, len(s.Players))
	copy(c.Players, s.Players)

	c.Tiles = make([]Tile, len(s.Tiles))
	copy(c.Tiles, s.Tiles)
	for i := range c.Tiles {
		c.Tiles[i].OwnerID = cloneIntPtr(s.Tiles[i].OwnerID)
	}

	if s.Auction != nil {
		a := *s.Auction
		a.HighestBidderID = cloneIntPtr(s.Auction.HighestBidderID)
		a.Bidders = append([]int(nil), s.Auction.Bidders...)
		c.Auction = &a
	}
	if s.PendingTrade != nil {
		t := *s.PendingTrade
		t.OfferPropertyIDs = append([]int(nil), s.PendingTrade.OfferPropertyIDs...)
		c.PendingTrade = &t
	}
	c.WinnerID = cloneIntPtr(s.WinnerID)

	c.Logs = append([]string(nil), s.Logs...)
	c.TurnLogs = append([]string(nil), s.TurnLogs...)
	return &c
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func intPtr(v int) *int { return &v }

// CurrentPlayer returns the player whose turn it is.
func (s *GameState) CurrentPlayer() *Player {
	return &s.Players[s.CurrentPlayerIndex]
}

// PlayerByID returns the player with the given id, or nil.
func (s *GameState) PlayerByID(id int) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// ActivePlayers returns the ids of all non-bankrupt players in turn order.
func (s *GameState) ActivePlayers() []int {
	var ids []int
	for i := range s.Players {
		if !s.Players[i].IsBankrupt {
			ids = append(ids, s.Players[i].ID)
		}
	}
	return ids
}

// GroupTiles returns the indexes of every tile in the given color group.
func (s *GameState) GroupTiles(g board.Group) []int {
	var idx []int
	for i := range s.Tiles {
		if s.Tiles[i].Group == g && g != board.NoGroup {
			idx = append(idx, i)
		}
	}
	return idx
}

// OwnsFullGroup reports whether the player owns every tile in the group.
func (s *GameState) OwnsFullGroup(playerID int, g board.Group) bool {
	idx := s.GroupTiles(g)
	if len(idx) == 0 {
		return false
	}
	for _, i := range idx {
		if !s.Tiles[i].OwnedBy(playerID) {
			return false
		}
	}
	return true
}

// OwnedInGroup counts the tiles the player owns in the group.
func (s *GameState) OwnedInGroup(playerID int, g board.Group) int {
	n := 0
	for _, i := range s.GroupTiles(g) {
		if s.Tiles[i].OwnedBy(playerID) {
			n++
		}
	}
	return n
}

// OwnedCount counts tiles of the given type owned by the player.
func (s *GameState) OwnedCount(playerID int, typ board.Type) int {
	n := 0
	for i := range s.Tiles {
		if s.Tiles[i].Type == typ && s.Tiles[i].OwnedBy(playerID) {
			n++
		}
	}
	return n
}

// GroupMinBuildings returns the lowest building count across the group.
func (s *GameState) GroupMinBuildings(g board.Group) int {
	min := MaxBuildings
	for _, i := range s.GroupTiles(g) {
		if s.Tiles[i].BuildingCount < min {
			min = s.Tiles[i].BuildingCount
		}
	}
	return min
}

// log prepends a narration entry, evicting the oldest beyond the cap, and
// mirrors it into the per-turn buffer.
func (s *GameState) log(msg string) {
	s.Logs = append([]string{msg}, s.Logs...)
	if len(s.Logs) > MaxLogEntries {
		s.Logs = s.Logs[:MaxLogEntries]
	}
	s.TurnLogs = append(s.TurnLogs, msg)
}
