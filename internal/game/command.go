package game

// Command is the closed set of inputs the engine accepts. Every command is a
// no-op when issued in the wrong phase; Apply never returns an error.
type Command interface {
	// Name returns the wire tag for the command.
	Name() string
	isCommand()
}

// Seat describes one participant at game start.
type Seat struct {
	Name        string      `json:"name"`
	IsBot       bool        `json:"isBot"`
	Personality Personality `json:"personality,omitempty"`
}

// StartGame creates a fresh match from the board template.
type StartGame struct {
	Seats []Seat `json:"seats"`
	Rules Rules  `json:"rules"`
}

// RollDice rolls for the current player.
type RollDice struct{}

// MovePlayer advances the current player by the last dice sum.
type MovePlayer struct{}

// LandOnTile resolves the tile the current player is standing on.
type LandOnTile struct{}

// BuyProperty buys the tile the current player is standing on.
type BuyProperty struct{}

// PayRent settles rent for the tile the current player is standing on.
type PayRent struct{}

// EndTurn finishes the current player's turn.
type EndTurn struct{}

// UpgradeProperty adds one building to the tile.
type UpgradeProperty struct {
	TileID int `json:"tileId"`
}

// MortgageProperty mortgages the tile for half its price.
type MortgageProperty struct {
	TileID int `json:"tileId"`
}

// UnmortgageProperty lifts a mortgage at a 10% premium.
type UnmortgageProperty struct {
	TileID int `json:"tileId"`
}

// SellProperty sells an unimproved tile back to the bank for half price.
type SellProperty struct {
	TileID int `json:"tileId"`
}

// ProposeTrade offers cash and properties for a single target property.
// Offers targeting a bot are evaluated immediately; offers targeting a human
// are parked in PendingTrade until accepted or declined.
type ProposeTrade struct {
	Offer TradeOffer `json:"offer"`
}

// AcceptTrade executes the pending trade.
type AcceptTrade struct{}

// DeclineTrade discards the pending trade.
type DeclineTrade struct{}

// PayJailFine pays the fixed fine and lets the player roll this turn.
type PayJailFine struct{}

// AttemptJailRoll tries to roll doubles to leave jail.
type AttemptJailRoll struct{}

// SkipJailTurn waits out a turn in jail.
type SkipJailTurn struct{}

// StartAuction puts the unbought tile under the hammer.
type StartAuction struct{}

// PlaceBid raises the auction's current bid.
type PlaceBid struct {
	PlayerID int `json:"playerId"`
	Amount   int `json:"amount"`
}

// TickAuction decrements the auction countdown by one.
type TickAuction struct{}

// EndAuction resolves the auction regardless of remaining countdown.
type EndAuction struct{}

func (StartGame) Name() string          { return "START_GAME" }
func (RollDice) Name() string           { return "ROLL_DICE" }
func (MovePlayer) Name() string         { return "MOVE_PLAYER" }
func (LandOnTile) Name() string         { return "LAND_ON_TILE" }
func (BuyProperty) Name() string        { return "BUY_PROPERTY" }
func (PayRent) Name() string            { return "PAY_RENT" }
func (EndTurn) Name() string            { return "END_TURN" }
func (UpgradeProperty) Name() string    { return "UPGRADE_PROPERTY" }
func (MortgageProperty) Name() string   { return "MORTGAGE_PROPERTY" }
func (UnmortgageProperty) Name() string { return "UNMORTGAGE_PROPERTY" }
func (SellProperty) Name() string       { return "SELL_PROPERTY" }
func (ProposeTrade) Name() string       { return "PROPOSE_TRADE" }
func (AcceptTrade) Name() string        { return "ACCEPT_TRADE" }
func (DeclineTrade) Name() string       { return "DECLINE_TRADE" }
func (PayJailFine) Name() string        { return "PAY_JAIL_FINE" }
func (AttemptJailRoll) Name() string    { return "ATTEMPT_JAIL_ROLL" }
func (SkipJailTurn) Name() string       { return "SKIP_JAIL_TURN" }
func (StartAuction) Name() string       { return "START_AUCTION" }
func (PlaceBid) Name() string           { return "PLACE_BID" }
func (TickAuction) Name() string        { return "TICK_AUCTION" }
func (EndAuction) Name() string         { return "END_AUCTION" }

func (StartGame) isCommand()          {}
func (RollDice) isCommand()           {}
func (MovePlayer) isCommand()         {}
func (LandOnTile) isCommand()         {}
func (BuyProperty) isCommand()        {}
func (PayRent) isCommand()            {}
func (EndTurn) isCommand()            {}
func (UpgradeProperty) isCommand()    {}
func (MortgageProperty) isCommand()   {}
func (UnmortgageProperty) isCommand() {}
func (SellProperty) isCommand()       {}
func (ProposeTrade) isCommand()       {}
func (AcceptTrade) isCommand()        {}
func (DeclineTrade) isCommand()       {}
func (PayJailFine) isCommand()        {}
func (AttemptJailRoll) isCommand()    {}
func (SkipJailTurn) isCommand()       {}
func (StartAuction) isCommand()       {}
func (PlaceBid) isCommand()           {}
func (TickAuction) isCommand()        {}
func (EndAuction) isCommand()         {}
