// Package deck implements the two card piles (Surprise and Treasure). Cards
// are drawn with replacement, so a deck never runs out and needs no reshuffle.
package deck

import "github.com/lox/richup/internal/board"

// Effect identifies what a drawn card does to the drawing player.
type Effect string

const (
	// Money adjusts the drawing player's balance by Amount. When EachPlayer
	// is set the delta is settled against every other active player instead
	// of the bank.
	Money Effect = "MONEY"
	// Move relocates the drawing player to Destination, paying the start
	// bonus if the move crosses the start tile.
	Move Effect = "MOVE"
	// GoToJail sends the drawing player straight to jail.
	GoToJail Effect = "GO_TO_JAIL"
	// JailFree pays out a fixed cash stand-in for the traditional
	// get-out-of-jail token.
	JailFree Effect = "JAIL_FREE"
)

// Card is a single effect descriptor.
type Card struct {
	Name        string `json:"name"`
	Effect      Effect `json:"effect"`
	Amount      int    `json:"amount,omitempty"`
	Destination int    `json:"destination,omitempty"`
	EachPlayer  bool   `json:"eachPlayer,omitempty"`
}

// Rand supplies uniform draws. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Deck is a fixed set of cards drawn with replacement.
type Deck struct {
	name  string
	cards []Card
}

// Name returns the deck's display name.
func (d *Deck) Name() string { return d.name }

// Size returns the number of distinct cards in the deck.
func (d *Deck) Size() int { return len(d.cards) }

// Draw picks a uniformly random card. The deck is never consumed.
func (d *Deck) Draw(rng Rand) Card {
	return d.cards[rng.IntN(len(d.cards))]
}

// Cards returns a copy of the deck contents.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Surprise returns the chance-style deck. Move destinations deliberately
// avoid draw tiles so a relocation can never trigger another draw.
func Surprise() *Deck {
	return &Deck{
		name: "Surprise",
		cards: []Card{
			{Name: "Advance to Start", Effect: Move, Destination: board.StartPos},
			{Name: "Catch a flight to TLV Airport", Effect: Move, Destination: 5},
			{Name: "Weekend in Venice", Effect: Move, Destination: 11},
			{Name: "Business trip to Shanghai", Effect: Move, Destination: 24},
			{Name: "Bank error in your favour", Effect: Money, Amount: 200},
			{Name: "Speeding fine", Effect: Money, Amount: -100},
			{Name: "Crypto windfall", Effect: Money, Amount: 150},
			{Name: "Caught fare dodging", Effect: GoToJail},
			{Name: "Get out of prison", Effect: JailFree, Amount: 50},
		},
	}
}

// Treasure returns the community-style deck.
func Treasure() *Deck {
	return &Deck{
		name: "Treasure",
		cards: []Card{
			{Name: "Tax refund", Effect: Money, Amount: 100},
			{Name: "Hospital bill", Effect: Money, Amount: -100},
			{Name: "It's your birthday, collect from everyone", Effect: Money, Amount: 20, EachPlayer: true},
			{Name: "Throw a party, pay every guest", Effect: Money, Amount: -25, EachPlayer: true},
			{Name: "Take a vacation", Effect: Move, Destination: board.VacationPos},
			{Name: "Stock dividend", Effect: Money, Amount: 50},
			{Name: "Street repairs", Effect: Money, Amount: -150},
			{Name: "Get out of prison", Effect: JailFree, Amount: 50},
		},
	}
}
