package bot

import "github.com/lox/richup/internal/game"

// Profile is the tunable set of thresholds behind a personality. Cash
// thresholds are absolute amounts; chances are probabilities in [0, 1].
type Profile struct {
	// BuyBuffer is the cash the bot wants left over after buying a tile.
	BuyBuffer int
	// JailPayThreshold is the balance above which the bot pays the fine
	// rather than gambling on doubles.
	JailPayThreshold int
	// BuildBuffer is the cash the bot wants left over after placing a house.
	BuildBuffer int
	// UnmortgageReserve is the cash kept aside when lifting mortgages.
	UnmortgageReserve int
	// BidMult scales the bot's valuation of an auctioned tile.
	BidMult float64
	// BidSpendFrac caps any bid at this fraction of the bot's cash.
	BidSpendFrac float64
	// JumpBidChance is the probability of bidding a chunk of the gap to the
	// bot's ceiling instead of the minimum increment.
	JumpBidChance float64
	// TradeChance is the per-turn probability of floating a trade proposal.
	TradeChance float64
}

var profiles = map[game.Personality]Profile{
	game.Aggressive: {
		BuyBuffer:         50,
		JailPayThreshold:  150,
		BuildBuffer:       100,
		UnmortgageReserve: 150,
		BidMult:           1.3,
		BidSpendFrac:      0.8,
		JumpBidChance:     0.5,
		TradeChance:       0.3,
	},
	game.Conservative: {
		BuyBuffer:         400,
		JailPayThreshold:  600,
		BuildBuffer:       500,
		UnmortgageReserve: 500,
		BidMult:           0.8,
		BidSpendFrac:      0.4,
		JumpBidChance:     0.1,
		TradeChance:       0.1,
	},
	game.Balanced: {
		BuyBuffer:         200,
		JailPayThreshold:  500,
		BuildBuffer:       300,
		UnmortgageReserve: 300,
		BidMult:           1.0,
		BidSpendFrac:      0.6,
		JumpBidChance:     0.25,
		TradeChance:       0.2,
	},
	game.Opportunistic: {
		BuyBuffer:         150,
		JailPayThreshold:  400,
		BuildBuffer:       250,
		UnmortgageReserve: 250,
		BidMult:           1.1,
		BidSpendFrac:      0.7,
		JumpBidChance:     0.35,
		TradeChance:       0.25,
	},
}

// profileFor resolves a personality to its profile, defaulting to Balanced.
func profileFor(p game.Personality) Profile {
	if prof, ok := profiles[p]; ok {
		return prof
	}
	return profiles[game.Balanced]
}
