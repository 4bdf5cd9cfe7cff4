package game

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/richup/internal/board"
	"github.com/lox/richup/internal/deck"
)

var playerColors = []string{
	"#ef4444", "#3b82f6", "#22c55e", "#eab308",
	"#a855f7", "#14b8a6", "#f97316", "#64748b",
}

// Engine owns the rules. Apply is a total function: a command that is invalid
// for the current phase, unaffordable, or malformed returns the input state
// unchanged. All randomness flows through the injected Rand.
type Engine struct {
	rng      Rand
	logger   *log.Logger
	surprise *deck.Deck
	treasure *deck.Deck
}

// NewEngine creates an engine drawing dice and cards from rng.
func NewEngine(rng Rand, logger *log.Logger) *Engine {
	return &Engine{
		rng:      rng,
		logger:   logger.WithPrefix("engine"),
		surprise: deck.Surprise(),
		treasure: deck.Treasure(),
	}
}

// Apply computes the next state for a command. The input state is never
// mutated; on a no-op the same pointer is returned.
func (e *Engine) Apply(s *GameState, cmd Command) *GameState {
	if s == nil {
		if c, ok := cmd.(StartGame); ok {
			return e.startGame(c)
		}
		return nil
	}

	e.logger.Debug("apply", "command", cmd.Name(), "phase", s.Phase, "turn", s.TurnCount)

	// Once a winner is declared only a restart is meaningful.
	if s.WinnerID != nil {
		if c, ok := cmd.(StartGame); ok {
			return e.startGame(c)
		}
		return s
	}

	switch c := cmd.(type) {
	case StartGame:
		return e.startGame(c)
	case RollDice:
		return e.rollDice(s)
	case MovePlayer:
		return e.movePlayer(s)
	case LandOnTile:
		return e.landOnTile(s)
	case BuyProperty:
		return e.buyProperty(s)
	case PayRent:
		return e.payRent(s)
	case EndTurn:
		return e.endTurn(s)
	case PayJailFine:
		return e.payJailFine(s)
	case AttemptJailRoll:
		return e.attemptJailRoll(s)
	case SkipJailTurn:
		return e.skipJailTurn(s)
	case UpgradeProperty:
		return e.upgradeProperty(s, c.TileID)
	case MortgageProperty:
		return e.mortgageProperty(s, c.TileID)
	case UnmortgageProperty:
		return e.unmortgageProperty(s, c.TileID)
	case SellProperty:
		return e.sellProperty(s, c.TileID)
	case ProposeTrade:
		return e.proposeTrade(s, c.Offer)
	case AcceptTrade:
		return e.acceptTrade(s)
	case DeclineTrade:
		return e.declineTrade(s)
	case StartAuction:
		return e.startAuction(s)
	case PlaceBid:
		return e.placeBid(s, c.PlayerID, c.Amount)
	case TickAuction:
		return e.tickAuction(s)
	case EndAuction:
		return e.endAuction(s)
	}
	return s
}

func (e *Engine) startGame(c StartGame) *GameState {
	if len(c.Seats) < 2 || len(c.Seats) > MaxPlayers {
		return nil
	}

	rules := c.Rules
	if rules.StartingCash <= 0 {
		rules.StartingCash = DefaultRules().StartingCash
	}

	players := make([]Player, len(c.Seats))
	for i, seat := range c.Seats {
		name := seat.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		players[i] = Player{
			ID:          i,
			Name:        name,
			Color:       playerColors[i%len(playerColors)],
			Money:       rules.StartingCash,
			IsBot:       seat.IsBot,
			Personality: seat.Personality,
		}
	}
	if rules.RandomizeOrder {
		e.rng.Shuffle(len(players), func(i, j int) {
			players[i], players[j] = players[j], players[i]
		})
	}

	defs := board.Tiles()
	tiles := make([]Tile, len(defs))
	for i, d := range defs {
		tiles[i] = Tile{Definition: d}
	}

	s := &GameState{
		Players: players,
		Tiles:   tiles,
		Dice:    [2]int{1, 1},
		Phase:   PhaseRoll,
		Rules:   rules,
	}
	s.log("Game started.")
	return s
}

func (e *Engine) rollDie() int {
	return e.rng.IntN(6) + 1
}

func (e *Engine) rollDice(s *GameState) *GameState {
	if s.Phase != PhaseRoll || s.CurrentPlayer().InJail {
		return s
	}

	next := s.Clone()
	p := next.CurrentPlayer()
	d1, d2 := e.rollDie(), e.rollDie()
	next.Dice = [2]int{d1, d2}
	doubles := d1 == d2

	if doubles && next.DoublesCount+1 >= 3 {
		// Third consecutive doubles goes straight to jail.
		p.Position = board.JailPos
		p.InJail = true
		p.JailTurns = 0
		next.DoublesCount = 0
		next.LastRollDoubles = false
		next.Phase = PhaseTurnEnd
		next.log(fmt.Sprintf("%s rolled doubles three times in a row and was sent to prison.", p.Name))
		return next
	}

	if doubles {
		next.DoublesCount++
	} else {
		next.DoublesCount = 0
	}
	next.LastRollDoubles = doubles
	next.Phase = PhaseMoving
	if doubles {
		next.log(fmt.Sprintf("%s rolled %d (doubles!).", p.Name, d1+d2))
	} else {
		next.log(fmt.Sprintf("%s rolled %d.", p.Name, d1+d2))
	}
	return next
}

func (e *Engine) movePlayer(s *GameState) *GameState {
	if s.Phase != PhaseMoving {
		return s
	}

	next := s.Clone()
	p := next.CurrentPlayer()
	sum := next.Dice[0] + next.Dice[1]
	pos := p.Position + sum
	if pos >= board.Size {
		pos -= board.Size
		p.Money += StartBonus
		next.log(fmt.Sprintf("%s passed Start and collected $%d.", p.Name, StartBonus))
	}
	p.Position = pos
	next.Phase = PhaseResolving
	return next
}

func (e *Engine) landOnTile(s *GameState) *GameState {
	if s.Phase != PhaseResolving {
		return s
	}

	next := s.Clone()
	p := next.CurrentPlayer()
	tile := &next.Tiles[p.Position]

	switch tile.Type {
	case board.Tax:
		amount := LuxuryTaxAmount
		if tile.Name == "Income Tax" {
			amount = IncomeTaxAmount
		}
		p.Money -= amount
		if next.Rules.VacationCash {
			next.TaxPool += amount
		}
		next.log(fmt.Sprintf("%s paid %s ($%d).", p.Name, tile.Name, amount))
		if p.Money < 0 {
			e.resolveBankruptcy(next, p.ID, nil)
		}
		next.Phase = PhaseTurnEnd
		return next

	case board.Corner:
		switch p.Position {
		case board.GoToJailPos:
			p.Position = board.JailPos
			p.InJail = true
			p.JailTurns = 0
			next.DoublesCount = 0
			next.LastRollDoubles = false
			next.log(fmt.Sprintf("%s was sent to prison.", p.Name))
		case board.VacationPos:
			if next.Rules.VacationCash && next.TaxPool > 0 {
				p.Money += next.TaxPool
				next.log(fmt.Sprintf("%s landed on Vacation and won the tax pool of $%d.", p.Name, next.TaxPool))
				next.TaxPool = 0
			}
		}
		next.Phase = PhaseTurnEnd
		return next

	case board.Surprise:
		return e.applyCard(next, e.surprise.Draw(e.rng), e.surprise.Name())

	case board.Treasure:
		return e.applyCard(next, e.treasure.Draw(e.rng), e.treasure.Name())
	}

	if tile.Owned() && !tile.OwnedBy(p.ID) {
		return e.settleRent(next)
	}
	if !tile.Owned() && tile.Purchasable() {
		next.Phase = PhaseAction
		return next
	}
	next.Phase = PhaseTurnEnd
	return next
}

func (e *Engine) applyCard(next *GameState, card deck.Card, deckName string) *GameState {
	p := next.CurrentPlayer()
	next.log(fmt.Sprintf("%s drew a %s card: %s.", p.Name, deckName, card.Name))

	switch card.Effect {
	case deck.Money:
		if card.EachPlayer {
			for i := range next.Players {
				other := &next.Players[i]
				if other.ID == p.ID || other.IsBankrupt {
					continue
				}
				other.Money -= card.Amount
				p.Money += card.Amount
			}
		} else {
			p.Money += card.Amount
		}
		if card.Amount >= 0 {
			next.log(fmt.Sprintf("%s received $%d.", p.Name, card.Amount))
		} else {
			next.log(fmt.Sprintf("%s paid $%d.", p.Name, -card.Amount))
		}
		if p.Money < 0 {
			e.resolveBankruptcy(next, p.ID, nil)
		}
		next.Phase = PhaseTurnEnd
		return next

	case deck.Move:
		if card.Destination < p.Position {
			p.Money += StartBonus
			next.log(fmt.Sprintf("%s passed Start and collected $%d.", p.Name, StartBonus))
		}
		p.Position = card.Destination
		// Resolve the destination tile like a normal landing. Card
		// destinations never point at draw tiles, so this cannot recurse.
		next.Phase = PhaseResolving
		return e.landOnTile(next)

	case deck.GoToJail:
		p.Position = board.JailPos
		p.InJail = true
		p.JailTurns = 0
		next.DoublesCount = 0
		next.LastRollDoubles = false
		next.Phase = PhaseTurnEnd
		return next

	case deck.JailFree:
		p.Money += card.Amount
		next.Phase = PhaseTurnEnd
		return next
	}
	next.Phase = PhaseTurnEnd
	return next
}

func (e *Engine) buyProperty(s *GameState) *GameState {
	if s.Phase != PhaseAction {
		return s
	}
	p := s.CurrentPlayer()
	tile := &s.Tiles[p.Position]
	if tile.Owned() || !tile.Purchasable() || p.Money < tile.Price {
		return s
	}

	next := s.Clone()
	np := next.CurrentPlayer()
	nt := &next.Tiles[np.Position]
	np.Money -= nt.Price
	nt.OwnerID = intPtr(np.ID)
	next.Phase = PhaseTurnEnd
	next.log(fmt.Sprintf("%s bought %s for $%d.", np.Name, nt.Name, nt.Price))
	return next
}

func (e *Engine) payRent(s *GameState) *GameState {
	if s.Phase != PhaseResolving {
		return s
	}
	tile := &s.Tiles[s.CurrentPlayer().Position]
	if !tile.Owned() || tile.OwnedBy(s.CurrentPlayer().ID) {
		return s
	}
	return e.settleRent(s.Clone())
}

// settleRent operates on a private clone.
func (e *Engine) settleRent(next *GameState) *GameState {
	p := next.CurrentPlayer()
	tile := &next.Tiles[p.Position]
	owner := next.PlayerByID(derefOwner(tile.OwnerID))
	if owner == nil || owner.IsBankrupt || owner.ID == p.ID {
		next.Phase = PhaseTurnEnd
		return next
	}

	rent := RentFor(next, tile, next.Dice[0]+next.Dice[1])
	if rent == 0 {
		next.log(fmt.Sprintf("No rent collected at %s.", tile.Name))
		next.Phase = PhaseTurnEnd
		return next
	}

	p.Money -= rent
	owner.Money += rent
	next.log(fmt.Sprintf("%s paid $%d rent to %s at %s.", p.Name, rent, owner.Name, tile.Name))
	if p.Money < 0 {
		e.resolveBankruptcy(next, p.ID, intPtr(owner.ID))
	}
	next.Phase = PhaseTurnEnd
	return next
}

func derefOwner(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}

func (e *Engine) payJailFine(s *GameState) *GameState {
	if s.Phase != PhaseRoll {
		return s
	}
	p := s.CurrentPlayer()
	if !p.InJail || p.Money < JailFine {
		return s
	}

	next := s.Clone()
	np := next.CurrentPlayer()
	np.Money -= JailFine
	np.InJail = false
	np.JailTurns = 0
	next.log(fmt.Sprintf("%s paid $%d to leave prison.", np.Name, JailFine))
	// The player still gets to roll this turn.
	next.Phase = PhaseRoll
	return next
}

func (e *Engine) attemptJailRoll(s *GameState) *GameState {
	if s.Phase != PhaseRoll || !s.CurrentPlayer().InJail {
		return s
	}

	next := s.Clone()
	p := next.CurrentPlayer()
	d1, d2 := e.rollDie(), e.rollDie()
	next.Dice = [2]int{d1, d2}

	if d1 == d2 {
		p.InJail = false
		p.JailTurns = 0
		// Doubles earned leaving jail do not grant an extra turn.
		next.LastRollDoubles = false
		next.Phase = PhaseMoving
		next.log(fmt.Sprintf("%s rolled doubles (%d, %d) and left prison.", p.Name, d1, d2))
		return next
	}

	p.JailTurns++
	if p.JailTurns >= MaxJailTurns {
		p.Money -= JailFine
		p.InJail = false
		p.JailTurns = 0
		next.log(fmt.Sprintf("%s failed to roll doubles three times, paid the $%d fine and moves on.", p.Name, JailFine))
		if p.Money < 0 {
			e.resolveBankruptcy(next, p.ID, nil)
			next.Phase = PhaseTurnEnd
			return next
		}
		next.LastRollDoubles = false
		next.Phase = PhaseMoving
		return next
	}

	next.Phase = PhaseTurnEnd
	next.log(fmt.Sprintf("%s failed to roll doubles and stays in prison.", p.Name))
	return next
}

func (e *Engine) skipJailTurn(s *GameState) *GameState {
	if s.Phase != PhaseRoll || !s.CurrentPlayer().InJail {
		return s
	}

	next := s.Clone()
	p := next.CurrentPlayer()
	p.JailTurns++
	next.Phase = PhaseTurnEnd
	next.log(fmt.Sprintf("%s stayed in prison.", p.Name))
	return next
}

func (e *Engine) endTurn(s *GameState) *GameState {
	switch s.Phase {
	case PhaseAction:
		// Declining the purchase just moves on to turn end.
		next := s.Clone()
		next.Phase = PhaseTurnEnd
		return next
	case PhaseTurnEnd:
	default:
		return s
	}

	next := s.Clone()

	// Safety net for commands that adjusted balances without resolving
	// bankruptcy inline.
	for i := range next.Players {
		if next.Players[i].Money < 0 && !next.Players[i].IsBankrupt {
			e.resolveBankruptcy(next, next.Players[i].ID, nil)
		}
	}

	active := next.ActivePlayers()
	if len(active) == 1 && len(next.Players) > 1 {
		next.WinnerID = intPtr(active[0])
		next.log(fmt.Sprintf("%s wins the game!", next.PlayerByID(active[0]).Name))
		return next
	}

	extraTurn := next.LastRollDoubles && !next.CurrentPlayer().IsBankrupt
	if !extraTurn {
		idx := (next.CurrentPlayerIndex + 1) % len(next.Players)
		for next.Players[idx].IsBankrupt {
			idx = (idx + 1) % len(next.Players)
		}
		next.CurrentPlayerIndex = idx
		next.DoublesCount = 0
	}
	next.LastRollDoubles = false
	next.Auction = nil
	next.TurnCount++
	next.Phase = PhaseRoll
	next.TurnLogs = nil
	return next
}
