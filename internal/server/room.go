package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/richup/internal/bot"
	"github.com/lox/richup/internal/game"
)

// Room statuses.
const (
	RoomStatusWaiting  = "waiting"
	RoomStatusPlaying  = "playing"
	RoomStatusFinished = "finished"
)

// Driver pacing. The pulse is the room's heartbeat: bots act at most once
// per pulse and the auction countdown drops once per second.
const (
	pulseInterval       = 500 * time.Millisecond
	pulsesPerAuctionSec = 2
	adviceTimeout       = 2 * time.Second
)

// Broadcaster is the slice of the server a room needs to publish snapshots.
type Broadcaster interface {
	BroadcastToRoom(roomID string, msg *Message)
	SendToPlayer(playerName string, msg *Message) error
}

type playerCommand struct {
	playerName string
	cmd        game.Command
}

// Room is a single match and the only goroutine that touches its GameState.
// Remote commands are funneled through a channel, so the engine sees one
// command at a time no matter how many clients are connected.
type Room struct {
	ID   string
	Name string

	logger    *log.Logger
	clock     quartz.Clock
	engine    *game.Engine
	bots      *bot.Bot
	advisor   Advisor
	broadcast Broadcaster

	mu      sync.RWMutex
	status  string
	rules   game.Rules
	seats   []game.Seat
	players map[string]int

	commands  chan playerCommand
	done      chan struct{}
	closeOnce sync.Once

	// Owned by the run goroutine once the game starts.
	state  *game.GameState
	pulses int
}

// NewRoom creates a waiting room.
func NewRoom(id, name string, rules game.Rules, engine *game.Engine, bots *bot.Bot, advisor Advisor, broadcast Broadcaster, clock quartz.Clock, logger *log.Logger) *Room {
	return &Room{
		ID:        id,
		Name:      name,
		logger:    logger.WithPrefix("room").With("roomId", id),
		clock:     clock,
		engine:    engine,
		bots:      bots,
		advisor:   advisor,
		broadcast: broadcast,
		status:    RoomStatusWaiting,
		rules:     rules,
		players:   make(map[string]int),
		commands:  make(chan playerCommand, 64),
		done:      make(chan struct{}),
	}
}

// Info returns the lobby listing entry for the room.
func (r *Room) Info() RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RoomInfo{
		ID:          r.ID,
		Name:        r.Name,
		PlayerCount: len(r.seats),
		MaxPlayers:  game.MaxPlayers,
		Status:      r.status,
	}
}

// PlayerNames returns the seated names in join order.
func (r *Room) PlayerNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.seats))
	for i, seat := range r.seats {
		names[i] = seat.Name
	}
	return names
}

// PlayerID resolves a connection name to an in-game player id.
func (r *Room) PlayerID(playerName string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.players[playerName]
	if !ok {
		return 0, fmt.Errorf("player %s is not in this game", playerName)
	}
	return id, nil
}

// AddSeat seats a player or bot before the game starts.
func (r *Room) AddSeat(seat game.Seat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != RoomStatusWaiting {
		return fmt.Errorf("game already started")
	}
	if len(r.seats) >= game.MaxPlayers {
		return fmt.Errorf("room is full")
	}
	for _, s := range r.seats {
		if s.Name == seat.Name {
			return fmt.Errorf("name %s is taken", seat.Name)
		}
	}
	r.seats = append(r.seats, seat)
	return nil
}

// RemoveSeat unseats a player or bot before the game starts.
func (r *Room) RemoveSeat(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != RoomStatusWaiting {
		return fmt.Errorf("game already started")
	}
	for i, s := range r.seats {
		if s.Name == name {
			r.seats = append(r.seats[:i], r.seats[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no seat for %s", name)
}

// Start deals the game and launches the room goroutine. Only a seated human
// may start the game.
func (r *Room) Start(starter string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != RoomStatusWaiting {
		return fmt.Errorf("game already started")
	}
	seated := false
	for _, s := range r.seats {
		if s.Name == starter && !s.IsBot {
			seated = true
			break
		}
	}
	if !seated {
		return fmt.Errorf("only a seated player can start the game")
	}

	state := r.engine.Apply(nil, game.StartGame{Seats: r.seats, Rules: r.rules})
	if state == nil {
		return fmt.Errorf("need between 2 and %d players to start", game.MaxPlayers)
	}

	for _, p := range state.Players {
		r.players[p.Name] = p.ID
	}
	r.state = state
	r.status = RoomStatusPlaying
	r.logger.Info("Game started", "players", len(state.Players))

	go r.run()
	return nil
}

// Submit queues a command from a remote player.
func (r *Room) Submit(playerName string, cmd game.Command) error {
	select {
	case r.commands <- playerCommand{playerName: playerName, cmd: cmd}:
		return nil
	case <-r.done:
		return fmt.Errorf("room is closed")
	}
}

// Close stops the room goroutine.
func (r *Room) Close() {
	r.closeOnce.Do(func() { close(r.done) })
}

func (r *Room) run() {
	ticker := r.clock.NewTicker(pulseInterval)
	defer ticker.Stop()

	r.publish()

	for {
		select {
		case pc := <-r.commands:
			r.handleCommand(pc)
		case <-ticker.C:
			r.pulse()
		case <-r.done:
			return
		}

		if r.state.WinnerID != nil {
			r.finish()
			return
		}
	}
}

func (r *Room) handleCommand(pc playerCommand) {
	id, err := r.PlayerID(pc.playerName)
	if err != nil {
		r.logger.Warn("Command from unseated player", "player", pc.playerName)
		return
	}
	if !r.authorized(id, pc.cmd) {
		r.logger.Warn("Command from wrong player ignored", "player", pc.playerName, "command", pc.cmd.Name())
		return
	}
	r.apply(pc.cmd)
}

// authorized checks that the command may be issued by this player. The rules
// for who may act are positional: most commands belong to the current
// player, bids to any auction participant, trade responses to the target.
func (r *Room) authorized(playerID int, cmd game.Command) bool {
	switch c := cmd.(type) {
	case game.PlaceBid:
		return c.PlayerID == playerID
	case game.AcceptTrade, game.DeclineTrade:
		return r.state.PendingTrade != nil && r.state.PendingTrade.TargetID == playerID
	case game.StartGame:
		return false
	default:
		return r.state.CurrentPlayer().ID == playerID
	}
}

// pulse advances everything that moves on its own: mechanical phases, bot
// decisions and the auction countdown.
func (r *Room) pulse() {
	r.pulses++

	switch r.state.Phase {
	case game.PhaseMoving:
		r.apply(game.MovePlayer{})
		return
	case game.PhaseResolving:
		r.apply(game.LandOnTile{})
		return
	case game.PhaseAuction:
		r.pulseAuction()
		return
	}

	current := r.state.CurrentPlayer()
	if !current.IsBot {
		return
	}
	if cmd := r.bots.Decide(r.state, current.ID); cmd != nil {
		r.apply(cmd)
	}
}

func (r *Room) pulseAuction() {
	// Every eligible bot gets one look per pulse.
	for _, id := range r.state.Auction.Bidders {
		p := r.state.PlayerByID(id)
		if p == nil || !p.IsBot {
			continue
		}
		if cmd := r.bots.Decide(r.state, id); cmd != nil {
			r.apply(cmd)
		}
		if r.state.Phase != game.PhaseAuction {
			return
		}
	}

	if r.pulses%pulsesPerAuctionSec != 0 {
		return
	}
	r.apply(game.TickAuction{})
	if r.state.Phase == game.PhaseAuction && r.state.Auction.Timer == 0 {
		r.apply(game.EndAuction{})
	}
}

// apply runs one command through the engine and publishes the snapshot when
// it changed anything.
func (r *Room) apply(cmd game.Command) {
	next := r.engine.Apply(r.state, cmd)
	if next == r.state {
		return
	}
	r.state = next
	r.publish()
}

func (r *Room) publish() {
	msg, err := NewMessage(MessageTypeGameState, GameStateData{RoomID: r.ID, State: r.state})
	if err != nil {
		r.logger.Error("Failed to encode snapshot", "error", err)
		return
	}
	r.broadcast.BroadcastToRoom(r.ID, msg)
	r.advise()
}

// advise forwards the snapshot to the advisory service for the human whose
// decision is pending. The service is fire-and-forget; a failure becomes a
// message string and nothing else.
func (r *Room) advise() {
	if r.advisor == nil {
		return
	}
	current := r.state.CurrentPlayer()
	if current.IsBot {
		return
	}
	if r.state.Phase != game.PhaseAction && r.state.Phase != game.PhaseTurnEnd && r.state.Phase != game.PhaseRoll {
		return
	}

	snapshot := r.state
	playerID := current.ID
	playerName := current.Name
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), adviceTimeout)
		defer cancel()

		text, err := r.advisor.Advise(ctx, snapshot, playerID)
		if err != nil {
			r.logger.Debug("Advisor declined", "error", err)
			return
		}
		msg, err := NewMessage(MessageTypeAdvice, AdviceData{RoomID: r.ID, Text: text})
		if err != nil {
			return
		}
		_ = r.broadcast.SendToPlayer(playerName, msg)
	}()
}

func (r *Room) finish() {
	r.mu.Lock()
	r.status = RoomStatusFinished
	r.mu.Unlock()
	winner := r.state.PlayerByID(*r.state.WinnerID)
	r.logger.Info("Game finished", "winner", winner.Name, "turns", r.state.TurnCount)
}
