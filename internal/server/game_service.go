package server

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/richup/internal/bot"
	"github.com/lox/richup/internal/game"
	"github.com/lox/richup/internal/randutil"
	"github.com/lox/richup/internal/roomid"
)

// GameService owns the rooms. The server hands it decoded client requests;
// it routes them to the right room and leaves all rules to the engine.
type GameService struct {
	broadcast Broadcaster
	logger    *log.Logger
	clock     quartz.Clock
	advisor   Advisor
	seed      int64

	mu           sync.RWMutex
	rooms        map[string]*Room
	created      int64
	defaultBots  []game.Seat
	defaultRules game.Rules
}

// NewGameService creates a game service. Each room derives its own RNG from
// seed, so a fixed seed replays every room deterministically.
func NewGameService(broadcast Broadcaster, logger *log.Logger, seed int64, clock quartz.Clock) *GameService {
	return &GameService{
		broadcast:    broadcast,
		logger:       logger.WithPrefix("games"),
		clock:        clock,
		advisor:      RuleAdvisor{},
		seed:         seed,
		rooms:        make(map[string]*Room),
		defaultRules: game.DefaultRules(),
	}
}

// SetAdvisor replaces the built-in advisor for rooms created afterwards.
func (gs *GameService) SetAdvisor(a Advisor) {
	gs.advisor = a
}

// SetDefaultRules sets the rules used when a client creates a room without
// naming any.
func (gs *GameService) SetDefaultRules(rules game.Rules) {
	gs.defaultRules = rules
}

// SetDefaultBots seats the configured bots in every room created afterwards.
func (gs *GameService) SetDefaultBots(configs []BotConfig) error {
	seats := make([]game.Seat, 0, len(configs))
	for _, bc := range configs {
		p, err := ParsePersonality(bc.Personality)
		if err != nil {
			return err
		}
		seats = append(seats, game.Seat{Name: bc.Name, IsBot: true, Personality: p})
	}
	gs.defaultBots = seats
	return nil
}

// CreateRoom opens a new waiting room.
func (gs *GameService) CreateRoom(name string, rules *game.Rules) (*Room, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	id := roomid.Generate()
	if name == "" {
		name = "Room " + id[:4]
	}
	r := gs.defaultRules
	if rules != nil {
		r = *rules
	}

	gs.created++
	rng := randutil.New(gs.seed + gs.created)
	engine := game.NewEngine(rng, gs.logger)
	bots := bot.New(rng, gs.logger)

	room := NewRoom(id, name, r, engine, bots, gs.advisor, gs.broadcast, gs.clock, gs.logger)
	for _, seat := range gs.defaultBots {
		if err := room.AddSeat(seat); err != nil {
			return nil, err
		}
	}
	gs.rooms[id] = room
	gs.logger.Info("Room created", "roomId", id, "name", name)
	return room, nil
}

// GetRoom returns the room with the given id, or nil.
func (gs *GameService) GetRoom(roomID string) *Room {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.rooms[roomID]
}

// ListRooms returns lobby entries for every room.
func (gs *GameService) ListRooms() []RoomInfo {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	rooms := make([]RoomInfo, 0, len(gs.rooms))
	for _, room := range gs.rooms {
		rooms = append(rooms, room.Info())
	}
	return rooms
}

// JoinRoom seats a human player in a waiting room.
func (gs *GameService) JoinRoom(roomID, playerName string) error {
	room := gs.GetRoom(roomID)
	if room == nil {
		return fmt.Errorf("room not found: %s", roomID)
	}
	return room.AddSeat(game.Seat{Name: playerName})
}

// LeaveRoom unseats a player. Once a game is running the seat stays; the
// engine keeps playing the absent player as-is.
func (gs *GameService) LeaveRoom(roomID, playerName string) error {
	room := gs.GetRoom(roomID)
	if room == nil {
		return fmt.Errorf("room not found: %s", roomID)
	}
	if err := room.RemoveSeat(playerName); err != nil {
		gs.logger.Debug("Leave after start ignored", "roomId", roomID, "player", playerName)
		return nil
	}
	return nil
}

// AddBot seats a bot with the given personality, or BALANCED by default.
func (gs *GameService) AddBot(roomID, personality string) error {
	room := gs.GetRoom(roomID)
	if room == nil {
		return fmt.Errorf("room not found: %s", roomID)
	}

	p, err := ParsePersonality(personality)
	if err != nil {
		return err
	}
	n := len(room.PlayerNames()) + 1
	seat := game.Seat{
		Name:        fmt.Sprintf("Bot %d", n),
		IsBot:       true,
		Personality: p,
	}
	return room.AddSeat(seat)
}

// KickBot removes a bot from a waiting room.
func (gs *GameService) KickBot(roomID, botName string) error {
	room := gs.GetRoom(roomID)
	if room == nil {
		return fmt.Errorf("room not found: %s", roomID)
	}
	for _, name := range room.PlayerNames() {
		if name == botName {
			return room.RemoveSeat(botName)
		}
	}
	return fmt.Errorf("no bot named %s", botName)
}

// StartGame starts the match in the given room.
func (gs *GameService) StartGame(roomID, playerName string) error {
	room := gs.GetRoom(roomID)
	if room == nil {
		return fmt.Errorf("room not found: %s", roomID)
	}
	return room.Start(playerName)
}

// HandleCommand decodes and queues a remote command. The player's identity
// is bound here, from their connection, before the command reaches the room.
func (gs *GameService) HandleCommand(roomID, playerName string, data GameCommandData) error {
	room := gs.GetRoom(roomID)
	if room == nil {
		return fmt.Errorf("room not found: %s", roomID)
	}
	playerID, err := room.PlayerID(playerName)
	if err != nil {
		return err
	}
	cmd, err := decodeCommand(data, playerID)
	if err != nil {
		return err
	}
	return room.Submit(playerName, cmd)
}

// Shutdown closes every room.
func (gs *GameService) Shutdown() {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	for _, room := range gs.rooms {
		room.Close()
	}
}

// ParsePersonality maps a config or wire string to a bot personality.
func ParsePersonality(s string) (game.Personality, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(game.Balanced):
		return game.Balanced, nil
	case string(game.Aggressive):
		return game.Aggressive, nil
	case string(game.Conservative):
		return game.Conservative, nil
	case string(game.Opportunistic):
		return game.Opportunistic, nil
	}
	return "", fmt.Errorf("unknown personality: %s", s)
}
