package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lox/richup/internal/game"
)

// Message is the base WebSocket message structure. Data is left raw until
// the type is known.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type AuthData struct {
	PlayerName string `json:"playerName"`
}

type CreateRoomData struct {
	Name  string      `json:"name"`
	Rules *game.Rules `json:"rules,omitempty"`
}

type JoinRoomData struct {
	RoomID string `json:"roomId"`
}

type LeaveRoomData struct {
	RoomID string `json:"roomId"`
}

type AddBotData struct {
	RoomID      string `json:"roomId"`
	Personality string `json:"personality,omitempty"`
	Count       int    `json:"count,omitempty"`
}

type KickBotData struct {
	RoomID  string `json:"roomId"`
	BotName string `json:"botName"`
}

type StartGameData struct {
	RoomID string `json:"roomId"`
}

// GameCommandData is a flattened command envelope. Command holds the wire
// tag; the remaining fields carry whichever arguments that command needs.
type GameCommandData struct {
	RoomID  string           `json:"roomId"`
	Command string           `json:"command"`
	TileID  int              `json:"tileId,omitempty"`
	Amount  int              `json:"amount,omitempty"`
	Offer   *game.TradeOffer `json:"offer,omitempty"`
}

// Server → Client Messages

type AuthResponseData struct {
	Success  bool   `json:"success"`
	PlayerID string `json:"playerId,omitempty"`
	Error    string `json:"error,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RoomInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	Status      string `json:"status"`
}

type RoomListData struct {
	Rooms []RoomInfo `json:"rooms"`
}

type RoomCreatedData struct {
	Room RoomInfo `json:"room"`
}

type RoomJoinedData struct {
	RoomID  string   `json:"roomId"`
	Players []string `json:"players"`
}

type RoomLeftData struct {
	RoomID string `json:"roomId"`
}

// GameStateData carries a full snapshot. Snapshots are self-contained; a
// client that misses one is consistent again on the next.
type GameStateData struct {
	RoomID string          `json:"roomId"`
	State  *game.GameState `json:"state"`
}

type AdviceData struct {
	RoomID string `json:"roomId"`
	Text   string `json:"text"`
}

// decodeCommand maps a command envelope to an engine command. The acting
// player's identity comes from the session, never from the payload, so a
// client cannot bid or trade on another player's behalf.
func decodeCommand(data GameCommandData, playerID int) (game.Command, error) {
	switch data.Command {
	case game.RollDice{}.Name():
		return game.RollDice{}, nil
	case game.MovePlayer{}.Name():
		return game.MovePlayer{}, nil
	case game.LandOnTile{}.Name():
		return game.LandOnTile{}, nil
	case game.BuyProperty{}.Name():
		return game.BuyProperty{}, nil
	case game.PayRent{}.Name():
		return game.PayRent{}, nil
	case game.EndTurn{}.Name():
		return game.EndTurn{}, nil
	case game.PayJailFine{}.Name():
		return game.PayJailFine{}, nil
	case game.AttemptJailRoll{}.Name():
		return game.AttemptJailRoll{}, nil
	case game.SkipJailTurn{}.Name():
		return game.SkipJailTurn{}, nil
	case game.UpgradeProperty{}.Name():
		return game.UpgradeProperty{TileID: data.TileID}, nil
	case game.MortgageProperty{}.Name():
		return game.MortgageProperty{TileID: data.TileID}, nil
	case game.UnmortgageProperty{}.Name():
		return game.UnmortgageProperty{TileID: data.TileID}, nil
	case game.SellProperty{}.Name():
		return game.SellProperty{TileID: data.TileID}, nil
	case game.StartAuction{}.Name():
		return game.StartAuction{}, nil
	case game.PlaceBid{}.Name():
		return game.PlaceBid{PlayerID: playerID, Amount: data.Amount}, nil
	case game.ProposeTrade{}.Name():
		if data.Offer == nil {
			return nil, fmt.Errorf("trade command missing offer")
		}
		offer := *data.Offer
		offer.ProposerID = playerID
		return game.ProposeTrade{Offer: offer}, nil
	case game.AcceptTrade{}.Name():
		return game.AcceptTrade{}, nil
	case game.DeclineTrade{}.Name():
		return game.DeclineTrade{}, nil
	}
	return nil, fmt.Errorf("unknown command: %s", data.Command)
}
