package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn        *websocket.Conn
	send        chan *Message
	playerName  string
	roomID      string
	logger      *log.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	mu          sync.RWMutex
	closeOnce   sync.Once
	gameService *GameService
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, gameService *GameService) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:        conn,
		send:        make(chan *Message, 256),
		logger:      logger.WithPrefix("conn"),
		ctx:         ctx,
		cancel:      cancel,
		gameService: gameService,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown.
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// SetPlayer associates this connection with a player name
func (c *Connection) SetPlayer(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerName = name
}

// GetPlayer returns the associated player name
func (c *Connection) GetPlayer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerName
}

// SetRoom associates this connection with a room
func (c *Connection) SetRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = roomID
}

// GetRoom returns the associated room ID
func (c *Connection) GetRoom() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomID
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "player", c.GetPlayer())

	switch msg.Type {
	case MessageTypeAuth:
		var data AuthData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse auth data")
			return
		}
		c.handleAuth(data)

	case MessageTypeCreateRoom:
		var data CreateRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse create room data")
			return
		}
		c.handleCreateRoom(data)

	case MessageTypeJoinRoom:
		var data JoinRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse join room data")
			return
		}
		c.handleJoinRoom(data)

	case MessageTypeLeaveRoom:
		var data LeaveRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse leave room data")
			return
		}
		c.handleLeaveRoom(data)

	case MessageTypeListRooms:
		c.handleListRooms()

	case MessageTypeAddBot:
		var data AddBotData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse add bot data")
			return
		}
		c.handleAddBot(data)

	case MessageTypeKickBot:
		var data KickBotData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse kick bot data")
			return
		}
		c.handleKickBot(data)

	case MessageTypeStartGame:
		var data StartGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse start game data")
			return
		}
		c.handleStartGame(data)

	case MessageTypeGameCommand:
		var data GameCommandData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse game command data")
			return
		}
		c.handleGameCommand(data)

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}

// authed returns the player name, sending an error when unauthenticated.
func (c *Connection) authed() (string, bool) {
	name := c.GetPlayer()
	if name == "" {
		c.sendError("not_authenticated", "Must authenticate first")
		return "", false
	}
	return name, true
}

func (c *Connection) handleAuth(data AuthData) {
	c.logger.Info("Auth request", "playerName", data.PlayerName)

	// Names double as identities; there is no credential check.
	if data.PlayerName == "" {
		c.sendError("invalid_auth", "Player name required")
		return
	}

	c.SetPlayer(data.PlayerName)

	response, _ := NewMessage(MessageTypeAuthResponse, AuthResponseData{
		Success:  true,
		PlayerID: data.PlayerName,
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleCreateRoom(data CreateRoomData) {
	playerName, ok := c.authed()
	if !ok {
		return
	}
	c.logger.Info("Create room request", "name", data.Name, "player", playerName)

	room, err := c.gameService.CreateRoom(data.Name, data.Rules)
	if err != nil {
		c.sendError("create_failed", err.Error())
		return
	}
	if err := c.gameService.JoinRoom(room.ID, playerName); err != nil {
		c.sendError("join_failed", err.Error())
		return
	}
	c.SetRoom(room.ID)

	response, _ := NewMessage(MessageTypeRoomCreated, RoomCreatedData{Room: room.Info()})
	_ = c.SendMessage(response)
}

func (c *Connection) handleJoinRoom(data JoinRoomData) {
	playerName, ok := c.authed()
	if !ok {
		return
	}
	c.logger.Info("Join room request", "roomId", data.RoomID, "player", playerName)

	if err := c.gameService.JoinRoom(data.RoomID, playerName); err != nil {
		c.sendError("join_failed", err.Error())
		return
	}
	c.SetRoom(data.RoomID)

	room := c.gameService.GetRoom(data.RoomID)
	if room == nil {
		c.sendError("room_not_found", "Room not found after join")
		return
	}

	response, _ := NewMessage(MessageTypeRoomJoined, RoomJoinedData{
		RoomID:  data.RoomID,
		Players: room.PlayerNames(),
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleLeaveRoom(data LeaveRoomData) {
	playerName, ok := c.authed()
	if !ok {
		return
	}
	c.logger.Info("Leave room request", "roomId", data.RoomID, "player", playerName)

	if err := c.gameService.LeaveRoom(data.RoomID, playerName); err != nil {
		c.sendError("leave_failed", err.Error())
		return
	}
	c.SetRoom("")

	response, _ := NewMessage(MessageTypeRoomLeft, RoomLeftData{RoomID: data.RoomID})
	_ = c.SendMessage(response)
}

func (c *Connection) handleListRooms() {
	rooms := c.gameService.ListRooms()
	response, _ := NewMessage(MessageTypeRoomList, RoomListData{Rooms: rooms})
	_ = c.SendMessage(response)
}

func (c *Connection) handleAddBot(data AddBotData) {
	playerName, ok := c.authed()
	if !ok {
		return
	}
	c.logger.Info("Add bot request", "roomId", data.RoomID, "player", playerName)

	count := data.Count
	if count == 0 {
		count = 1
	}
	for i := 0; i < count; i++ {
		if err := c.gameService.AddBot(data.RoomID, data.Personality); err != nil {
			c.sendError("add_bot_failed", err.Error())
			return
		}
	}
}

func (c *Connection) handleKickBot(data KickBotData) {
	playerName, ok := c.authed()
	if !ok {
		return
	}
	c.logger.Info("Kick bot request", "roomId", data.RoomID, "bot", data.BotName, "player", playerName)

	if err := c.gameService.KickBot(data.RoomID, data.BotName); err != nil {
		c.sendError("kick_bot_failed", err.Error())
		return
	}
}

func (c *Connection) handleStartGame(data StartGameData) {
	playerName, ok := c.authed()
	if !ok {
		return
	}
	c.logger.Info("Start game request", "roomId", data.RoomID, "player", playerName)

	if err := c.gameService.StartGame(data.RoomID, playerName); err != nil {
		c.sendError("start_failed", err.Error())
		return
	}
}

func (c *Connection) handleGameCommand(data GameCommandData) {
	playerName, ok := c.authed()
	if !ok {
		return
	}
	c.logger.Debug("Game command", "roomId", data.RoomID, "command", data.Command, "player", playerName)

	if err := c.gameService.HandleCommand(data.RoomID, playerName, data); err != nil {
		c.sendError("command_failed", err.Error())
		return
	}
	// No direct response; the room broadcasts the next snapshot.
}
