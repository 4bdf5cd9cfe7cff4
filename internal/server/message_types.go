package server

// MessageType tags a WebSocket message.
type MessageType string

const (
	// Client to server messages
	MessageTypeAuth        MessageType = "auth"
	MessageTypeCreateRoom  MessageType = "create_room"
	MessageTypeJoinRoom    MessageType = "join_room"
	MessageTypeLeaveRoom   MessageType = "leave_room"
	MessageTypeListRooms   MessageType = "list_rooms"
	MessageTypeAddBot      MessageType = "add_bot"
	MessageTypeKickBot     MessageType = "kick_bot"
	MessageTypeStartGame   MessageType = "start_game"
	MessageTypeGameCommand MessageType = "game_command"

	// Server to client messages
	MessageTypeAuthResponse MessageType = "auth_response"
	MessageTypeRoomCreated  MessageType = "room_created"
	MessageTypeRoomJoined   MessageType = "room_joined"
	MessageTypeRoomLeft     MessageType = "room_left"
	MessageTypeRoomList     MessageType = "room_list"
	MessageTypeGameState    MessageType = "game_state"
	MessageTypeAdvice       MessageType = "advice"
	MessageTypeError        MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
