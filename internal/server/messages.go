package server

import "github.com/coalitionfree/coalition-server-go/internal/game"

// ClientMessage is one JSON frame from a websocket client.
type ClientMessage struct {
	Type      string                `json:"type"`
	SessionID string                `json:"session_id,omitempty"`
	Name      string                `json:"name,omitempty"`
	RoomID    string                `json:"room_id,omitempty"`
	RoomName  string                `json:"room_name,omitempty"`
	Password  string                `json:"password,omitempty"`
	Seed      string                `json:"seed,omitempty"`
	Options   *game.OptionOverrides `json:"options,omitempty"`
	Intent    *game.Intent          `json:"intent,omitempty"`
}

// Client message types.
const (
	MsgHello      = "hello"       // establish a session
	MsgCreateRoom = "create_room" // create a room and join it
	MsgJoinRoom   = "join_room"   // join an existing room
	MsgIntent     = "intent"      // submit a game intent
	MsgGetState   = "get_state"   // request a fresh snapshot
	MsgListRooms  = "list_rooms"
)

// ServerMessage is one JSON frame to a websocket client.
type ServerMessage struct {
	Type      string         `json:"type"`
	SessionID string         `json:"session_id,omitempty"`
	PlayerID  string         `json:"player_id,omitempty"`
	RoomID    string         `json:"room_id,omitempty"`
	Error     string         `json:"error,omitempty"`
	Accepted  *bool          `json:"accepted,omitempty"`
	State     *game.GameView `json:"state,omitempty"`
	Rooms     []RoomInfo     `json:"rooms,omitempty"`
}

// Server message types.
const (
	MsgSession = "session"
	MsgJoined  = "joined"
	MsgState   = "state"
	MsgResult  = "result"
	MsgRooms   = "rooms"
	MsgError   = "error"
)

// RoomInfo is the lobby listing entry for one room.
type RoomInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Private bool   `json:"private"`
	Phase   string `json:"phase"`
	Players int    `json:"players"`
}
