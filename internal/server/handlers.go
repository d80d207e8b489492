package server

import (
	"go.uber.org/zap"

	"github.com/coalitionfree/coalition-server-go/internal/game"
)

// handleMessage dispatches one client frame. Every path replies to the
// sender; state broadcasts to the whole room happen through the game
// manager's notification hook.
func (h *Hub) handleMessage(c *Client, msg ClientMessage) {
	switch msg.Type {
	case MsgHello:
		sess := h.sessionMgr.CreateSession(msg.Name)
		c.sessionID = sess.ID
		c.reply(ServerMessage{
			Type:      MsgSession,
			SessionID: sess.ID,
			PlayerID:  sess.PlayerID,
		})

	case MsgListRooms:
		rooms := h.roomMgr.ListRooms()
		infos := make([]RoomInfo, 0, len(rooms))
		for _, r := range rooms {
			info := RoomInfo{ID: r.ID, Name: r.Name, Private: r.Private()}
			if g, ok := h.gameMgr.GetGame(r.ID); ok {
				view := g.Snapshot()
				info.Phase = view.Phase
				info.Players = len(view.Players)
			}
			infos = append(infos, info)
		}
		c.reply(ServerMessage{Type: MsgRooms, Rooms: infos})

	case MsgCreateRoom:
		sess, ok := h.session(c, msg.SessionID)
		if !ok {
			return
		}
		var overrides game.OptionOverrides
		if msg.Options != nil {
			overrides = *msg.Options
		}
		newRoom, err := h.roomMgr.CreateRoom(msg.RoomName, msg.Password, overrides, msg.Seed)
		if err != nil {
			c.reply(ServerMessage{Type: MsgError, Error: err.Error()})
			return
		}
		if err := h.roomMgr.JoinRoom(newRoom.ID, msg.Password, sess.PlayerID, sess.Name); err != nil {
			c.reply(ServerMessage{Type: MsgError, Error: err.Error()})
			return
		}
		c.roomID = newRoom.ID
		h.sessionMgr.BindRoom(sess.ID, newRoom.ID)
		c.reply(ServerMessage{Type: MsgJoined, RoomID: newRoom.ID, PlayerID: sess.PlayerID})

	case MsgJoinRoom:
		sess, ok := h.session(c, msg.SessionID)
		if !ok {
			return
		}
		if err := h.roomMgr.JoinRoom(msg.RoomID, msg.Password, sess.PlayerID, sess.Name); err != nil {
			c.reply(ServerMessage{Type: MsgError, Error: err.Error()})
			return
		}
		c.roomID = msg.RoomID
		h.sessionMgr.BindRoom(sess.ID, msg.RoomID)
		c.reply(ServerMessage{Type: MsgJoined, RoomID: msg.RoomID, PlayerID: sess.PlayerID})

	case MsgIntent:
		sess, ok := h.session(c, msg.SessionID)
		if !ok {
			return
		}
		if msg.Intent == nil || c.roomID == "" {
			c.reply(ServerMessage{Type: MsgError, Error: "no intent or room"})
			return
		}
		// The session, not the client, decides who is acting.
		in := *msg.Intent
		in.PlayerID = sess.PlayerID
		accepted := h.gameMgr.Submit(c.roomID, in)
		c.reply(ServerMessage{Type: MsgResult, RoomID: c.roomID, Accepted: &accepted})
		if !accepted {
			h.logger.Debug("intent rejected",
				zap.String("room_id", c.roomID),
				zap.String("op", string(in.Op)),
				zap.String("player_id", in.PlayerID),
			)
		}

	case MsgGetState:
		if c.roomID == "" {
			c.reply(ServerMessage{Type: MsgError, Error: "not in a room"})
			return
		}
		g, ok := h.gameMgr.GetGame(c.roomID)
		if !ok {
			c.reply(ServerMessage{Type: MsgError, Error: "room has no game"})
			return
		}
		view := g.Snapshot()
		c.reply(ServerMessage{Type: MsgState, RoomID: c.roomID, State: &view})

	default:
		c.reply(ServerMessage{Type: MsgError, Error: "unknown message type"})
	}
}

// session resolves the client's session, preferring the already bound one.
func (h *Hub) session(c *Client, sessionID string) (*sessionInfo, bool) {
	id := c.sessionID
	if id == "" {
		id = sessionID
	}
	sess, ok := h.sessionMgr.GetSession(id)
	if !ok {
		c.reply(ServerMessage{Type: MsgError, Error: "session not found"})
		return nil, false
	}
	c.sessionID = sess.ID
	return &sessionInfo{ID: sess.ID, PlayerID: sess.PlayerID, Name: sess.Name}, true
}

type sessionInfo struct {
	ID       string
	PlayerID string
	Name     string
}
