// Package room manages game rooms: creation, password-gated joining, and
// archival of finished games. Each room owns exactly one game instance;
// the game itself serializes intents, so the room layer stays thin.
package room

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coalitionfree/coalition-server-go/internal/game"
	"github.com/coalitionfree/coalition-server-go/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Room is one game room.
type Room struct {
	ID           string
	Name         string
	CreatedAt    time.Time
	passwordHash []byte
}

// Private reports whether joining requires a password.
func (r *Room) Private() bool {
	return len(r.passwordHash) > 0
}

// Manager owns all rooms and their games.
type Manager struct {
	mu       sync.RWMutex
	rooms    map[string]*Room
	games    *game.Manager
	archiver repository.Archiver
	logger   *zap.Logger
}

// NewManager creates a room manager. The archiver may be nil to disable
// archival of finished games.
func NewManager(games *game.Manager, archiver repository.Archiver, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		rooms:    make(map[string]*Room),
		games:    games,
		archiver: archiver,
		logger:   logger,
	}
}

// CreateRoom creates a room with a fresh waiting-phase game. A non-empty
// password makes the room private; it is stored only as a bcrypt hash.
func (m *Manager) CreateRoom(name, password string, overrides game.OptionOverrides, seed string) (*Room, error) {
	room := &Room{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash room password: %w", err)
		}
		room.passwordHash = hash
	}

	if _, err := m.games.CreateGame(room.ID, overrides, seed); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.rooms[room.ID] = room
	m.mu.Unlock()

	m.logger.Info("room created",
		zap.String("room_id", room.ID),
		zap.String("name", name),
		zap.Bool("private", room.Private()),
	)
	return room, nil
}

// GetRoom returns a room by ID.
func (m *Manager) GetRoom(roomID string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[roomID]
	return room, ok
}

// ListRooms returns all rooms.
func (m *Manager) ListRooms() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Room, 0, len(m.rooms))
	for _, room := range m.rooms {
		out = append(out, room)
	}
	return out
}

// JoinRoom checks the password and adds the player to the room's game.
func (m *Manager) JoinRoom(roomID, password, playerID, playerName string) error {
	m.mu.RLock()
	room, ok := m.rooms[roomID]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("room %s not found", roomID)
	}

	if room.Private() {
		if err := bcrypt.CompareHashAndPassword(room.passwordHash, []byte(password)); err != nil {
			return fmt.Errorf("invalid room password")
		}
	}

	if !m.games.Submit(roomID, game.Intent{Op: game.OpAddPlayer, PlayerID: playerID, Name: playerName}) {
		return fmt.Errorf("cannot join room %s", roomID)
	}
	return nil
}

// CloseRoom archives the room's game (when an archiver is configured and
// the game produced events) and removes the room.
func (m *Manager) CloseRoom(ctx context.Context, roomID string) error {
	m.mu.Lock()
	room, ok := m.rooms[roomID]
	if ok {
		delete(m.rooms, roomID)
	}
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("room %s not found", roomID)
	}

	g, exists := m.games.GetGame(roomID)
	if exists && m.archiver != nil {
		events := g.Events()
		if len(events) > 0 {
			record := repository.ArchiveRecord{
				RoomID:     roomID,
				Seed:       g.Seed(),
				FinishedAt: time.Now(),
				Events:     events,
				Intents:    m.games.Intents(roomID),
				Checksum:   g.Checksum(),
			}
			if err := m.archiver.SaveGame(ctx, record); err != nil {
				m.logger.Warn("failed to archive game",
					zap.String("room_id", roomID),
					zap.Error(err),
				)
			}
		}
	}

	m.games.RemoveGame(roomID)
	m.logger.Info("room closed", zap.String("room_id", room.ID))
	return nil
}
