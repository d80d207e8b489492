package game

import (
	"fmt"
	"sync"

	"github.com/coalitionfree/coalition-server-go/internal/catalog"
	"go.uber.org/zap"
)

// Notification is pushed to the transport layer after every accepted
// intent so connected clients receive a fresh snapshot.
type Notification struct {
	RoomID string
	View   GameView
}

// NotificationHandler receives notifications; nil disables them.
type NotificationHandler func(Notification)

// Manager owns every active game instance, keyed by room ID. It records
// each accepted intent alongside the game so finished games can be
// rebuilt or archived.
type Manager struct {
	mu      sync.RWMutex
	logger  *zap.Logger
	catalog catalog.Catalog
	games   map[string]*managedGame
	notify  NotificationHandler
}

type managedGame struct {
	// mu serializes intent application with intent recording so the
	// recorded order always matches the order the game saw.
	mu        sync.Mutex
	game      *Game
	overrides OptionOverrides
	intents   []Intent
}

// NewManager creates an empty game manager backed by the given catalog.
func NewManager(cat catalog.Catalog, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		logger:  logger,
		catalog: cat,
		games:   make(map[string]*managedGame),
	}
}

// SetNotificationHandler registers the broadcast hook. Must be called
// before games start processing intents.
func (m *Manager) SetNotificationHandler(handler NotificationHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notify = handler
}

// CreateGame creates a fresh waiting-phase game for a room. Fails when the
// room already has one.
func (m *Manager) CreateGame(roomID string, overrides OptionOverrides, seed string) (*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.games[roomID]; exists {
		return nil, fmt.Errorf("game already exists for room %s", roomID)
	}
	g := NewGame(roomID, m.catalog, overrides, seed, m.logger)
	m.games[roomID] = &managedGame{game: g, overrides: overrides}
	m.logger.Info("game created",
		zap.String("room_id", roomID),
		zap.String("seed", g.Seed()),
	)
	return g, nil
}

// GetGame returns the game for a room.
func (m *Manager) GetGame(roomID string) (*Game, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mg, ok := m.games[roomID]
	if !ok {
		return nil, false
	}
	return mg.game, true
}

// Submit applies an intent to a room's game, records it when accepted, and
// notifies the transport with a fresh snapshot.
func (m *Manager) Submit(roomID string, in Intent) bool {
	m.mu.Lock()
	mg, ok := m.games[roomID]
	notify := m.notify
	m.mu.Unlock()
	if !ok {
		return false
	}

	mg.mu.Lock()
	accepted := mg.game.Apply(in)
	if accepted {
		mg.intents = append(mg.intents, in)
	}
	mg.mu.Unlock()

	if !accepted {
		m.logger.Debug("intent rejected",
			zap.String("room_id", roomID),
			zap.String("op", string(in.Op)),
			zap.String("player_id", in.PlayerID),
		)
		return false
	}

	if notify != nil {
		notify(Notification{RoomID: roomID, View: mg.game.Snapshot()})
	}
	return true
}

// Intents returns a copy of the accepted intent sequence for a room.
func (m *Manager) Intents(roomID string) []Intent {
	m.mu.RLock()
	mg, ok := m.games[roomID]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	mg.mu.Lock()
	defer mg.mu.Unlock()
	out := make([]Intent, len(mg.intents))
	copy(out, mg.intents)
	return out
}

// RemoveGame drops a room's game from the manager.
func (m *Manager) RemoveGame(roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, roomID)
	m.logger.Debug("game removed", zap.String("room_id", roomID))
}
