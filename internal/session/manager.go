// Package session tracks connected players with lease-based expiry. The
// rules engine never reads sessions; they exist so the transport layer can
// map connections to player IDs and expire abandoned ones.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session associates a connection with a player.
type Session struct {
	ID        string
	PlayerID  string
	Name      string
	RoomID    string
	CreatedAt time.Time
	lastSeen  time.Time
}

// Manager owns all sessions and expires ones whose lease lapsed.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	leasePeriod time.Duration
	logger      *zap.Logger
}

// NewManager creates a session manager with the given lease period.
func NewManager(leasePeriod time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if leasePeriod <= 0 {
		leasePeriod = 5 * time.Minute
	}
	return &Manager{
		sessions:    make(map[string]*Session),
		leasePeriod: leasePeriod,
		logger:      logger,
	}
}

// CreateSession registers a new session for a named player and returns it.
// The player ID is generated; reconnecting clients present their session ID
// to recover it.
func (m *Manager) CreateSession(name string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		PlayerID:  uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		lastSeen:  now,
	}
	m.sessions[sess.ID] = sess
	m.logger.Debug("session created",
		zap.String("session_id", sess.ID),
		zap.String("player_id", sess.PlayerID),
	)
	return sess
}

// GetSession returns the session for an ID and renews its lease.
func (m *Manager) GetSession(sessionID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, false
	}
	sess.lastSeen = time.Now()
	return sess, true
}

// BindRoom associates the session with a room.
func (m *Manager) BindRoom(sessionID, roomID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return false
	}
	sess.RoomID = roomID
	return true
}

// RemoveSession drops a session immediately.
func (m *Manager) RemoveSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CleanupExpiredSessions removes sessions whose lease lapsed. Runs until
// the context is cancelled; intended as a background goroutine.
func (m *Manager) CleanupExpiredSessions(ctx context.Context) {
	ticker := time.NewTicker(m.leasePeriod / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.expire(time.Now())
		}
	}
}

func (m *Manager) expire(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, sess := range m.sessions {
		if now.Sub(sess.lastSeen) > m.leasePeriod {
			delete(m.sessions, id)
			m.logger.Info("session expired",
				zap.String("session_id", id),
				zap.String("player_id", sess.PlayerID),
			)
		}
	}
}
