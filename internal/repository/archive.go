package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/coalitionfree/coalition-server-go/internal/game"
	"go.uber.org/zap"
)

// ArchiveRecord is the persisted form of one finished game: the seed plus
// the accepted intent sequence reproduce it exactly; the event log is the
// audit trail; the checksum guards against divergent rebuilds.
type ArchiveRecord struct {
	RoomID     string        `json:"room_id"`
	Seed       string        `json:"seed"`
	FinishedAt time.Time     `json:"finished_at"`
	Events     []game.Event  `json:"events"`
	Intents    []game.Intent `json:"intents"`
	Checksum   string        `json:"checksum"`
}

// Archiver persists finished games.
type Archiver interface {
	SaveGame(ctx context.Context, record ArchiveRecord) error
}

// GameArchive stores finished games in PostgreSQL.
type GameArchive struct {
	db *DB
}

// NewGameArchive creates a database-backed archiver.
func NewGameArchive(db *DB) *GameArchive {
	return &GameArchive{db: db}
}

// SaveGame implements Archiver.
func (a *GameArchive) SaveGame(ctx context.Context, record ArchiveRecord) error {
	events, err := json.Marshal(record.Events)
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}
	intents, err := json.Marshal(record.Intents)
	if err != nil {
		return fmt.Errorf("failed to encode intents: %w", err)
	}

	_, err = a.db.pool.Exec(ctx,
		`INSERT INTO game_archives (room_id, seed, finished_at, events, intents, checksum)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		record.RoomID, record.Seed, record.FinishedAt, events, intents, record.Checksum,
	)
	if err != nil {
		return fmt.Errorf("failed to insert game archive: %w", err)
	}
	if a.db.logger != nil {
		a.db.logger.Info("archived finished game",
			zap.String("room_id", record.RoomID),
			zap.Int("events", len(record.Events)),
		)
	}
	return nil
}

// FileArchive stores finished games as JSON files, one per game. Used when
// no database is configured.
type FileArchive struct {
	dir    string
	logger *zap.Logger
}

// NewFileArchive creates a file-based archiver rooted at dir.
func NewFileArchive(dir string, logger *zap.Logger) *FileArchive {
	return &FileArchive{dir: dir, logger: logger}
}

// SaveGame implements Archiver.
func (a *FileArchive) SaveGame(_ context.Context, record ArchiveRecord) error {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json", record.RoomID, record.FinishedAt.UTC().Format("20060102T150405"))
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode archive record: %w", err)
	}
	path := filepath.Join(a.dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write archive file: %w", err)
	}

	if a.logger != nil {
		a.logger.Info("archived finished game to file",
			zap.String("room_id", record.RoomID),
			zap.String("path", path),
		)
	}
	return nil
}

// LoadGame reads one archived game file back; used by tooling and tests.
func (a *FileArchive) LoadGame(path string) (*ArchiveRecord, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive file: %w", err)
	}
	var record ArchiveRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("failed to decode archive file: %w", err)
	}
	return &record, nil
}
