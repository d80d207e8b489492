package game

import (
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func TestChecksumStableAcrossReads(t *testing.T) {
	g := startedTestGame(t, 3, OptionOverrides{})

	first := g.Checksum()
	if len(first) != 64 {
		t.Fatalf("expected a sha256 hex digest, got %q", first)
	}
	g.Snapshot()
	g.Events()
	if g.Checksum() != first {
		t.Error("read-only queries must not change the checksum")
	}
}

func TestChecksumTracksMutation(t *testing.T) {
	g := startedTestGame(t, 3, OptionOverrides{})

	before := g.Checksum()
	if !g.DrawCard("p1", DeckCampaign) {
		t.Fatal("draw failed")
	}
	if g.Checksum() == before {
		t.Error("an accepted intent must change the checksum")
	}
}

func TestChecksumIgnoresWallClock(t *testing.T) {
	// Two games at different wall-clock times but identical seeds and
	// intents must digest identically.
	a := startedTestGame(t, 3, OptionOverrides{})
	b := startedTestGame(t, 3, OptionOverrides{})
	b.now = func() time.Time { return time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC) }
	drawAll(t, a)
	drawAll(t, b)

	if a.Checksum() != b.Checksum() {
		t.Error("checksums must be independent of event timestamps")
	}
}

func TestChecksumDivergesAcrossSeeds(t *testing.T) {
	logger := zaptest.NewLogger(t)
	a := NewGame("room", testCatalog(t), OptionOverrides{}, "seed-a", logger)
	b := NewGame("room", testCatalog(t), OptionOverrides{}, "seed-b", logger)

	if a.Checksum() == b.Checksum() {
		t.Error("different seeds must digest differently")
	}
}
