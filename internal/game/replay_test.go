package game

import (
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"
)

// scriptedIntents drives a three-player game through a full round: draws,
// one campaign play, a proposal, a unanimous vote, a wildcard, and the
// issue adjustment.
func scriptedIntents(t *testing.T, g *Game) []Intent {
	t.Helper()

	var accepted []Intent
	apply := func(in Intent) {
		if g.Apply(in) {
			accepted = append(accepted, in)
		}
	}

	for i := 1; i <= 3; i++ {
		apply(Intent{Op: OpAddPlayer, PlayerID: playerName(i), Name: playerName(i)})
	}
	apply(Intent{Op: OpStartGame, PlayerID: "p1"})
	for i := 1; i <= 3; i++ {
		apply(Intent{Op: OpDrawCard, PlayerID: playerName(i), Deck: DeckCampaign})
	}

	actor := g.state.turnOrder[0]
	apply(Intent{Op: OpPlayCampaignCard, PlayerID: actor, CardID: firstHandCard(g, actor, DeckCampaign)})
	for g.state.phase == PhaseCampaign {
		apply(Intent{Op: OpSkipCampaign, PlayerID: g.state.turnOrder[g.state.currentPlayerIndex]})
	}

	speaker := g.speakerID()
	if cardID := firstHandCard(g, speaker, DeckPolicy); cardID != "" {
		apply(Intent{Op: OpProposePolicy, PlayerID: speaker, CardID: cardID})
		for i := 1; i <= 3; i++ {
			apply(Intent{Op: OpCastVote, PlayerID: playerName(i), InFavour: true})
		}
		if g.state.phase == PhaseWildcardResolution {
			apply(Intent{Op: OpAcknowledgeWildcard, PlayerID: speaker})
		}
	} else {
		apply(Intent{Op: OpSkipProposal, PlayerID: speaker})
	}
	if g.state.phase == PhaseIssueAdjustment {
		apply(Intent{Op: OpAdjustIssue, PlayerID: mustAdjuster(t, g), Direction: 1})
	}
	return accepted
}

func TestRebuildReproducesChecksum(t *testing.T) {
	cat := testCatalog(t)
	logger := zaptest.NewLogger(t)

	original := NewGame("room-replay", cat, OptionOverrides{}, "replay-seed", logger)
	intents := scriptedIntents(t, original)

	rebuilt := Rebuild("room-replay", cat, OptionOverrides{}, "replay-seed", intents, logger)

	if original.Checksum() != rebuilt.Checksum() {
		t.Fatal("rebuilt game checksum differs from the original")
	}
	origEvents, rebuiltEvents := original.Events(), rebuilt.Events()
	if len(origEvents) != len(rebuiltEvents) {
		t.Fatalf("event counts differ: %d vs %d", len(origEvents), len(rebuiltEvents))
	}
	for i := range origEvents {
		if origEvents[i].Type != rebuiltEvents[i].Type {
			t.Fatalf("event %d type differs: %s vs %s", i, origEvents[i].Type, rebuiltEvents[i].Type)
		}
	}
	if original.Phase() != rebuilt.Phase() {
		t.Errorf("phase differs: %s vs %s", original.Phase(), rebuilt.Phase())
	}
}

func TestRebuildSurvivesRejectedIntents(t *testing.T) {
	cat := testCatalog(t)
	logger := zaptest.NewLogger(t)

	original := NewGame("room-replay", cat, OptionOverrides{}, "replay-seed", logger)
	intents := scriptedIntents(t, original)

	// Junk interleaved into the sequence is rejected on replay exactly as it
	// would have been live, leaving the outcome intact.
	noisy := make([]Intent, 0, len(intents)*2)
	for _, in := range intents {
		noisy = append(noisy, in)
		noisy = append(noisy, Intent{Op: OpDrawCard, PlayerID: "ghost", Deck: DeckCampaign})
	}
	rebuilt := Rebuild("room-replay", cat, OptionOverrides{}, "replay-seed", noisy, logger)
	if original.Checksum() != rebuilt.Checksum() {
		t.Fatal("rejected intents must not affect the rebuilt state")
	}
}

func TestApplyRejectsUnknownOp(t *testing.T) {
	g := newTestGame(t, 2, OptionOverrides{})
	if g.Apply(Intent{Op: IntentOp("explode"), PlayerID: "p1"}) {
		t.Error("unknown op should be rejected")
	}
	if g.Apply(Intent{Op: OpUpdateOptions, PlayerID: "p1"}) {
		t.Error("update_options without a payload should be rejected")
	}
}

func TestSubmitRecordsConcurrentIntentsInAppliedOrder(t *testing.T) {
	cat := testCatalog(t)
	logger := zaptest.NewLogger(t)

	// Draws pop shared decks, so the recorded order must match the order
	// the game applied them or the rebuild diverges.
	for iter := 0; iter < 200; iter++ {
		m := NewManager(cat, logger)
		g, err := m.CreateGame("room-1", OptionOverrides{}, "race-seed")
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		for i := 1; i <= 3; i++ {
			m.Submit("room-1", Intent{Op: OpAddPlayer, PlayerID: playerName(i), Name: playerName(i)})
		}
		m.Submit("room-1", Intent{Op: OpStartGame, PlayerID: "p1"})

		var wg sync.WaitGroup
		for i := 1; i <= 3; i++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				m.Submit("room-1", Intent{Op: OpDrawCard, PlayerID: id, Deck: DeckCampaign})
			}(playerName(i))
		}
		wg.Wait()

		rebuilt := Rebuild("room-1", cat, OptionOverrides{}, "race-seed", m.Intents("room-1"), logger)
		if got, want := rebuilt.Checksum(), g.Checksum(); got != want {
			t.Fatalf("iteration %d: rebuilt checksum %s differs from live %s", iter, got, want)
		}
	}
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(testCatalog(t), zaptest.NewLogger(t))

	g, err := m.CreateGame("room-1", OptionOverrides{}, "mgr-seed")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if g.Seed() != "mgr-seed" {
		t.Errorf("expected seed mgr-seed, got %s", g.Seed())
	}
	if _, err := m.CreateGame("room-1", OptionOverrides{}, ""); err == nil {
		t.Error("duplicate room should fail")
	}
	if got, ok := m.GetGame("room-1"); !ok || got != g {
		t.Error("GetGame should return the created instance")
	}
	if _, ok := m.GetGame("room-404"); ok {
		t.Error("unknown room should miss")
	}

	m.RemoveGame("room-1")
	if _, ok := m.GetGame("room-1"); ok {
		t.Error("removed room should miss")
	}
}

func TestManagerRecordsAcceptedIntentsOnly(t *testing.T) {
	m := NewManager(testCatalog(t), zaptest.NewLogger(t))
	if _, err := m.CreateGame("room-1", OptionOverrides{}, "mgr-seed"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var notified int
	m.SetNotificationHandler(func(n Notification) {
		if n.RoomID != "room-1" {
			t.Errorf("unexpected room in notification: %s", n.RoomID)
		}
		notified++
	})

	if !m.Submit("room-1", Intent{Op: OpAddPlayer, PlayerID: "p1", Name: "Alice"}) {
		t.Fatal("submit should succeed")
	}
	if m.Submit("room-1", Intent{Op: OpAddPlayer, PlayerID: "p1", Name: "Alice"}) {
		t.Error("duplicate join should be rejected")
	}
	if m.Submit("room-404", Intent{Op: OpAddPlayer, PlayerID: "p1", Name: "Alice"}) {
		t.Error("unknown room should be rejected")
	}

	intents := m.Intents("room-1")
	if len(intents) != 1 {
		t.Fatalf("expected 1 recorded intent, got %d", len(intents))
	}
	if intents[0].Op != OpAddPlayer || intents[0].PlayerID != "p1" {
		t.Errorf("wrong recorded intent: %+v", intents[0])
	}
	if notified != 1 {
		t.Errorf("expected 1 notification, got %d", notified)
	}

	// The returned slice is a copy.
	intents[0].PlayerID = "tampered"
	if m.Intents("room-1")[0].PlayerID != "p1" {
		t.Error("Intents must return a copy")
	}
	if m.Intents("room-404") != nil {
		t.Error("unknown room should return nil")
	}
}
