package game

import (
	"fmt"
	"testing"

	"github.com/coalitionfree/coalition-server-go/internal/catalog"
	"go.uber.org/zap/zaptest"
)

// baseTestCards is a small fixed card set with predictable stats:
// identical campaign cards (delta 3, issue economy, no modifier), policies
// with known stance tables, and one wildcard per effect variant.
func baseTestCards(t *testing.T) []catalog.Card {
	t.Helper()

	var cards []catalog.Card
	for i := 1; i <= 20; i++ {
		cards = append(cards, catalog.Card{
			ID:   fmt.Sprintf("c-%02d", i),
			Name: fmt.Sprintf("Stump Speech %d", i),
			Kind: catalog.KindCampaign,
			Campaign: &catalog.CampaignCard{
				SeatDelta: 3,
				Issue:     "economy",
			},
		})
	}

	leftStances := map[catalog.Axis]catalog.Stance{
		catalog.AxisEconomic: {Favours: catalog.PoleState, Opposes: catalog.PoleMarket},
		catalog.AxisSocial:   {Favours: catalog.PoleProgressive, Opposes: catalog.PoleTraditional},
	}
	rightStances := map[catalog.Axis]catalog.Stance{
		catalog.AxisEconomic: {Favours: catalog.PoleMarket, Opposes: catalog.PoleState},
		catalog.AxisSocial:   {Favours: catalog.PoleTraditional, Opposes: catalog.PoleProgressive},
	}
	for i := 1; i <= 4; i++ {
		cards = append(cards, catalog.Card{
			ID:     fmt.Sprintf("pl-left-%02d", i),
			Name:   fmt.Sprintf("Collective Bill %d", i),
			Kind:   catalog.KindPolicy,
			Policy: &catalog.PolicyCard{Stances: leftStances},
		})
		cards = append(cards, catalog.Card{
			ID:     fmt.Sprintf("pl-right-%02d", i),
			Name:   fmt.Sprintf("Liberalization Bill %d", i),
			Kind:   catalog.KindPolicy,
			Policy: &catalog.PolicyCard{Stances: rightStances},
		})
	}

	cards = append(cards,
		catalog.Card{
			ID: "w-leader", Name: "Leader Scandal", Kind: catalog.KindWildcard,
			Wildcard: &catalog.WildcardCard{Effect: catalog.EffectLeaderErosion, Delta: -4},
		},
		catalog.Card{
			ID: "w-all", Name: "Apathy Wave", Kind: catalog.KindWildcard,
			Wildcard: &catalog.WildcardCard{Effect: catalog.EffectAllPlayers, Delta: -1},
		},
		catalog.Card{
			ID: "w-proposer", Name: "Good Press", Kind: catalog.KindWildcard,
			Wildcard: &catalog.WildcardCard{Effect: catalog.EffectProposer, Delta: 3},
		},
		catalog.Card{
			ID: "w-issue", Name: "Economy Headline", Kind: catalog.KindWildcard,
			Wildcard: &catalog.WildcardCard{Effect: catalog.EffectIssueConditional, Delta: 4, TargetIssue: "economy"},
		},
	)
	return cards
}

func testCatalog(t *testing.T) *catalog.StaticCatalog {
	t.Helper()

	cat, err := catalog.NewStaticCatalog(baseTestCards(t))
	if err != nil {
		t.Fatalf("failed to build test catalog: %v", err)
	}
	return cat
}

// newTestGame creates a waiting-phase game with n players joined.
func newTestGame(t *testing.T, n int, overrides OptionOverrides) *Game {
	t.Helper()

	g := NewGame("room-test", testCatalog(t), overrides, "test-seed", zaptest.NewLogger(t))
	for i := 1; i <= n; i++ {
		if !g.AddPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("Player %d", i)) {
			t.Fatalf("failed to add player %d", i)
		}
	}
	return g
}

// startedTestGame creates a game with n players and starts it.
func startedTestGame(t *testing.T, n int, overrides OptionOverrides) *Game {
	t.Helper()

	g := newTestGame(t, n, overrides)
	if !g.StartGame("p1") {
		t.Fatal("failed to start game")
	}
	return g
}

// seatTestGame builds a started-looking game with explicit seat counts,
// bypassing the normal start flow so the ledger can be exercised directly.
func seatTestGame(t *testing.T, policy SeatTransferPolicy, seats ...int) *Game {
	t.Helper()

	total := 0
	for _, s := range seats {
		total += s
	}
	overrides := OptionOverrides{TotalSeats: &total, SeatTransferPolicy: &policy}
	g := NewGame("room-seats", testCatalog(t), overrides, "seat-seed", zaptest.NewLogger(t))
	for i, s := range seats {
		id := fmt.Sprintf("p%d", i+1)
		g.state.players = append(g.state.players, &internalPlayer{
			ID:        id,
			Name:      id,
			Seats:     s,
			Connected: true,
		})
		g.state.turnOrder = append(g.state.turnOrder, id)
	}
	g.state.phase = PhaseCampaign
	g.state.round = 1
	return g
}

// totalSeats sums all player seat counts.
func totalSeats(g *Game) int {
	sum := 0
	for _, p := range g.state.players {
		sum += p.Seats
	}
	return sum
}

// seatsOf returns the seat count for a player.
func seatsOf(t *testing.T, g *Game, playerID string) int {
	t.Helper()
	p := g.state.playerByID(playerID)
	if p == nil {
		t.Fatalf("unknown player %s", playerID)
	}
	return p.Seats
}

// eventsOfType filters the log by type.
func eventsOfType(g *Game, eventType EventType) []Event {
	var out []Event
	for _, evt := range g.state.eventLog {
		if evt.Type == eventType {
			out = append(out, evt)
		}
	}
	return out
}

// firstHandCard returns the first card in the player's hand drawn from the
// given deck, or empty when none.
func firstHandCard(g *Game, playerID string, deck DeckType) string {
	p := g.state.playerByID(playerID)
	if p == nil {
		return ""
	}
	for _, hc := range p.Hand {
		if hc.Deck == deck {
			return hc.CardID
		}
	}
	return ""
}

// drawAll makes every player draw from the campaign deck, finishing the
// draw phase.
func drawAll(t *testing.T, g *Game) {
	t.Helper()
	for _, p := range g.state.players {
		if !g.DrawCard(p.ID, DeckCampaign) {
			t.Fatalf("draw failed for %s", p.ID)
		}
	}
}

// skipAllCampaigns advances through the campaign phase with every player
// skipping.
func skipAllCampaigns(t *testing.T, g *Game) {
	t.Helper()
	for range g.state.turnOrder {
		actor := g.state.turnOrder[g.state.currentPlayerIndex]
		if !g.SkipCampaign(actor) {
			t.Fatalf("skip failed for %s", actor)
		}
		if g.state.phase != PhaseCampaign {
			break
		}
	}
}
