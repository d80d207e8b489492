package catalog

import (
	"testing"
)

func TestNewStaticCatalogRejectsBadInput(t *testing.T) {
	if _, err := NewStaticCatalog([]Card{{ID: "", Name: "Nameless", Kind: KindCampaign}}); err == nil {
		t.Error("empty card ID should be rejected")
	}
	dup := []Card{
		{ID: "x-1", Name: "First", Kind: KindCampaign, Campaign: &CampaignCard{SeatDelta: 1}},
		{ID: "x-1", Name: "Second", Kind: KindPolicy, Policy: &PolicyCard{}},
	}
	if _, err := NewStaticCatalog(dup); err == nil {
		t.Error("duplicate card ID should be rejected")
	}
}

func TestStaticCatalogResolve(t *testing.T) {
	c, err := NewStaticCatalog([]Card{
		{ID: "x-1", Name: "Canvass", Kind: KindCampaign, Campaign: &CampaignCard{SeatDelta: 2, Issue: "economy"}},
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	card, ok := c.Resolve("x-1")
	if !ok {
		t.Fatal("known card should resolve")
	}
	if card.Campaign == nil || card.Campaign.SeatDelta != 2 {
		t.Errorf("wrong card payload: %+v", card)
	}
	if _, ok := c.Resolve("x-404"); ok {
		t.Error("unknown card must not resolve")
	}
}

func TestDeckListPreservesOrderAndCopies(t *testing.T) {
	c, err := NewStaticCatalog([]Card{
		{ID: "a", Kind: KindCampaign, Campaign: &CampaignCard{}},
		{ID: "b", Kind: KindPolicy, Policy: &PolicyCard{}},
		{ID: "c", Kind: KindCampaign, Campaign: &CampaignCard{}},
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	deck := c.DeckList(KindCampaign)
	if len(deck) != 2 || deck[0] != "a" || deck[1] != "c" {
		t.Fatalf("wrong campaign deck: %v", deck)
	}
	// Callers shuffle their copy in place; the catalog must not see it.
	deck[0] = "tampered"
	if fresh := c.DeckList(KindCampaign); fresh[0] != "a" {
		t.Error("DeckList must return a fresh copy")
	}
	if got := c.DeckList(KindWildcard); len(got) != 0 {
		t.Errorf("empty kind should produce an empty deck, got %v", got)
	}
}

func TestBaseSetIntegrity(t *testing.T) {
	c := BaseSet()

	counts := map[Kind]int{
		KindCampaign: len(c.DeckList(KindCampaign)),
		KindPolicy:   len(c.DeckList(KindPolicy)),
		KindWildcard: len(c.DeckList(KindWildcard)),
	}
	for kind, n := range counts {
		if n == 0 {
			t.Errorf("base set has no %s cards", kind)
		}
	}

	for _, kind := range []Kind{KindCampaign, KindPolicy, KindWildcard} {
		for _, id := range c.DeckList(kind) {
			card, ok := c.Resolve(id)
			if !ok {
				t.Fatalf("deck references unknown card %s", id)
			}
			if card.Kind != kind {
				t.Errorf("%s: kind mismatch, deck %s card %s", id, kind, card.Kind)
			}
			// Exactly the variant matching the kind is populated.
			switch kind {
			case KindCampaign:
				if card.Campaign == nil || card.Policy != nil || card.Wildcard != nil {
					t.Errorf("%s: campaign card with wrong variants", id)
				}
			case KindPolicy:
				if card.Policy == nil || card.Campaign != nil || card.Wildcard != nil {
					t.Errorf("%s: policy card with wrong variants", id)
				}
			case KindWildcard:
				if card.Wildcard == nil || card.Campaign != nil || card.Policy != nil {
					t.Errorf("%s: wildcard card with wrong variants", id)
				}
			}
		}
	}
}

func TestBaseSetPolicyStancesAreOnAxis(t *testing.T) {
	c := BaseSet()
	poles := map[Axis]map[string]bool{
		AxisEconomic: {PoleMarket: true, PoleState: true, "": true},
		AxisSocial:   {PoleProgressive: true, PoleTraditional: true, "": true},
	}
	for _, id := range c.DeckList(KindPolicy) {
		card, _ := c.Resolve(id)
		for axis, stance := range card.Policy.Stances {
			if !poles[axis][stance.Favours] {
				t.Errorf("%s: stance favours %q off the %s axis", id, stance.Favours, axis)
			}
			if !poles[axis][stance.Opposes] {
				t.Errorf("%s: stance opposes %q off the %s axis", id, stance.Opposes, axis)
			}
		}
	}
}
