package catalog

import "fmt"

// StaticCatalog is an in-memory catalog backed by a fixed card list. It is
// the default content source when no database is configured, and the one
// used by tests.
type StaticCatalog struct {
	cards map[string]Card
	decks map[Kind][]string
}

// NewStaticCatalog builds a catalog from the provided cards. Card order is
// preserved per deck. Duplicate IDs are rejected.
func NewStaticCatalog(cards []Card) (*StaticCatalog, error) {
	c := &StaticCatalog{
		cards: make(map[string]Card, len(cards)),
		decks: make(map[Kind][]string),
	}
	for _, card := range cards {
		if card.ID == "" {
			return nil, fmt.Errorf("card %q has empty id", card.Name)
		}
		if _, dup := c.cards[card.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", card.ID)
		}
		c.cards[card.ID] = card
		c.decks[card.Kind] = append(c.decks[card.Kind], card.ID)
	}
	return c, nil
}

// Resolve implements Catalog.
func (c *StaticCatalog) Resolve(id string) (Card, bool) {
	card, ok := c.cards[id]
	return card, ok
}

// DeckList implements Catalog.
func (c *StaticCatalog) DeckList(kind Kind) []string {
	list := c.decks[kind]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// BaseSet returns the built-in card set shipped with the server. Content is
// intentionally small; production deployments load the full set from the
// database instead.
func BaseSet() *StaticCatalog {
	cards := make([]Card, 0, 64)

	campaigns := []struct {
		name     string
		delta    int
		issue    string
		modifier ModifierKind
		modValue int
	}{
		{"Grassroots Drive", 2, "economy", ModifierNone, 0},
		{"Town Hall Tour", 3, "healthcare", ModifierNone, 0},
		{"Law and Order Pitch", 3, "security", ModifierLeaderPenalty, -2},
		{"Green Rally", 2, "environment", ModifierUnderdogBonus, 2},
		{"School Visit Circuit", 2, "education", ModifierNone, 0},
		{"Tax Cut Promise", 4, "economy", ModifierLeaderPenalty, -3},
		{"Hospital Ribbon Cutting", 3, "healthcare", ModifierUnderdogBonus, 1},
		{"Border Security Ad", 2, "security", ModifierNone, 0},
		{"River Cleanup Stunt", 3, "environment", ModifierNone, 0},
		{"Tuition Pledge", 4, "education", ModifierUnderdogBonus, 2},
		{"Jobs Guarantee Speech", 3, "economy", ModifierUnderdogBonus, 3},
		{"Vaccine Drive", 2, "healthcare", ModifierNone, 0},
		{"Veterans Parade", 2, "security", ModifierUnderdogBonus, 1},
		{"Solar Factory Opening", 4, "environment", ModifierLeaderPenalty, -2},
		{"Literacy Campaign", 2, "education", ModifierNone, 0},
		{"Small Business Forum", 3, "economy", ModifierNone, 0},
	}
	for i, cc := range campaigns {
		cards = append(cards, Card{
			ID:   fmt.Sprintf("camp-%03d", i+1),
			Name: cc.name,
			Kind: KindCampaign,
			Campaign: &CampaignCard{
				SeatDelta:     cc.delta,
				Issue:         cc.issue,
				Modifier:      cc.modifier,
				ModifierValue: cc.modValue,
			},
		})
	}

	policies := []struct {
		name     string
		economic Stance
		social   Stance
	}{
		{"Deregulation Act", Stance{Favours: PoleMarket, Opposes: PoleState}, Stance{}},
		{"Universal Healthcare Bill", Stance{Favours: PoleState, Opposes: PoleMarket}, Stance{Favours: PoleProgressive}},
		{"Surveillance Expansion", Stance{}, Stance{Favours: PoleTraditional, Opposes: PoleProgressive}},
		{"Carbon Levy", Stance{Favours: PoleState}, Stance{Favours: PoleProgressive, Opposes: PoleTraditional}},
		{"Voucher Schools Act", Stance{Favours: PoleMarket}, Stance{Favours: PoleTraditional}},
		{"Minimum Wage Raise", Stance{Favours: PoleState, Opposes: PoleMarket}, Stance{}},
		{"Free Trade Compact", Stance{Favours: PoleMarket, Opposes: PoleState}, Stance{Favours: PoleProgressive}},
		{"National Service Act", Stance{}, Stance{Favours: PoleTraditional, Opposes: PoleProgressive}},
		{"Public Housing Program", Stance{Favours: PoleState}, Stance{Favours: PoleProgressive}},
		{"Pension Privatization", Stance{Favours: PoleMarket, Opposes: PoleState}, Stance{Opposes: PoleProgressive}},
		{"Civil Liberties Charter", Stance{}, Stance{Favours: PoleProgressive, Opposes: PoleTraditional}},
		{"Farm Subsidy Extension", Stance{Favours: PoleState}, Stance{Favours: PoleTraditional}},
	}
	for i, pc := range policies {
		cards = append(cards, Card{
			ID:   fmt.Sprintf("pol-%03d", i+1),
			Name: pc.name,
			Kind: KindPolicy,
			Policy: &PolicyCard{
				Stances: map[Axis]Stance{
					AxisEconomic: pc.economic,
					AxisSocial:   pc.social,
				},
			},
		})
	}

	wildcards := []struct {
		name        string
		effect      WildcardEffect
		delta       int
		targetIssue string
	}{
		{"Expenses Scandal", EffectLeaderErosion, -4, ""},
		{"Voter Apathy Wave", EffectAllPlayers, -1, ""},
		{"Favorable Coverage", EffectProposer, 3, ""},
		{"Economy Headline", EffectIssueConditional, 4, "economy"},
		{"Coalition Infighting", EffectLeaderErosion, -3, ""},
		{"Healthcare Expose", EffectIssueConditional, 3, "healthcare"},
		{"Donor Windfall", EffectProposer, 2, ""},
		{"Security Incident", EffectIssueConditional, 3, "security"},
	}
	for i, wc := range wildcards {
		cards = append(cards, Card{
			ID:   fmt.Sprintf("wild-%03d", i+1),
			Name: wc.name,
			Kind: KindWildcard,
			Wildcard: &WildcardCard{
				Effect:      wc.effect,
				Delta:       wc.delta,
				TargetIssue: wc.targetIssue,
			},
		})
	}

	c, err := NewStaticCatalog(cards)
	if err != nil {
		// Base set is compiled in; a construction failure is a programming
		// error, not a runtime condition.
		panic(err)
	}
	return c
}
