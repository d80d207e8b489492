// Package catalog resolves opaque card identifiers to immutable card
// definitions. The engine never embeds card content; it only consumes
// definitions through the Catalog interface so that content can come from
// the built-in base set, a database, or a future content pipeline.
package catalog

// Kind discriminates the card variants. Every card carries exactly one
// populated variant matching its Kind.
type Kind string

const (
	KindCampaign Kind = "campaign"
	KindPolicy   Kind = "policy"
	KindWildcard Kind = "wildcard"
)

// Axis identifies one of the two independent ideology axes.
type Axis string

const (
	AxisEconomic Axis = "economic"
	AxisSocial   Axis = "social"
)

// Poles for each axis. A player holds exactly one pole per axis.
const (
	PoleMarket      = "market"
	PoleState       = "state"
	PoleProgressive = "progressive"
	PoleTraditional = "traditional"
)

// ModifierKind marks a conditional seat modifier on a campaign card.
type ModifierKind string

const (
	ModifierNone ModifierKind = ""
	// ModifierLeaderPenalty applies Value only when the acting player is the
	// current seat leader.
	ModifierLeaderPenalty ModifierKind = "leader_penalty"
	// ModifierUnderdogBonus applies |Value| only when the acting player is
	// not the current seat leader.
	ModifierUnderdogBonus ModifierKind = "underdog_bonus"
)

// WildcardEffect selects the scripted behavior of a wildcard.
type WildcardEffect string

const (
	EffectLeaderErosion    WildcardEffect = "leader_erosion"
	EffectAllPlayers       WildcardEffect = "all_players"
	EffectProposer         WildcardEffect = "proposer"
	EffectIssueConditional WildcardEffect = "issue_conditional"
)

// CampaignCard moves seats when played during the campaign phase.
type CampaignCard struct {
	SeatDelta     int
	Issue         string
	Modifier      ModifierKind
	ModifierValue int
}

// Stance describes a policy's position on one axis: the pole it favours and
// the pole it opposes. Either may be empty.
type Stance struct {
	Favours string
	Opposes string
}

// PolicyCard is proposed, voted on, and scored against player ideologies.
type PolicyCard struct {
	Stances map[Axis]Stance
}

// WildcardCard is a random event revealed after a passed policy.
type WildcardCard struct {
	Effect      WildcardEffect
	Delta       int
	TargetIssue string
}

// Card is the tagged union over the three card variants. Exactly the field
// matching Kind is non-nil.
type Card struct {
	ID       string
	Name     string
	Kind     Kind
	Campaign *CampaignCard
	Policy   *PolicyCard
	Wildcard *WildcardCard
}

// Catalog resolves card IDs to definitions and supplies the card IDs that
// seed each deck at game start.
type Catalog interface {
	// Resolve returns the definition for id, or false when the id is unknown.
	// Unknown cards remain drawable; only operations that need the
	// definition fail.
	Resolve(id string) (Card, bool)
	// DeckList returns the card IDs composing the given deck, in catalog
	// order. The engine shuffles them with its own seeded RNG.
	DeckList(kind Kind) []string
}

// IssueTrack is the fixed ordered list of policy-focus topics. One entry is
// active at a time; the issue-adjustment phase moves along it with clamping.
var IssueTrack = []string{
	"economy",
	"healthcare",
	"security",
	"environment",
	"education",
}
