package game

import "time"

// playerColors is the fixed palette assigned in join order.
var playerColors = []string{"red", "blue", "yellow", "green", "purple", "orange", "teal", "pink"}

// handCard is one card in a player's hand together with the deck it was
// drawn from. The origin deck decides which discard pile the card returns
// to without a catalog round-trip.
type handCard struct {
	CardID string
	Deck   DeckType
}

// pCapAward is one scored political-capital award with provenance.
type pCapAward struct {
	Kind   string
	Value  int
	Source string
	Round  int
}

// internalPlayer is the engine-private player state.
type internalPlayer struct {
	ID             string
	Name           string
	Color          string
	Economic       string // pole on the economic axis
	Social         string // pole on the social axis
	Seats          int
	Hand           []handCard
	PCapCards      []pCapAward
	Connected      bool
	PoliciesPassed int
}

// vote is a single weighted ballot. Weight is the caster's seat count
// captured at cast time, never recomputed.
type vote struct {
	InFavour bool
	Weight   int
}

// gameState is the single mutable aggregate owned by one Game. All mutation
// goes through the Game's intent handlers; nothing outside the Game writes
// here.
type gameState struct {
	phase Phase
	round int

	players []*internalPlayer // join order, never reordered

	turnOrder          []string // permutation of player IDs, fixed at game start
	currentPlayerIndex int
	speakerIndex       int

	campaignDeck    []string
	campaignDiscard []string
	policyDeck      []string
	policyDiscard   []string
	wildcardDeck    []string
	wildcardDiscard []string

	issueIndex int // index into catalog.IssueTrack

	// Per-round scratch, cleared exactly once per round transition.
	playersDrawn      map[string]bool
	playersCampaigned map[string]bool
	roundSeatChanges  map[string]int

	// Proposal/vote cycle state, cleared together at cycle end.
	proposedPolicy string
	proposerID     string
	votes          map[string]vote

	// pendingProposerForWildcard deliberately outlives the proposal cycle so
	// an issue_conditional or proposer wildcard can still target the passed
	// policy's proposer. Cleared when the wildcard resolves.
	pendingProposerForWildcard string
	pendingWildcard            string

	eventLog []Event

	winner      string
	finalScores map[string]int
}

func newGameState() *gameState {
	return &gameState{
		phase:             PhaseWaiting,
		playersDrawn:      make(map[string]bool),
		playersCampaigned: make(map[string]bool),
		roundSeatChanges:  make(map[string]int),
		votes:             make(map[string]vote),
	}
}

// playerByID returns the player with the given ID, or nil.
func (s *gameState) playerByID(id string) *internalPlayer {
	for _, p := range s.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// seatLeader returns the player with the most seats. Ties resolve to the
// first player in join order; the example rules treat the first iterated
// player as the leader.
func (s *gameState) seatLeader() *internalPlayer {
	var leader *internalPlayer
	for _, p := range s.players {
		if leader == nil || p.Seats > leader.Seats {
			leader = p
		}
	}
	return leader
}

// PlayerView is the externally visible player state.
type PlayerView struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Color          string      `json:"color"`
	Economic       string      `json:"economic"`
	Social         string      `json:"social"`
	Seats          int         `json:"seats"`
	Hand           []string    `json:"hand"`
	PCapCards      []PCapView  `json:"pcap_cards"`
	Connected      bool        `json:"connected"`
	PoliciesPassed int         `json:"policies_passed"`
}

// PCapView is one scored award in a snapshot.
type PCapView struct {
	Kind   string `json:"kind"`
	Value  int    `json:"value"`
	Source string `json:"source"`
	Round  int    `json:"round"`
}

// VoteView is one cast ballot in a snapshot.
type VoteView struct {
	PlayerID string `json:"player_id"`
	InFavour bool   `json:"in_favour"`
	Weight   int    `json:"weight"`
}

// GameView is a deep-copied snapshot of the full game state. It never
// aliases engine-internal slices or maps.
type GameView struct {
	RoomID               string         `json:"room_id"`
	Phase                string         `json:"phase"`
	Round                int            `json:"round"`
	Players              []PlayerView   `json:"players"`
	TurnOrder            []string       `json:"turn_order"`
	CurrentPlayerID      string         `json:"current_player_id,omitempty"`
	SpeakerID            string         `json:"speaker_id,omitempty"`
	ActiveIssue          string         `json:"active_issue"`
	CampaignDeckCount    int            `json:"campaign_deck_count"`
	CampaignDiscardCount int            `json:"campaign_discard_count"`
	PolicyDeckCount      int            `json:"policy_deck_count"`
	PolicyDiscardCount   int            `json:"policy_discard_count"`
	WildcardDeckCount    int            `json:"wildcard_deck_count"`
	ProposedPolicy       string         `json:"proposed_policy,omitempty"`
	ProposerID           string         `json:"proposer_id,omitempty"`
	Votes                []VoteView     `json:"votes,omitempty"`
	PendingWildcard      string         `json:"pending_wildcard,omitempty"`
	Winner               string         `json:"winner,omitempty"`
	FinalScores          map[string]int `json:"final_scores,omitempty"`
	SnapshotAt           time.Time      `json:"snapshot_at"`
}
