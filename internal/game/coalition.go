package game

import (
	"sync"
	"time"

	"github.com/coalitionfree/coalition-server-go/internal/catalog"
	"go.uber.org/zap"
)

// Game is the authoritative rules engine for one room. It owns the mutable
// game state exclusively; callers interact only through intent handlers and
// side-effect-free queries. Handlers return false for any illegal call
// (wrong phase, wrong turn, unknown player, card not in hand) without
// partial mutation.
//
// Execution is single-intent-at-a-time: each handler runs to completion,
// including RNG draws, seat redistribution, and event appends, before
// returning. A single mutex serializes intents against the same instance;
// different rooms are fully independent.
type Game struct {
	mu      sync.Mutex
	roomID  string
	logger  *zap.Logger
	catalog catalog.Catalog
	options Options
	rng     *RNG
	state   *gameState
	now     func() time.Time
}

// NewGame creates a fresh waiting-phase game for a room. Overrides are
// merged over the default rule set once; an empty seed gets a generated one
// retrievable via Seed.
func NewGame(roomID string, cat catalog.Catalog, overrides OptionOverrides, seed string, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		roomID:  roomID,
		logger:  logger,
		catalog: cat,
		options: overrides.merge(DefaultOptions()),
		rng:     NewRNG(seed),
		state:   newGameState(),
		now:     time.Now,
	}
}

// Seed returns the RNG seed, for persistence and replay.
func (g *Game) Seed() string {
	return g.rng.Seed()
}

// RoomID returns the owning room's identifier.
func (g *Game) RoomID() string {
	return g.roomID
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.phase
}

// Options returns a copy of the merged rule set.
func (g *Game) Options() Options {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.options
}

// Events returns an ordered copy of the append-only event log.
func (g *Game) Events() []Event {
	g.mu.Lock()
	defer g.mu.Unlock()
	return copyEvents(g.state.eventLog)
}

// AddPlayer registers a new player while the game is waiting. Join order is
// insertion order and never changes.
func (g *Game) AddPlayer(playerID, name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.phase != PhaseWaiting || playerID == "" {
		return false
	}
	if g.state.playerByID(playerID) != nil {
		return false
	}
	if len(g.state.players) >= len(playerColors) {
		return false
	}

	p := &internalPlayer{
		ID:        playerID,
		Name:      name,
		Color:     playerColors[len(g.state.players)],
		Connected: true,
	}
	g.state.players = append(g.state.players, p)
	g.appendEvent(EventPlayerJoined, playerID, map[string]any{"name": name, "color": p.Color})
	g.logger.Debug("player joined", zap.String("room_id", g.roomID), zap.String("player_id", playerID))
	return true
}

// RemovePlayer removes a waiting-phase player entirely; after game start it
// only marks the player disconnected so seats and scoring stay intact.
func (g *Game) RemovePlayer(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.state.playerByID(playerID)
	if p == nil || g.state.phase == PhaseGameOver {
		return false
	}

	if g.state.phase == PhaseWaiting {
		for i, other := range g.state.players {
			if other.ID == playerID {
				g.state.players = append(g.state.players[:i], g.state.players[i+1:]...)
				break
			}
		}
		// Colors track join order; reassign so a later join reuses the slot.
		for i, other := range g.state.players {
			other.Color = playerColors[i]
		}
	} else {
		p.Connected = false
	}
	g.appendEvent(EventPlayerLeft, playerID, nil)
	return true
}

// Reconnect marks a player as connected again. The engine itself never
// reads the flag; the session layer uses it to gate routing.
func (g *Game) Reconnect(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.state.playerByID(playerID)
	if p == nil {
		return false
	}
	p.Connected = true
	g.appendEvent(EventPlayerReconnected, playerID, nil)
	return true
}

// UpdateOptions re-merges overrides over the current rule set. Only legal
// while the game is still waiting.
func (g *Game) UpdateOptions(playerID string, overrides OptionOverrides) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.phase != PhaseWaiting {
		return false
	}
	if playerID != "" && g.state.playerByID(playerID) == nil {
		return false
	}
	g.options = overrides.merge(g.options)
	g.appendEvent(EventOptionsUpdated, playerID, nil)
	return true
}

// StartGame shuffles decks and turn order, assigns ideologies and seats,
// deals opening hands, and enters the first draw phase. Requires at least
// two players.
func (g *Game) StartGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.phase != PhaseWaiting || len(g.state.players) < 2 {
		return false
	}
	if g.state.playerByID(playerID) == nil {
		return false
	}

	s := g.state

	// RNG call order is fixed; reordering would break seed replay.
	s.campaignDeck = g.rng.Shuffle(g.catalog.DeckList(catalog.KindCampaign))
	s.policyDeck = g.rng.Shuffle(g.catalog.DeckList(catalog.KindPolicy))
	s.wildcardDeck = g.rng.Shuffle(g.catalog.DeckList(catalog.KindWildcard))

	ids := make([]string, len(s.players))
	for i, p := range s.players {
		ids[i] = p.ID
	}
	s.turnOrder = g.rng.Shuffle(ids)

	for _, p := range s.players {
		p.Economic = g.rng.Pick([]string{catalog.PoleMarket, catalog.PoleState})
		p.Social = g.rng.Pick([]string{catalog.PoleProgressive, catalog.PoleTraditional})
	}

	// Seats split evenly; the remainder goes one-by-one to the earliest
	// joined players.
	base := g.options.TotalSeats / len(s.players)
	rem := g.options.TotalSeats % len(s.players)
	for i, p := range s.players {
		p.Seats = base
		if i < rem {
			p.Seats++
		}
	}

	// Opening hands: three cards each, alternating campaign/policy draws,
	// capped so a small hand limit is never exceeded from the deal.
	deal := 3
	if g.options.HandLimit < deal {
		deal = g.options.HandLimit
	}
	for _, p := range s.players {
		for i := 0; i < deal; i++ {
			deck := DeckCampaign
			if i%2 == 1 {
				deck = DeckPolicy
			}
			if cardID, ok := g.popDeck(deck); ok {
				p.Hand = append(p.Hand, handCard{CardID: cardID, Deck: deck})
			}
		}
	}

	s.round = 1
	s.speakerIndex = 0
	s.currentPlayerIndex = 0

	g.appendEvent(EventGameStarted, playerID, map[string]any{
		"players":    len(s.players),
		"turn_order": s.turnOrder,
	})
	g.appendEvent(EventRoundStarted, "", map[string]any{"round": s.round})
	g.setPhase(PhaseDraw)
	g.logger.Info("game started",
		zap.String("room_id", g.roomID),
		zap.Int("players", len(s.players)),
		zap.String("seed", g.rng.Seed()),
	)
	return true
}

// DrawCard draws one card from the chosen deck for the player. Each player
// draws exactly once per round; a full hand auto-discards its oldest card
// first, and an empty deck reshuffles its discard pile before the draw.
func (g *Game) DrawCard(playerID string, deck DeckType) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.phase != PhaseDraw {
		return false
	}
	p := g.state.playerByID(playerID)
	if p == nil || g.state.playersDrawn[playerID] {
		return false
	}
	if deck != DeckCampaign && deck != DeckPolicy {
		return false
	}

	// Reject up front when the deck cannot produce a card, so a full hand
	// is not discarded into a draw that fails anyway. The pending hand-limit
	// discard counts when it would land on the drawn-from pile.
	cards, discard := g.deckPiles(deck)
	available := len(*cards) + len(*discard)
	overLimit := len(p.Hand) >= g.options.HandLimit && len(p.Hand) > 0
	if overLimit && p.Hand[0].Deck == deck {
		available++
	}
	if available == 0 {
		return false
	}

	if overLimit {
		oldest := p.Hand[0]
		p.Hand = p.Hand[1:]
		g.discardCard(oldest)
		g.appendEvent(EventCardDiscarded, playerID, map[string]any{
			"card_id": oldest.CardID,
			"reason":  "hand_limit",
		})
	}

	cardID, ok := g.popDeck(deck)
	if !ok {
		return false
	}
	p.Hand = append(p.Hand, handCard{CardID: cardID, Deck: deck})
	g.state.playersDrawn[playerID] = true
	g.appendEvent(EventCardDrawn, playerID, map[string]any{
		"card_id": cardID,
		"deck":    string(deck),
	})

	if len(g.state.playersDrawn) == len(g.state.players) {
		g.state.currentPlayerIndex = 0
		g.setPhase(PhaseCampaign)
	}
	return true
}

// PlayCampaignCard plays one campaign card on the acting player's turn.
// The seat delta combines the card's base delta, the agenda bonus when the
// card's issue matches the active issue, and any conditional modifier.
func (g *Game) PlayCampaignCard(playerID, cardID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isCampaignTurn(playerID) {
		return false
	}
	p := g.state.playerByID(playerID)
	idx := handIndex(p.Hand, cardID)
	if idx < 0 {
		return false
	}
	card, ok := g.catalog.Resolve(cardID)
	if !ok || card.Kind != catalog.KindCampaign {
		return false
	}

	cc := card.Campaign
	delta := cc.SeatDelta
	if cc.Issue == g.activeIssue() {
		delta += g.options.AgendaBonus
	}
	isLeader := g.state.seatLeader() == p
	switch cc.Modifier {
	case catalog.ModifierLeaderPenalty:
		if isLeader {
			delta += cc.ModifierValue
		}
	case catalog.ModifierUnderdogBonus:
		if !isLeader {
			mod := cc.ModifierValue
			if mod < 0 {
				mod = -mod
			}
			delta += mod
		}
	}

	played := p.Hand[idx]
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	g.discardCard(played)

	g.appendEvent(EventCampaignPlayed, playerID, map[string]any{
		"card_id": cardID,
		"delta":   delta,
	})
	g.applySeatDelta(p, delta, "campaign")
	g.state.playersCampaigned[playerID] = true
	g.advanceCampaignTurn()
	return true
}

// SkipCampaign passes the acting player's campaign turn.
func (g *Game) SkipCampaign(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isCampaignTurn(playerID) {
		return false
	}
	g.state.playersCampaigned[playerID] = true
	g.appendEvent(EventCampaignSkipped, playerID, nil)
	g.advanceCampaignTurn()
	return true
}

// ProposePolicy puts one policy card up for a vote. Eligibility follows the
// configured proposal rule and the proposer must hold at least one seat.
func (g *Game) ProposePolicy(playerID, cardID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.phase != PhasePolicyProposal || !g.mayProposePolicy(playerID) {
		return false
	}
	p := g.state.playerByID(playerID)
	if p.Seats < 1 {
		return false
	}
	idx := handIndex(p.Hand, cardID)
	if idx < 0 {
		return false
	}
	card, ok := g.catalog.Resolve(cardID)
	if !ok || card.Kind != catalog.KindPolicy {
		return false
	}

	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	g.state.proposedPolicy = cardID
	g.state.proposerID = playerID
	g.state.votes = make(map[string]vote)

	g.appendEvent(EventPolicyProposed, playerID, map[string]any{"card_id": cardID})
	g.setPhase(PhasePolicyVote)
	return true
}

// SkipProposal declines to propose this round, bypassing voting entirely.
func (g *Game) SkipProposal(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.phase != PhasePolicyProposal || !g.mayProposePolicy(playerID) {
		return false
	}
	g.appendEvent(EventPolicySkipped, playerID, nil)
	g.enterIssueAdjustment()
	return true
}

// CastVote records one weighted ballot. Weight is the caster's seat count
// at cast time. The vote resolves exactly once, when the ballot count
// reaches the player count.
func (g *Game) CastVote(playerID string, inFavour bool) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.phase != PhasePolicyVote {
		return false
	}
	p := g.state.playerByID(playerID)
	if p == nil {
		return false
	}
	if _, voted := g.state.votes[playerID]; voted {
		return false
	}

	g.state.votes[playerID] = vote{InFavour: inFavour, Weight: p.Seats}
	g.appendEvent(EventVoteCast, playerID, map[string]any{
		"in_favour": inFavour,
		"weight":    p.Seats,
	})

	if len(g.state.votes) == len(g.state.players) {
		g.resolveVote()
	}
	return true
}

// AcknowledgeWildcard resolves the pending wildcard. Any player's single
// acknowledgement suffices.
func (g *Game) AcknowledgeWildcard(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.phase != PhaseWildcardResolution || g.state.pendingWildcard == "" {
		return false
	}
	if g.state.playerByID(playerID) == nil {
		return false
	}
	g.resolveWildcard()
	return true
}

// AdjustIssue moves the active issue along the track by direction -1/0/+1,
// clamped at both ends. Eligibility follows the configured adjustment rule.
func (g *Game) AdjustIssue(playerID string, direction int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.phase != PhaseIssueAdjustment {
		return false
	}
	if direction < -1 || direction > 1 {
		return false
	}
	if !g.mayAdjustIssue(playerID) {
		return false
	}
	g.applyIssueAdjustment(playerID, direction, false)
	return true
}

// --- internal transitions ---

func (g *Game) setPhase(next Phase) {
	if g.state.phase == next {
		return
	}
	prev := g.state.phase
	g.state.phase = next
	g.appendEvent(EventPhaseChanged, "", map[string]any{
		"from": prev.String(),
		"to":   next.String(),
	})
}

func (g *Game) activeIssue() string {
	return catalog.IssueTrack[g.state.issueIndex]
}

func (g *Game) isCampaignTurn(playerID string) bool {
	s := g.state
	if s.phase != PhaseCampaign {
		return false
	}
	if s.currentPlayerIndex >= len(s.turnOrder) {
		return false
	}
	return s.turnOrder[s.currentPlayerIndex] == playerID && s.playerByID(playerID) != nil
}

// advanceCampaignTurn moves to the next turn order slot unconditionally;
// the phase ends after the last slot acts.
func (g *Game) advanceCampaignTurn() {
	g.state.currentPlayerIndex++
	if g.state.currentPlayerIndex >= len(g.state.turnOrder) {
		g.setPhase(PhasePolicyProposal)
	}
}

func (g *Game) mayProposePolicy(playerID string) bool {
	if g.state.playerByID(playerID) == nil {
		return false
	}
	if g.options.PolicyProposalRule == ProposalSpeakerOnly {
		return g.speakerID() == playerID
	}
	return true
}

func (g *Game) speakerID() string {
	if len(g.state.turnOrder) == 0 {
		return ""
	}
	return g.state.turnOrder[g.state.speakerIndex%len(g.state.turnOrder)]
}

// resolveVote tallies the weighted ballots and runs policy resolution.
// A tie passes only under the speaker_decides tie breaker, which is modeled
// as an unconditional pass in the speaker's favour.
func (g *Game) resolveVote() {
	s := g.state
	yes, no := 0, 0
	for _, v := range s.votes {
		if v.InFavour {
			yes += v.Weight
		} else {
			no += v.Weight
		}
	}
	passed := yes > no
	if yes == no {
		passed = g.options.VoteTieBreaker == TieSpeakerDecides
	}

	g.setPhase(PhasePolicyResolution)
	g.appendEvent(EventPolicyResolved, s.proposerID, map[string]any{
		"passed":    passed,
		"yes_votes": yes,
		"no_votes":  no,
	})

	cardID := s.proposedPolicy
	proposer := s.playerByID(s.proposerID)
	card, resolvable := g.catalog.Resolve(cardID)

	if passed && proposer != nil && resolvable && card.Kind == catalog.KindPolicy {
		g.resolvePassedPolicy(proposer, card)
		wildcard := g.options.WildcardOnPolicyPass
		if wildcard {
			s.pendingProposerForWildcard = s.proposerID
		}
		g.clearProposalCycle(cardID)
		if wildcard && g.revealWildcard() {
			return
		}
		s.pendingProposerForWildcard = ""
		g.enterIssueAdjustment()
		return
	}

	// Failed vote, or the proposer/card went missing mid-flight: discard
	// the policy and move on rather than corrupting state.
	g.clearProposalCycle(cardID)
	g.enterIssueAdjustment()
}

// resolvePassedPolicy applies the proposer reward, per-player ideology
// alignment scoring, and the contrary-stance backlash.
func (g *Game) resolvePassedPolicy(proposer *internalPlayer, card catalog.Card) {
	proposer.PoliciesPassed++
	g.applySeatDelta(proposer, g.options.ProposerReward, "policy_reward")

	for _, p := range g.state.players {
		favoured := 0
		if stanceFavours(card.Policy.Stances[catalog.AxisEconomic], p.Economic) {
			favoured++
		}
		if stanceFavours(card.Policy.Stances[catalog.AxisSocial], p.Social) {
			favoured++
		}
		switch favoured {
		case 2:
			g.awardPCap(p, "ideological_credibility", g.options.DoubleFavouredReward, card.ID)
		case 1:
			g.awardPCap(p, "ideological_credibility", g.options.SingleFavouredReward, card.ID)
		}
	}

	opposed := stanceOpposes(card.Policy.Stances[catalog.AxisEconomic], proposer.Economic) ||
		stanceOpposes(card.Policy.Stances[catalog.AxisSocial], proposer.Social)
	if opposed {
		g.applySeatDelta(proposer, -g.options.ContraryBacklash, "contrary_backlash")
	}
}

func stanceFavours(st catalog.Stance, pole string) bool {
	return st.Favours != "" && st.Favours == pole
}

func stanceOpposes(st catalog.Stance, pole string) bool {
	return st.Opposes != "" && st.Opposes == pole
}

func (g *Game) awardPCap(p *internalPlayer, kind string, value int, source string) {
	if value == 0 {
		return
	}
	p.PCapCards = append(p.PCapCards, pCapAward{
		Kind:   kind,
		Value:  value,
		Source: source,
		Round:  g.state.round,
	})
	g.appendEvent(EventPCapAwarded, p.ID, map[string]any{
		"kind":   kind,
		"value":  value,
		"source": source,
	})
}

// clearProposalCycle discards the in-flight policy card and clears vote
// state. pendingProposerForWildcard is managed by the caller because it
// intentionally survives into the wildcard step.
func (g *Game) clearProposalCycle(cardID string) {
	s := g.state
	if cardID != "" {
		s.policyDiscard = append(s.policyDiscard, cardID)
		g.appendEvent(EventCardDiscarded, "", map[string]any{
			"card_id": cardID,
			"reason":  "policy_resolved",
		})
	}
	s.proposedPolicy = ""
	s.proposerID = ""
	s.votes = make(map[string]vote)
}

// revealWildcard draws the next wildcard and holds it pending a player
// acknowledgement. Returns false when the wildcard deck and discard are
// both exhausted.
func (g *Game) revealWildcard() bool {
	cardID, ok := g.popDeck(DeckWildcard)
	if !ok {
		return false
	}
	g.state.pendingWildcard = cardID
	g.setPhase(PhaseWildcardResolution)
	g.appendEvent(EventWildcardRevealed, "", map[string]any{"card_id": cardID})
	return true
}

// resolveWildcard applies the pending wildcard's scripted effect and always
// moves on to issue adjustment.
func (g *Game) resolveWildcard() {
	s := g.state
	cardID := s.pendingWildcard
	card, ok := g.catalog.Resolve(cardID)

	applied := ""
	if ok && card.Kind == catalog.KindWildcard {
		wc := card.Wildcard
		applied = string(wc.Effect)
		switch wc.Effect {
		case catalog.EffectLeaderErosion:
			g.applySeatDelta(s.seatLeader(), wc.Delta, "wildcard")
		case catalog.EffectAllPlayers:
			for _, p := range s.players {
				g.applySeatDelta(p, wc.Delta, "wildcard")
			}
		case catalog.EffectProposer:
			if p := s.playerByID(s.pendingProposerForWildcard); p != nil {
				g.applySeatDelta(p, wc.Delta, "wildcard")
			}
		case catalog.EffectIssueConditional:
			proposer := s.playerByID(s.pendingProposerForWildcard)
			if wc.TargetIssue == g.activeIssue() && proposer != nil {
				g.applySeatDelta(proposer, wc.Delta, "wildcard")
			} else {
				erosion := wc.Delta
				if erosion > 0 {
					erosion = -erosion
				}
				g.applySeatDelta(s.seatLeader(), erosion, "wildcard")
			}
		}
	}

	s.wildcardDiscard = append(s.wildcardDiscard, cardID)
	s.pendingWildcard = ""
	s.pendingProposerForWildcard = ""
	g.appendEvent(EventWildcardResolved, "", map[string]any{
		"card_id": cardID,
		"effect":  applied,
	})
	g.enterIssueAdjustment()
}

// enterIssueAdjustment switches phase and, under the random rule, resolves
// immediately without human input.
func (g *Game) enterIssueAdjustment() {
	g.setPhase(PhaseIssueAdjustment)
	if g.options.IssueAdjustmentRule == IssueRandom {
		direction := g.rng.IntBetween(0, 1)*2 - 1
		g.applyIssueAdjustment("", direction, true)
	}
}

// mayAdjustIssue checks eligibility under the configured rule: the round's
// top seat gainer(s), the leader when nobody gained, or the speaker.
func (g *Game) mayAdjustIssue(playerID string) bool {
	s := g.state
	if s.playerByID(playerID) == nil {
		return false
	}
	switch g.options.IssueAdjustmentRule {
	case IssueRandom:
		return false // auto-resolved on entry
	case IssueSpeakerChoice:
		return g.speakerID() == playerID
	default: // IssueMostSeatsGained
		maxGain := 0
		for _, p := range s.players {
			if change := s.roundSeatChanges[p.ID]; change > maxGain {
				maxGain = change
			}
		}
		if maxGain <= 0 {
			leader := s.seatLeader()
			return leader != nil && leader.ID == playerID
		}
		return s.roundSeatChanges[playerID] == maxGain
	}
}

func (g *Game) applyIssueAdjustment(playerID string, direction int, auto bool) {
	s := g.state
	next := s.issueIndex + direction
	if next < 0 {
		next = 0
	}
	if next > len(catalog.IssueTrack)-1 {
		next = len(catalog.IssueTrack) - 1
	}
	s.issueIndex = next
	g.appendEvent(EventIssueAdjusted, playerID, map[string]any{
		"direction": direction,
		"issue":     catalog.IssueTrack[next],
		"auto":      auto,
	})
	g.advanceRound()
}

// advanceRound checks end conditions and either finishes the game or opens
// the next round's draw phase. Per-round scratch is cleared exactly here.
func (g *Game) advanceRound() {
	s := g.state

	campaignExhausted := len(s.campaignDeck)+len(s.campaignDiscard) == 0
	policyExhausted := len(s.policyDeck)+len(s.policyDiscard) == 0
	if (campaignExhausted && policyExhausted) || s.round >= g.options.MaxRounds {
		g.endGame()
		return
	}

	s.round++
	s.speakerIndex = (s.speakerIndex + 1) % len(s.turnOrder)
	s.currentPlayerIndex = 0
	s.playersDrawn = make(map[string]bool)
	s.playersCampaigned = make(map[string]bool)
	s.roundSeatChanges = make(map[string]int)

	g.appendEvent(EventRoundStarted, "", map[string]any{"round": s.round})
	g.setPhase(PhaseDraw)
}

// endGame grants the end-game awards, computes final scores, and freezes
// the state. The mandate award goes to the seat leader(s); the prime
// minister award goes to the player(s) with the most passed policies.
func (g *Game) endGame() {
	s := g.state

	maxSeats := 0
	for _, p := range s.players {
		if p.Seats > maxSeats {
			maxSeats = p.Seats
		}
	}
	for _, p := range s.players {
		if p.Seats == maxSeats {
			g.awardPCap(p, "popular_mandate", g.options.MandateAward, "end_game")
		}
	}

	maxPassed := 0
	for _, p := range s.players {
		if p.PoliciesPassed > maxPassed {
			maxPassed = p.PoliciesPassed
		}
	}
	if maxPassed > 0 {
		for _, p := range s.players {
			if p.PoliciesPassed == maxPassed {
				g.awardPCap(p, "prime_minister", g.options.PrimeMinisterAward, "end_game")
			}
		}
	}

	s.finalScores = make(map[string]int, len(s.players))
	var winner *internalPlayer
	for _, p := range s.players {
		score := 0
		for _, award := range p.PCapCards {
			score += award.Value
		}
		s.finalScores[p.ID] = score
		if winner == nil ||
			score > s.finalScores[winner.ID] ||
			(score == s.finalScores[winner.ID] && p.Seats > winner.Seats) {
			winner = p
		}
	}
	if winner != nil {
		s.winner = winner.ID
	}

	g.appendEvent(EventGameOver, s.winner, map[string]any{"scores": s.finalScores})
	g.setPhase(PhaseGameOver)
	g.logger.Info("game over",
		zap.String("room_id", g.roomID),
		zap.String("winner", s.winner),
		zap.Int("rounds", s.round),
	)
}

// --- deck helpers ---

// popDeck removes and returns the top card of the given deck, reshuffling
// the deck's discard pile into it first when the deck is empty. Returns
// false when deck and discard are both exhausted.
func (g *Game) popDeck(deck DeckType) (string, bool) {
	cards, discard := g.deckPiles(deck)
	if len(*cards) == 0 && len(*discard) > 0 {
		*cards = g.rng.Shuffle(*discard)
		*discard = nil
		g.appendEvent(EventDeckReshuffled, "", map[string]any{
			"deck":  string(deck),
			"count": len(*cards),
		})
	}
	if len(*cards) == 0 {
		return "", false
	}
	top := (*cards)[0]
	*cards = (*cards)[1:]
	return top, true
}

func (g *Game) deckPiles(deck DeckType) (cards, discard *[]string) {
	s := g.state
	switch deck {
	case DeckPolicy:
		return &s.policyDeck, &s.policyDiscard
	case DeckWildcard:
		return &s.wildcardDeck, &s.wildcardDiscard
	default:
		return &s.campaignDeck, &s.campaignDiscard
	}
}

// discardCard returns a hand card to the discard pile of its origin deck.
func (g *Game) discardCard(hc handCard) {
	_, discard := g.deckPiles(hc.Deck)
	*discard = append(*discard, hc.CardID)
}

func handIndex(hand []handCard, cardID string) int {
	for i, hc := range hand {
		if hc.CardID == cardID {
			return i
		}
	}
	return -1
}
