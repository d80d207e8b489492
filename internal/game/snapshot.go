package game

// Snapshot returns a deep copy of the full game state. The view never
// aliases internal slices or maps, so callers may hold or serialize it
// freely while the game keeps mutating.
func (g *Game) Snapshot() GameView {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.state
	view := GameView{
		RoomID:               g.roomID,
		Phase:                s.phase.String(),
		Round:                s.round,
		ActiveIssue:          g.activeIssue(),
		CampaignDeckCount:    len(s.campaignDeck),
		CampaignDiscardCount: len(s.campaignDiscard),
		PolicyDeckCount:      len(s.policyDeck),
		PolicyDiscardCount:   len(s.policyDiscard),
		WildcardDeckCount:    len(s.wildcardDeck),
		ProposedPolicy:       s.proposedPolicy,
		ProposerID:           s.proposerID,
		PendingWildcard:      s.pendingWildcard,
		Winner:               s.winner,
		SnapshotAt:           g.now(),
	}

	view.TurnOrder = make([]string, len(s.turnOrder))
	copy(view.TurnOrder, s.turnOrder)

	if s.phase == PhaseCampaign && s.currentPlayerIndex < len(s.turnOrder) {
		view.CurrentPlayerID = s.turnOrder[s.currentPlayerIndex]
	}
	if s.phase != PhaseWaiting {
		view.SpeakerID = g.speakerID()
	}

	view.Players = make([]PlayerView, 0, len(s.players))
	for _, p := range s.players {
		pv := PlayerView{
			ID:             p.ID,
			Name:           p.Name,
			Color:          p.Color,
			Economic:       p.Economic,
			Social:         p.Social,
			Seats:          p.Seats,
			Connected:      p.Connected,
			PoliciesPassed: p.PoliciesPassed,
			Hand:           make([]string, 0, len(p.Hand)),
			PCapCards:      make([]PCapView, 0, len(p.PCapCards)),
		}
		for _, hc := range p.Hand {
			pv.Hand = append(pv.Hand, hc.CardID)
		}
		for _, award := range p.PCapCards {
			pv.PCapCards = append(pv.PCapCards, PCapView{
				Kind:   award.Kind,
				Value:  award.Value,
				Source: award.Source,
				Round:  award.Round,
			})
		}
		view.Players = append(view.Players, pv)
	}

	if len(s.votes) > 0 {
		// Ballots are listed in join order for a stable view.
		for _, p := range s.players {
			if v, ok := s.votes[p.ID]; ok {
				view.Votes = append(view.Votes, VoteView{
					PlayerID: p.ID,
					InFavour: v.InFavour,
					Weight:   v.Weight,
				})
			}
		}
	}

	if s.finalScores != nil {
		view.FinalScores = make(map[string]int, len(s.finalScores))
		for id, score := range s.finalScores {
			view.FinalScores[id] = score
		}
	}
	return view
}
