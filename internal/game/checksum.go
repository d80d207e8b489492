package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// Checksum computes a deterministic SHA-256 digest of the current game
// state. The digest covers only deterministic fields (no timestamps, no
// wall-clock data), so two games built from the same seed and the same
// intent sequence produce identical checksums. It guards against divergent
// states across replays or network transmission.
func (g *Game) Checksum() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	hash := sha256.Sum256([]byte(g.buildDeterministicRepresentation()))
	return hex.EncodeToString(hash[:])
}

// buildDeterministicRepresentation creates a canonical string form of the
// state that is independent of map iteration order.
func (g *Game) buildDeterministicRepresentation() string {
	s := g.state
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "GAME:%s|%s|%d|%d|%d|%d\n",
		g.rng.Seed(),
		s.phase,
		s.round,
		s.issueIndex,
		s.currentPlayerIndex,
		s.speakerIndex,
	)
	fmt.Fprintf(&buf, "ORDER:%v\n", s.turnOrder)

	for _, p := range s.players {
		fmt.Fprintf(&buf, "PLAYER:%s|%s|%s|%s|%d|%d|%t\n",
			p.ID, p.Color, p.Economic, p.Social, p.Seats, p.PoliciesPassed, p.Connected)
		for _, hc := range p.Hand {
			fmt.Fprintf(&buf, "HAND:%s|%s\n", hc.CardID, hc.Deck)
		}
		for _, award := range p.PCapCards {
			fmt.Fprintf(&buf, "PCAP:%s|%d|%s|%d\n", award.Kind, award.Value, award.Source, award.Round)
		}
	}

	fmt.Fprintf(&buf, "DECKS:%v|%v|%v|%v|%v|%v\n",
		s.campaignDeck, s.campaignDiscard,
		s.policyDeck, s.policyDiscard,
		s.wildcardDeck, s.wildcardDiscard,
	)

	fmt.Fprintf(&buf, "CYCLE:%s|%s|%s|%s\n",
		s.proposedPolicy, s.proposerID, s.pendingWildcard, s.pendingProposerForWildcard)

	voterIDs := make([]string, 0, len(s.votes))
	for id := range s.votes {
		voterIDs = append(voterIDs, id)
	}
	sort.Strings(voterIDs)
	for _, id := range voterIDs {
		v := s.votes[id]
		fmt.Fprintf(&buf, "VOTE:%s|%t|%d\n", id, v.InFavour, v.Weight)
	}

	fmt.Fprintf(&buf, "EVENTS:%d\n", len(s.eventLog))
	fmt.Fprintf(&buf, "END:%s\n", s.winner)
	return buf.String()
}
