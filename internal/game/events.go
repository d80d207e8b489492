package game

import "time"

// EventType identifies the category of a game event.
type EventType string

// Lifecycle events.
const (
	EventPlayerJoined      EventType = "player_joined"
	EventPlayerLeft        EventType = "player_left"
	EventPlayerReconnected EventType = "player_reconnected"
	EventOptionsUpdated    EventType = "options_updated"
	EventGameStarted       EventType = "game_started"
	EventRoundStarted      EventType = "round_started"
	EventPhaseChanged      EventType = "phase_changed"
	EventGameOver          EventType = "game_over"
)

// Card and deck events.
const (
	EventCardDrawn      EventType = "card_drawn"
	EventCardDiscarded  EventType = "card_discarded"
	EventDeckReshuffled EventType = "deck_reshuffled"
)

// Campaign and seat events.
const (
	EventCampaignPlayed  EventType = "campaign_played"
	EventCampaignSkipped EventType = "campaign_skipped"
	EventSeatsChanged    EventType = "seats_changed"
)

// Policy events.
const (
	EventPolicyProposed EventType = "policy_proposed"
	EventPolicySkipped  EventType = "policy_skipped"
	EventVoteCast       EventType = "vote_cast"
	EventPolicyResolved EventType = "policy_resolved"
	EventPCapAwarded    EventType = "pcap_awarded"
)

// Wildcard and issue events.
const (
	EventWildcardRevealed EventType = "wildcard_revealed"
	EventWildcardResolved EventType = "wildcard_resolved"
	EventIssueAdjusted    EventType = "issue_adjusted"
)

// Event is one record in a game's append-only log. Together with the seed,
// the ordered event stream is the replay and audit format: each event
// carries enough data to reconstruct the transition that produced it.
type Event struct {
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	PlayerID  string         `json:"player_id,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// appendEvent records a new event at the end of the log. The log is never
// mutated or reordered afterwards.
func (g *Game) appendEvent(eventType EventType, playerID string, data map[string]any) {
	g.state.eventLog = append(g.state.eventLog, Event{
		Type:      eventType,
		Timestamp: g.now(),
		PlayerID:  playerID,
		Data:      data,
	})
}

// copyEvents returns an ordered copy of the log. Data maps are copied
// shallowly; values are scalars by convention.
func copyEvents(events []Event) []Event {
	out := make([]Event, len(events))
	for i, evt := range events {
		out[i] = evt
		if evt.Data != nil {
			data := make(map[string]any, len(evt.Data))
			for k, v := range evt.Data {
				data[k] = v
			}
			out[i].Data = data
		}
	}
	return out
}
