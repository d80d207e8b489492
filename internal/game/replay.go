package game

import (
	"github.com/coalitionfree/coalition-server-go/internal/catalog"
	"go.uber.org/zap"
)

// IntentOp names a player intent for recording and replay.
type IntentOp string

const (
	OpAddPlayer           IntentOp = "add_player"
	OpRemovePlayer        IntentOp = "remove_player"
	OpReconnect           IntentOp = "reconnect"
	OpUpdateOptions       IntentOp = "update_options"
	OpStartGame           IntentOp = "start_game"
	OpDrawCard            IntentOp = "draw_card"
	OpPlayCampaignCard    IntentOp = "play_campaign_card"
	OpSkipCampaign        IntentOp = "skip_campaign"
	OpProposePolicy       IntentOp = "propose_policy"
	OpSkipProposal        IntentOp = "skip_proposal"
	OpCastVote            IntentOp = "cast_vote"
	OpAcknowledgeWildcard IntentOp = "acknowledge_wildcard"
	OpAdjustIssue         IntentOp = "adjust_issue"
)

// Intent is one discrete player action against a game. A seed plus an
// ordered intent sequence fully determines a game; recording the sequence
// is all that is needed to reproduce it.
type Intent struct {
	Op        IntentOp         `json:"op"`
	PlayerID  string           `json:"player_id"`
	Name      string           `json:"name,omitempty"`
	CardID    string           `json:"card_id,omitempty"`
	Deck      DeckType         `json:"deck,omitempty"`
	InFavour  bool             `json:"in_favour,omitempty"`
	Direction int              `json:"direction,omitempty"`
	Options   *OptionOverrides `json:"options,omitempty"`
}

// Apply dispatches an intent to the matching handler and returns its
// result. Unknown ops are rejected.
func (g *Game) Apply(in Intent) bool {
	switch in.Op {
	case OpAddPlayer:
		return g.AddPlayer(in.PlayerID, in.Name)
	case OpRemovePlayer:
		return g.RemovePlayer(in.PlayerID)
	case OpReconnect:
		return g.Reconnect(in.PlayerID)
	case OpUpdateOptions:
		if in.Options == nil {
			return false
		}
		return g.UpdateOptions(in.PlayerID, *in.Options)
	case OpStartGame:
		return g.StartGame(in.PlayerID)
	case OpDrawCard:
		return g.DrawCard(in.PlayerID, in.Deck)
	case OpPlayCampaignCard:
		return g.PlayCampaignCard(in.PlayerID, in.CardID)
	case OpSkipCampaign:
		return g.SkipCampaign(in.PlayerID)
	case OpProposePolicy:
		return g.ProposePolicy(in.PlayerID, in.CardID)
	case OpSkipProposal:
		return g.SkipProposal(in.PlayerID)
	case OpCastVote:
		return g.CastVote(in.PlayerID, in.InFavour)
	case OpAcknowledgeWildcard:
		return g.AcknowledgeWildcard(in.PlayerID)
	case OpAdjustIssue:
		return g.AdjustIssue(in.PlayerID, in.Direction)
	default:
		return false
	}
}

// Rebuild reconstructs a game by replaying a recorded intent sequence
// against a fresh instance with the same seed, catalog, and overrides.
// The result has an identical event stream (up to timestamps) and an
// identical state checksum as the original run.
func Rebuild(roomID string, cat catalog.Catalog, overrides OptionOverrides, seed string, intents []Intent, logger *zap.Logger) *Game {
	g := NewGame(roomID, cat, overrides, seed, logger)
	for _, in := range intents {
		g.Apply(in)
	}
	return g
}
