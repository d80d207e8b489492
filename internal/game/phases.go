package game

import "fmt"

// Phase represents the game's finite state machine position. Exactly one
// phase is active at a time.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseDraw
	PhaseCampaign
	PhasePolicyProposal
	PhasePolicyVote
	PhasePolicyResolution
	PhaseWildcardResolution
	PhaseIssueAdjustment
	PhaseGameOver
)

var phaseNames = map[Phase]string{
	PhaseWaiting:            "waiting",
	PhaseDraw:               "draw",
	PhaseCampaign:           "campaign",
	PhasePolicyProposal:     "policy_proposal",
	PhasePolicyVote:         "policy_vote",
	PhasePolicyResolution:   "policy_resolution",
	PhaseWildcardResolution: "wildcard_resolution",
	PhaseIssueAdjustment:    "issue_adjustment",
	PhaseGameOver:           "game_over",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase_%d", int(p))
}

// DeckType identifies the deck a draw intent targets.
type DeckType string

const (
	DeckCampaign DeckType = "campaign"
	DeckPolicy   DeckType = "policy"
	DeckWildcard DeckType = "wildcard"
)
