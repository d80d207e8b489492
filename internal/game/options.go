package game

// SeatTransferPolicy selects how seat gains are funded from other players.
type SeatTransferPolicy string

const (
	TransferFromLeader   SeatTransferPolicy = "from_leader"
	TransferProportional SeatTransferPolicy = "proportional"
	TransferFromAllEqual SeatTransferPolicy = "from_all_equal"
)

// PolicyProposalRule selects who may propose a policy each round.
type PolicyProposalRule string

const (
	ProposalSpeakerOnly PolicyProposalRule = "speaker_only"
	ProposalAnyPlayer   PolicyProposalRule = "any_player"
)

// VoteTieBreaker selects how a tied policy vote resolves.
type VoteTieBreaker string

const (
	TieFails VoteTieBreaker = "fails"
	// TieSpeakerDecides resolves a tie as a pass. The original rules never
	// prompt the speaker for an explicit decision; the tie simply goes the
	// speaker's way.
	TieSpeakerDecides VoteTieBreaker = "speaker_decides"
)

// IssueAdjustmentRule selects who picks the issue-track direction each round.
type IssueAdjustmentRule string

const (
	IssueMostSeatsGained IssueAdjustmentRule = "most_seats_gained"
	IssueSpeakerChoice   IssueAdjustmentRule = "speaker_choice"
	IssueRandom          IssueAdjustmentRule = "random"
)

// Options is the fully-resolved, immutable rule set for one game. It is
// merged once at construction from defaults and room overrides, and may only
// be re-merged while the game is still waiting for players. Every
// phase-resolution branch reads its behavior from here; there are no
// hard-coded rule variants in the engine.
type Options struct {
	TotalSeats            int                 `json:"total_seats" mapstructure:"total_seats"`
	HandLimit             int                 `json:"hand_limit" mapstructure:"hand_limit"`
	MaxRounds             int                 `json:"max_rounds" mapstructure:"max_rounds"`
	AgendaBonus           int                 `json:"agenda_bonus" mapstructure:"agenda_bonus"`
	SeatTransferPolicy    SeatTransferPolicy  `json:"seat_transfer_policy" mapstructure:"seat_transfer_policy"`
	PolicyProposalRule    PolicyProposalRule  `json:"policy_proposal_rule" mapstructure:"policy_proposal_rule"`
	VoteTieBreaker        VoteTieBreaker      `json:"vote_tie_breaker" mapstructure:"vote_tie_breaker"`
	ProposerReward        int                 `json:"proposer_reward" mapstructure:"proposer_reward"`
	DoubleFavouredReward  int                 `json:"double_favoured_reward" mapstructure:"double_favoured_reward"`
	SingleFavouredReward  int                 `json:"single_favoured_reward" mapstructure:"single_favoured_reward"`
	ContraryBacklash      int                 `json:"contrary_backlash" mapstructure:"contrary_backlash"`
	IssueAdjustmentRule   IssueAdjustmentRule `json:"issue_adjustment_rule" mapstructure:"issue_adjustment_rule"`
	MandateAward          int                 `json:"mandate_award" mapstructure:"mandate_award"`
	PrimeMinisterAward    int                 `json:"prime_minister_award" mapstructure:"prime_minister_award"`
	WildcardOnPolicyPass  bool                `json:"wildcard_on_policy_pass" mapstructure:"wildcard_on_policy_pass"`
}

// DefaultOptions returns the baseline rule set.
func DefaultOptions() Options {
	return Options{
		TotalSeats:           150,
		HandLimit:            5,
		MaxRounds:            12,
		AgendaBonus:          1,
		SeatTransferPolicy:   TransferFromLeader,
		PolicyProposalRule:   ProposalSpeakerOnly,
		VoteTieBreaker:       TieFails,
		ProposerReward:       2,
		DoubleFavouredReward: 3,
		SingleFavouredReward: 1,
		ContraryBacklash:     2,
		IssueAdjustmentRule:  IssueMostSeatsGained,
		MandateAward:         5,
		PrimeMinisterAward:   3,
		WildcardOnPolicyPass: true,
	}
}

// OptionOverrides carries the subset of options a room wants to change.
// Nil fields keep the default (or previously merged) value.
type OptionOverrides struct {
	TotalSeats           *int                 `json:"total_seats,omitempty"`
	HandLimit            *int                 `json:"hand_limit,omitempty"`
	MaxRounds            *int                 `json:"max_rounds,omitempty"`
	AgendaBonus          *int                 `json:"agenda_bonus,omitempty"`
	SeatTransferPolicy   *SeatTransferPolicy  `json:"seat_transfer_policy,omitempty"`
	PolicyProposalRule   *PolicyProposalRule  `json:"policy_proposal_rule,omitempty"`
	VoteTieBreaker       *VoteTieBreaker      `json:"vote_tie_breaker,omitempty"`
	ProposerReward       *int                 `json:"proposer_reward,omitempty"`
	DoubleFavouredReward *int                 `json:"double_favoured_reward,omitempty"`
	SingleFavouredReward *int                 `json:"single_favoured_reward,omitempty"`
	ContraryBacklash     *int                 `json:"contrary_backlash,omitempty"`
	IssueAdjustmentRule  *IssueAdjustmentRule `json:"issue_adjustment_rule,omitempty"`
	MandateAward         *int                 `json:"mandate_award,omitempty"`
	PrimeMinisterAward   *int                 `json:"prime_minister_award,omitempty"`
	WildcardOnPolicyPass *bool                `json:"wildcard_on_policy_pass,omitempty"`
}

// merge applies the overrides on top of base and returns the result.
// TotalSeats, HandLimit, and MaxRounds must stay positive; overrides that
// would zero them out are ignored.
func (o OptionOverrides) merge(base Options) Options {
	out := base
	if o.TotalSeats != nil && *o.TotalSeats > 0 {
		out.TotalSeats = *o.TotalSeats
	}
	if o.HandLimit != nil && *o.HandLimit > 0 {
		out.HandLimit = *o.HandLimit
	}
	if o.MaxRounds != nil && *o.MaxRounds > 0 {
		out.MaxRounds = *o.MaxRounds
	}
	if o.AgendaBonus != nil {
		out.AgendaBonus = *o.AgendaBonus
	}
	if o.SeatTransferPolicy != nil {
		out.SeatTransferPolicy = *o.SeatTransferPolicy
	}
	if o.PolicyProposalRule != nil {
		out.PolicyProposalRule = *o.PolicyProposalRule
	}
	if o.VoteTieBreaker != nil {
		out.VoteTieBreaker = *o.VoteTieBreaker
	}
	if o.ProposerReward != nil {
		out.ProposerReward = *o.ProposerReward
	}
	if o.DoubleFavouredReward != nil {
		out.DoubleFavouredReward = *o.DoubleFavouredReward
	}
	if o.SingleFavouredReward != nil {
		out.SingleFavouredReward = *o.SingleFavouredReward
	}
	if o.ContraryBacklash != nil {
		out.ContraryBacklash = *o.ContraryBacklash
	}
	if o.IssueAdjustmentRule != nil {
		out.IssueAdjustmentRule = *o.IssueAdjustmentRule
	}
	if o.MandateAward != nil {
		out.MandateAward = *o.MandateAward
	}
	if o.PrimeMinisterAward != nil {
		out.PrimeMinisterAward = *o.PrimeMinisterAward
	}
	if o.WildcardOnPolicyPass != nil {
		out.WildcardOnPolicyPass = *o.WildcardOnPolicyPass
	}
	return out
}
