package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, 150, opts.TotalSeats)
	assert.Equal(t, 5, opts.HandLimit)
	assert.Equal(t, 12, opts.MaxRounds)
	assert.Equal(t, TransferFromLeader, opts.SeatTransferPolicy)
	assert.Equal(t, ProposalSpeakerOnly, opts.PolicyProposalRule)
	assert.Equal(t, TieFails, opts.VoteTieBreaker)
	assert.Equal(t, IssueMostSeatsGained, opts.IssueAdjustmentRule)
	assert.True(t, opts.WildcardOnPolicyPass)
}

func TestOverridesMerge(t *testing.T) {
	seats := 200
	rule := ProposalAnyPlayer
	wildcard := false
	merged := OptionOverrides{
		TotalSeats:           &seats,
		PolicyProposalRule:   &rule,
		WildcardOnPolicyPass: &wildcard,
	}.merge(DefaultOptions())

	assert.Equal(t, 200, merged.TotalSeats)
	assert.Equal(t, ProposalAnyPlayer, merged.PolicyProposalRule)
	assert.False(t, merged.WildcardOnPolicyPass)
	// Everything else keeps its default.
	assert.Equal(t, 5, merged.HandLimit)
	assert.Equal(t, 2, merged.ProposerReward)
	assert.Equal(t, TieFails, merged.VoteTieBreaker)
}

func TestEmptyOverridesKeepBase(t *testing.T) {
	base := DefaultOptions()
	assert.Equal(t, base, OptionOverrides{}.merge(base))
}

func TestOverridesMergeIgnoresNonPositiveCounts(t *testing.T) {
	zero := 0
	negative := -5
	merged := OptionOverrides{
		TotalSeats: &zero,
		HandLimit:  &negative,
		MaxRounds:  &zero,
	}.merge(DefaultOptions())

	assert.Equal(t, 150, merged.TotalSeats)
	assert.Equal(t, 5, merged.HandLimit)
	assert.Equal(t, 12, merged.MaxRounds)
}

func TestOverridesMergeStacks(t *testing.T) {
	// A second merge over an already-merged set only touches its own fields.
	seats := 90
	first := OptionOverrides{TotalSeats: &seats}.merge(DefaultOptions())
	rounds := 4
	second := OptionOverrides{MaxRounds: &rounds}.merge(first)

	assert.Equal(t, 90, second.TotalSeats)
	assert.Equal(t, 4, second.MaxRounds)
}
