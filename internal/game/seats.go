package game

// Seat ledger: applies a signed seat delta to one player while preserving
// the global invariant sum(seats) == Options.TotalSeats. Gains are funded
// by other players per the configured transfer policy; losses are
// redistributed evenly. A final normalization step nudges the leader to
// absorb any rounding drift; that leader adjustment is the canonical
// tie-breaking rule for rounding error.

// applySeatDelta mutates seat counts and emits one seats_changed event per
// affected player. It returns the net change actually applied to the
// recipient (gains are capped by what other players can fund, losses by the
// recipient's own holdings).
func (g *Game) applySeatDelta(recipient *internalPlayer, delta int, reason string) int {
	if delta == 0 || recipient == nil {
		return 0
	}

	changes := make(map[string]int)

	if delta > 0 {
		collected := g.collectSeats(recipient, delta, changes)
		recipient.Seats += collected
		changes[recipient.ID] += collected
	} else {
		loss := -delta
		if loss > recipient.Seats {
			loss = recipient.Seats
		}
		recipient.Seats -= loss
		changes[recipient.ID] -= loss
		g.redistributeSeats(recipient, loss, changes)
	}

	g.normalizeSeats(changes)
	g.commitSeatChanges(recipient.ID, reason, changes)
	return changes[recipient.ID]
}

// collectSeats takes up to want seats from players other than the
// recipient, per the configured transfer policy, and returns the amount
// actually collected.
func (g *Game) collectSeats(recipient *internalPlayer, want int, changes map[string]int) int {
	collected := 0

	if g.options.SeatTransferPolicy == TransferFromLeader {
		leader := g.state.seatLeader()
		if leader != nil && leader != recipient && leader.Seats > 0 {
			take := want
			if take > leader.Seats {
				take = leader.Seats
			}
			leader.Seats -= take
			changes[leader.ID] -= take
			collected += take
		}
	}

	if collected >= want {
		return collected
	}

	if g.options.SeatTransferPolicy == TransferFromAllEqual {
		return collected + g.collectEqually(recipient, want-collected, changes)
	}
	return collected + g.collectProportionally(recipient, want-collected, changes)
}

// collectProportionally takes the remaining seats from all other
// seat-holding players, each contributing ceil(theirSeats/totalOther *
// remaining) capped at their own holdings.
func (g *Game) collectProportionally(recipient *internalPlayer, remaining int, changes map[string]int) int {
	totalOther := 0
	for _, p := range g.state.players {
		if p != recipient {
			totalOther += p.Seats
		}
	}
	if totalOther == 0 || remaining <= 0 {
		return 0
	}

	collected := 0
	for _, p := range g.state.players {
		if p == recipient || p.Seats == 0 {
			continue
		}
		if collected >= remaining {
			break
		}
		contrib := (p.Seats*remaining + totalOther - 1) / totalOther // ceil
		if contrib > p.Seats {
			contrib = p.Seats
		}
		if contrib > remaining-collected {
			contrib = remaining - collected
		}
		p.Seats -= contrib
		changes[p.ID] -= contrib
		collected += contrib
	}
	return collected
}

// collectEqually takes the remaining seats in equal shares from all other
// players, assigning the integer remainder one-by-one from the first other
// player and capping each contribution at the player's holdings.
func (g *Game) collectEqually(recipient *internalPlayer, remaining int, changes map[string]int) int {
	others := make([]*internalPlayer, 0, len(g.state.players))
	for _, p := range g.state.players {
		if p != recipient {
			others = append(others, p)
		}
	}
	if len(others) == 0 || remaining <= 0 {
		return 0
	}

	share := remaining / len(others)
	rem := remaining % len(others)
	collected := 0
	for i, p := range others {
		contrib := share
		if i < rem {
			contrib++
		}
		if contrib > p.Seats {
			contrib = p.Seats
		}
		p.Seats -= contrib
		changes[p.ID] -= contrib
		collected += contrib
	}
	return collected
}

// redistributeSeats spreads loss seats evenly across all other players,
// assigning any integer remainder one-by-one starting from the first other
// player in join order.
func (g *Game) redistributeSeats(loser *internalPlayer, loss int, changes map[string]int) {
	others := make([]*internalPlayer, 0, len(g.state.players))
	for _, p := range g.state.players {
		if p != loser {
			others = append(others, p)
		}
	}
	if len(others) == 0 || loss <= 0 {
		return
	}

	share := loss / len(others)
	rem := loss % len(others)
	for i, p := range others {
		gain := share
		if i < rem {
			gain++
		}
		p.Seats += gain
		changes[p.ID] += gain
	}
}

// normalizeSeats forces sum(seats) back to the configured total by nudging
// the current leader's count by the difference.
func (g *Game) normalizeSeats(changes map[string]int) {
	total := 0
	for _, p := range g.state.players {
		total += p.Seats
	}
	drift := g.options.TotalSeats - total
	if drift == 0 {
		return
	}
	leader := g.state.seatLeader()
	if leader == nil {
		return
	}
	leader.Seats += drift
	changes[leader.ID] += drift
}

// commitSeatChanges folds the per-operation changes into the round scratch
// and appends one seats_changed event per affected player. The recipient
// keeps the caller's reason; counterparties are tagged as redistribution.
func (g *Game) commitSeatChanges(recipientID, reason string, changes map[string]int) {
	for _, p := range g.state.players {
		change, ok := changes[p.ID]
		if !ok || change == 0 {
			continue
		}
		g.state.roundSeatChanges[p.ID] += change
		eventReason := "redistribution"
		if p.ID == recipientID {
			eventReason = reason
		}
		g.appendEvent(EventSeatsChanged, p.ID, map[string]any{
			"delta":     change,
			"new_total": p.Seats,
			"reason":    eventReason,
		})
	}
}
