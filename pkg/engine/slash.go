package engine

// Slash penalizes a player who let the timeout expire. Part of the
// offender's stack is redistributed to the remaining non-folded players —
// the caller first, then seat order from the dealer's left — and the
// offender is force-folded.
func (g *Game) Slash(caller, offender Identity) error {
	callerSeat, callerState, err := g.seatOf(caller)
	if err != nil {
		return err
	}
	if callerState.IsFolded {
		return ErrNotAPlayer
	}
	if caller == offender {
		return ErrInvalidInstruction
	}
	offenderSeat, offenderState, err := g.seatOf(offender)
	if err != nil {
		return err
	}

	if g.State.GamePhase == PhaseWaitingForPlayers || g.State.GamePhase == PhaseFinished {
		return ErrInvalidPhase
	}

	now := g.now()
	if now-g.State.LastActionTimestamp < int64(g.Config.TimeoutSeconds) {
		return ErrTimeoutNotReached
	}

	if offenderSeat != g.overdueSeat() {
		return ErrInvalidInstruction
	}

	slashed := mulPercent(offenderState.Chips, g.Config.SlashPercentage)
	offenderState.Chips -= slashed
	if !offenderState.IsFolded {
		offenderState.IsFolded = true
		g.State.NumFoldedPlayers++
	}
	g.log.Infof("game %s: seat %d slashed for %d chips by seat %d",
		g.Config.GameID, offenderSeat, slashed, callerSeat)

	// Recipients: the caller first, then remaining non-folded seats from
	// dealer+1. The first `remainder` recipients get the extra chip.
	recipients := []uint8{callerSeat}
	n := g.playerCount()
	for k := uint8(1); k <= n; k++ {
		seat := (g.Config.DealerIndex + k) % n
		if seat == callerSeat || seat == offenderSeat {
			continue
		}
		if g.seats[seat].IsFolded {
			continue
		}
		recipients = append(recipients, seat)
	}

	share := slashed / uint64(len(recipients))
	remainder := slashed % uint64(len(recipients))
	for i, seat := range recipients {
		amount := share
		if uint64(i) < remainder {
			amount++
		}
		g.seats[seat].Chips += amount
	}

	if g.activePlayers() == 1 {
		g.State.TexasState = TexasClaimPot
		g.State.CurrentTurn = g.firstActiveFrom(g.Config.DealerIndex)
	} else if g.State.CurrentTurn == offenderSeat {
		g.State.CurrentTurn = g.nextActiveSeat(offenderSeat)
	}

	g.State.LastActionTimestamp = now
	return nil
}

// overdueSeat identifies whose action the game is waiting on: during a
// reveal cycle the first non-revealed non-owner in turn order, otherwise
// the current turn player.
func (g *Game) overdueSeat() uint8 {
	if g.State.DrawingState == DrawRevealing {
		owner := g.Deck.Owner(g.State.CardToReveal)
		n := g.playerCount()
		for k := uint8(0); k < n; k++ {
			seat := (g.State.CurrentTurn + k) % n
			if g.Players.Players[seat] == owner {
				continue
			}
			if !g.Players.HasRevealed(seat) {
				return seat
			}
		}
	}
	return g.State.CurrentTurn
}

// mulPercent computes chips * pct / 100 without 64-bit overflow.
func mulPercent(chips uint64, pct uint8) uint64 {
	p := uint64(pct)
	if p > 100 {
		p = 100
	}
	return (chips/100)*p + (chips%100)*p/100
}
