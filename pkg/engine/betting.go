package engine

// PlaceBlind posts the small or big blind. The seat after the dealer owes
// the small blind, the one after it the big blind; a short stack may post
// all-in for less.
func (g *Game) PlaceBlind(player Identity, amount uint64) error {
	if g.State.TexasState != TexasBetting || g.State.BettingRound != BettingBlinds {
		return ErrInvalidPhase
	}
	seat, state, err := g.requireTurn(player)
	if err != nil {
		return err
	}
	if state.IsFolded {
		return ErrInvalidPhase
	}
	if amount > state.Chips {
		return ErrInsufficientFunds
	}

	smallBlindSeat := (g.Config.DealerIndex + 1) % g.playerCount()
	var expected uint64
	if seat == smallBlindSeat {
		expected = g.Config.SmallBlind
	} else {
		expected = g.Config.BigBlind()
	}
	if expected > state.Chips {
		expected = state.Chips
	}
	if state.CurrentBet+amount != expected && amount != state.Chips {
		return ErrInvalidBet
	}
	if g.State.Pot+amount < g.State.Pot {
		return ErrInvalidBet
	}

	state.Chips -= amount
	state.CurrentBet += amount
	g.State.Pot += amount
	if state.CurrentBet > g.State.CurrentCallAmount {
		g.State.CurrentCallAmount = state.CurrentBet
	}

	if seat == smallBlindSeat {
		g.State.CurrentTurn = g.nextSeat(seat)
		g.log.Debugf("game %s: small blind %d posted by seat %d", g.Config.GameID, amount, seat)
	} else {
		// Blinds complete; the drawing phase deals hole cards next.
		g.State.TexasState = TexasDrawing
		g.State.DrawingState = DrawPicking
		g.State.CurrentTurn = (g.Config.DealerIndex + 3) % g.playerCount()
		g.log.Debugf("game %s: big blind %d posted by seat %d, drawing begins",
			g.Config.GameID, amount, seat)
	}

	g.touch()
	return nil
}

// Bet is the single betting action: amount 0 checks, matching the call
// amount calls, more raises, and betting the whole stack is all-in. A raise
// must be at least the size of the previous raise (initially the big blind)
// unless it is an all-in.
func (g *Game) Bet(player Identity, amount uint64) error {
	if g.State.TexasState != TexasBetting || g.State.BettingRound == BettingBlinds {
		return ErrInvalidPhase
	}
	seat, state, err := g.requireTurn(player)
	if err != nil {
		return err
	}
	if state.IsFolded {
		return ErrInvalidPhase
	}
	if amount > state.Chips {
		return ErrInsufficientFunds
	}
	if g.State.Pot+amount < g.State.Pot {
		return ErrInvalidBet
	}

	newBet := state.CurrentBet + amount
	if newBet < state.CurrentBet {
		return ErrInvalidBet
	}
	allIn := amount == state.Chips

	call := g.State.CurrentCallAmount
	if newBet < call && !allIn {
		return ErrInvalidBet
	}

	raised := newBet > call
	if raised {
		minRaise := g.State.LastRaise
		if minRaise == 0 {
			minRaise = g.Config.BigBlind()
		}
		if newBet < call+minRaise && !allIn {
			return ErrInvalidBet
		}
		// An all-in below the minimum raise does not reset the raise size.
		if newBet-call >= minRaise {
			g.State.LastRaise = newBet - call
		}
	}

	state.Chips -= amount
	state.CurrentBet = newBet
	g.State.Pot += amount

	if raised {
		g.State.CurrentCallAmount = newBet
		if prev, ok := g.lastActorBefore(seat); ok {
			g.State.LastToCall = g.seats[prev].Player
		} else {
			// Nobody can respond to the raise; the round is over.
			g.State.LastToCall = player
		}
		g.log.Debugf("game %s: seat %d raised to %d", g.Config.GameID, seat, newBet)
	} else {
		g.log.Debugf("game %s: seat %d %s", g.Config.GameID, seat,
			map[bool]string{true: "called", false: "checked"}[amount > 0])
	}

	if g.allActiveAllIn() {
		g.State.IsEverybodyAllIn = true
	}

	if g.State.LastToCall == player || g.State.IsEverybodyAllIn {
		g.finishBettingRound()
	} else if next, ok := g.nextActorFrom(seat); ok {
		g.State.CurrentTurn = next
	} else {
		g.finishBettingRound()
	}

	g.touch()
	return nil
}

// Fold folds the acting player. When only one player remains the hand ends
// immediately and the pot goes to them via ClaimPot.
func (g *Game) Fold(player Identity) error {
	if g.State.TexasState != TexasBetting || g.State.BettingRound == BettingBlinds {
		return ErrInvalidPhase
	}
	seat, state, err := g.requireTurn(player)
	if err != nil {
		return err
	}
	if state.IsFolded {
		return ErrInvalidPhase
	}

	state.IsFolded = true
	g.State.NumFoldedPlayers++
	g.log.Debugf("game %s: seat %d folded", g.Config.GameID, seat)

	if g.activePlayers() == 1 {
		g.State.TexasState = TexasClaimPot
		g.State.CurrentTurn = g.firstActiveFrom(g.Config.DealerIndex)
		g.log.Infof("game %s: hand ends early, one player remains", g.Config.GameID)
	} else if g.State.LastToCall == player {
		g.finishBettingRound()
	} else if next, ok := g.nextActorFrom(seat); ok {
		g.State.CurrentTurn = next
	} else {
		g.finishBettingRound()
	}

	g.touch()
	return nil
}

// finishBettingRound closes the current betting round: per-player bets are
// folded into the pot bookkeeping and the hand advances to the next stage.
func (g *Game) finishBettingRound() {
	for i := uint8(0); i < g.playerCount(); i++ {
		g.seats[i].CurrentBet = 0
	}
	g.State.CurrentCallAmount = 0
	g.State.LastRaise = 0
	g.State.LastToCall = Identity{}

	dealerSeat := g.firstActiveFrom(g.Config.DealerIndex)

	switch g.State.BettingRound {
	case BettingPreFlop:
		g.State.TexasState = TexasCommunityCardsAwaiting
		g.State.CommunityState = CommunityFlopAwaiting
		g.State.CurrentTurn = dealerSeat
	case BettingPostFlop:
		g.State.TexasState = TexasCommunityCardsAwaiting
		g.State.CommunityState = CommunityTurnAwaiting
		g.State.CurrentTurn = dealerSeat
	case BettingPostTurn:
		g.State.TexasState = TexasCommunityCardsAwaiting
		g.State.CommunityState = CommunityRiverAwaiting
		g.State.CurrentTurn = dealerSeat
	case BettingShowdown:
		g.State.TexasState = TexasRevealing
		g.State.CurrentTurn = dealerSeat
	}
	g.log.Debugf("game %s: betting round %s complete", g.Config.GameID, g.State.BettingRound)
}

// maybeSkipBetting closes a just-opened betting round immediately when no
// meaningful action is possible: everyone is all-in, or at most one player
// can still act.
func (g *Game) maybeSkipBetting() {
	if g.State.TexasState != TexasBetting {
		return
	}
	if g.State.IsEverybodyAllIn || g.allActiveAllIn() {
		g.State.IsEverybodyAllIn = true
		g.finishBettingRound()
		return
	}
	actors := uint8(0)
	matched := true
	for i := uint8(0); i < g.playerCount(); i++ {
		p := g.seats[i]
		if p.IsFolded {
			continue
		}
		if p.Chips > 0 {
			actors++
			if p.CurrentBet < g.State.CurrentCallAmount {
				matched = false
			}
		}
	}
	if actors <= 1 && matched {
		g.finishBettingRound()
	}
}

// lastActorBefore walks backwards from the seat strictly before the given
// one to the closest player who can still act.
func (g *Game) lastActorBefore(seat uint8) (uint8, bool) {
	n := g.playerCount()
	prev, ok := g.lastActorFrom((seat + n - 1) % n)
	if !ok || prev == seat {
		return 0, false
	}
	return prev, true
}
