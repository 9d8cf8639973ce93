package engine

// JoinGame seats a player: their buy-in moves into the vault and their
// shuffle-seed commitment is fixed. When the table fills, the commit window
// closes and the shuffle protocol advances to Generating.
func (g *Game) JoinGame(player Identity, commitment [32]byte, depositAmount uint64) error {
	if !g.Config.IsAcceptingPlayers || g.Config.CurrentPlayers >= g.Config.MaxPlayers {
		return ErrGameNotAcceptingPlayers
	}
	if g.State.ShufflingState != ShuffleCommitting {
		return ErrInvalidPhase
	}
	if depositAmount < g.Config.MinBuyIn {
		return ErrInsufficientFunds
	}
	if _, ok := g.Players.Find(player); ok {
		return ErrAlreadyJoined
	}

	if err := g.vault.Deposit(player, depositAmount); err != nil {
		return err
	}

	seat, ok := g.Players.Add(player)
	if !ok {
		return ErrGameFull
	}
	g.seats[seat] = NewPlayerState(g.Config.GameID, player, seat, depositAmount, commitment)
	g.Config.CurrentPlayers++

	if g.Players.Count >= g.Config.MaxPlayers {
		// Commit window auto-completes on the last join.
		g.Config.IsAcceptingPlayers = false
		g.State.GamePhase = PhaseShuffling
		g.State.ShufflingState = ShuffleGenerating
		g.State.CurrentTurn = g.shuffleStartSeat()
		g.log.Infof("game %s: table full, shuffling begins", g.Config.GameID)
	}

	g.touch()
	g.log.Debugf("game %s: player %s joined seat %d with %d chips",
		g.Config.GameID, player, seat, depositAmount)
	return nil
}

// StartNextGame resets every hand-scoped account for the next hand: the
// dealer button rotates, the hand counter increments, and the shuffle
// protocol restarts at Generating. Seed commitments made at join carry over.
func (g *Game) StartNextGame(caller Identity) error {
	if _, _, err := g.seatOf(caller); err != nil {
		return err
	}
	if g.State.TexasState != TexasStartNext && g.State.TexasState != TexasClaimPot {
		return ErrInvalidPhase
	}
	if !g.State.PotClaimed {
		return ErrNothingToClaim
	}

	g.Config.DealerIndex = (g.Config.DealerIndex + 1) % g.playerCount()
	g.Config.GameNumber++

	g.State.Reset()
	g.Deck.Reset()
	g.Accumulator.Reset()
	g.Community.Reset()
	g.Players.ResetRevealed()
	for i := uint8(0); i < g.playerCount(); i++ {
		g.seats[i].ResetForNextHand()
	}

	g.State.GamePhase = PhaseShuffling
	g.State.ShufflingState = ShuffleGenerating
	g.State.CurrentTurn = g.shuffleStartSeat()

	g.touch()
	g.log.Infof("game %s: hand %d starts, dealer seat %d",
		g.Config.GameID, g.Config.GameNumber, g.Config.DealerIndex)
	return nil
}

// Leave unseats a player and pays their remaining chips out of the vault.
// Leaving is only possible before the first shuffle or between hands.
func (g *Game) Leave(player Identity) error {
	seat, state, err := g.seatOf(player)
	if err != nil {
		return err
	}
	if !g.leaveWindowOpen() {
		return ErrCannotLeaveNow
	}

	if state.Chips > 0 {
		if err := g.vault.Withdraw(player, state.Chips); err != nil {
			return err
		}
	}

	g.Players.Remove(player)
	for i := int(seat); i < int(g.Players.Count); i++ {
		g.seats[i] = g.seats[i+1]
		g.seats[i].SeatIndex = uint8(i)
	}
	g.seats[g.Players.Count] = nil
	g.Config.CurrentPlayers--
	if g.State.GamePhase == PhaseWaitingForPlayers {
		g.Config.IsAcceptingPlayers = true
	}
	if g.Config.DealerIndex >= g.playerCount() && g.playerCount() > 0 {
		g.Config.DealerIndex = 0
	}

	g.touch()
	g.log.Debugf("game %s: player %s left", g.Config.GameID, player)
	return nil
}

// CloseGame winds the game down: every seated player is cashed out from the
// vault and no further players can join and no further hands can be played;
// seated players may still Leave. Only the authority may close a game, and
// only when no hand is in flight.
func (g *Game) CloseGame(caller Identity) error {
	if caller != g.Config.Authority {
		return ErrNotAuthority
	}
	if !g.leaveWindowOpen() {
		return ErrInvalidPhase
	}

	for i := uint8(0); i < g.playerCount(); i++ {
		state := g.seats[i]
		if state.Chips > 0 {
			if err := g.vault.Withdraw(state.Player, state.Chips); err != nil {
				return err
			}
			state.Chips = 0
		}
	}

	g.Config.IsAcceptingPlayers = false
	g.State.GamePhase = PhaseFinished
	g.State.TexasState = TexasFinished

	g.touch()
	g.log.Infof("game %s closed", g.Config.GameID)
	return nil
}

// leaveWindowOpen reports whether the game is between hands: either the
// table never filled, or the last pot was claimed and the next hand has not
// started.
func (g *Game) leaveWindowOpen() bool {
	if g.State.GamePhase == PhaseWaitingForPlayers {
		return true
	}
	if g.State.GamePhase == PhaseFinished {
		return true
	}
	return g.State.TexasState == TexasStartNext && g.State.PotClaimed
}
