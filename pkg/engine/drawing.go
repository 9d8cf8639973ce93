package engine

import "github.com/vitorpy/solana-poker/pkg/curve"

// Draw picks the top deck position as the active player's next hole card and
// opens a reveal cycle: every other player must strip their lock from it
// before the next draw.
func (g *Game) Draw(player Identity) error {
	if g.State.TexasState != TexasDrawing || g.State.DrawingState != DrawPicking {
		return ErrInvalidPhase
	}
	_, state, err := g.requireTurn(player)
	if err != nil {
		return err
	}
	if state.HoleCardsCount >= HoleCardsPerPlayer {
		return ErrInvalidPhase
	}
	if g.State.CardsLeftInDeck == 0 {
		return ErrInvalidPhase
	}

	g.State.CardsLeftInDeck--
	pos := g.State.CardsLeftInDeck

	g.Deck.SetOwner(pos, player)
	state.HoleCards[state.HoleCardsCount] = pos
	state.HoleCardsCount++

	g.State.CardsDrawn++
	g.State.DrawingState = DrawRevealing
	g.State.CardToReveal = pos
	g.Players.ResetRevealed()

	g.touch()
	g.log.Debugf("game %s: player %s drew position %d", g.Config.GameID, player, pos)
	return nil
}

// RevealCard applies one player's lock-key inverse to the card currently
// being revealed. The drawer never reveals on-chain: they decrypt their own
// card privately and the last lock comes off only at showdown.
func (g *Game) RevealCard(player Identity, invKey [32]byte, cardIndex uint8) error {
	if g.State.DrawingState != DrawRevealing {
		return ErrInvalidPhase
	}
	if cardIndex != g.State.CardToReveal {
		return ErrWrongRevealTarget
	}
	seat, _, err := g.seatOf(player)
	if err != nil {
		return err
	}
	if g.Deck.Owner(cardIndex) == player {
		return ErrWrongRevealTarget
	}
	if g.Players.HasRevealed(seat) {
		return ErrDuplicateReveal
	}

	point := g.Deck.Point(cardIndex)
	decrypted, err := curve.MulBytes(&point, &invKey)
	if err != nil {
		return curveError(err)
	}

	g.Deck.SetPoint(cardIndex, decrypted)
	g.Players.MarkRevealed(seat)

	if g.Players.CountRevealed() >= g.playerCount()-1 {
		g.finishRevealCycle()
	}

	g.touch()
	return nil
}

// finishRevealCycle runs when all non-owners have revealed the target card.
func (g *Game) finishRevealCycle() {
	g.State.DrawingState = DrawPicking

	if g.State.TexasState == TexasCommunityCardsAwaiting {
		// Board card: the dealer opens it next.
		return
	}

	// Hole card cycle. Two cards per player ends the drawing phase.
	if g.State.CardsDrawn >= g.playerCount()*HoleCardsPerPlayer {
		g.State.TexasState = TexasBetting
		g.State.BettingRound = BettingPreFlop
		g.State.LastRaise = g.Config.BigBlind()
		if first, ok := g.nextActorFrom((g.Config.DealerIndex + 2) % g.playerCount()); ok {
			g.State.CurrentTurn = first
		} else {
			g.State.CurrentTurn = g.firstActiveFrom((g.Config.DealerIndex + 3) % g.playerCount())
		}

		// Pre-flop action closes on the big blind unless someone raises.
		bbSeat, ok := g.lastActorFrom((g.Config.DealerIndex + 2) % g.playerCount())
		if ok {
			g.State.LastToCall = g.seats[bbSeat].Player
		}
		g.log.Infof("game %s: hole cards dealt, pre-flop betting begins", g.Config.GameID)

		g.maybeSkipBetting()
		return
	}

	g.State.CurrentTurn = g.nextActiveSeat(g.State.CurrentTurn)
}
