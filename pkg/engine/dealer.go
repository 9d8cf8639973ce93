package engine

import "github.com/vitorpy/solana-poker/pkg/curve"

// DealCommunityCard pops the top deck position onto the board: one call per
// card, three for the flop. Every non-dealer then reveals their lock inverse
// for it before the dealer opens it.
func (g *Game) DealCommunityCard(player Identity) error {
	if g.State.TexasState != TexasCommunityCardsAwaiting {
		return ErrInvalidPhase
	}
	_, _, err := g.requireTurn(player)
	if err != nil {
		return err
	}
	if g.State.CardsLeftInDeck == 0 {
		return ErrInvalidPhase
	}

	switch g.State.CommunityState {
	case CommunityFlopAwaiting:
		if g.Community.CardCount >= 3 {
			return ErrInvalidPhase
		}
	case CommunityTurnAwaiting:
		if g.Community.CardCount != 3 {
			return ErrInvalidPhase
		}
	case CommunityRiverAwaiting:
		if g.Community.CardCount != 4 {
			return ErrInvalidPhase
		}
	default:
		return ErrInvalidPhase
	}

	g.State.CardsLeftInDeck--
	pos := g.State.CardsLeftInDeck

	g.Deck.SetOwner(pos, player)
	g.Community.AddCard(pos)
	g.State.CardToReveal = pos

	g.State.CommunityState = CommunityOpening
	g.State.DrawingState = DrawRevealing
	g.Players.ResetRevealed()

	g.touch()
	g.log.Debugf("game %s: community card dealt from position %d", g.Config.GameID, pos)
	return nil
}

// OpenCommunityCard removes the dealer's own lock from a fully revealed
// board card, resolves it against the original deck and advances the hand:
// back to dealing (flop not yet complete) or into the next betting round.
func (g *Game) OpenCommunityCard(player Identity, invKey [32]byte, cardIndex uint8) error {
	if g.State.TexasState != TexasCommunityCardsAwaiting || g.State.DrawingState != DrawPicking {
		return ErrInvalidPhase
	}
	if !g.Community.IsCommunityCard(cardIndex) {
		return ErrWrongRevealTarget
	}
	if g.Deck.Owner(cardIndex) != player {
		return ErrNotYourTurn
	}

	point := g.Deck.Point(cardIndex)
	decrypted, err := curve.MulBytes(&point, &invKey)
	if err != nil {
		return curveError(err)
	}
	id := g.Accumulator.FindCardByPoint(&decrypted)
	if id < 0 {
		return ErrUnknownCard
	}

	g.Deck.SetPoint(cardIndex, decrypted)
	g.Deck.ClearOwner(cardIndex)
	g.Community.AddOpened(decrypted, id)
	g.State.DrawingState = DrawNotDrawn

	dealerSeat := g.firstActiveFrom(g.Config.DealerIndex)
	opened := g.Community.OpenedCount
	switch {
	case opened < 3:
		// Flop still incomplete; deal the next card.
		g.State.CommunityState = CommunityFlopAwaiting
		g.State.CurrentTurn = dealerSeat
	case opened == 3:
		g.startBettingRound(BettingPostFlop)
	case opened == 4:
		g.startBettingRound(BettingPostTurn)
	default:
		g.startBettingRound(BettingShowdown)
	}

	g.touch()
	g.log.Infof("game %s: community card %d opened (%d on board)", g.Config.GameID, id, opened)
	return nil
}

// startBettingRound opens a post-deal betting round: action starts left of
// the dealer and closes on the dealer.
func (g *Game) startBettingRound(round BettingRoundState) {
	g.State.TexasState = TexasBetting
	g.State.BettingRound = round
	g.State.CurrentCallAmount = 0
	g.State.LastRaise = 0

	n := g.playerCount()
	first, ok := g.nextActorFrom(g.Config.DealerIndex)
	if !ok {
		first = g.firstActiveFrom((g.Config.DealerIndex + 1) % n)
	}
	g.State.CurrentTurn = first
	if last, ok := g.lastActorFrom(g.Config.DealerIndex); ok {
		g.State.LastToCall = g.seats[last].Player
	}

	g.maybeSkipBetting()
}
