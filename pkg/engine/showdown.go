package engine

import (
	"github.com/vitorpy/solana-poker/pkg/curve"
	"github.com/vitorpy/solana-poker/pkg/poker"
)

// OpenCard removes the owner's own lock from one of their hole cards at
// showdown. With every other lock already stripped during the draw, the
// decoded point resolves against the original deck and pins the card's
// 0..51 identity.
func (g *Game) OpenCard(player Identity, invKey [32]byte, cardIndex uint8) error {
	if g.State.TexasState != TexasRevealing || g.State.BettingRound != BettingShowdown {
		return ErrInvalidPhase
	}
	_, state, err := g.requireTurn(player)
	if err != nil {
		return err
	}
	if state.IsFolded {
		return ErrInvalidPhase
	}
	if g.Community.IsCommunityCard(cardIndex) {
		return ErrWrongRevealTarget
	}
	if g.Deck.Owner(cardIndex) != player || !state.OwnsHolePosition(cardIndex) {
		return ErrWrongRevealTarget
	}
	if state.RevealedCardsCount >= HoleCardsPerPlayer {
		return ErrInvalidPhase
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

	idx := state.RevealedCardsCount
	state.RevealedCards[idx] = decrypted
	state.HoleCardIDs[idx] = id
	state.RevealedCardsCount++
	g.State.PlayerCardsOpened++

	totalNeeded := g.activePlayers() * HoleCardsPerPlayer
	if g.State.PlayerCardsOpened >= totalNeeded {
		g.State.TexasState = TexasSubmitBest
		g.State.CurrentTurn = g.firstActiveFrom((g.Config.DealerIndex + 3) % g.playerCount())
		g.log.Infof("game %s: all hole cards opened, hand submission begins", g.Config.GameID)
	} else if state.RevealedCardsCount >= HoleCardsPerPlayer {
		g.State.CurrentTurn = g.nextActiveSeat(g.State.CurrentTurn)
	}

	g.touch()
	return nil
}

// SubmitBestHand accepts a player's best five cards as uncompressed points.
// Each must be one of the player's two opened hole cards or one of the five
// opened board cards, with no repetition; the hand is then ranked on-chain.
func (g *Game) SubmitBestHand(player Identity, points [5][curve.PointSize]byte) error {
	if g.State.TexasState != TexasSubmitBest {
		return ErrInvalidPhase
	}
	_, state, err := g.requireTurn(player)
	if err != nil {
		return err
	}
	if state.IsFolded || state.HasSubmittedHand {
		return ErrInvalidPhase
	}

	var cards [5]poker.Card
	for i := range points {
		id := int8(-1)
		for k := uint8(0); k < state.RevealedCardsCount; k++ {
			if state.RevealedCards[k] == points[i] {
				id = state.HoleCardIDs[k]
				break
			}
		}
		if id < 0 {
			id = g.Community.FindOpened(&points[i])
		}
		if id < 0 {
			return ErrInvalidBestHand
		}
		for j := 0; j < i; j++ {
			if cards[j] == id {
				return ErrInvalidBestHand
			}
		}
		cards[i] = id
	}

	class, tiebreak := poker.EvaluateHand(cards)
	state.SubmittedHand = class
	state.HandCards = tiebreak
	state.HasSubmittedHand = true
	g.State.NumSubmittedHands++

	g.log.Infof("game %s: player %s submitted %s", g.Config.GameID, player, class)

	if g.State.NumSubmittedHands >= g.activePlayers() {
		g.State.TexasState = TexasClaimPot
		g.State.CurrentTurn = g.firstActiveFrom(g.Config.DealerIndex)
		g.log.Infof("game %s: all hands submitted, pot may be claimed", g.Config.GameID)
	} else {
		g.State.CurrentTurn = g.nextActiveSeat(g.State.CurrentTurn)
	}

	g.touch()
	return nil
}
