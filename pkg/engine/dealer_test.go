package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vitorpy/solana-poker/pkg/curve"
)

// enterFlopAwaiting plays a heads-up table to the end of pre-flop betting.
func enterFlopAwaiting(t *testing.T, g *Game, players []Identity) {
	t.Helper()
	enterDrawing(t, g, players)

	var key [32]byte
	key[31] = 5
	for g.State.TexasState == TexasDrawing {
		drawer, _ := g.Players.Get(g.State.CurrentTurn)
		require.NoError(t, g.Draw(drawer))
		for _, p := range players {
			if p != drawer {
				require.NoError(t, g.RevealCard(p, key, g.State.CardToReveal))
			}
		}
	}

	require.NoError(t, g.Bet(players[1], 10)) // small blind calls
	require.NoError(t, g.Bet(players[0], 0))  // big blind checks
	require.Equal(t, TexasCommunityCardsAwaiting, g.State.TexasState)
	require.Equal(t, CommunityFlopAwaiting, g.State.CommunityState)
}

func TestCommunityDealFlopCycle(t *testing.T) {
	g, players := newTestGame(t, 2, 1000, nil)
	enterFlopAwaiting(t, g, players)

	dealer := players[0]
	other := players[1]

	// Only the dealer seat may deal.
	require.ErrorIs(t, g.DealCommunityCard(other), ErrNotYourTurn)

	var lock [32]byte
	lock[31] = 2
	inv, err := curve.ScalarInverse(&lock)
	require.NoError(t, err)

	for deal := 0; deal < 3; deal++ {
		require.NoError(t, g.DealCommunityCard(dealer))
		pos := g.State.CardToReveal
		require.Equal(t, uint8(47-deal), pos)
		require.Equal(t, dealer, g.Deck.Owner(pos))
		require.Equal(t, CommunityOpening, g.State.CommunityState)

		// Dealing again mid-reveal is rejected.
		require.ErrorIs(t, g.DealCommunityCard(dealer), ErrInvalidPhase)
		// Opening before the reveal cycle completes is rejected.
		require.ErrorIs(t, g.OpenCommunityCard(dealer, inv, pos), ErrInvalidPhase)

		// The non-dealer strips their lock (here: multiplies by 2, which
		// the dealer's "inverse of 2" open will undo).
		require.NoError(t, g.RevealCard(other, lock, pos))
		require.Equal(t, DrawPicking, g.State.DrawingState)

		// Wire the original deck so the opened point resolves to an id
		// equal to the position.
		point := g.Deck.Point(pos)
		decoded, err := curve.MulBytes(&point, &inv)
		require.NoError(t, err)
		g.Accumulator.SetOriginalPoint(int(pos), decoded)

		// A non-owner cannot open; a non-community index is rejected.
		require.ErrorIs(t, g.OpenCommunityCard(other, inv, pos), ErrNotYourTurn)
		require.ErrorIs(t, g.OpenCommunityCard(dealer, inv, 3), ErrWrongRevealTarget)

		require.NoError(t, g.OpenCommunityCard(dealer, inv, pos))
		require.Equal(t, int8(pos), g.Community.OpenedIDs[deal])
	}

	// Flop complete: post-flop betting opens left of the dealer.
	require.Equal(t, TexasBetting, g.State.TexasState)
	require.Equal(t, BettingPostFlop, g.State.BettingRound)
	require.Equal(t, uint8(3), g.Community.OpenedCount)
	require.Equal(t, uint8(1), g.State.CurrentTurn)
	require.Zero(t, g.State.CurrentCallAmount)

	// Checking through deals the turn card next.
	require.NoError(t, g.Bet(players[1], 0))
	require.NoError(t, g.Bet(players[0], 0))
	require.Equal(t, TexasCommunityCardsAwaiting, g.State.TexasState)
	require.Equal(t, CommunityTurnAwaiting, g.State.CommunityState)
	require.Equal(t, uint8(45), g.State.CardsLeftInDeck)
}

func TestCommunityStageCardCountGuards(t *testing.T) {
	g, players := newTestGame(t, 2, 1000, nil)
	enterFlopAwaiting(t, g, players)

	// Force a stage/count mismatch: the turn stage requires exactly three
	// dealt cards.
	g.State.CommunityState = CommunityTurnAwaiting
	require.ErrorIs(t, g.DealCommunityCard(players[0]), ErrInvalidPhase)

	g.State.CommunityState = CommunityRiverAwaiting
	require.ErrorIs(t, g.DealCommunityCard(players[0]), ErrInvalidPhase)
}

func TestUnknownCardOnBadCommunityOpen(t *testing.T) {
	g, players := newTestGame(t, 2, 1000, nil)
	enterFlopAwaiting(t, g, players)

	var lock [32]byte
	lock[31] = 2

	require.NoError(t, g.DealCommunityCard(players[0]))
	pos := g.State.CardToReveal
	require.NoError(t, g.RevealCard(players[1], lock, pos))

	// Opening with a key that does not decode to any original point.
	var wrongKey [32]byte
	wrongKey[31] = 9
	require.ErrorIs(t, g.OpenCommunityCard(players[0], wrongKey, pos), ErrUnknownCard)
}
