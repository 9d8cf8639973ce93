package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaceBlinds(t *testing.T) {
	g, players := newTestGame(t, 2, 1000, nil)
	enterBlinds(g)

	sb := players[1] // dealer is seat 0, small blind seat 1
	bb := players[0]

	// Wrong amount is rejected.
	require.ErrorIs(t, g.PlaceBlind(sb, 15), ErrInvalidBet)
	// Wrong player is rejected.
	require.ErrorIs(t, g.PlaceBlind(bb, 20), ErrNotYourTurn)

	require.NoError(t, g.PlaceBlind(sb, 10))
	require.Equal(t, uint64(10), g.State.Pot)
	require.Equal(t, uint64(10), g.State.CurrentCallAmount)

	require.NoError(t, g.PlaceBlind(bb, 20))
	require.Equal(t, uint64(30), g.State.Pot)
	require.Equal(t, uint64(20), g.State.CurrentCallAmount)

	// Blinds complete: the hand moves to the drawing phase.
	require.Equal(t, TexasDrawing, g.State.TexasState)
	require.Equal(t, DrawPicking, g.State.DrawingState)
	require.Equal(t, uint8(1), g.State.CurrentTurn) // (dealer+3) % 2
}

func TestShortStackBlindIsAllIn(t *testing.T) {
	g, players := newTestGame(t, 2, 1000, nil)
	enterBlinds(g)

	// Drain the small blind seat below the blind.
	state, _ := g.PlayerState(players[1])
	state.Chips = 6
	require.NoError(t, g.PlaceBlind(players[1], 6))
	require.True(t, state.IsAllIn())
}

func TestMinimumRaiseRule(t *testing.T) {
	g, players := newTestGame(t, 2, 1000, nil)
	enterPreFlop(t, g, players)

	first := players[1] // small blind acts first heads-up
	second := players[0]

	// Raise to 40: the minimum (raise size = big blind).
	require.NoError(t, g.Bet(first, 30))
	require.Equal(t, uint64(40), g.State.CurrentCallAmount)
	require.Equal(t, uint64(20), g.State.LastRaise)

	// Re-raise to 80: raise size 40.
	require.NoError(t, g.Bet(second, 60))
	require.Equal(t, uint64(80), g.State.CurrentCallAmount)
	require.Equal(t, uint64(40), g.State.LastRaise)

	// Raising to 100 is below the 120 minimum.
	require.ErrorIs(t, g.Bet(first, 60), ErrInvalidBet)

	// Calling 80 is fine and closes the round.
	require.NoError(t, g.Bet(first, 40))
	require.Equal(t, TexasCommunityCardsAwaiting, g.State.TexasState)
	require.Equal(t, CommunityFlopAwaiting, g.State.CommunityState)
	require.Equal(t, uint64(160), g.State.Pot)
}

func TestBelowMinimumRaiseRejectedAboveCall(t *testing.T) {
	g, players := newTestGame(t, 2, 1000, nil)
	enterPreFlop(t, g, players)

	// Call is 20, current bet 10: a bet of 25 (total 35) is neither call
	// nor legal raise.
	require.ErrorIs(t, g.Bet(players[1], 25), ErrInvalidBet)
}

func TestCheckAroundCompletesRound(t *testing.T) {
	g, players := newTestGame(t, 2, 1000, nil)
	enterPreFlop(t, g, players)

	require.NoError(t, g.Bet(players[1], 10)) // small blind calls
	require.Equal(t, TexasBetting, g.State.TexasState)
	require.NoError(t, g.Bet(players[0], 0)) // big blind checks
	require.Equal(t, TexasCommunityCardsAwaiting, g.State.TexasState)

	// Per-round bets are zeroed on completion.
	for _, p := range players {
		state, _ := g.PlayerState(p)
		require.Zero(t, state.CurrentBet)
	}
	require.Zero(t, g.State.CurrentCallAmount)
	require.Equal(t, uint64(40), g.State.Pot)
}

func TestBetValidation(t *testing.T) {
	g, players := newTestGame(t, 2, 1000, nil)
	enterPreFlop(t, g, players)

	// More than the stack.
	require.ErrorIs(t, g.Bet(players[1], 2000), ErrInsufficientFunds)
	// Out of turn.
	require.ErrorIs(t, g.Bet(players[0], 0), ErrNotYourTurn)
	// Unknown player.
	require.ErrorIs(t, g.Bet(ident(0x77), 0), ErrNotAPlayer)
	// Betting op during blinds round.
	g2, _ := newTestGame(t, 2, 1000, nil)
	enterBlinds(g2)
	require.ErrorIs(t, g2.Bet(players[1], 10), ErrInvalidPhase)
}

func TestAllInForExactStack(t *testing.T) {
	g, players := newTestGame(t, 2, 1000, nil)
	enterPreFlop(t, g, players)

	state, _ := g.PlayerState(players[1])
	require.NoError(t, g.Bet(players[1], state.Chips))
	require.True(t, state.IsAllIn())

	// Caller goes all-in too; the betting round auto-finishes and the flag
	// is set.
	other, _ := g.PlayerState(players[0])
	require.NoError(t, g.Bet(players[0], other.Chips))
	require.True(t, g.State.IsEverybodyAllIn)
	require.Equal(t, TexasCommunityCardsAwaiting, g.State.TexasState)
}

func TestEarlyFoldEndsHand(t *testing.T) {
	g, players := newTestGame(t, 2, 1000, nil)
	enterPreFlop(t, g, players)

	// Small blind folds pre-flop; the lone opponent wins the blinds.
	require.NoError(t, g.Fold(players[1]))
	require.Equal(t, TexasClaimPot, g.State.TexasState)

	require.NoError(t, g.ClaimPot(players[0]))
	require.True(t, g.State.PotClaimed)
	require.Equal(t, TexasStartNext, g.State.TexasState)

	winner, _ := g.PlayerState(players[0])
	loser, _ := g.PlayerState(players[1])
	require.Equal(t, uint64(1010), winner.Chips)
	require.Equal(t, uint64(990), loser.Chips)
	require.Equal(t, uint64(2000), g.TotalChips())
}

func TestFoldValidation(t *testing.T) {
	g, players := newTestGame(t, 3, 1000, nil)
	enterPreFlop(t, g, players)

	require.ErrorIs(t, g.Fold(players[1]), ErrNotYourTurn)
	require.NoError(t, g.Fold(players[0]))

	// A folded player is skipped by the turn pointer and cannot act.
	require.ErrorIs(t, g.Bet(players[0], 0), ErrNotYourTurn)
	require.Equal(t, uint8(1), g.State.CurrentTurn)
}

func TestThreePlayerRoundCompletion(t *testing.T) {
	g, players := newTestGame(t, 3, 1000, nil)
	enterPreFlop(t, g, players)

	// Dealer seat 0, SB seat 1, BB seat 2, first to act seat 0.
	require.NoError(t, g.Bet(players[0], 20)) // call
	require.NoError(t, g.Bet(players[1], 10)) // call
	require.Equal(t, TexasBetting, g.State.TexasState)
	require.NoError(t, g.Bet(players[2], 0)) // BB checks, round over
	require.Equal(t, TexasCommunityCardsAwaiting, g.State.TexasState)
	require.Equal(t, uint64(60), g.State.Pot)
}

func TestRaiseReopensAction(t *testing.T) {
	g, players := newTestGame(t, 3, 1000, nil)
	enterPreFlop(t, g, players)

	require.NoError(t, g.Bet(players[0], 20)) // call
	require.NoError(t, g.Bet(players[1], 30)) // raise to 40
	require.NoError(t, g.Bet(players[2], 20)) // BB calls 40
	require.Equal(t, TexasBetting, g.State.TexasState)
	require.NoError(t, g.Bet(players[0], 20)) // caller matches, round closes
	require.Equal(t, TexasCommunityCardsAwaiting, g.State.TexasState)
	require.Equal(t, uint64(120), g.State.Pot)
}
