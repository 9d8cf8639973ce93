package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSlashTimeout(t *testing.T) {
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	g, players := newTestGame(t, 4, 1000, clock)
	enterPreFlop(t, g, players)

	// Seats: dealer 0, SB 1, BB 2, first to act 3.
	require.Equal(t, uint8(3), g.State.CurrentTurn)
	offender := players[3]

	// One second short of the timeout.
	clock.Advance(119 * time.Second)
	require.ErrorIs(t, g.Slash(players[0], offender), ErrTimeoutNotReached)

	clock.Advance(2 * time.Second)

	// Wrong offender is rejected.
	require.ErrorIs(t, g.Slash(players[0], players[1]), ErrInvalidInstruction)
	// Self-slash is rejected.
	require.ErrorIs(t, g.Slash(offender, offender), ErrInvalidInstruction)
	// Outsiders cannot slash.
	require.ErrorIs(t, g.Slash(ident(0x99), offender), ErrNotAPlayer)

	before := g.TotalChips()
	caller := players[1]
	require.NoError(t, g.Slash(caller, offender))

	// 10% of (1000 - 20 already bet as nothing: offender seat 3 had no
	// blind) = 100, split 34/33/33 with the caller first.
	offState, _ := g.PlayerState(offender)
	require.Equal(t, uint64(900), offState.Chips)
	require.True(t, offState.IsFolded)

	callerState, _ := g.PlayerState(caller)
	require.Equal(t, uint64(990+34), callerState.Chips) // SB posted 10

	s0, _ := g.PlayerState(players[0])
	s2, _ := g.PlayerState(players[2])
	require.Equal(t, uint64(1000+33), s0.Chips)
	require.Equal(t, uint64(980+33), s2.Chips) // BB posted 20

	// Conservation holds and the turn moved past the offender.
	require.Equal(t, before, g.TotalChips())
	require.Equal(t, uint8(0), g.State.CurrentTurn)
	require.Equal(t, clock.now.Unix(), g.State.LastActionTimestamp)
}

func TestSlashExactBoundary(t *testing.T) {
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	g, players := newTestGame(t, 2, 1000, clock)
	enterPreFlop(t, g, players)

	// Exactly timeoutSeconds elapsed: slash is legal.
	clock.Advance(time.Duration(g.Config.TimeoutSeconds) * time.Second)
	require.NoError(t, g.Slash(players[0], players[1]))

	// Heads-up, slashing the only opponent ends the hand.
	require.Equal(t, TexasClaimPot, g.State.TexasState)
}

func TestSlashRejectedOutsideHand(t *testing.T) {
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}

	var gameID GameID
	gameID[0] = 9
	g, err := NewGame(InitializeGameParams{
		GameID:     gameID,
		Authority:  ident(0xff),
		MaxPlayers: 3,
		SmallBlind: 10,
		MinBuyIn:   1000,
	}, WithClock(clock.Now))
	require.NoError(t, err)

	p1, p2 := ident(1), ident(2)
	require.NoError(t, g.JoinGame(p1, [32]byte{1}, 1000))
	require.NoError(t, g.JoinGame(p2, [32]byte{2}, 1000))

	clock.Advance(1000 * time.Second)
	require.ErrorIs(t, g.Slash(p1, p2), ErrInvalidPhase)
}

func TestSlashDuringRevealTargetsNonRevealer(t *testing.T) {
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	g, players := newTestGame(t, 3, 1000, clock)
	enterBlinds(g)

	// Fake an in-flight reveal: seat 0 drew the target card, seat 1 has
	// revealed, seat 2 is overdue.
	g.State.TexasState = TexasDrawing
	g.State.DrawingState = DrawRevealing
	g.State.CardToReveal = 51
	g.State.CurrentTurn = 0
	g.Deck.SetOwner(51, players[0])
	seat1, _ := g.Players.Find(players[1])
	g.Players.MarkRevealed(seat1)

	clock.Advance(300 * time.Second)

	// Seat 1 already revealed, so the overdue player is seat 2.
	require.ErrorIs(t, g.Slash(players[0], players[1]), ErrInvalidInstruction)
	require.NoError(t, g.Slash(players[0], players[2]))

	slashed, _ := g.PlayerState(players[2])
	require.True(t, slashed.IsFolded)
	require.Equal(t, uint64(900), slashed.Chips)
}

func TestMulPercent(t *testing.T) {
	require.Equal(t, uint64(100), mulPercent(1000, 10))
	require.Equal(t, uint64(0), mulPercent(1000, 0))
	require.Equal(t, uint64(1000), mulPercent(1000, 100))
	require.Equal(t, uint64(33), mulPercent(333, 10))
	// No overflow near the top of the range.
	huge := uint64(1) << 62
	require.Equal(t, huge/2, mulPercent(huge, 50))
}
