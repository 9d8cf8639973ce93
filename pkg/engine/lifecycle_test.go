package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGameValidation(t *testing.T) {
	base := InitializeGameParams{
		GameID:     GameID{1},
		Authority:  ident(0xff),
		MaxPlayers: 2,
		SmallBlind: 10,
		MinBuyIn:   1000,
	}

	_, err := NewGame(base)
	require.NoError(t, err)

	bad := base
	bad.MaxPlayers = 1
	_, err = NewGame(bad)
	require.ErrorIs(t, err, ErrInvalidInstruction)

	bad = base
	bad.MaxPlayers = 11
	_, err = NewGame(bad)
	require.ErrorIs(t, err, ErrInvalidInstruction)

	bad = base
	bad.SmallBlind = 0
	_, err = NewGame(bad)
	require.ErrorIs(t, err, ErrInvalidInstruction)

	bad = base
	bad.MinBuyIn = 15 // below one big blind
	_, err = NewGame(bad)
	require.ErrorIs(t, err, ErrInvalidInstruction)

	bad = base
	bad.SlashPercentage = 101
	_, err = NewGame(bad)
	require.ErrorIs(t, err, ErrInvalidInstruction)

	// Defaults fill in the arbiter parameters.
	g, err := NewGame(base)
	require.NoError(t, err)
	require.Equal(t, uint32(DefaultTimeoutSeconds), g.Config.TimeoutSeconds)
	require.Equal(t, uint8(DefaultSlashPercentage), g.Config.SlashPercentage)
}

func TestLeaveBeforeStart(t *testing.T) {
	var gameID GameID
	gameID[0] = 0x55
	g, err := NewGame(InitializeGameParams{
		GameID:     gameID,
		Authority:  ident(0xff),
		MaxPlayers: 3,
		SmallBlind: 10,
		MinBuyIn:   1000,
	})
	require.NoError(t, err)

	p1, p2 := ident(1), ident(2)
	require.NoError(t, g.JoinGame(p1, [32]byte{1}, 1000))
	require.NoError(t, g.JoinGame(p2, [32]byte{2}, 1500))
	require.Equal(t, uint64(2500), g.Vault().Balance())

	require.NoError(t, g.Leave(p1))
	require.Equal(t, uint64(1500), g.Vault().Balance())
	require.Equal(t, uint8(1), g.Config.CurrentPlayers)

	// The remaining player shifted down to seat 0.
	state, ok := g.PlayerState(p2)
	require.True(t, ok)
	require.Equal(t, uint8(0), state.SeatIndex)

	vault := g.Vault().(*MemoryVault)
	require.Equal(t, uint64(1000), vault.Paid[p1])
}

func TestLeaveRejectedMidHand(t *testing.T) {
	g, players := newTestGame(t, 2, 1000, nil)
	enterPreFlop(t, g, players)
	require.ErrorIs(t, g.Leave(players[0]), ErrCannotLeaveNow)
}

func TestCloseGame(t *testing.T) {
	g, players := newTestGame(t, 2, 1000, nil)
	// Mid-hand close is rejected even for the authority.
	enterPreFlop(t, g, players)
	require.ErrorIs(t, g.CloseGame(ident(0xff)), ErrInvalidPhase)

	// Settle the hand, then close.
	require.NoError(t, g.Fold(players[1]))
	require.NoError(t, g.ClaimPot(players[0]))

	require.ErrorIs(t, g.CloseGame(players[0]), ErrNotAuthority)
	require.NoError(t, g.CloseGame(ident(0xff)))

	require.Equal(t, PhaseFinished, g.State.GamePhase)
	require.Equal(t, uint64(0), g.Vault().Balance())

	vault := g.Vault().(*MemoryVault)
	require.Equal(t, uint64(1010), vault.Paid[players[0]])
	require.Equal(t, uint64(990), vault.Paid[players[1]])
}

func TestStartNextGame(t *testing.T) {
	g, players := newTestGame(t, 2, 1000, nil)
	enterPreFlop(t, g, players)

	// Settlement required first.
	require.ErrorIs(t, g.StartNextGame(players[0]), ErrInvalidPhase)

	require.NoError(t, g.Fold(players[1]))
	require.NoError(t, g.ClaimPot(players[0]))

	dealerBefore := g.Config.DealerIndex
	require.NoError(t, g.StartNextGame(players[0]))

	require.Equal(t, (dealerBefore+1)%2, g.Config.DealerIndex)
	require.Equal(t, uint32(1), g.Config.GameNumber)
	require.Equal(t, PhaseShuffling, g.State.GamePhase)
	require.Equal(t, ShuffleGenerating, g.State.ShufflingState)
	require.Equal(t, uint8(DeckSize), g.State.CardsLeftInDeck)
	require.Zero(t, g.State.Pot)
	require.False(t, g.State.PotClaimed)

	// Hand-scoped player state is cleared; chips and commitments persist.
	for i, p := range players {
		state, ok := g.PlayerState(p)
		require.True(t, ok)
		require.False(t, state.IsFolded)
		require.Zero(t, state.HoleCardsCount)
		require.True(t, state.HasCommitted)
		require.Equal(t, [32]byte{byte(i + 1)}, state.Commitment)
	}
	require.Equal(t, uint64(2000), g.TotalChips())
}

func TestClaimPotValidation(t *testing.T) {
	g, players := newTestGame(t, 2, 1000, nil)
	enterPreFlop(t, g, players)

	require.ErrorIs(t, g.ClaimPot(players[0]), ErrInvalidPhase)
	require.NoError(t, g.Fold(players[1]))

	require.ErrorIs(t, g.ClaimPot(ident(0x88)), ErrNotAPlayer)
	require.NoError(t, g.ClaimPot(players[0]))
	require.ErrorIs(t, g.ClaimPot(players[0]), ErrInvalidPhase)
}

func TestPotTieSplitRemainderOrder(t *testing.T) {
	g, players := newTestGame(t, 3, 1000, nil)
	enterPreFlop(t, g, players)

	// Everyone checks through to a fake settled state with identical
	// submitted hands and a pot of 100.
	g.State.TexasState = TexasClaimPot
	g.State.Pot = 100
	for _, p := range players {
		state, _ := g.PlayerState(p)
		state.Chips = 0
		state.HasSubmittedHand = true
		state.SubmittedHand = 8 // pair
		state.HandCards = [5]int8{10, 8, 5, 2, -1}
		state.CurrentBet = 0
	}
	g.State.CurrentCallAmount = 0

	require.NoError(t, g.ClaimPot(players[0]))

	// Dealer is seat 0: seat order from dealer+1 is 1, 2, 0, so seat 1
	// gets the odd chip.
	s0, _ := g.PlayerState(players[0])
	s1, _ := g.PlayerState(players[1])
	s2, _ := g.PlayerState(players[2])
	require.Equal(t, uint64(34), s1.Chips)
	require.Equal(t, uint64(33), s2.Chips)
	require.Equal(t, uint64(33), s0.Chips)
}

func TestZeroPotClaim(t *testing.T) {
	g, players := newTestGame(t, 2, 1000, nil)
	enterPreFlop(t, g, players)
	require.NoError(t, g.Fold(players[1]))

	// Drain the pot artificially: a zero pot still settles cleanly.
	g.State.Pot = 0
	winnerBefore, _ := g.PlayerState(players[0])
	chips := winnerBefore.Chips
	require.NoError(t, g.ClaimPot(players[0]))
	require.Equal(t, chips, winnerBefore.Chips)
	require.True(t, g.State.PotClaimed)
}
