package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vitorpy/solana-poker/pkg/poker"
)

func TestGameConfigRoundTrip(t *testing.T) {
	in := GameConfig{
		GameID:             GameID{1, 2, 3},
		Authority:          ident(0xaa),
		MaxPlayers:         6,
		CurrentPlayers:     4,
		SmallBlind:         25,
		MinBuyIn:           5000,
		DealerIndex:        3,
		IsAcceptingPlayers: true,
		CreatedAt:          1_700_000_000,
		TimeoutSeconds:     90,
		SlashPercentage:    15,
		GameNumber:         7,
	}

	data := in.MarshalBinary()
	require.Len(t, data, GameConfigSize)

	var out GameConfig
	require.NoError(t, out.UnmarshalBinary(data))
	require.Equal(t, in, out)
}

func TestGameStateRoundTrip(t *testing.T) {
	in := GameState{
		GameID:              GameID{9},
		GamePhase:           PhaseDrawing,
		ShufflingState:      ShuffleLocking,
		DrawingState:        DrawRevealing,
		TexasState:          TexasBetting,
		BettingRound:        BettingPostTurn,
		CommunityState:      CommunityRiverAwaiting,
		CurrentTurn:         2,
		ActivePlayerCount:   1,
		NumFoldedPlayers:    1,
		CardsDrawn:          8,
		PlayerCardsOpened:   3,
		NumSubmittedHands:   2,
		Pot:                 12345,
		CurrentCallAmount:   400,
		LastRaise:           200,
		LastToCall:          ident(5),
		IsEverybodyAllIn:    true,
		PotClaimed:          false,
		CardToReveal:        47,
		CardsLeftInDeck:     40,
		IsDeckSubmitted:     true,
		LastActionTimestamp: -12345, // negative timestamps survive
	}

	data := in.MarshalBinary()
	require.Len(t, data, GameStateSize)

	var out GameState
	require.NoError(t, out.UnmarshalBinary(data))
	require.Equal(t, in, out)
}

func TestPlayerStateRoundTrip(t *testing.T) {
	in := *NewPlayerState(GameID{4}, ident(7), 3, 2500, [32]byte{0xcc})
	in.CurrentBet = 75
	in.HoleCards = [2]uint8{51, 48}
	in.HoleCardIDs = [2]int8{12, 40}
	in.HoleCardsCount = 2
	in.RevealedCards[0][0] = 0xde
	in.RevealedCards[1][63] = 0xad
	in.RevealedCardsCount = 2
	in.IsFolded = true
	in.SubmittedHand = poker.Flush
	in.HandCards = poker.HandTiebreak{13, 12, 8, 4, 2}
	in.HasSubmittedHand = true
	in.ShufflePart1Done = true

	data := in.MarshalBinary()
	require.Len(t, data, PlayerStateSize)

	var out PlayerState
	require.NoError(t, out.UnmarshalBinary(data))
	require.Equal(t, in, out)
}

func TestPlayerListRoundTrip(t *testing.T) {
	in := NewPlayerList(GameID{8})
	for i := 0; i < 4; i++ {
		_, ok := in.Add(ident(byte(i + 1)))
		require.True(t, ok)
	}
	in.MarkRevealed(0)
	in.MarkRevealed(3)

	data := in.MarshalBinary()
	require.Len(t, data, PlayerListSize)

	var out PlayerList
	require.NoError(t, out.UnmarshalBinary(data))
	require.Equal(t, *in, out)
	require.True(t, out.HasRevealed(3))
	require.False(t, out.HasRevealed(1))
	require.Equal(t, uint8(2), out.CountRevealed())
}

func TestDeckStateRoundTrip(t *testing.T) {
	in := NewDeckState(GameID{3})
	in.WorkDeck[0][0] = 1
	in.WorkDeck[51][63] = 2
	in.SetOwner(17, ident(9))

	data := in.MarshalBinary()
	require.Len(t, data, DeckStateSize)

	var out DeckState
	require.NoError(t, out.UnmarshalBinary(data))
	require.Equal(t, *in, out)
	require.Equal(t, ident(9), out.Owner(17))
}

func TestAccumulatorStateRoundTrip(t *testing.T) {
	in := NewAccumulatorState(GameID{2})
	in.Accumulator.Slots[0][31] = 5
	in.OriginalDeck[51][0] = 0x30

	data := in.MarshalBinary()
	require.Len(t, data, AccumulatorStateSize)

	var out AccumulatorState
	require.NoError(t, out.UnmarshalBinary(data))
	require.Equal(t, *in, out)
}

func TestCommunityCardsRoundTrip(t *testing.T) {
	in := NewCommunityCards(GameID{6})
	in.AddCard(51)
	in.AddCard(50)
	var pt [64]byte
	pt[5] = 0x99
	in.AddOpened(pt, 33)

	data := in.MarshalBinary()
	require.Len(t, data, CommunityCardsSize)

	var out CommunityCards
	require.NoError(t, out.UnmarshalBinary(data))
	require.Equal(t, *in, out)
	require.True(t, out.IsCommunityCard(50))
	require.False(t, out.IsCommunityCard(49))
	require.Equal(t, int8(33), out.FindOpened(&pt))
}

func TestUnmarshalShortBuffers(t *testing.T) {
	short := make([]byte, 4)
	require.Error(t, new(GameConfig).UnmarshalBinary(short))
	require.Error(t, new(GameState).UnmarshalBinary(short))
	require.Error(t, new(PlayerState).UnmarshalBinary(short))
	require.Error(t, new(PlayerList).UnmarshalBinary(short))
	require.Error(t, new(DeckState).UnmarshalBinary(short))
	require.Error(t, new(AccumulatorState).UnmarshalBinary(short))
	require.Error(t, new(CommunityCards).UnmarshalBinary(short))
}

func TestDeriveAddresses(t *testing.T) {
	gameA, gameB := GameID{1}, GameID{2}

	// Distinct namespaces and games produce distinct addresses.
	seen := make(map[[32]byte]bool)
	for _, ns := range []string{
		NSGameConfig, NSGameState, NSPlayer, NSDeck,
		NSAccumulator, NSCommunity, NSVault, NSPlayerList,
	} {
		for _, id := range []GameID{gameA, gameB} {
			addr := DeriveAddress(ns, id)
			require.False(t, seen[addr])
			seen[addr] = true
		}
	}

	// Player addresses mix in the player identity.
	require.NotEqual(t,
		DerivePlayerAddress(gameA, ident(1)),
		DerivePlayerAddress(gameA, ident(2)))
	// Derivation is deterministic.
	require.Equal(t,
		DerivePlayerAddress(gameA, ident(1)),
		DerivePlayerAddress(gameA, ident(1)))
}
