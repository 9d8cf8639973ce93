package engine

import "encoding/binary"

// GameStateSize is the serialized size of a GameState record.
const GameStateSize = 32 + 6 + 6 + 8 + 8 + 8 + 32 + 2 + 3 + 8

// GameState is the per-game state machine record. The six phase fields form
// the authoritative state vector; everything else is turn, deck and pot
// bookkeeping.
type GameState struct {
	GameID GameID

	GamePhase      GamePhase
	ShufflingState ShufflingState
	DrawingState   DrawingState
	TexasState     TexasHoldEmState
	BettingRound   BettingRoundState
	CommunityState CommunityCardsState

	CurrentTurn       uint8
	ActivePlayerCount uint8
	NumFoldedPlayers  uint8
	CardsDrawn        uint8
	PlayerCardsOpened uint8
	NumSubmittedHands uint8

	Pot               uint64
	CurrentCallAmount uint64
	LastRaise         uint64
	LastToCall        Identity
	IsEverybodyAllIn  bool
	PotClaimed        bool

	CardToReveal    uint8
	CardsLeftInDeck uint8
	IsDeckSubmitted bool

	LastActionTimestamp int64
}

// NewGameState returns the state a fresh game starts in: waiting for players
// with the shuffle protocol in its commit window.
func NewGameState(gameID GameID, timestamp int64) *GameState {
	return &GameState{
		GameID:              gameID,
		GamePhase:           PhaseWaitingForPlayers,
		ShufflingState:      ShuffleCommitting,
		DrawingState:        DrawNotDrawn,
		TexasState:          TexasSetup,
		BettingRound:        BettingBlinds,
		CommunityState:      CommunityOpening,
		CardsLeftInDeck:     DeckSize,
		LastActionTimestamp: timestamp,
	}
}

// Reset clears the state machine for the next hand, preserving the game id.
func (s *GameState) Reset() {
	gameID := s.GameID
	*s = GameState{
		GameID:          gameID,
		GamePhase:       PhaseWaitingForPlayers,
		ShufflingState:  ShuffleNotStarted,
		DrawingState:    DrawNotDrawn,
		TexasState:      TexasSetup,
		BettingRound:    BettingBlinds,
		CommunityState:  CommunityOpening,
		CardsLeftInDeck: DeckSize,
	}
}

// MarshalBinary serializes the record in declaration order with no padding;
// integers are little-endian.
func (s *GameState) MarshalBinary() []byte {
	out := make([]byte, GameStateSize)
	off := 0

	copy(out[off:], s.GameID[:])
	off += 32

	out[off] = uint8(s.GamePhase)
	out[off+1] = uint8(s.ShufflingState)
	out[off+2] = uint8(s.DrawingState)
	out[off+3] = uint8(s.TexasState)
	out[off+4] = uint8(s.BettingRound)
	out[off+5] = uint8(s.CommunityState)
	off += 6

	out[off] = s.CurrentTurn
	out[off+1] = s.ActivePlayerCount
	out[off+2] = s.NumFoldedPlayers
	out[off+3] = s.CardsDrawn
	out[off+4] = s.PlayerCardsOpened
	out[off+5] = s.NumSubmittedHands
	off += 6

	binary.LittleEndian.PutUint64(out[off:], s.Pot)
	off += 8
	binary.LittleEndian.PutUint64(out[off:], s.CurrentCallAmount)
	off += 8
	binary.LittleEndian.PutUint64(out[off:], s.LastRaise)
	off += 8
	copy(out[off:], s.LastToCall[:])
	off += 32
	out[off] = boolByte(s.IsEverybodyAllIn)
	out[off+1] = boolByte(s.PotClaimed)
	off += 2

	out[off] = s.CardToReveal
	out[off+1] = s.CardsLeftInDeck
	out[off+2] = boolByte(s.IsDeckSubmitted)
	off += 3

	binary.LittleEndian.PutUint64(out[off:], uint64(s.LastActionTimestamp))

	return out
}

// UnmarshalBinary deserializes a GameState record.
func (s *GameState) UnmarshalBinary(data []byte) error {
	if len(data) < GameStateSize {
		return ErrInvalidInstruction
	}
	off := 0

	copy(s.GameID[:], data[off:])
	off += 32

	s.GamePhase = GamePhase(data[off])
	s.ShufflingState = ShufflingState(data[off+1])
	s.DrawingState = DrawingState(data[off+2])
	s.TexasState = TexasHoldEmState(data[off+3])
	s.BettingRound = BettingRoundState(data[off+4])
	s.CommunityState = CommunityCardsState(data[off+5])
	off += 6

	s.CurrentTurn = data[off]
	s.ActivePlayerCount = data[off+1]
	s.NumFoldedPlayers = data[off+2]
	s.CardsDrawn = data[off+3]
	s.PlayerCardsOpened = data[off+4]
	s.NumSubmittedHands = data[off+5]
	off += 6

	s.Pot = binary.LittleEndian.Uint64(data[off:])
	off += 8
	s.CurrentCallAmount = binary.LittleEndian.Uint64(data[off:])
	off += 8
	s.LastRaise = binary.LittleEndian.Uint64(data[off:])
	off += 8
	copy(s.LastToCall[:], data[off:])
	off += 32
	s.IsEverybodyAllIn = data[off] != 0
	s.PotClaimed = data[off+1] != 0
	off += 2

	s.CardToReveal = data[off]
	s.CardsLeftInDeck = data[off+1]
	s.IsDeckSubmitted = data[off+2] != 0
	off += 3

	s.LastActionTimestamp = int64(binary.LittleEndian.Uint64(data[off:]))

	return nil
}
