package engine

import (
	"encoding/binary"

	"github.com/vitorpy/solana-poker/pkg/curve"
	"github.com/vitorpy/solana-poker/pkg/poker"
)

// PlayerStateSize is the serialized size of a PlayerState record.
const PlayerStateSize = 32 + 32 + 1 + 8 + 8 + 32 + 1 + 2 + 2 + 1 + 2*curve.PointSize + 1 + 1 + 1 + 5 + 1 + 3

// PlayerState is the per-player, per-game record.
type PlayerState struct {
	GameID    GameID
	Player    Identity
	SeatIndex uint8

	Chips      uint64
	CurrentBet uint64

	// Commitment is keccak256 of the player's shuffle seed, fixed at join.
	Commitment   [32]byte
	HasCommitted bool

	// HoleCards holds the deck positions drawn by this player; HoleCardIDs
	// holds the resolved 0..51 card indices, fixed only when the player
	// opens the card at showdown (-1 until then).
	HoleCards      [HoleCardsPerPlayer]uint8
	HoleCardIDs    [HoleCardsPerPlayer]int8
	HoleCardsCount uint8

	// RevealedCards are the fully decrypted hole-card points.
	RevealedCards      [HoleCardsPerPlayer][curve.PointSize]byte
	RevealedCardsCount uint8

	IsFolded bool

	// Showdown submission.
	SubmittedHand    poker.HandClass
	HandCards        poker.HandTiebreak
	HasSubmittedHand bool

	// Split transaction bookkeeping.
	ShufflePart1Done bool
	LockPart1Done    bool
	MapDeckPart1Done bool
}

// NewPlayerState seats a player with their buy-in and shuffle commitment.
func NewPlayerState(gameID GameID, player Identity, seatIndex uint8, chips uint64, commitment [32]byte) *PlayerState {
	p := &PlayerState{
		GameID:       gameID,
		Player:       player,
		SeatIndex:    seatIndex,
		Chips:        chips,
		Commitment:   commitment,
		HasCommitted: true,
	}
	p.clearHand()
	return p
}

func (p *PlayerState) clearHand() {
	p.CurrentBet = 0
	p.HoleCards = [HoleCardsPerPlayer]uint8{NoCard, NoCard}
	p.HoleCardIDs = [HoleCardsPerPlayer]int8{-1, -1}
	p.HoleCardsCount = 0
	p.RevealedCards = [HoleCardsPerPlayer][curve.PointSize]byte{}
	p.RevealedCardsCount = 0
	p.IsFolded = false
	p.SubmittedHand = poker.HighCard
	p.HandCards = poker.HandTiebreak{-1, -1, -1, -1, -1}
	p.HasSubmittedHand = false
	p.ShufflePart1Done = false
	p.LockPart1Done = false
	p.MapDeckPart1Done = false
}

// ResetForNextHand clears everything hand-scoped. The seed commitment made at
// join carries over to the next hand (see DESIGN.md).
func (p *PlayerState) ResetForNextHand() {
	p.clearHand()
}

// IsAllIn reports whether the player has committed their whole stack.
func (p *PlayerState) IsAllIn() bool {
	return p.Chips == 0 && p.CurrentBet > 0
}

// OwnsHolePosition reports whether a deck position is one of the player's
// drawn hole cards.
func (p *PlayerState) OwnsHolePosition(pos uint8) bool {
	for i := uint8(0); i < p.HoleCardsCount; i++ {
		if p.HoleCards[i] == pos {
			return true
		}
	}
	return false
}

// MarshalBinary serializes the record in declaration order with no padding;
// integers are little-endian.
func (p *PlayerState) MarshalBinary() []byte {
	out := make([]byte, PlayerStateSize)
	off := 0

	copy(out[off:], p.GameID[:])
	off += 32
	copy(out[off:], p.Player[:])
	off += 32
	out[off] = p.SeatIndex
	off++

	binary.LittleEndian.PutUint64(out[off:], p.Chips)
	off += 8
	binary.LittleEndian.PutUint64(out[off:], p.CurrentBet)
	off += 8

	copy(out[off:], p.Commitment[:])
	off += 32
	out[off] = boolByte(p.HasCommitted)
	off++

	out[off] = p.HoleCards[0]
	out[off+1] = p.HoleCards[1]
	off += 2
	out[off] = uint8(p.HoleCardIDs[0])
	out[off+1] = uint8(p.HoleCardIDs[1])
	off += 2
	out[off] = p.HoleCardsCount
	off++

	for i := 0; i < HoleCardsPerPlayer; i++ {
		copy(out[off:], p.RevealedCards[i][:])
		off += curve.PointSize
	}
	out[off] = p.RevealedCardsCount
	off++

	out[off] = boolByte(p.IsFolded)
	off++

	out[off] = uint8(p.SubmittedHand)
	off++
	for i := 0; i < 5; i++ {
		out[off+i] = uint8(p.HandCards[i])
	}
	off += 5
	out[off] = boolByte(p.HasSubmittedHand)
	off++

	out[off] = boolByte(p.ShufflePart1Done)
	out[off+1] = boolByte(p.LockPart1Done)
	out[off+2] = boolByte(p.MapDeckPart1Done)

	return out
}

// UnmarshalBinary deserializes a PlayerState record.
func (p *PlayerState) UnmarshalBinary(data []byte) error {
	if len(data) < PlayerStateSize {
		return ErrInvalidInstruction
	}
	off := 0

	copy(p.GameID[:], data[off:])
	off += 32
	copy(p.Player[:], data[off:])
	off += 32
	p.SeatIndex = data[off]
	off++

	p.Chips = binary.LittleEndian.Uint64(data[off:])
	off += 8
	p.CurrentBet = binary.LittleEndian.Uint64(data[off:])
	off += 8

	copy(p.Commitment[:], data[off:])
	off += 32
	p.HasCommitted = data[off] != 0
	off++

	p.HoleCards[0] = data[off]
	p.HoleCards[1] = data[off+1]
	off += 2
	p.HoleCardIDs[0] = int8(data[off])
	p.HoleCardIDs[1] = int8(data[off+1])
	off += 2
	p.HoleCardsCount = data[off]
	off++

	for i := 0; i < HoleCardsPerPlayer; i++ {
		copy(p.RevealedCards[i][:], data[off:])
		off += curve.PointSize
	}
	p.RevealedCardsCount = data[off]
	off++

	p.IsFolded = data[off] != 0
	off++

	p.SubmittedHand = poker.HandClass(data[off])
	off++
	for i := 0; i < 5; i++ {
		p.HandCards[i] = int8(data[off+i])
	}
	off += 5
	p.HasSubmittedHand = data[off] != 0
	off++

	p.ShufflePart1Done = data[off] != 0
	p.LockPart1Done = data[off+1] != 0
	p.MapDeckPart1Done = data[off+2] != 0

	return nil
}
