package engine

import (
	"github.com/vitorpy/solana-poker/pkg/curve"
	"github.com/vitorpy/solana-poker/pkg/shuffle"
)

// AccumulatorStateSize is the serialized size of an AccumulatorState record.
const AccumulatorStateSize = 32 + DeckSize*32 + DeckSize*curve.PointSize

// AccumulatorState holds the per-card shuffle accumulator and, once MapDeck
// has run, the canonical "original deck" points G * accumulator[i] used to
// identify revealed cards.
type AccumulatorState struct {
	GameID      GameID
	Accumulator shuffle.Accumulator

	// OriginalDeck[i] is the pristine point for card id i, the dictionary
	// from fully decrypted points back to 0..51 card indices.
	OriginalDeck [DeckSize][curve.PointSize]byte
}

// NewAccumulatorState returns an empty accumulator for a game.
func NewAccumulatorState(gameID GameID) *AccumulatorState {
	return &AccumulatorState{GameID: gameID}
}

// SetOriginalPoint stores the canonical point for a card id.
func (a *AccumulatorState) SetOriginalPoint(index int, point [curve.PointSize]byte) {
	if index >= 0 && index < DeckSize {
		a.OriginalDeck[index] = point
	}
}

// FindCardByPoint returns the card id whose original point equals the given
// point, or -1 when no card matches.
func (a *AccumulatorState) FindCardByPoint(point *[curve.PointSize]byte) int8 {
	for i := 0; i < DeckSize; i++ {
		if a.OriginalDeck[i] == *point {
			return int8(i)
		}
	}
	return -1
}

// Reset zeroes the accumulator slots and the original deck for a new hand.
func (a *AccumulatorState) Reset() {
	a.Accumulator.Reset()
	a.OriginalDeck = [DeckSize][curve.PointSize]byte{}
}

// MarshalBinary serializes the record in declaration order with no padding.
func (a *AccumulatorState) MarshalBinary() []byte {
	out := make([]byte, AccumulatorStateSize)
	off := 0

	copy(out[off:], a.GameID[:])
	off += 32
	for i := 0; i < DeckSize; i++ {
		copy(out[off:], a.Accumulator.Slots[i][:])
		off += 32
	}
	for i := 0; i < DeckSize; i++ {
		copy(out[off:], a.OriginalDeck[i][:])
		off += curve.PointSize
	}

	return out
}

// UnmarshalBinary deserializes an AccumulatorState record.
func (a *AccumulatorState) UnmarshalBinary(data []byte) error {
	if len(data) < AccumulatorStateSize {
		return ErrInvalidInstruction
	}
	off := 0

	copy(a.GameID[:], data[off:])
	off += 32
	for i := 0; i < DeckSize; i++ {
		copy(a.Accumulator.Slots[i][:], data[off:])
		off += 32
	}
	for i := 0; i < DeckSize; i++ {
		copy(a.OriginalDeck[i][:], data[off:])
		off += curve.PointSize
	}

	return nil
}
