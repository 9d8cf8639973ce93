package engine

import "github.com/vitorpy/solana-poker/pkg/curve"

// DeckStateSize is the serialized size of a DeckState record.
const DeckStateSize = 32 + DeckSize*curve.PointSize + DeckSize*32

// DeckState holds the 52 encrypted deck points in their current form, plus
// the identity that owns each drawn or dealt position.
type DeckState struct {
	GameID GameID

	// WorkDeck is the deck as last written by the deck mapping, a shuffle,
	// lock or reveal.
	WorkDeck [DeckSize][curve.PointSize]byte

	// CardOwners maps a deck position to the player who drew it (or the
	// dealer who dealt it to the board). Zero means unowned.
	CardOwners [DeckSize]Identity
}

// NewDeckState returns an empty deck for a game.
func NewDeckState(gameID GameID) *DeckState {
	return &DeckState{GameID: gameID}
}

// Point returns the current point at a deck position.
func (d *DeckState) Point(pos uint8) [curve.PointSize]byte {
	return d.WorkDeck[pos]
}

// SetPoint stores a point at a deck position.
func (d *DeckState) SetPoint(pos uint8, point [curve.PointSize]byte) {
	d.WorkDeck[pos] = point
}

// Owner returns the identity owning a deck position.
func (d *DeckState) Owner(pos uint8) Identity {
	return d.CardOwners[pos]
}

// SetOwner records the owner of a deck position.
func (d *DeckState) SetOwner(pos uint8, owner Identity) {
	d.CardOwners[pos] = owner
}

// ClearOwner releases a deck position.
func (d *DeckState) ClearOwner(pos uint8) {
	d.CardOwners[pos] = Identity{}
}

// Reset clears the deck for the next hand.
func (d *DeckState) Reset() {
	d.WorkDeck = [DeckSize][curve.PointSize]byte{}
	d.CardOwners = [DeckSize]Identity{}
}

// MarshalBinary serializes the record in declaration order with no padding.
func (d *DeckState) MarshalBinary() []byte {
	out := make([]byte, DeckStateSize)
	off := 0

	copy(out[off:], d.GameID[:])
	off += 32
	for i := 0; i < DeckSize; i++ {
		copy(out[off:], d.WorkDeck[i][:])
		off += curve.PointSize
	}
	for i := 0; i < DeckSize; i++ {
		copy(out[off:], d.CardOwners[i][:])
		off += 32
	}

	return out
}

// UnmarshalBinary deserializes a DeckState record.
func (d *DeckState) UnmarshalBinary(data []byte) error {
	if len(data) < DeckStateSize {
		return ErrInvalidInstruction
	}
	off := 0

	copy(d.GameID[:], data[off:])
	off += 32
	for i := 0; i < DeckSize; i++ {
		copy(d.WorkDeck[i][:], data[off:])
		off += curve.PointSize
	}
	for i := 0; i < DeckSize; i++ {
		copy(d.CardOwners[i][:], data[off:])
		off += 32
	}

	return nil
}
