package engine

import "github.com/vitorpy/solana-poker/pkg/curve"

// CommunityCardsSize is the serialized size of a CommunityCards record.
const CommunityCardsSize = 32 + CommunityCardCount + 1 + CommunityCardCount*curve.PointSize + CommunityCardCount + 1

// CommunityCards tracks the board: the deck positions dealt to it, and the
// decrypted points plus resolved card ids once each is opened.
type CommunityCards struct {
	GameID GameID

	// Cards are the deck positions dealt to the board, in deal order.
	Cards     [CommunityCardCount]uint8
	CardCount uint8

	// OpenedPoints/OpenedIDs are the fully decrypted board cards.
	OpenedPoints [CommunityCardCount][curve.PointSize]byte
	OpenedIDs    [CommunityCardCount]int8
	OpenedCount  uint8
}

// NewCommunityCards returns an empty board.
func NewCommunityCards(gameID GameID) *CommunityCards {
	c := &CommunityCards{GameID: gameID}
	c.clear()
	return c
}

func (c *CommunityCards) clear() {
	c.Cards = [CommunityCardCount]uint8{NoCard, NoCard, NoCard, NoCard, NoCard}
	c.CardCount = 0
	c.OpenedPoints = [CommunityCardCount][curve.PointSize]byte{}
	c.OpenedIDs = [CommunityCardCount]int8{-1, -1, -1, -1, -1}
	c.OpenedCount = 0
}

// AddCard records a deck position dealt to the board.
func (c *CommunityCards) AddCard(pos uint8) bool {
	if c.CardCount >= CommunityCardCount {
		return false
	}
	c.Cards[c.CardCount] = pos
	c.CardCount++
	return true
}

// IsCommunityCard reports whether a deck position has been dealt to the
// board.
func (c *CommunityCards) IsCommunityCard(pos uint8) bool {
	for i := uint8(0); i < c.CardCount; i++ {
		if c.Cards[i] == pos {
			return true
		}
	}
	return false
}

// AddOpened records a fully decrypted board card and its resolved id.
func (c *CommunityCards) AddOpened(point [curve.PointSize]byte, id int8) bool {
	if c.OpenedCount >= CommunityCardCount {
		return false
	}
	c.OpenedPoints[c.OpenedCount] = point
	c.OpenedIDs[c.OpenedCount] = id
	c.OpenedCount++
	return true
}

// FindOpened returns the resolved card id for a decrypted point on the
// board, or -1 when the point is not an opened community card.
func (c *CommunityCards) FindOpened(point *[curve.PointSize]byte) int8 {
	for i := uint8(0); i < c.OpenedCount; i++ {
		if c.OpenedPoints[i] == *point {
			return c.OpenedIDs[i]
		}
	}
	return -1
}

// HasOpenedID reports whether a card id is already on the opened board.
func (c *CommunityCards) HasOpenedID(id int8) bool {
	for i := uint8(0); i < c.OpenedCount; i++ {
		if c.OpenedIDs[i] == id {
			return true
		}
	}
	return false
}

// Reset clears the board for the next hand.
func (c *CommunityCards) Reset() {
	c.clear()
}

// MarshalBinary serializes the record in declaration order with no padding.
func (c *CommunityCards) MarshalBinary() []byte {
	out := make([]byte, CommunityCardsSize)
	off := 0

	copy(out[off:], c.GameID[:])
	off += 32
	for i := 0; i < CommunityCardCount; i++ {
		out[off+i] = c.Cards[i]
	}
	off += CommunityCardCount
	out[off] = c.CardCount
	off++
	for i := 0; i < CommunityCardCount; i++ {
		copy(out[off:], c.OpenedPoints[i][:])
		off += curve.PointSize
	}
	for i := 0; i < CommunityCardCount; i++ {
		out[off+i] = uint8(c.OpenedIDs[i])
	}
	off += CommunityCardCount
	out[off] = c.OpenedCount

	return out
}

// UnmarshalBinary deserializes a CommunityCards record.
func (c *CommunityCards) UnmarshalBinary(data []byte) error {
	if len(data) < CommunityCardsSize {
		return ErrInvalidInstruction
	}
	off := 0

	copy(c.GameID[:], data[off:])
	off += 32
	for i := 0; i < CommunityCardCount; i++ {
		c.Cards[i] = data[off+i]
	}
	off += CommunityCardCount
	c.CardCount = data[off]
	off++
	for i := 0; i < CommunityCardCount; i++ {
		copy(c.OpenedPoints[i][:], data[off:])
		off += curve.PointSize
	}
	for i := 0; i < CommunityCardCount; i++ {
		c.OpenedIDs[i] = int8(data[off+i])
	}
	off += CommunityCardCount
	c.OpenedCount = data[off]

	return nil
}
