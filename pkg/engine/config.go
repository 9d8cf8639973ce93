package engine

import "encoding/binary"

// GameConfigSize is the serialized size of a GameConfig record.
const GameConfigSize = 32 + 32 + 1 + 1 + 8 + 8 + 1 + 1 + 8 + 4 + 1 + 4

// GameConfig holds the immutable game parameters plus the few slots that
// change between hands (player count, dealer, join window, hand counter).
type GameConfig struct {
	GameID             GameID
	Authority          Identity
	MaxPlayers         uint8
	CurrentPlayers     uint8
	SmallBlind         uint64
	MinBuyIn           uint64
	DealerIndex        uint8
	IsAcceptingPlayers bool
	CreatedAt          int64
	TimeoutSeconds     uint32
	SlashPercentage    uint8
	GameNumber         uint32
}

// BigBlind returns the big blind amount.
func (c *GameConfig) BigBlind() uint64 {
	return c.SmallBlind * 2
}

// MarshalBinary serializes the record in declaration order with no padding;
// integers are little-endian.
func (c *GameConfig) MarshalBinary() []byte {
	out := make([]byte, GameConfigSize)
	off := 0

	copy(out[off:], c.GameID[:])
	off += 32
	copy(out[off:], c.Authority[:])
	off += 32
	out[off] = c.MaxPlayers
	off++
	out[off] = c.CurrentPlayers
	off++
	binary.LittleEndian.PutUint64(out[off:], c.SmallBlind)
	off += 8
	binary.LittleEndian.PutUint64(out[off:], c.MinBuyIn)
	off += 8
	out[off] = c.DealerIndex
	off++
	out[off] = boolByte(c.IsAcceptingPlayers)
	off++
	binary.LittleEndian.PutUint64(out[off:], uint64(c.CreatedAt))
	off += 8
	binary.LittleEndian.PutUint32(out[off:], c.TimeoutSeconds)
	off += 4
	out[off] = c.SlashPercentage
	off++
	binary.LittleEndian.PutUint32(out[off:], c.GameNumber)

	return out
}

// UnmarshalBinary deserializes a GameConfig record.
func (c *GameConfig) UnmarshalBinary(data []byte) error {
	if len(data) < GameConfigSize {
		return ErrInvalidInstruction
	}
	off := 0

	copy(c.GameID[:], data[off:])
	off += 32
	copy(c.Authority[:], data[off:])
	off += 32
	c.MaxPlayers = data[off]
	off++
	c.CurrentPlayers = data[off]
	off++
	c.SmallBlind = binary.LittleEndian.Uint64(data[off:])
	off += 8
	c.MinBuyIn = binary.LittleEndian.Uint64(data[off:])
	off += 8
	c.DealerIndex = data[off]
	off++
	c.IsAcceptingPlayers = data[off] != 0
	off++
	c.CreatedAt = int64(binary.LittleEndian.Uint64(data[off:]))
	off += 8
	c.TimeoutSeconds = binary.LittleEndian.Uint32(data[off:])
	off += 4
	c.SlashPercentage = data[off]
	off++
	c.GameNumber = binary.LittleEndian.Uint32(data[off:])

	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
