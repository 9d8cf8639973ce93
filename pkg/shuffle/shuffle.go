// Package shuffle implements the commit-reveal seed scheme for the mental
// poker shuffle: keccak256 commitments, per-card value derivation from a
// 32-byte seed and the per-card accumulator the derived values sum into.
package shuffle

import (
	"golang.org/x/crypto/sha3"
)

// DeckSize is the number of cards in the deck.
const DeckSize = 52

// SeedSize is the size of a shuffle seed and of a commitment.
const SeedSize = 32

// Keccak256 returns the keccak256 digest of data.
func Keccak256(data []byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// Commit computes the commitment to a shuffle seed: keccak256(seed).
func Commit(seed *[SeedSize]byte) [32]byte {
	return Keccak256(seed[:])
}

// VerifyCommit reports whether seed hashes to the stored commitment.
func VerifyCommit(commitment *[32]byte, seed *[SeedSize]byte) bool {
	return Keccak256(seed[:]) == *commitment
}

// DeriveValue derives the contribution for one card:
// v[i] = keccak256(seed || byte(i)).
func DeriveValue(seed *[SeedSize]byte, index uint8) [32]byte {
	var preimage [SeedSize + 1]byte
	copy(preimage[:SeedSize], seed[:])
	preimage[SeedSize] = index
	return Keccak256(preimage[:])
}

// DeriveVector derives all 52 card contributions from a seed.
func DeriveVector(seed *[SeedSize]byte) [DeckSize][32]byte {
	var out [DeckSize][32]byte
	for i := 0; i < DeckSize; i++ {
		out[i] = DeriveValue(seed, uint8(i))
	}
	return out
}

// Accumulator holds the per-card sums of every player's derived shuffle
// values. Slots wrap at 256 bits; the sum is reduced mod n only when used as
// a scalar.
type Accumulator struct {
	Slots [DeckSize][32]byte
}

// Add adds a derived value into the accumulator slot for one card.
func (a *Accumulator) Add(index int, value *[32]byte) {
	if index < 0 || index >= DeckSize {
		return
	}
	slot := &a.Slots[index]
	var carry uint16
	for i := 31; i >= 0; i-- {
		sum := uint16(slot[i]) + uint16(value[i]) + carry
		slot[i] = byte(sum)
		carry = sum >> 8
	}
}

// AddVector adds a full 52-value contribution into the accumulator.
func (a *Accumulator) AddVector(values *[DeckSize][32]byte) {
	for i := 0; i < DeckSize; i++ {
		a.Add(i, &values[i])
	}
}

// AddSeed derives a seed's 52 values and adds them into the accumulator.
func (a *Accumulator) AddSeed(seed *[SeedSize]byte) {
	for i := 0; i < DeckSize; i++ {
		v := DeriveValue(seed, uint8(i))
		a.Add(i, &v)
	}
}

// Reset zeroes every slot for the next hand.
func (a *Accumulator) Reset() {
	a.Slots = [DeckSize][32]byte{}
}
