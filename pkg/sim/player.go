// Package sim implements an in-process mental poker client: it holds the
// secrets a real player would keep off-chain (shuffle seed, shuffle scalar,
// permutation, per-card lock keys) and drives the engine through the
// protocol. Tests and cmd/pokersim use it to play complete hands.
package sim

import (
	"math/big"
	"math/rand"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/vitorpy/solana-poker/pkg/curve"
	"github.com/vitorpy/solana-poker/pkg/engine"
	"github.com/vitorpy/solana-poker/pkg/poker"
	"github.com/vitorpy/solana-poker/pkg/shuffle"
)

// Player holds one participant's off-chain secrets.
type Player struct {
	ID   engine.Identity
	Seed [32]byte

	rng           *rand.Rand
	shuffleScalar fr.Element
	perm          []int
	lockKeys      [engine.DeckSize]fr.Element
}

// NewPlayer creates a player with fresh secrets drawn from rng.
func NewPlayer(tag byte, rng *rand.Rand) *Player {
	p := &Player{rng: rng}
	p.ID[0] = tag
	p.ID[31] = tag
	rng.Read(p.Seed[:])
	p.shuffleScalar = randomFr(rng)
	for i := range p.lockKeys {
		p.lockKeys[i] = randomFr(rng)
	}
	return p
}

func randomFr(rng *rand.Rand) fr.Element {
	var buf [32]byte
	for {
		rng.Read(buf[:])
		var e fr.Element
		e.SetBytes(buf[:])
		if !e.IsZero() {
			return e
		}
	}
}

// Commitment returns keccak256 of the player's shuffle seed.
func (p *Player) Commitment() [32]byte {
	return shuffle.Commit(&p.Seed)
}

// Join seats the player with their commitment and buy-in.
func (p *Player) Join(g *engine.Game, deposit uint64) error {
	return g.JoinGame(p.ID, p.Commitment(), deposit)
}

// Generate reveals the player's seed to the engine.
func (p *Player) Generate(g *engine.Game) error {
	return g.Generate(p.ID, p.Seed)
}

// MapDeck computes the canonical deck G * accumulator[i] from the on-chain
// accumulator and submits it in two halves. Only the first shuffler does
// this.
func (p *Player) MapDeck(g *engine.Game) error {
	var points [engine.DeckSize][curve.CompressedSize]byte
	gen := curve.Generator()
	for i := 0; i < engine.DeckSize; i++ {
		k := new(big.Int).SetBytes(g.Accumulator.Accumulator.Slots[i][:])
		k.Mod(k, curve.ScalarOrder())
		var scalar [32]byte
		k.FillBytes(scalar[:])

		pt, err := curve.ScalarMul(&gen, &scalar)
		if err != nil {
			return err
		}
		c, err := curve.Compress(&pt)
		if err != nil {
			return err
		}
		points[i] = c
	}
	if err := g.MapDeckPart1(p.ID, firstHalf(&points)); err != nil {
		return err
	}
	return g.MapDeckPart2(p.ID, secondHalf(&points))
}

// Shuffle multiplies every deck point by the player's secret shuffle scalar,
// permutes the deck, and submits the result in two halves.
func (p *Player) Shuffle(g *engine.Game) error {
	p.perm = p.rng.Perm(engine.DeckSize)
	scalar := p.shuffleScalar.Bytes()

	var points [engine.DeckSize][curve.CompressedSize]byte
	for i := 0; i < engine.DeckSize; i++ {
		src := g.Deck.Point(uint8(p.perm[i]))
		out, err := curve.MulBytes(&src, &scalar)
		if err != nil {
			return err
		}
		c, err := compressBytes(out)
		if err != nil {
			return err
		}
		points[i] = c
	}
	if err := g.ShufflePart1(p.ID, firstHalf(&points)); err != nil {
		return err
	}
	return g.ShufflePart2(p.ID, secondHalf(&points))
}

// Lock replaces the player's deck-wide shuffle scalar with a per-card lock:
// each position i becomes lock[i] * s^-1 * deck[i]. After every player has
// locked, a card decodes to its original point exactly when all lock
// inverses have been applied.
func (p *Player) Lock(g *engine.Game) error {
	var sInv fr.Element
	sInv.Inverse(&p.shuffleScalar)

	var points [engine.DeckSize][curve.CompressedSize]byte
	for i := 0; i < engine.DeckSize; i++ {
		var k fr.Element
		k.Mul(&sInv, &p.lockKeys[i])
		scalar := k.Bytes()

		src := g.Deck.Point(uint8(i))
		out, err := curve.MulBytes(&src, &scalar)
		if err != nil {
			return err
		}
		c, err := compressBytes(out)
		if err != nil {
			return err
		}
		points[i] = c
	}
	if err := g.LockPart1(p.ID, firstHalf(&points)); err != nil {
		return err
	}
	return g.LockPart2(p.ID, secondHalf(&points))
}

// RevealKey returns the modular inverse of the player's lock key for a deck
// position, computed off-chain as a real client would.
func (p *Player) RevealKey(pos uint8) [32]byte {
	var inv fr.Element
	inv.Inverse(&p.lockKeys[pos])
	return inv.Bytes()
}

// Reveal strips the player's lock from the card currently being revealed.
func (p *Player) Reveal(g *engine.Game) error {
	pos := g.State.CardToReveal
	key := p.RevealKey(pos)
	return g.RevealCard(p.ID, key, pos)
}

// OpenCommunity removes the dealer's final lock from the board card under
// reveal.
func (p *Player) OpenCommunity(g *engine.Game) error {
	pos := g.State.CardToReveal
	key := p.RevealKey(pos)
	return g.OpenCommunityCard(p.ID, key, pos)
}

// OpenHole opens the player's next unopened hole card at showdown.
func (p *Player) OpenHole(g *engine.Game) error {
	state, ok := g.PlayerState(p.ID)
	if !ok {
		return engine.ErrNotAPlayer
	}
	pos := state.HoleCards[state.RevealedCardsCount]
	key := p.RevealKey(pos)
	return g.OpenCard(p.ID, key, pos)
}

// SubmitBestHand picks the strongest 5 cards from the player's opened hole
// cards and the board, then submits them as points.
func (p *Player) SubmitBestHand(g *engine.Game) error {
	state, ok := g.PlayerState(p.ID)
	if !ok {
		return engine.ErrNotAPlayer
	}

	pointsByID := make(map[int8][curve.PointSize]byte)
	var available []poker.Card
	for i := uint8(0); i < state.RevealedCardsCount; i++ {
		pointsByID[state.HoleCardIDs[i]] = state.RevealedCards[i]
		available = append(available, state.HoleCardIDs[i])
	}
	for i := uint8(0); i < g.Community.OpenedCount; i++ {
		pointsByID[g.Community.OpenedIDs[i]] = g.Community.OpenedPoints[i]
		available = append(available, g.Community.OpenedIDs[i])
	}

	best, _, _ := poker.BestHand(available)
	var points [5][curve.PointSize]byte
	for i, id := range best {
		points[i] = pointsByID[id]
	}
	return g.SubmitBestHand(p.ID, points)
}

func compressBytes(point [curve.PointSize]byte) ([curve.CompressedSize]byte, error) {
	pt, err := curve.PointFromBytes(&point)
	if err != nil {
		return [curve.CompressedSize]byte{}, err
	}
	return curve.Compress(&pt)
}

func firstHalf(points *[engine.DeckSize][curve.CompressedSize]byte) [engine.CardsPerPart][curve.CompressedSize]byte {
	var out [engine.CardsPerPart][curve.CompressedSize]byte
	copy(out[:], points[:engine.CardsPerPart])
	return out
}

func secondHalf(points *[engine.DeckSize][curve.CompressedSize]byte) [engine.CardsPerPart][curve.CompressedSize]byte {
	var out [engine.CardsPerPart][curve.CompressedSize]byte
	copy(out[:], points[engine.CardsPerPart:])
	return out
}
