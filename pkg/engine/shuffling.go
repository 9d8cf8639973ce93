package engine

import (
	"github.com/vitorpy/solana-poker/pkg/curve"
	"github.com/vitorpy/solana-poker/pkg/shuffle"
)

// Generate reveals a player's shuffle seed. The seed must hash to the
// commitment fixed at join; its 52 derived values are added slot-wise into
// the accumulator. When every player has contributed, the protocol advances
// to Shuffling.
func (g *Game) Generate(player Identity, seed [32]byte) error {
	if g.State.GamePhase != PhaseShuffling || g.State.ShufflingState != ShuffleGenerating {
		return ErrInvalidPhase
	}
	_, state, err := g.requireTurn(player)
	if err != nil {
		return err
	}
	if !state.HasCommitted || !shuffle.VerifyCommit(&state.Commitment, &seed) {
		return ErrCommitmentMismatch
	}

	g.Accumulator.Accumulator.AddSeed(&seed)

	g.State.ActivePlayerCount++
	if g.State.ActivePlayerCount >= g.playerCount() {
		g.State.ShufflingState = ShuffleShuffling
		g.State.ActivePlayerCount = 0
		g.State.CurrentTurn = g.shuffleStartSeat()
		g.log.Infof("game %s: accumulator complete, shuffling begins", g.Config.GameID)
	} else {
		g.State.CurrentTurn = g.nextSeat(g.State.CurrentTurn)
	}

	g.touch()
	return nil
}

// decompressHalf validates and decompresses 26 wire points before anything
// is written, keeping the operation atomic.
func decompressHalf(points *[CardsPerPart][curve.CompressedSize]byte) ([CardsPerPart][curve.PointSize]byte, error) {
	var out [CardsPerPart][curve.PointSize]byte
	for i := 0; i < CardsPerPart; i++ {
		p, err := curve.Decompress(&points[i])
		if err != nil {
			return out, curveError(err)
		}
		out[i] = curve.PointToBytes(&p)
	}
	return out, nil
}

// MapDeckPart1 stores the first 26 canonical deck points G * accumulator[i],
// both as the original-deck mapping and as the starting work deck that the
// first shuffle reads. Only the first shuffler submits the mapping, before
// any shuffle.
func (g *Game) MapDeckPart1(player Identity, points [CardsPerPart][curve.CompressedSize]byte) error {
	_, state, err := g.mapDeckChecks(player)
	if err != nil {
		return err
	}
	if state.MapDeckPart1Done {
		return ErrPartOneAlreadySubmitted
	}

	decompressed, err := decompressHalf(&points)
	if err != nil {
		return err
	}
	for i := 0; i < CardsPerPart; i++ {
		g.Accumulator.SetOriginalPoint(i, decompressed[i])
		g.Deck.SetPoint(uint8(i), decompressed[i])
	}
	state.MapDeckPart1Done = true

	g.touch()
	return nil
}

// MapDeckPart2 stores the remaining 26 canonical deck points (mapping and
// work deck) and marks the original-deck mapping complete.
func (g *Game) MapDeckPart2(player Identity, points [CardsPerPart][curve.CompressedSize]byte) error {
	_, state, err := g.mapDeckChecks(player)
	if err != nil {
		return err
	}
	if !state.MapDeckPart1Done {
		return ErrPartOneNotSubmitted
	}

	decompressed, err := decompressHalf(&points)
	if err != nil {
		return err
	}
	for i := 0; i < CardsPerPart; i++ {
		g.Accumulator.SetOriginalPoint(CardsPerPart+i, decompressed[i])
		g.Deck.SetPoint(uint8(CardsPerPart+i), decompressed[i])
	}
	state.MapDeckPart1Done = false
	g.State.IsDeckSubmitted = true

	g.touch()
	g.log.Infof("game %s: original deck mapped", g.Config.GameID)
	return nil
}

func (g *Game) mapDeckChecks(player Identity) (uint8, *PlayerState, error) {
	if g.State.GamePhase != PhaseShuffling || g.State.ShufflingState != ShuffleShuffling {
		return 0, nil, ErrInvalidPhase
	}
	if g.State.IsDeckSubmitted {
		return 0, nil, ErrDeckAlreadySubmitted
	}
	return g.requireTurn(player)
}

// ShufflePart1 stores the first half of a player's shuffled, re-encrypted
// deck. The permutation and encryption are not verified on-chain: one honest
// shuffler suffices for secrecy.
func (g *Game) ShufflePart1(player Identity, points [CardsPerPart][curve.CompressedSize]byte) error {
	_, state, err := g.shuffleChecks(player)
	if err != nil {
		return err
	}
	if state.ShufflePart1Done {
		return ErrPartOneAlreadySubmitted
	}

	decompressed, err := decompressHalf(&points)
	if err != nil {
		return err
	}
	for i := 0; i < CardsPerPart; i++ {
		g.Deck.SetPoint(uint8(i), decompressed[i])
	}
	state.ShufflePart1Done = true

	g.touch()
	return nil
}

// ShufflePart2 completes a player's shuffle turn and advances the turn
// pointer; after the last player, the protocol moves to Locking.
func (g *Game) ShufflePart2(player Identity, points [CardsPerPart][curve.CompressedSize]byte) error {
	_, state, err := g.shuffleChecks(player)
	if err != nil {
		return err
	}
	if !state.ShufflePart1Done {
		return ErrPartOneNotSubmitted
	}

	decompressed, err := decompressHalf(&points)
	if err != nil {
		return err
	}
	for i := 0; i < CardsPerPart; i++ {
		g.Deck.SetPoint(uint8(CardsPerPart+i), decompressed[i])
	}
	state.ShufflePart1Done = false

	g.State.ActivePlayerCount++
	if g.State.ActivePlayerCount >= g.playerCount() {
		g.State.ShufflingState = ShuffleLocking
		g.State.ActivePlayerCount = 0
		g.State.CurrentTurn = g.shuffleStartSeat()
		g.log.Infof("game %s: shuffle rounds complete, locking begins", g.Config.GameID)
	} else {
		g.State.CurrentTurn = g.nextSeat(g.State.CurrentTurn)
	}

	g.touch()
	return nil
}

func (g *Game) shuffleChecks(player Identity) (uint8, *PlayerState, error) {
	if g.State.GamePhase != PhaseShuffling || g.State.ShufflingState != ShuffleShuffling {
		return 0, nil, ErrInvalidPhase
	}
	if !g.State.IsDeckSubmitted {
		return 0, nil, ErrDeckNotSubmitted
	}
	return g.requireTurn(player)
}

// LockPart1 stores the first half of a player's per-card locked deck.
func (g *Game) LockPart1(player Identity, points [CardsPerPart][curve.CompressedSize]byte) error {
	_, state, err := g.lockChecks(player)
	if err != nil {
		return err
	}
	if state.LockPart1Done {
		return ErrPartOneAlreadySubmitted
	}

	decompressed, err := decompressHalf(&points)
	if err != nil {
		return err
	}
	for i := 0; i < CardsPerPart; i++ {
		g.Deck.SetPoint(uint8(i), decompressed[i])
	}
	state.LockPart1Done = true

	g.touch()
	return nil
}

// LockPart2 completes a player's lock turn. After the last lock the deck is
// fully encrypted, the shuffle phase ends and blind posting begins.
func (g *Game) LockPart2(player Identity, points [CardsPerPart][curve.CompressedSize]byte) error {
	_, state, err := g.lockChecks(player)
	if err != nil {
		return err
	}
	if !state.LockPart1Done {
		return ErrPartOneNotSubmitted
	}

	decompressed, err := decompressHalf(&points)
	if err != nil {
		return err
	}
	for i := 0; i < CardsPerPart; i++ {
		g.Deck.SetPoint(uint8(CardsPerPart+i), decompressed[i])
	}
	state.LockPart1Done = false

	g.State.ActivePlayerCount++
	if g.State.ActivePlayerCount >= g.playerCount() {
		// Deck is sealed: 52 cards, nothing revealed. Blinds are posted
		// before any card is drawn.
		g.State.ActivePlayerCount = 0
		g.State.GamePhase = PhaseDrawing
		g.State.DrawingState = DrawNotDrawn
		g.State.TexasState = TexasBetting
		g.State.BettingRound = BettingBlinds
		g.State.CardsLeftInDeck = DeckSize
		g.State.CurrentTurn = (g.Config.DealerIndex + 1) % g.playerCount()
		g.log.Infof("game %s: deck locked, blinds next", g.Config.GameID)
	} else {
		g.State.CurrentTurn = g.nextSeat(g.State.CurrentTurn)
	}

	g.touch()
	return nil
}

func (g *Game) lockChecks(player Identity) (uint8, *PlayerState, error) {
	if g.State.GamePhase != PhaseShuffling || g.State.ShufflingState != ShuffleLocking {
		return 0, nil, ErrInvalidPhase
	}
	return g.requireTurn(player)
}
