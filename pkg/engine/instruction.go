package engine

import (
	"encoding/binary"

	"github.com/vitorpy/solana-poker/pkg/curve"
)

// Op is the 8-bit operation discriminator carried as the first byte of an
// instruction.
type Op uint8

const (
	OpInitializeGame    Op = 0
	OpJoinGame          Op = 1
	OpGenerate          Op = 2
	OpDraw              Op = 6
	OpRevealCard        Op = 7
	OpPlaceBlind        Op = 8
	OpBet               Op = 9
	OpFold              Op = 10
	OpDealCommunityCard Op = 11
	OpOpenCommunityCard Op = 12
	OpOpenCard          Op = 13
	OpSubmitBestHand    Op = 14
	OpClaimPot          Op = 15
	OpStartNextGame     Op = 16
	OpLeave             Op = 17
	OpSlash             Op = 18
	OpCloseGame         Op = 19
	OpShufflePart1      Op = 20
	OpShufflePart2      Op = 21
	OpLockPart1         Op = 22
	OpLockPart2         Op = 23
	OpMapDeckPart1      Op = 25
	OpMapDeckPart2      Op = 26
)

// halfDeckPayload is the size of a 26-card compressed point submission.
const halfDeckPayload = CardsPerPart * curve.CompressedSize

// ParseInitializeGame decodes the payload of an InitializeGame instruction.
// The caller becomes the game authority.
func ParseInitializeGame(caller Identity, payload []byte) (InitializeGameParams, error) {
	if len(payload) < 32+1+8+8 {
		return InitializeGameParams{}, ErrInvalidInstruction
	}
	var params InitializeGameParams
	copy(params.GameID[:], payload[:32])
	params.Authority = caller
	params.MaxPlayers = payload[32]
	params.SmallBlind = binary.LittleEndian.Uint64(payload[33:])
	params.MinBuyIn = binary.LittleEndian.Uint64(payload[41:])
	return params, nil
}

// Apply decodes an instruction and executes it against the game on behalf of
// the calling identity. InitializeGame is not dispatched here: a game must
// exist before instructions can be applied to it (see ParseInitializeGame
// and NewGame).
//
// For Slash, the hosting runtime identifies the offender by account; on this
// surface the payload carries the offender's 32-byte identity.
func Apply(g *Game, caller Identity, instruction []byte) error {
	if len(instruction) == 0 {
		return ErrInvalidInstruction
	}
	op := Op(instruction[0])
	payload := instruction[1:]

	switch op {
	case OpJoinGame:
		if len(payload) < 40 {
			return ErrInvalidInstruction
		}
		var commitment [32]byte
		copy(commitment[:], payload[:32])
		deposit := binary.LittleEndian.Uint64(payload[32:])
		return g.JoinGame(caller, commitment, deposit)

	case OpGenerate:
		seed, err := parse32(payload)
		if err != nil {
			return err
		}
		return g.Generate(caller, seed)

	case OpDraw:
		return g.Draw(caller)

	case OpRevealCard:
		invKey, index, err := parseKeyIndex(payload)
		if err != nil {
			return err
		}
		return g.RevealCard(caller, invKey, index)

	case OpPlaceBlind:
		amount, err := parseAmount(payload)
		if err != nil {
			return err
		}
		return g.PlaceBlind(caller, amount)

	case OpBet:
		amount, err := parseAmount(payload)
		if err != nil {
			return err
		}
		return g.Bet(caller, amount)

	case OpFold:
		return g.Fold(caller)

	case OpDealCommunityCard:
		return g.DealCommunityCard(caller)

	case OpOpenCommunityCard:
		invKey, index, err := parseKeyIndex(payload)
		if err != nil {
			return err
		}
		return g.OpenCommunityCard(caller, invKey, index)

	case OpOpenCard:
		invKey, index, err := parseKeyIndex(payload)
		if err != nil {
			return err
		}
		return g.OpenCard(caller, invKey, index)

	case OpSubmitBestHand:
		if len(payload) < 5*curve.PointSize {
			return ErrInvalidInstruction
		}
		var points [5][curve.PointSize]byte
		for i := 0; i < 5; i++ {
			copy(points[i][:], payload[i*curve.PointSize:])
		}
		return g.SubmitBestHand(caller, points)

	case OpClaimPot:
		return g.ClaimPot(caller)

	case OpStartNextGame:
		return g.StartNextGame(caller)

	case OpLeave:
		return g.Leave(caller)

	case OpSlash:
		offenderBytes, err := parse32(payload)
		if err != nil {
			return err
		}
		return g.Slash(caller, Identity(offenderBytes))

	case OpCloseGame:
		return g.CloseGame(caller)

	case OpShufflePart1:
		points, err := parseHalfDeck(payload)
		if err != nil {
			return err
		}
		return g.ShufflePart1(caller, points)

	case OpShufflePart2:
		points, err := parseHalfDeck(payload)
		if err != nil {
			return err
		}
		return g.ShufflePart2(caller, points)

	case OpLockPart1:
		points, err := parseHalfDeck(payload)
		if err != nil {
			return err
		}
		return g.LockPart1(caller, points)

	case OpLockPart2:
		points, err := parseHalfDeck(payload)
		if err != nil {
			return err
		}
		return g.LockPart2(caller, points)

	case OpMapDeckPart1:
		points, err := parseHalfDeck(payload)
		if err != nil {
			return err
		}
		return g.MapDeckPart1(caller, points)

	case OpMapDeckPart2:
		points, err := parseHalfDeck(payload)
		if err != nil {
			return err
		}
		return g.MapDeckPart2(caller, points)
	}

	return ErrInvalidInstruction
}

func parse32(payload []byte) ([32]byte, error) {
	var out [32]byte
	if len(payload) < 32 {
		return out, ErrInvalidInstruction
	}
	copy(out[:], payload[:32])
	return out, nil
}

func parseAmount(payload []byte) (uint64, error) {
	if len(payload) < 8 {
		return 0, ErrInvalidInstruction
	}
	return binary.LittleEndian.Uint64(payload), nil
}

func parseKeyIndex(payload []byte) ([32]byte, uint8, error) {
	var key [32]byte
	if len(payload) < 33 {
		return key, 0, ErrInvalidInstruction
	}
	copy(key[:], payload[:32])
	index := payload[32]
	if index >= DeckSize {
		return key, 0, ErrInvalidInstruction
	}
	return key, index, nil
}

func parseHalfDeck(payload []byte) ([CardsPerPart][curve.CompressedSize]byte, error) {
	var out [CardsPerPart][curve.CompressedSize]byte
	if len(payload) < halfDeckPayload {
		return out, ErrInvalidInstruction
	}
	for i := 0; i < CardsPerPart; i++ {
		copy(out[i][:], payload[i*curve.CompressedSize:])
	}
	return out, nil
}
