package engine

import (
	"errors"
	"fmt"

	"github.com/vitorpy/solana-poker/pkg/curve"
)

// Error is a protocol error: a small numeric code plus a stable
// human-readable name. Every operation either succeeds or fails with exactly
// one of these, leaving the game state untouched.
type Error struct {
	Code uint32
	Name string
}

func (e *Error) Error() string {
	return fmt.Sprintf("poker: %s (%d)", e.Name, e.Code)
}

var (
	// Instruction and phase errors.
	ErrInvalidInstruction = &Error{100, "InvalidInstruction"}
	ErrInvalidPhase       = &Error{101, "InvalidPhase"}

	// Authorization errors.
	ErrNotYourTurn  = &Error{200, "NotYourTurn"}
	ErrNotAuthority = &Error{201, "NotAuthority"}
	ErrNotAPlayer   = &Error{202, "NotAPlayer"}

	// Game logic errors.
	ErrGameFull                = &Error{300, "GameFull"}
	ErrGameNotAcceptingPlayers = &Error{301, "GameNotAcceptingPlayers"}
	ErrInsufficientFunds       = &Error{302, "InsufficientFunds"}
	ErrInvalidBet              = &Error{303, "InvalidBet"}
	ErrCommitmentMismatch      = &Error{304, "CommitmentMismatch"}
	ErrCannotLeaveNow          = &Error{305, "CannotLeaveNow"}
	ErrAlreadyJoined           = &Error{306, "AlreadyJoined"}

	// Crypto errors.
	ErrPointAtInfinity = &Error{400, "PointAtInfinity"}
	ErrPointNotOnCurve = &Error{401, "PointNotOnCurve"}
	ErrInvalidScalar   = &Error{402, "InvalidScalar"}

	// Reveal and showdown errors.
	ErrDuplicateReveal   = &Error{500, "DuplicateReveal"}
	ErrWrongRevealTarget = &Error{501, "WrongRevealTarget"}
	ErrUnknownCard       = &Error{502, "UnknownCard"}
	ErrInvalidBestHand   = &Error{503, "InvalidBestHand"}

	// Arbiter and settlement errors.
	ErrTimeoutNotReached = &Error{600, "TimeoutNotReached"}
	ErrNothingToClaim    = &Error{601, "NothingToClaim"}
	ErrAlreadyClaimed    = &Error{602, "AlreadyClaimed"}

	// Split transaction ordering.
	ErrPartOneNotSubmitted     = &Error{700, "PartOneNotSubmitted"}
	ErrPartOneAlreadySubmitted = &Error{701, "PartOneAlreadySubmitted"}
	ErrDeckNotSubmitted        = &Error{702, "DeckNotSubmitted"}
	ErrDeckAlreadySubmitted    = &Error{703, "DeckAlreadySubmitted"}
)

// curveError maps curve package failures onto the protocol taxonomy.
func curveError(err error) error {
	switch {
	case errors.Is(err, curve.ErrPointAtInfinity):
		return ErrPointAtInfinity
	case errors.Is(err, curve.ErrPointNotOnCurve):
		return ErrPointNotOnCurve
	case errors.Is(err, curve.ErrInvalidScalar):
		return ErrInvalidScalar
	default:
		return err
	}
}
