// Package engine implements the on-chain core of the mental poker Texas
// Hold'em protocol: the layered state machine, the shuffle/draw/reveal
// cryptography over BN254, the betting engine and the timeout arbiter.
//
// A Game is one closed world addressed by its 32-byte game id. Every
// operation is atomic: it either commits all of its state changes or fails
// with a single protocol error and changes nothing.
package engine

import (
	"time"

	"github.com/decred/slog"
)

// Game aggregates the per-game state set: config, state machine, seat list,
// deck, accumulator, community board and one PlayerState per seat.
type Game struct {
	log   slog.Logger
	now   func() int64
	vault Vault

	Config      *GameConfig
	State       *GameState
	Players     *PlayerList
	Deck        *DeckState
	Accumulator *AccumulatorState
	Community   *CommunityCards

	seats [MaxPlayers]*PlayerState
}

// Option configures a Game at creation.
type Option func(*Game)

// WithLogger sets the logger used for protocol events.
func WithLogger(log slog.Logger) Option {
	return func(g *Game) { g.log = log }
}

// WithClock sets the wall clock used for the timeout arbiter.
func WithClock(clock func() time.Time) Option {
	return func(g *Game) { g.now = func() int64 { return clock().Unix() } }
}

// WithVault sets the chip custody backend.
func WithVault(v Vault) Option {
	return func(g *Game) { g.vault = v }
}

// InitializeGameParams are the inputs of the InitializeGame operation.
type InitializeGameParams struct {
	GameID          GameID
	Authority       Identity
	MaxPlayers      uint8
	SmallBlind      uint64
	MinBuyIn        uint64
	TimeoutSeconds  uint32 // 0 uses DefaultTimeoutSeconds
	SlashPercentage uint8  // 0 uses DefaultSlashPercentage
}

// NewGame creates a game with empty accounts, ready to accept players.
func NewGame(params InitializeGameParams, opts ...Option) (*Game, error) {
	if params.MaxPlayers < MinPlayers || params.MaxPlayers > MaxPlayers {
		return nil, ErrInvalidInstruction
	}
	if params.SmallBlind == 0 {
		return nil, ErrInvalidInstruction
	}
	if params.MinBuyIn < params.SmallBlind*2 {
		return nil, ErrInvalidInstruction
	}
	if params.SlashPercentage > 100 {
		return nil, ErrInvalidInstruction
	}

	g := &Game{
		log: slog.Disabled,
		now: func() int64 { return time.Now().Unix() },
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.vault == nil {
		g.vault = NewMemoryVault()
	}

	timeout := params.TimeoutSeconds
	if timeout == 0 {
		timeout = DefaultTimeoutSeconds
	}
	slashPct := params.SlashPercentage
	if slashPct == 0 {
		slashPct = DefaultSlashPercentage
	}

	now := g.now()
	g.Config = &GameConfig{
		GameID:             params.GameID,
		Authority:          params.Authority,
		MaxPlayers:         params.MaxPlayers,
		SmallBlind:         params.SmallBlind,
		MinBuyIn:           params.MinBuyIn,
		IsAcceptingPlayers: true,
		CreatedAt:          now,
		TimeoutSeconds:     timeout,
		SlashPercentage:    slashPct,
	}
	g.State = NewGameState(params.GameID, now)
	g.Players = NewPlayerList(params.GameID)
	g.Deck = NewDeckState(params.GameID)
	g.Accumulator = NewAccumulatorState(params.GameID)
	g.Community = NewCommunityCards(params.GameID)

	g.log.Debugf("game %s initialized: maxPlayers=%d smallBlind=%d minBuyIn=%d",
		params.GameID, params.MaxPlayers, params.SmallBlind, params.MinBuyIn)
	return g, nil
}

// Vault returns the chip custody backend.
func (g *Game) Vault() Vault {
	return g.vault
}

// PlayerState returns the state of a seated player.
func (g *Game) PlayerState(player Identity) (*PlayerState, bool) {
	seat, ok := g.Players.Find(player)
	if !ok {
		return nil, false
	}
	return g.seats[seat], true
}

// TotalChips returns the sum of all player chips plus the pot. Conservation
// requires this to equal the sum of buy-ins at every checkpoint.
func (g *Game) TotalChips() uint64 {
	total := g.State.Pot
	for i := uint8(0); i < g.Players.Count; i++ {
		total += g.seats[i].Chips
	}
	return total
}

// touch records that an accepted operation just happened.
func (g *Game) touch() {
	g.State.LastActionTimestamp = g.now()
}

func (g *Game) playerCount() uint8 {
	return g.Players.Count
}

// seatOf resolves a caller to their seat and state.
func (g *Game) seatOf(player Identity) (uint8, *PlayerState, error) {
	seat, ok := g.Players.Find(player)
	if !ok {
		return 0, nil, ErrNotAPlayer
	}
	return seat, g.seats[seat], nil
}

// requireTurn resolves a caller and checks the turn pointer.
func (g *Game) requireTurn(player Identity) (uint8, *PlayerState, error) {
	seat, state, err := g.seatOf(player)
	if err != nil {
		return 0, nil, err
	}
	if seat != g.State.CurrentTurn {
		return 0, nil, ErrNotYourTurn
	}
	return seat, state, nil
}

// nextSeat returns the seat after the given one, ignoring fold status.
func (g *Game) nextSeat(seat uint8) uint8 {
	return (seat + 1) % g.playerCount()
}

// nextActiveSeat returns the first non-folded seat strictly after the given
// one. Falls back to the input seat when everyone else has folded.
func (g *Game) nextActiveSeat(seat uint8) uint8 {
	n := g.playerCount()
	for i := uint8(1); i <= n; i++ {
		candidate := (seat + i) % n
		if !g.seats[candidate].IsFolded {
			return candidate
		}
	}
	return seat
}

// firstActiveFrom returns the first non-folded seat at or after the given
// one.
func (g *Game) firstActiveFrom(seat uint8) uint8 {
	n := g.playerCount()
	for i := uint8(0); i < n; i++ {
		candidate := (seat + i) % n
		if !g.seats[candidate].IsFolded {
			return candidate
		}
	}
	return seat
}

// lastActorFrom walks backwards from a seat (inclusive) to the closest
// player who can still act in a betting round: non-folded and not all-in.
// The second return is false when nobody can act.
func (g *Game) lastActorFrom(seat uint8) (uint8, bool) {
	n := g.playerCount()
	for i := uint8(0); i < n; i++ {
		candidate := (seat + n - i) % n
		p := g.seats[candidate]
		if !p.IsFolded && p.Chips > 0 {
			return candidate, true
		}
	}
	return seat, false
}

// nextActorFrom walks forward from the seat strictly after the given one to
// the closest player who can still act in a betting round.
func (g *Game) nextActorFrom(seat uint8) (uint8, bool) {
	n := g.playerCount()
	for i := uint8(1); i <= n; i++ {
		candidate := (seat + i) % n
		p := g.seats[candidate]
		if !p.IsFolded && p.Chips > 0 {
			return candidate, true
		}
	}
	return seat, false
}

// activePlayers returns the number of non-folded players.
func (g *Game) activePlayers() uint8 {
	return g.playerCount() - g.State.NumFoldedPlayers
}

// allActiveAllIn reports whether every non-folded player has committed their
// whole stack.
func (g *Game) allActiveAllIn() bool {
	for i := uint8(0); i < g.playerCount(); i++ {
		p := g.seats[i]
		if !p.IsFolded && p.Chips > 0 {
			return false
		}
	}
	return true
}

// shuffleStartSeat is the seat that acts first in every shuffle sub-phase:
// the pre-flop first actor.
func (g *Game) shuffleStartSeat() uint8 {
	return (g.Config.DealerIndex + 3) % g.playerCount()
}
