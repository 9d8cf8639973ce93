package engine

import (
	"encoding/hex"

	"github.com/vitorpy/solana-poker/pkg/shuffle"
)

// Identity is an opaque 32-byte participant identity.
type Identity [32]byte

// IsZero reports whether the identity is unset.
func (id Identity) IsZero() bool {
	return id == Identity{}
}

func (id Identity) String() string {
	return hex.EncodeToString(id[:8])
}

// GameID is the opaque 32-byte game identifier.
type GameID [32]byte

func (id GameID) String() string {
	return hex.EncodeToString(id[:8])
}

// Account namespaces for derived per-game addresses.
const (
	NSGameConfig  = "game_config"
	NSGameState   = "game_state"
	NSPlayer      = "player"
	NSDeck        = "deck"
	NSAccumulator = "accumulator"
	NSCommunity   = "community"
	NSVault       = "vault"
	NSPlayerList  = "player_list"
)

// DeriveAddress returns the deterministic address of a per-game account:
// keccak256(namespace || gameId).
func DeriveAddress(namespace string, gameID GameID) [32]byte {
	data := make([]byte, 0, len(namespace)+32)
	data = append(data, namespace...)
	data = append(data, gameID[:]...)
	return shuffle.Keccak256(data)
}

// DerivePlayerAddress returns the address of a player's per-game state:
// keccak256("player" || gameId || player).
func DerivePlayerAddress(gameID GameID, player Identity) [32]byte {
	data := make([]byte, 0, len(NSPlayer)+64)
	data = append(data, NSPlayer...)
	data = append(data, gameID[:]...)
	data = append(data, player[:]...)
	return shuffle.Keccak256(data)
}
