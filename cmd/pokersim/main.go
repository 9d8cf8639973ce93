// Command pokersim plays a complete mental poker hand in-process: it stands
// up a game, simulates every player's off-chain secrets and drives the full
// protocol (shuffle, lock, blinds, draws, board, showdown, settlement),
// printing the chain state as it goes.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/decred/slog"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vitorpy/solana-poker/pkg/engine"
	"github.com/vitorpy/solana-poker/pkg/poker"
	"github.com/vitorpy/solana-poker/pkg/sim"
	"github.com/vitorpy/solana-poker/pkg/store"
)

func main() {
	var (
		numPlayers int
		smallBlind uint64
		buyIn      uint64
		seed       int64
		dbPath     string
		debugLevel string
	)
	flag.IntVar(&numPlayers, "players", 2, "Number of players (2-10)")
	flag.Uint64Var(&smallBlind, "smallblind", 10, "Small blind amount")
	flag.Uint64Var(&buyIn, "buyin", 1000, "Buy-in per player")
	flag.Int64Var(&seed, "seed", 0, "Deterministic RNG seed for player secrets (0 = random)")
	flag.StringVar(&dbPath, "db", "", "If set, persist account records to this SQLite file")
	flag.StringVar(&debugLevel, "debuglevel", "info", "Logging level: trace, debug, info, warn, error")
	flag.Parse()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	backend := slog.NewBackend(os.Stderr)
	log := backend.Logger("POKER")
	if level, ok := slog.LevelFromString(debugLevel); ok {
		log.SetLevel(level)
	}

	var gameID engine.GameID
	rng.Read(gameID[:])
	var authority engine.Identity
	rng.Read(authority[:])

	g, err := engine.NewGame(engine.InitializeGameParams{
		GameID:     gameID,
		Authority:  authority,
		MaxPlayers: uint8(numPlayers),
		SmallBlind: smallBlind,
		MinBuyIn:   buyIn,
	}, engine.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize game: %v\n", err)
		os.Exit(1)
	}

	players := make([]*sim.Player, numPlayers)
	for i := range players {
		players[i] = sim.NewPlayer(byte(i+1), rng)
		if err := players[i].Join(g, buyIn); err != nil {
			fmt.Fprintf(os.Stderr, "join failed: %v\n", err)
			os.Exit(1)
		}
	}

	if err := playHand(g, players); err != nil {
		fmt.Fprintf(os.Stderr, "hand failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("board:")
	for i := uint8(0); i < g.Community.OpenedCount; i++ {
		fmt.Printf(" %s", poker.Name(g.Community.OpenedIDs[i]))
	}
	fmt.Println()

	for _, p := range players {
		state, _ := g.PlayerState(p.ID)
		fmt.Printf("player %s: %s %s  %s (%v)  chips=%d\n",
			p.ID,
			poker.Name(state.HoleCardIDs[0]), poker.Name(state.HoleCardIDs[1]),
			state.SubmittedHand, state.HandCards, state.Chips)
	}
	fmt.Printf("pot settled, total chips %d, vault %d\n", g.TotalChips(), g.Vault().Balance())

	if dbPath != "" {
		db, err := store.New(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open db: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.SaveGame(g); err != nil {
			fmt.Fprintf(os.Stderr, "failed to save game: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("account records saved to %s\n", dbPath)
	}
}

// playHand drives one checked-down hand from shuffle to settlement.
func playHand(g *engine.Game, players []*sim.Player) error {
	if err := sim.RunShuffle(g, players); err != nil {
		return err
	}
	if err := sim.PostBlinds(g, players); err != nil {
		return err
	}
	if err := sim.DealHoleCards(g, players); err != nil {
		return err
	}
	if err := sim.CheckAround(g, players); err != nil {
		return err
	}
	for g.State.TexasState == engine.TexasCommunityCardsAwaiting {
		if err := sim.DealCommunityStage(g, players); err != nil {
			return err
		}
		if g.State.TexasState == engine.TexasBetting {
			if err := sim.CheckAround(g, players); err != nil {
				return err
			}
		}
	}
	if err := sim.RunShowdown(g, players); err != nil {
		return err
	}
	return g.ClaimPot(players[0].ID)
}
