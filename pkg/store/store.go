// Package store persists serialized per-game account records in SQLite,
// keyed by their derived addresses. It gives the hosting runtime a durable
// copy of every account the engine mutates.
package store

import (
	"database/sql"
	"fmt"

	"github.com/vitorpy/solana-poker/pkg/engine"
)

// DB represents the database connection
type DB struct {
	*sql.DB
}

// New opens (and if needed creates) the account database at path.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary database tables
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS accounts (
			address BLOB PRIMARY KEY,
			namespace TEXT NOT NULL,
			game_id BLOB NOT NULL,
			data BLOB NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// PutAccount upserts one serialized account record.
func (db *DB) PutAccount(address [32]byte, namespace string, gameID engine.GameID, data []byte) error {
	_, err := db.Exec(`
		INSERT INTO accounts (address, namespace, game_id, data, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(address) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`, address[:], namespace, gameID[:], data)
	if err != nil {
		return fmt.Errorf("failed to put account: %v", err)
	}
	return nil
}

// GetAccount returns the serialized record stored at an address.
func (db *DB) GetAccount(address [32]byte) ([]byte, error) {
	var data []byte
	err := db.QueryRow("SELECT data FROM accounts WHERE address = ?", address[:]).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %v", err)
	}
	return data, nil
}

// GameAddresses lists the addresses stored for a game.
func (db *DB) GameAddresses(gameID engine.GameID) ([][32]byte, error) {
	rows, err := db.Query("SELECT address FROM accounts WHERE game_id = ?", gameID[:])
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %v", err)
	}
	defer rows.Close()

	var out [][32]byte
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var addr [32]byte
		copy(addr[:], raw)
		out = append(out, addr)
	}
	return out, rows.Err()
}

// SaveGame writes every account of a game in a single transaction, mirroring
// the all-or-nothing commit the engine guarantees in memory.
func (db *DB) SaveGame(g *engine.Game) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	gameID := g.Config.GameID
	put := func(address [32]byte, namespace string, data []byte) error {
		_, err := tx.Exec(`
			INSERT INTO accounts (address, namespace, game_id, data, updated_at)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(address) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
		`, address[:], namespace, gameID[:], data)
		return err
	}

	records := []struct {
		namespace string
		data      []byte
	}{
		{engine.NSGameConfig, g.Config.MarshalBinary()},
		{engine.NSGameState, g.State.MarshalBinary()},
		{engine.NSPlayerList, g.Players.MarshalBinary()},
		{engine.NSDeck, g.Deck.MarshalBinary()},
		{engine.NSAccumulator, g.Accumulator.MarshalBinary()},
		{engine.NSCommunity, g.Community.MarshalBinary()},
	}
	for _, rec := range records {
		if err := put(engine.DeriveAddress(rec.namespace, gameID), rec.namespace, rec.data); err != nil {
			return fmt.Errorf("failed to save %s: %v", rec.namespace, err)
		}
	}

	for i := uint8(0); i < g.Players.Count; i++ {
		id, _ := g.Players.Get(i)
		state, ok := g.PlayerState(id)
		if !ok {
			continue
		}
		addr := engine.DerivePlayerAddress(gameID, id)
		if err := put(addr, engine.NSPlayer, state.MarshalBinary()); err != nil {
			return fmt.Errorf("failed to save player %d: %v", i, err)
		}
	}

	return tx.Commit()
}
