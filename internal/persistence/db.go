// Package persistence provides SQLite-based game state storage. Each
// stateful component serializes to one JSON snapshot document; notable
// game events land in an append-only table for the API's event feed.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/bakehouse/internal/sim"
)

// Component keys for snapshot documents.
const (
	ComponentLedger    = "ledger"
	ComponentInventory = "inventory"
	ComponentOrders    = "orders"
	ComponentEconomy   = "economy"
	ComponentSim       = "sim"
)

// DB wraps a SQLite connection for game state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		component TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		saved_day INTEGER NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day INTEGER NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sim_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_day ON events(day);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveSnapshot serializes a component snapshot as JSON.
func (db *DB) SaveSnapshot(component string, day int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s snapshot: %w", component, err)
	}
	_, err = db.conn.Exec(
		`INSERT INTO snapshots (component, data, saved_day, updated_at)
		 VALUES (?, ?, ?, datetime('now'))
		 ON CONFLICT(component) DO UPDATE SET
		   data = excluded.data,
		   saved_day = excluded.saved_day,
		   updated_at = excluded.updated_at`,
		component, string(data), day,
	)
	if err != nil {
		return fmt.Errorf("save %s snapshot: %w", component, err)
	}
	return nil
}

// LoadSnapshot deserializes a component snapshot into out. The first
// return is false when no snapshot exists.
func (db *DB) LoadSnapshot(component string, out any) (bool, error) {
	var data string
	err := db.conn.Get(&data, "SELECT data FROM snapshots WHERE component = ?", component)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s snapshot: %w", component, err)
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, fmt.Errorf("unmarshal %s snapshot: %w", component, err)
	}
	return true, nil
}

// HasSave reports whether a saved game exists.
func (db *DB) HasSave() bool {
	var n int
	if err := db.conn.Get(&n, "SELECT COUNT(*) FROM snapshots"); err != nil {
		return false
	}
	return n > 0
}

// Event is one persisted game event row.
type Event struct {
	Day         int    `db:"day" json:"day"`
	Category    string `db:"category" json:"category"`
	Description string `db:"description" json:"description"`
}

// AppendEvent records a game event.
func (db *DB) AppendEvent(day int, category, description string) error {
	_, err := db.conn.Exec(
		"INSERT INTO events (day, category, description) VALUES (?, ?, ?)",
		day, category, description,
	)
	return err
}

// RecentEvents returns the most recent N events, newest first.
func (db *DB) RecentEvents(limit int) ([]Event, error) {
	var events []Event
	err := db.conn.Select(&events,
		"SELECT day, category, description FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}

// SetMeta stores a key/value pair.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(
		`INSERT INTO sim_meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// GetMeta retrieves a value; ok is false when the key is absent.
func (db *DB) GetMeta(key string) (string, bool) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM sim_meta WHERE key = ?", key)
	if err != nil {
		return "", false
	}
	return value, true
}

// SaveGame snapshots every stateful component in one pass. It reads engine
// state without locking; callers racing the clock wrap the call in
// Bakery.View (event handlers already run with the engine lock held).
func (db *DB) SaveGame(b *sim.Bakery) error {
	day := b.Day()
	if err := db.SaveSnapshot(ComponentLedger, day, b.Ledger().Snapshot()); err != nil {
		return err
	}
	if err := db.SaveSnapshot(ComponentInventory, day, b.Inventory().Snapshot()); err != nil {
		return err
	}
	if err := db.SaveSnapshot(ComponentOrders, day, b.SupplyChain().Snapshot()); err != nil {
		return err
	}
	if err := db.SaveSnapshot(ComponentEconomy, day, b.Economy().Snapshot()); err != nil {
		return err
	}
	if err := db.SaveSnapshot(ComponentSim, day, b.Snapshot()); err != nil {
		return err
	}
	slog.Info("game saved", "day", day)
	return nil
}

// LoadGame restores every component from the latest save. Returns false
// with no error when there is nothing to load.
func (db *DB) LoadGame(b *sim.Bakery) (bool, error) {
	if !db.HasSave() {
		return false, nil
	}

	var ledgerSnap = b.Ledger().Snapshot()
	if ok, err := db.LoadSnapshot(ComponentLedger, &ledgerSnap); err != nil {
		return false, err
	} else if ok {
		b.Ledger().Restore(ledgerSnap)
	}

	var invSnap = b.Inventory().Snapshot()
	if ok, err := db.LoadSnapshot(ComponentInventory, &invSnap); err != nil {
		return false, err
	} else if ok {
		b.Inventory().Restore(invSnap)
	}

	var orderSnap = b.SupplyChain().Snapshot()
	if ok, err := db.LoadSnapshot(ComponentOrders, &orderSnap); err != nil {
		return false, err
	} else if ok {
		b.SupplyChain().Restore(orderSnap)
	}

	var econSnap = b.Economy().Snapshot()
	if ok, err := db.LoadSnapshot(ComponentEconomy, &econSnap); err != nil {
		return false, err
	} else if ok {
		b.Economy().Restore(econSnap)
	}

	var simSnap = b.Snapshot()
	if ok, err := db.LoadSnapshot(ComponentSim, &simSnap); err != nil {
		return false, err
	} else if ok {
		b.Restore(simSnap)
	}

	slog.Info("game loaded", "day", b.Day(), "phase", b.Phase())
	return true, nil
}
