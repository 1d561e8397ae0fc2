package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	"avkngifts-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteOwnershipRepository implements OwnershipRepository and
// SettingsRepository using SQLite. Thread-safe with WAL mode.
type SQLiteOwnershipRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteOwnershipRepository creates a new SQLite ledger repository.
// dbPath is the path to the SQLite database file (e.g., "./data/ledger.db").
func NewSQLiteOwnershipRepository(dbPath string) (*SQLiteOwnershipRepository, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createLedgerTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteOwnershipRepository] Initialized with database: %s", dbPath)
	return &SQLiteOwnershipRepository{db: db}, nil
}

func createLedgerTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS user_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		friend_code TEXT NOT NULL,
		item_id TEXT NOT NULL,
		item_name TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL CHECK(status IN ('owned', 'purchase_not_allowed')),
		created_at DATETIME NOT NULL DEFAULT (datetime('now')),
		UNIQUE(friend_code, item_id)
	);
	CREATE INDEX IF NOT EXISTS idx_user_items_friend_code ON user_items(friend_code);

	CREATE TABLE IF NOT EXISTS app_settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.Exec(query)
	return err
}

// GetItems returns all ledger records for a friend code.
func (r *SQLiteOwnershipRepository) GetItems(ctx context.Context, friendCode string) ([]model.OwnershipRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT friend_code, item_id, item_name, status, created_at
		FROM user_items WHERE friend_code = ?`

	rows, err := r.db.QueryContext(ctx, query, strings.ToUpper(friendCode))
	if err != nil {
		return nil, fmt.Errorf("failed to get user items: %w", err)
	}
	defer rows.Close()

	var records []model.OwnershipRecord
	for rows.Next() {
		var rec model.OwnershipRecord
		if err := rows.Scan(&rec.FriendCode, &rec.ItemID, &rec.ItemName, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user item: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user items: %w", err)
	}

	return records, nil
}

// MarkStatus inserts or updates the record for (friendCode, itemID). Repeated
// calls with the same key overwrite name and status.
func (r *SQLiteOwnershipRepository) MarkStatus(ctx context.Context, friendCode, itemID, itemName string, status model.OwnershipStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid ownership status: %q", status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO user_items (friend_code, item_id, item_name, status, created_at)
		VALUES (?, ?, ?, ?, datetime('now'))
		ON CONFLICT(friend_code, item_id) DO UPDATE SET
			item_name = excluded.item_name,
			status = excluded.status`

	_, err := r.db.ExecContext(ctx, query, strings.ToUpper(friendCode), itemID, itemName, string(status))
	if err != nil {
		return fmt.Errorf("failed to upsert user item: %w", err)
	}
	return nil
}

// GetSettings returns all app_settings rows as a map.
func (r *SQLiteOwnershipRepository) GetSettings(ctx context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM app_settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings[k] = v
	}
	return settings, rows.Err()
}

// Close closes the database connection.
func (r *SQLiteOwnershipRepository) Close() error {
	return r.db.Close()
}

// Ensure SQLiteOwnershipRepository implements both interfaces
var (
	_ OwnershipRepository = (*SQLiteOwnershipRepository)(nil)
	_ SettingsRepository  = (*SQLiteOwnershipRepository)(nil)
)
