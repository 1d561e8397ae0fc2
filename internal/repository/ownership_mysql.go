package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"avkngifts-api/internal/model"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLOwnershipRepository implements OwnershipRepository and
// SettingsRepository against a hosted MySQL ledger.
type MySQLOwnershipRepository struct {
	db *sql.DB
}

// NewMySQLOwnershipRepository opens a MySQL connection and ensures the
// ledger tables exist.
func NewMySQLOwnershipRepository(dsn string) (*MySQLOwnershipRepository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if err := createLedgerTablesMySQL(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Println("[MySQLOwnershipRepository] Initialized")
	return &MySQLOwnershipRepository{db: db}, nil
}

func createLedgerTablesMySQL(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS user_items (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			friend_code VARCHAR(16) NOT NULL,
			item_id VARCHAR(64) NOT NULL,
			item_name VARCHAR(255) NOT NULL DEFAULT '',
			status ENUM('owned', 'purchase_not_allowed') NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_friend_item (friend_code, item_id),
			KEY idx_friend_code (friend_code)
		)`,
		`CREATE TABLE IF NOT EXISTS app_settings (
			` + "`key`" + ` VARCHAR(64) PRIMARY KEY,
			value VARCHAR(255) NOT NULL
		)`,
	}
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// GetItems returns all ledger records for a friend code.
func (r *MySQLOwnershipRepository) GetItems(ctx context.Context, friendCode string) ([]model.OwnershipRecord, error) {
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
	return records, rows.Err()
}

// MarkStatus inserts or updates the record for (friendCode, itemID).
func (r *MySQLOwnershipRepository) MarkStatus(ctx context.Context, friendCode, itemID, itemName string, status model.OwnershipStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid ownership status: %q", status)
	}

	query := `
		INSERT INTO user_items (friend_code, item_id, item_name, status)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			item_name = VALUES(item_name),
			status = VALUES(status)`

	_, err := r.db.ExecContext(ctx, query, strings.ToUpper(friendCode), itemID, itemName, string(status))
	if err != nil {
		return fmt.Errorf("failed to upsert user item: %w", err)
	}
	return nil
}

// GetSettings returns all app_settings rows as a map.
func (r *MySQLOwnershipRepository) GetSettings(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT `key`, value FROM app_settings")
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
func (r *MySQLOwnershipRepository) Close() error {
	return r.db.Close()
}

// Ensure MySQLOwnershipRepository implements both interfaces
var (
	_ OwnershipRepository = (*MySQLOwnershipRepository)(nil)
	_ SettingsRepository  = (*MySQLOwnershipRepository)(nil)
)
