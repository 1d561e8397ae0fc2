package repository

import (
	"context"

	"avkngifts-api/internal/model"
)

// OwnershipRepository defines ledger data access. Rows are unique on
// (friend_code, item_id); MarkStatus is an upsert and never fails on
// conflict.
type OwnershipRepository interface {
	// GetItems returns all ledger records for a friend code.
	GetItems(ctx context.Context, friendCode string) ([]model.OwnershipRecord, error)

	// MarkStatus inserts or updates the record for (friendCode, itemID).
	MarkStatus(ctx context.Context, friendCode, itemID, itemName string, status model.OwnershipStatus) error

	// Close closes the repository connection.
	Close() error
}

// SettingsRepository reads the key/value app_settings table consumed once at
// startup to override the cart limits.
type SettingsRepository interface {
	// GetSettings returns all settings rows as a map.
	GetSettings(ctx context.Context) (map[string]string, error)
}
