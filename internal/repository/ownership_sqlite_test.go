package repository

import (
	"context"
	"path/filepath"
	"testing"

	"avkngifts-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *SQLiteOwnershipRepository {
	t.Helper()
	repo, err := NewSQLiteOwnershipRepository(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestMarkStatusUpsert(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.MarkStatus(ctx, "ABC-123", "item-1", "Old Name", model.StatusOwned))
	require.NoError(t, repo.MarkStatus(ctx, "ABC-123", "item-1", "New Name", model.StatusPurchaseNotAllowed))

	records, err := repo.GetItems(ctx, "ABC-123")
	require.NoError(t, err)
	require.Len(t, records, 1, "same friend code and item must collapse to one row")
	assert.Equal(t, "New Name", records[0].ItemName)
	assert.Equal(t, model.StatusPurchaseNotAllowed, records[0].Status)
}

func TestMarkStatusNormalizesFriendCode(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.MarkStatus(ctx, "abc-123", "item-1", "Item", model.StatusOwned))

	// Reads uppercase too, so mixed-case lookups find the same row.
	records, err := repo.GetItems(ctx, "abc-123")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ABC-123", records[0].FriendCode)
}

func TestMarkStatusRejectsUnknownStatus(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.MarkStatus(context.Background(), "ABC-123", "item-1", "Item", model.OwnershipStatus("banned"))
	assert.Error(t, err)
}

func TestGetItemsScopedToFriendCode(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.MarkStatus(ctx, "AAA-111", "item-1", "One", model.StatusOwned))
	require.NoError(t, repo.MarkStatus(ctx, "AAA-111", "item-2", "Two", model.StatusOwned))
	require.NoError(t, repo.MarkStatus(ctx, "BBB-222", "item-3", "Three", model.StatusOwned))

	records, err := repo.GetItems(ctx, "AAA-111")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = repo.GetItems(ctx, "CCC-333")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetSettings(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	settings, err := repo.GetSettings(ctx)
	require.NoError(t, err)
	assert.Empty(t, settings)

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO app_settings (key, value) VALUES ('MAX_ITEM_PRICE', '15000'), ('MAX_CART_ITEMS', '10')`)
	require.NoError(t, err)

	settings, err = repo.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"MAX_ITEM_PRICE": "15000",
		"MAX_CART_ITEMS": "10",
	}, settings)
}
