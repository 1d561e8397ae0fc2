package service

import (
	"context"
	"testing"

	"avkngifts-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerServiceNilRepo(t *testing.T) {
	s := NewLedgerService(nil)
	ctx := context.Background()

	assert.Nil(t, s.GetItems(ctx, "ABC-123"))
	assert.Nil(t, s.BlockedItems(ctx, "ABC-123"))

	// Writes are silent no-ops without a backing store.
	s.MarkStatus(ctx, "ABC-123", "item-1", "Item", model.StatusOwned)
}

func TestLedgerServiceDegradesOnError(t *testing.T) {
	repo := newFakeLedgerRepo()
	repo.fail = true
	s := NewLedgerService(repo)
	ctx := context.Background()

	assert.Nil(t, s.GetItems(ctx, "ABC-123"))
	assert.Nil(t, s.BlockedItems(ctx, "ABC-123"))

	s.MarkStatus(ctx, "ABC-123", "item-1", "Item", model.StatusOwned)
	assert.Equal(t, 0, repo.markCount())
}

func TestLedgerServiceBlockedItemsProjection(t *testing.T) {
	repo := newFakeLedgerRepo()
	s := NewLedgerService(repo)
	ctx := context.Background()

	require.NoError(t, repo.MarkStatus(ctx, "ABC-123", "item-1", "One", model.StatusOwned))
	require.NoError(t, repo.MarkStatus(ctx, "ABC-123", "item-2", "Two", model.StatusPurchaseNotAllowed))

	blocked := s.BlockedItems(ctx, "ABC-123")
	require.Len(t, blocked, 2)
	assert.Equal(t, model.BlockedItem{ItemID: "item-1", Status: model.StatusOwned}, blocked[0])
	assert.Equal(t, model.BlockedItem{ItemID: "item-2", Status: model.StatusPurchaseNotAllowed}, blocked[1])
}
