package service

import (
	"context"
	"log"

	"avkngifts-api/internal/model"
	"avkngifts-api/internal/repository"
)

// LedgerService wraps the ownership repository with
// availability-over-consistency semantics: when the backing store is
// unconfigured or unreachable, reads return empty and writes are logged
// no-ops. Browsing and gift-sending never block on the ledger.
type LedgerService struct {
	repo repository.OwnershipRepository
}

// NewLedgerService creates a ledger service. repo may be nil when no ledger
// database is configured.
func NewLedgerService(repo repository.OwnershipRepository) *LedgerService {
	return &LedgerService{repo: repo}
}

// GetItems returns all ledger records for a friend code. Failures degrade to
// an empty list.
func (s *LedgerService) GetItems(ctx context.Context, friendCode string) []model.OwnershipRecord {
	if s.repo == nil {
		return nil
	}

	records, err := s.repo.GetItems(ctx, friendCode)
	if err != nil {
		log.Printf("[LedgerService] Warning: failed to load items for %s: %v", friendCode, err)
		return nil
	}
	return records
}

// BlockedItems projects the ledger records for a friend code into the
// per-session blocked list.
func (s *LedgerService) BlockedItems(ctx context.Context, friendCode string) []model.BlockedItem {
	records := s.GetItems(ctx, friendCode)
	if len(records) == 0 {
		return nil
	}

	blocked := make([]model.BlockedItem, len(records))
	for i, rec := range records {
		blocked[i] = model.BlockedItem{ItemID: rec.ItemID, Status: rec.Status}
	}
	return blocked
}

// MarkStatus upserts a ledger record. Failures are logged and swallowed.
func (s *LedgerService) MarkStatus(ctx context.Context, friendCode, itemID, itemName string, status model.OwnershipStatus) {
	if s.repo == nil {
		return
	}

	if err := s.repo.MarkStatus(ctx, friendCode, itemID, itemName, status); err != nil {
		log.Printf("[LedgerService] Warning: failed to mark %s as %s for %s: %v", itemID, status, friendCode, err)
	}
}
