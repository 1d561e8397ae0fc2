package model

import "time"

// OwnershipStatus is the terminal per-item outcome recorded in the ledger.
type OwnershipStatus string

const (
	StatusOwned              OwnershipStatus = "owned"
	StatusPurchaseNotAllowed OwnershipStatus = "purchase_not_allowed"
)

// Valid reports whether s is a known ledger status.
func (s OwnershipStatus) Valid() bool {
	return s == StatusOwned || s == StatusPurchaseNotAllowed
}

// OwnershipRecord is a row in the user_items ledger, unique on
// (friend_code, item_id).
type OwnershipRecord struct {
	FriendCode string          `json:"friend_code"`
	ItemID     string          `json:"item_id"`
	ItemName   string          `json:"item_name"`
	Status     OwnershipStatus `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// BlockedItem is the per-session projection of a ledger record used to
// pre-block catalog cards for the current friend code.
type BlockedItem struct {
	ItemID string          `json:"item_id"`
	Status OwnershipStatus `json:"status"`
}
