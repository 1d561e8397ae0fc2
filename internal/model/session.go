package model

import (
	"strings"
	"time"
)

// SessionState holds everything a browsing session persists across restarts:
// the key and its validity, the cached balance, the destination friend code
// with its blocked-item list, and the cart.
type SessionState struct {
	Key          string        `json:"key"`
	KeyValid     bool          `json:"key_valid"`
	Balance      *int          `json:"balance"`
	FriendCode   string        `json:"friend_code"`
	BlockedItems []BlockedItem `json:"blocked_items"`
	Cart         []CartEntry   `json:"cart"`
	Sending      bool          `json:"sending"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// NewSessionState returns an empty session.
func NewSessionState() *SessionState {
	return &SessionState{UpdatedAt: time.Now().UTC()}
}

// BlockedStatus returns the ledger status for itemID if the current friend
// code has it blocked.
func (s *SessionState) BlockedStatus(itemID string) (OwnershipStatus, bool) {
	for _, b := range s.BlockedItems {
		if b.ItemID == itemID {
			return b.Status, true
		}
	}
	return "", false
}

// IsBlocked reports whether itemID is blocked for the current friend code.
func (s *SessionState) IsBlocked(itemID string) bool {
	_, ok := s.BlockedStatus(itemID)
	return ok
}

// CartTotal sums the prices of all cart entries.
func (s *SessionState) CartTotal() int {
	total := 0
	for _, e := range s.Cart {
		total += e.Item.Price
	}
	return total
}

// FormatFriendCode normalizes a user-supplied friend code: uppercase,
// alphanumerics only, at most six characters, rendered as XXX-XXX.
func FormatFriendCode(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() == 6 {
			break
		}
	}
	code := b.String()
	if len(code) > 3 {
		return code[:3] + "-" + code[3:]
	}
	return code
}
