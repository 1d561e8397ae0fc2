// Package cart implements the gift-cart admission policy: a bounded set of
// distinct items with configurable count, per-item price, and total caps.
// The cart itself is persistence-agnostic; callers load and save it around
// each mutation.
package cart

import (
	"avkngifts-api/internal/model"
)

// Limits are the admission caps. Zero disables the price and total caps;
// MaxItems must be positive.
type Limits struct {
	MaxItems     int
	MaxItemPrice int
	MaxTotal     int
}

// RejectReason explains why an add was refused. Checks run in this order so
// user-facing messaging stays stable; the conditions themselves are
// independent.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectBlocked
	RejectDuplicate
	RejectCartFull
	RejectPriceCap
	RejectTotalCap
)

func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "ok"
	case RejectBlocked:
		return "item blocked for this friend code"
	case RejectDuplicate:
		return "item already in cart"
	case RejectCartFull:
		return "cart is full"
	case RejectPriceCap:
		return "item exceeds the per-item price limit"
	case RejectTotalCap:
		return "item exceeds the remaining cart budget"
	}
	return "unknown"
}

// BlockedFunc reports whether an item id is blocked by the ownership ledger
// for the session's friend code. A nil BlockedFunc blocks nothing.
type BlockedFunc func(itemID string) bool

// Cart is a bounded, duplicate-free selection of items. Not safe for
// concurrent use; each session owns exactly one.
type Cart struct {
	limits  Limits
	entries []model.CartEntry
}

// New creates an empty cart with the given limits.
func New(limits Limits) *Cart {
	return &Cart{limits: limits}
}

// Restore rebuilds a cart from persisted entries, e.g. after a session load.
func Restore(limits Limits, entries []model.CartEntry) *Cart {
	c := &Cart{limits: limits}
	c.entries = append(c.entries, entries...)
	return c
}

// CanAdd evaluates the admission rules without mutating the cart.
func (c *Cart) CanAdd(item model.Item, blocked BlockedFunc) RejectReason {
	if blocked != nil && blocked(item.ID) {
		return RejectBlocked
	}
	if c.Contains(item.ID) {
		return RejectDuplicate
	}
	if len(c.entries) >= c.limits.MaxItems {
		return RejectCartFull
	}
	if c.limits.MaxItemPrice > 0 && item.Price > c.limits.MaxItemPrice {
		return RejectPriceCap
	}
	if c.limits.MaxTotal > 0 && c.Total()+item.Price > c.limits.MaxTotal {
		return RejectTotalCap
	}
	return RejectNone
}

// Add appends the item with quantity 1 when admissible. On rejection the
// cart is left untouched and the reason is returned with ok=false.
func (c *Cart) Add(item model.Item, blocked BlockedFunc) (RejectReason, bool) {
	if reason := c.CanAdd(item, blocked); reason != RejectNone {
		return reason, false
	}
	c.entries = append(c.entries, model.CartEntry{Item: item, Quantity: 1})
	return RejectNone, true
}

// Remove deletes the entry with the given item id. Removing an absent id is
// a no-op.
func (c *Cart) Remove(itemID string) bool {
	for i, e := range c.entries {
		if e.Item.ID == itemID {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.entries = nil
}

// Contains reports whether the cart holds the given item id.
func (c *Cart) Contains(itemID string) bool {
	for _, e := range c.entries {
		if e.Item.ID == itemID {
			return true
		}
	}
	return false
}

// Size returns the number of entries.
func (c *Cart) Size() int {
	return len(c.entries)
}

// Total sums the entry prices.
func (c *Cart) Total() int {
	total := 0
	for _, e := range c.entries {
		total += e.Item.Price
	}
	return total
}

// Remaining returns the budget left under the total cap, or -1 when no cap
// is configured.
func (c *Cart) Remaining() int {
	if c.limits.MaxTotal <= 0 {
		return -1
	}
	return c.limits.MaxTotal - c.Total()
}

// ItemIDs lists the entry ids in insertion order.
func (c *Cart) ItemIDs() []string {
	ids := make([]string, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.Item.ID
	}
	return ids
}

// Entries returns a copy of the cart contents for persistence.
func (c *Cart) Entries() []model.CartEntry {
	out := make([]model.CartEntry, len(c.entries))
	copy(out, c.entries)
	return out
}
