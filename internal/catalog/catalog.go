package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"avkngifts-api/internal/model"
)

// Store holds the static item catalog. It is loaded once at startup and is
// safe for concurrent reads; nothing mutates it afterwards.
type Store struct {
	items []model.Item
}

// NewStore wraps an already-decoded item list.
func NewStore(items []model.Item) *Store {
	return &Store{items: items}
}

// Load reads the catalog JSON file from path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	log.Printf("[Catalog] Loaded %d items from %s", len(items), path)
	return &Store{items: items}, nil
}

// Items returns the full catalog, unreleased items included. Callers must
// not modify the returned slice.
func (s *Store) Items() []model.Item {
	return s.items
}

// Len returns the catalog size.
func (s *Store) Len() int {
	return len(s.items)
}

// Released returns the number of items visible in the default listing.
func (s *Store) Released() int {
	n := 0
	for _, it := range s.items {
		if !it.Unreleased {
			n++
		}
	}
	return n
}

// Item looks up a catalog item by id.
func (s *Store) Item(id string) (model.Item, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

// Categories returns the sorted set of distinct categories.
func (s *Store) Categories() []string {
	return distinct(s.items, func(it model.Item) string { return it.Category })
}

// Subcategories returns the sorted set of distinct subcategories, restricted
// to the given category unless it is "all" or empty.
func (s *Store) Subcategories(category string) []string {
	items := s.items
	if category != "" && category != FilterAll {
		items = nil
		for _, it := range s.items {
			if it.Category == category {
				items = append(items, it)
			}
		}
	}
	return distinct(items, func(it model.Item) string { return it.Subcategory })
}

// MaxPrice returns the highest catalog price rounded up to the nearest 1000,
// matching the slider bound the storefront exposes.
func (s *Store) MaxPrice() int {
	max := 0
	for _, it := range s.items {
		if it.Price > max {
			max = it.Price
		}
	}
	if max%1000 != 0 {
		max = (max/1000 + 1) * 1000
	}
	return max
}

func distinct(items []model.Item, field func(model.Item) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range items {
		v := field(it)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
