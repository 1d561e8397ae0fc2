package catalog

import (
	"sort"
	"strings"
	"time"

	"avkngifts-api/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterAll disables a category or subcategory filter.
const FilterAll = "all"

// DefaultPageSize is the catalog page size.
const DefaultPageSize = 25

// SortKey selects the catalog ordering.
type SortKey string

const (
	SortNameAsc   SortKey = "name"
	SortNameDesc  SortKey = "name-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortDateDesc  SortKey = "date"
)

// ParseSortKey maps a query parameter to a SortKey, defaulting to name asc.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortNameDesc, SortPriceAsc, SortPriceDesc, SortDateDesc:
		return SortKey(s)
	default:
		return SortNameAsc
	}
}

// Query is a filter/sort state over the catalog. The zero value lists every
// released item in name order.
type Query struct {
	Search      string
	Category    string
	Subcategory string

	// Price range is inclusive on both ends and only applied when
	// HasPriceRange is set, mirroring the storefront's lazily-initialized
	// slider.
	HasPriceRange bool
	MinPrice      int
	MaxPrice      int

	Sort SortKey
}

// Apply filters and sorts the given items. Items flagged unreleased are
// always excluded. The input slice is not modified.
func (q Query) Apply(items []model.Item) []model.Item {
	out := make([]model.Item, 0, len(items))
	search := strings.ToLower(strings.TrimSpace(q.Search))

	for _, it := range items {
		if it.Unreleased {
			continue
		}
		if search != "" && !matchesSearch(it, search) {
			continue
		}
		if q.Category != "" && q.Category != FilterAll && it.Category != q.Category {
			continue
		}
		if q.Subcategory != "" && q.Subcategory != FilterAll && it.Subcategory != q.Subcategory {
			continue
		}
		if q.HasPriceRange && (it.Price < q.MinPrice || it.Price > q.MaxPrice) {
			continue
		}
		out = append(out, it)
	}

	sortItems(out, q.Sort)
	return out
}

// Paginate slices a 1-based page out of items. Pages beyond the end yield an
// empty slice rather than an error.
func Paginate(items []model.Item, page, size int) []model.Item {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []model.Item{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages returns the page count for the given result size.
func TotalPages(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total == 0 {
		return 0
	}
	return (total + size - 1) / size
}

func matchesSearch(it model.Item, search string) bool {
	return strings.Contains(strings.ToLower(it.Name), search) ||
		strings.Contains(strings.ToLower(it.Category), search) ||
		strings.Contains(strings.ToLower(it.Subcategory), search) ||
		strings.Contains(strings.ToLower(it.Brand), search)
}

func sortItems(items []model.Item, key SortKey) {
	switch key {
	case SortNameDesc:
		c := nameCollator()
		sort.SliceStable(items, func(i, j int) bool {
			return c.CompareString(items[j].Name, items[i].Name) < 0
		})
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price < items[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price > items[j].Price
		})
	case SortDateDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return releaseTime(items[i]).After(releaseTime(items[j]))
		})
	default: // SortNameAsc
		c := nameCollator()
		sort.SliceStable(items, func(i, j int) bool {
			return c.CompareString(items[i].Name, items[j].Name) < 0
		})
	}
}

// nameCollator builds a pt-BR collator for name ordering. Collators are not
// safe for concurrent use, so each sort gets its own.
func nameCollator() *collate.Collator {
	return collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
}

// releaseTime parses the leading DD/MM/YYYY of a release-date string.
// Unparseable dates yield the zero time and therefore sort last under
// date-descending order.
func releaseTime(it model.Item) time.Time {
	field := it.ReleaseDate
	if i := strings.IndexByte(field, ' '); i >= 0 {
		field = field[:i]
	}
	t, err := time.Parse("02/01/2006", field)
	if err != nil {
		return time.Time{}
	}
	return t
}
