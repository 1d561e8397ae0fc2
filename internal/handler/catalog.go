package handler

import (
	"net/http"
	"strconv"

	"avkngifts-api/internal/catalog"
	"avkngifts-api/pkg/response"
)

// CatalogHandler serves the filtered, sorted, paginated catalog.
type CatalogHandler struct {
	store    *catalog.Store
	pageSize int
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(store *catalog.Store, pageSize int) *CatalogHandler {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &CatalogHandler{store: store, pageSize: pageSize}
}

// ListItems handles GET /api/v1/items
//
// Query parameters: search, category, subcategory, price_min, price_max,
// sort (name, name-desc, price-asc, price-desc, date), page (1-based).
// Changing any filter is the client's cue to reset page to 1; the engine
// itself just answers the page it is asked for.
func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := catalog.Query{
		Search:      params.Get("search"),
		Category:    params.Get("category"),
		Subcategory: params.Get("subcategory"),
		Sort:        catalog.ParseSortKey(params.Get("sort")),
	}

	minStr, maxStr := params.Get("price_min"), params.Get("price_max")
	if minStr != "" || maxStr != "" {
		q.HasPriceRange = true
		q.MinPrice, _ = strconv.Atoi(minStr)
		if maxStr != "" {
			q.MaxPrice, _ = strconv.Atoi(maxStr)
		} else {
			q.MaxPrice = h.store.MaxPrice()
		}
	}

	page, _ := strconv.Atoi(params.Get("page"))
	if page < 1 {
		page = 1
	}

	filtered := q.Apply(h.store.Items())
	pageItems := catalog.Paginate(filtered, page, h.pageSize)

	response.JSONWithMeta(w, http.StatusOK, pageItems, page, h.pageSize, int64(len(filtered)))
}

// FacetsResponse lists the filter options derived from the catalog.
type FacetsResponse struct {
	Categories    []string `json:"categories"`
	Subcategories []string `json:"subcategories"`
	MaxPrice      int      `json:"max_price"`
	TotalItems    int      `json:"total_items"`
}

// Facets handles GET /api/v1/items/facets
func (h *CatalogHandler) Facets(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	response.OK(w, FacetsResponse{
		Categories:    h.store.Categories(),
		Subcategories: h.store.Subcategories(category),
		MaxPrice:      h.store.MaxPrice(),
		TotalItems:    h.store.Released(),
	})
}
