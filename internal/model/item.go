package model

// Item is a catalog entry. The JSON tags follow the catalog file and the
// external Avakin gift API, which both speak pt-BR field names.
// Items are loaded once at startup and never mutated.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"nome"`
	Category    string `json:"categoria"`
	Subcategory string `json:"subcategoria"`
	Brand       string `json:"marca"`
	Price       int    `json:"preco"`
	ReleaseDate string `json:"data_lancamento"`
	Unreleased  bool   `json:"nao_lancado"`
	Image       string `json:"imagem"`
}

// CartEntry is an item selected for gifting. Quantity is always 1; the field
// exists for forward compatibility with multi-quantity carts.
type CartEntry struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}
