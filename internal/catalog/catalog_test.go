package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreFacets(t *testing.T) {
	s := NewStore(testItems())

	assert.Equal(t, []string{"acessorios", "moveis", "roupas"}, s.Categories())
	assert.Equal(t, []string{"decoracao", "sala"}, s.Subcategories("moveis"))
	assert.Equal(t, []string{"bolsas", "chapeus"}, s.Subcategories("acessorios"))

	// "all" and empty include every subcategory
	all := s.Subcategories(FilterAll)
	assert.Equal(t, all, s.Subcategories(""))
	assert.Contains(t, all, "vestidos")
}

func TestStoreMaxPriceRoundsUp(t *testing.T) {
	s := NewStore(testItems())
	// Highest price is 33000, already a multiple of 1000
	assert.Equal(t, 33000, s.MaxPrice())

	s2 := NewStore(testItems()[:1]) // 5000
	assert.Equal(t, 5000, s2.MaxPrice())
}

func TestStoreLookupAndCounts(t *testing.T) {
	s := NewStore(testItems())

	it, ok := s.Item("4")
	require.True(t, ok)
	assert.Equal(t, "Sofa Azul", it.Name)

	_, ok = s.Item("missing")
	assert.False(t, ok)

	assert.Equal(t, 6, s.Len())
	assert.Equal(t, 5, s.Released())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	payload := `[{"id":"X1","nome":"Chapeu Sol","categoria":"acessorios","subcategoria":"chapeus","marca":"Urban Vibe","preco":700,"data_lancamento":"01/02/2025 00:00","nao_lancado":false,"imagem":"/images/x1.png"}]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	it, ok := s.Item("X1")
	require.True(t, ok)
	assert.Equal(t, "Chapeu Sol", it.Name)
	assert.Equal(t, 700, it.Price)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
