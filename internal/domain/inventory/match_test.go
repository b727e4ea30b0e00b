package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/backroom/internal/domain/entity"
	"github.com/tu-usuario/backroom/internal/domain/inventory"
)

func items(names ...string) []*entity.InventoryItem {
	out := make([]*entity.InventoryItem, 0, len(names))
	for _, n := range names {
		out = append(out, &entity.InventoryItem{Name: n})
	}
	return out
}

func TestFindBestMatch_ExactoGanaASubstring(t *testing.T) {
	inv := items("wood screws", "screws", "screwdrivers")

	got := inventory.FindBestMatch(inv, "Screws")
	require.NotNil(t, got)
	assert.Equal(t, "screws", got.Name, "el match exacto canónico tiene prioridad sobre cualquier substring")
}

func TestFindBestMatch_DesempatePorLongitud(t *testing.T) {
	// "screw" no existe exacto; contienen el término "screws" y "wood screws".
	// Gana el nombre más corto: la resolución debe ser determinista.
	inv := items("wood screws", "screws")

	got := inventory.FindBestMatch(inv, "screw")
	require.NotNil(t, got)
	assert.Equal(t, "screws", got.Name)
}

func TestFindBestMatch_DesempateLexicografico(t *testing.T) {
	// A igual longitud decide el orden lexicográfico.
	inv := items("screws b", "screws a")

	got := inventory.FindBestMatch(inv, "screw")
	require.NotNil(t, got)
	assert.Equal(t, "screws a", got.Name)
}

func TestFindBestMatch_SinMatch(t *testing.T) {
	inv := items("batteries", "cables")

	assert.Nil(t, inventory.FindBestMatch(inv, "paint"))
	assert.Nil(t, inventory.FindBestMatch(inv, ""), "término vacío nunca matchea")
}

func TestFilterByQuery(t *testing.T) {
	inv := items("coke bottles", "water bottles", "batteries")

	got := inventory.FilterByQuery(inv, "bottles")
	require.Len(t, got, 2)
	assert.Equal(t, "coke bottles", got[0].Name)
	assert.Equal(t, "water bottles", got[1].Name)

	assert.Empty(t, inventory.FilterByQuery(inv, "paint"), "resultado vacío no es error")
}
