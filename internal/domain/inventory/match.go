package inventory

import (
	"sort"
	"strings"

	"github.com/tu-usuario/backroom/internal/domain/entity"
	"github.com/tu-usuario/backroom/internal/domain/intent"
)

// Política de resolución de nombres del ledger: primero match exacto
// case-insensitive sobre el nombre canónico; si no hay, match por contención
// de substring. Cuando varios artículos contienen el término ("screw" contra
// "screws" y "wood screws") el desempate es determinista: gana el nombre más
// corto y, a igual longitud, el menor lexicográficamente. Los adaptadores SQL
// replican esta política con ORDER BY length(name), name.

// FindBestMatch resuelve un nombre contra la lista de artículos en memoria.
// Devuelve nil si nada coincide.
func FindBestMatch(items []*entity.InventoryItem, name string) *entity.InventoryItem {
	canonical := intent.StandardizeItemName(name)
	if canonical == "" {
		return nil
	}
	for _, it := range items {
		if strings.ToLower(it.Name) == canonical {
			return it
		}
	}
	var candidates []*entity.InventoryItem
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), canonical) {
			candidates = append(candidates, it)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i].Name) != len(candidates[j].Name) {
			return len(candidates[i].Name) < len(candidates[j].Name)
		}
		return candidates[i].Name < candidates[j].Name
	})
	return candidates[0]
}

// FilterByQuery devuelve todos los artículos cuyo nombre canónico contiene el
// término (case-insensitive). Un resultado vacío no es un error.
func FilterByQuery(items []*entity.InventoryItem, query string) []*entity.InventoryItem {
	q := intent.StandardizeItemName(query)
	if q == "" {
		return nil
	}
	var out []*entity.InventoryItem
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			out = append(out, it)
		}
	}
	return out
}
