package intent

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/backroom/internal/domain/entity"
)

// Parser de respaldo: heurística textual pura, sin llamadas externas.
// Se usa cuando el NLU está deshabilitado o degradado. Su único modo de
// fallo es "no hay match", que produce {unknown, confianza 0}.

// Familias de verbos que disparan cada acción.
var (
	addVerbs    = regexp.MustCompile(`(?i)\b(add|added|got|received|bought|purchase)\b`)
	removeVerbs = regexp.MustCompile(`(?i)\b(sold|sell|remove|used|took)\b`)

	// Estructura "<cantidad> [<unidad> [of]] <nombre>", p. ej. "Added 10 boxes of nails".
	itemPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:(\w+)\s+(?:of\s+)?)?(.+?)$`)
)

// FallbackConfidence confianza fija asignada a cualquier match estructural.
const FallbackConfidence = 0.8

// ParseFallback interpreta el mensaje con las familias de verbos y el patrón
// "<cantidad> [<unidad>] <nombre>". Devuelve siempre un intent bien formado.
func ParseFallback(message string) *entity.ParsedIntent {
	if action := matchVerbs(message); action != entity.ActionUnknown {
		if item, ok := extractItem(message); ok {
			return &entity.ParsedIntent{
				Action:          action,
				Items:           []entity.IntentItem{item},
				Confidence:      FallbackConfidence,
				OriginalMessage: message,
			}
		}
	}
	return &entity.ParsedIntent{
		Action:          entity.ActionUnknown,
		Items:           []entity.IntentItem{},
		Confidence:      0,
		OriginalMessage: message,
	}
}

func matchVerbs(message string) entity.Action {
	switch {
	case addVerbs.MatchString(message):
		return entity.ActionAdd
	case removeVerbs.MatchString(message):
		return entity.ActionRemove
	default:
		return entity.ActionUnknown
	}
}

// extractItem saca cantidad, unidad opcional y nombre. La unidad por defecto
// es "units", igual que en el ledger.
func extractItem(message string) (entity.IntentItem, bool) {
	m := itemPattern.FindStringSubmatch(message)
	if m == nil {
		return entity.IntentItem{}, false
	}
	qty, err := decimal.NewFromString(m[1])
	if err != nil {
		return entity.IntentItem{}, false
	}
	unit := strings.ToLower(m[2])
	if unit == "" {
		unit = entity.DefaultUnit
	}
	name := StandardizeItemName(m[3])
	if name == "" {
		return entity.IntentItem{}, false
	}
	return entity.IntentItem{Name: name, Quantity: qty, Unit: unit}, true
}
