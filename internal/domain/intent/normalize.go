package intent

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents elimina marcas diacríticas ("almacén" -> "almacen") para que la
// clave del ledger no dependa de cómo tecleó el usuario.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StandardizeItemName devuelve la forma canónica de un nombre de artículo:
// minúsculas, acentos plegados, espacios colapsados y sin caracteres especiales
// (se conservan letras, dígitos, espacios y guiones). Toda búsqueda y escritura
// en el ledger usa esta forma.
func StandardizeItemName(name string) string {
	folded, _, err := transform.String(foldAccents, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ParseQuantity interpreta una cantidad escrita de forma laxa ("12", "12.5",
// "12 kg"). Devuelve cero si no hay nada numérico.
func ParseQuantity(raw string) decimal.Decimal {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}
