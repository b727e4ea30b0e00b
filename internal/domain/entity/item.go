package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa la existencia actual de un artículo para un usuario.
// El nombre es la clave lógica: canónico en minúsculas, único por usuario.
// Invariante: Quantity >= 0 en toda mutación (las salidas se recortan a cero).
type InventoryItem struct {
	ID        string
	UserID    string
	Name      string
	Quantity  decimal.Decimal
	Unit      string
	UpdatedAt time.Time
	UpdatedBy string
}

// DefaultUnit unidad usada cuando el mensaje no especifica ninguna.
const DefaultUnit = "units"
