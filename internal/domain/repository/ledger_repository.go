package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/backroom/internal/domain/entity"
)

// LedgerRepository es el puerto del ledger de inventario. Toda operación está
// implícitamente acotada al usuario que actúa. Hay dos adaptadores (PostgreSQL
// y Google Sheets); la aplicación solo conoce esta interfaz.
type LedgerRepository interface {
	// Find resuelve un nombre: match exacto case-insensitive y, si no hay,
	// primer match por substring según la política de inventory.FindBestMatch.
	// Devuelve domain.ErrItemNotFound si nada coincide.
	Find(ctx context.Context, userID, name string) (*entity.InventoryItem, error)

	// Search devuelve los artículos cuyo nombre contiene query (case-insensitive).
	Search(ctx context.Context, userID, query string) ([]*entity.InventoryItem, error)

	// ListAll devuelve el inventario completo del usuario, ordenado por nombre.
	ListAll(ctx context.Context, userID string) ([]*entity.InventoryItem, error)

	// UpsertAdd suma quantity al artículo (resuelto con Find) o lo crea si no
	// existe. La unidad entrante reemplaza a la existente solo si no es vacía.
	// Devuelve el artículo posterior a la mutación.
	UpsertAdd(ctx context.Context, userID, name string, quantity decimal.Decimal, unit string) (*entity.InventoryItem, error)

	// RemoveQuantity resta quantity recortando en cero (nunca negativo).
	// Devuelve domain.ErrItemNotFound si el artículo no existe.
	RemoveQuantity(ctx context.Context, userID, name string, quantity decimal.Decimal) (*entity.InventoryItem, error)

	// SetQuantity sobreescribe la cantidad en absoluto (stocktake). Si el
	// artículo no existe lo crea con esa cantidad.
	SetQuantity(ctx context.Context, userID, name string, quantity decimal.Decimal, unit string) (*entity.InventoryItem, error)

	// Delete elimina el artículo (borrado explícito desde el dashboard).
	Delete(ctx context.Context, userID, name string) error
}
