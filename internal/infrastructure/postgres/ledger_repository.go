package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/backroom/internal/domain"
	"github.com/tu-usuario/backroom/internal/domain/entity"
	"github.com/tu-usuario/backroom/internal/domain/intent"
	"github.com/tu-usuario/backroom/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

const itemColumns = "id, user_id, name, quantity, unit, updated_at, updated_by"

// LedgerRepo adaptador PostgreSQL del ledger de inventario.
// Todas las mutaciones son sentencias únicas y atómicas (quantity = quantity + $n,
// GREATEST(0, ...), ON CONFLICT DO UPDATE): dos webhooks concurrentes sobre el
// mismo artículo nunca pierden una actualización.
type LedgerRepo struct {
	db Querier
}

// NewLedgerRepo crea el repositorio. Acepta pool o transacción.
func NewLedgerRepo(db Querier) *LedgerRepo {
	return &LedgerRepo{db: db}
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(&it.ID, &it.UserID, &it.Name, &it.Quantity, &it.Unit, &it.UpdatedAt, &it.UpdatedBy)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Find resuelve el nombre: primero match exacto sobre el nombre canónico y, si
// no hay, el substring más corto (desempate lexicográfico) vía ORDER BY.
func (r *LedgerRepo) Find(ctx context.Context, userID, name string) (*entity.InventoryItem, error) {
	canonical := intent.StandardizeItemName(name)
	if canonical == "" {
		return nil, domain.ErrItemNotFound
	}

	query := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE user_id = $1 AND name = $2`, itemColumns)
	it, err := scanItem(r.db.QueryRow(ctx, query, userID, canonical))
	if err == nil {
		return it, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("buscar artículo: %w", err)
	}

	// Sin match exacto: candidatos por substring, el más corto gana.
	query = fmt.Sprintf(`SELECT %s FROM inventory_items
		WHERE user_id = $1 AND name LIKE '%%' || $2 || '%%'
		ORDER BY length(name), name
		LIMIT 1`, itemColumns)
	it, err = scanItem(r.db.QueryRow(ctx, query, userID, canonical))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("buscar artículo por substring: %w", err)
	}
	return it, nil
}

// Search devuelve todos los artículos cuyo nombre contiene query, por nombre.
func (r *LedgerRepo) Search(ctx context.Context, userID, query string) ([]*entity.InventoryItem, error) {
	canonical := intent.StandardizeItemName(query)
	sql := fmt.Sprintf(`SELECT %s FROM inventory_items
		WHERE user_id = $1 AND name LIKE '%%' || $2 || '%%'
		ORDER BY name`, itemColumns)
	return r.queryItems(ctx, sql, userID, canonical)
}

// ListAll devuelve el inventario completo del usuario ordenado por nombre.
func (r *LedgerRepo) ListAll(ctx context.Context, userID string) ([]*entity.InventoryItem, error) {
	sql := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE user_id = $1 ORDER BY name`, itemColumns)
	return r.queryItems(ctx, sql, userID)
}

func (r *LedgerRepo) queryItems(ctx context.Context, sql string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("consultar inventario: %w", err)
	}
	defer rows.Close()

	items := make([]*entity.InventoryItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("escanear artículo: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar inventario: %w", err)
	}
	return items, nil
}

// UpsertAdd suma quantity al artículo resuelto con Find o lo crea si no existe.
// La unidad entrante solo reemplaza a la existente si no es vacía
// (COALESCE(NULLIF($unit,''), unit)); un alta sin unidad usa DefaultUnit.
func (r *LedgerRepo) UpsertAdd(ctx context.Context, userID, name string, quantity decimal.Decimal, unit string) (*entity.InventoryItem, error) {
	canonical := intent.StandardizeItemName(name)
	if canonical == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := r.Find(ctx, userID, canonical)
	if err != nil && !errors.Is(err, domain.ErrItemNotFound) {
		return nil, err
	}

	if existing != nil {
		query := fmt.Sprintf(`UPDATE inventory_items
			SET quantity = quantity + $1,
			    unit = COALESCE(NULLIF($2, ''), unit),
			    updated_at = now(),
			    updated_by = $3
			WHERE id = $4
			RETURNING %s`, itemColumns)
		it, err := scanItem(r.db.QueryRow(ctx, query, quantity, unit, userID, existing.ID))
		if err != nil {
			return nil, fmt.Errorf("sumar stock: %w", err)
		}
		return it, nil
	}

	// Alta nueva. ON CONFLICT cubre la carrera de dos altas simultáneas del
	// mismo nombre: la segunda suma en vez de fallar.
	query := fmt.Sprintf(`INSERT INTO inventory_items (id, user_id, name, quantity, unit, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, COALESCE(NULLIF($5, ''), $6), now(), $7)
		ON CONFLICT (user_id, name) DO UPDATE
		SET quantity = inventory_items.quantity + EXCLUDED.quantity,
		    unit = COALESCE(NULLIF($5, ''), inventory_items.unit),
		    updated_at = now(),
		    updated_by = EXCLUDED.updated_by
		RETURNING %s`, itemColumns)
	it, err := scanItem(r.db.QueryRow(ctx, query, uuid.NewString(), userID, canonical, quantity, unit, entity.DefaultUnit, userID))
	if err != nil {
		return nil, fmt.Errorf("crear artículo: %w", err)
	}
	return it, nil
}

// RemoveQuantity resta quantity recortando en cero en el propio UPDATE.
func (r *LedgerRepo) RemoveQuantity(ctx context.Context, userID, name string, quantity decimal.Decimal) (*entity.InventoryItem, error) {
	existing, err := r.Find(ctx, userID, name)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE inventory_items
		SET quantity = GREATEST(0, quantity - $1),
		    updated_at = now(),
		    updated_by = $2
		WHERE id = $3
		RETURNING %s`, itemColumns)
	it, err := scanItem(r.db.QueryRow(ctx, query, quantity, userID, existing.ID))
	if err != nil {
		return nil, fmt.Errorf("restar stock: %w", err)
	}
	return it, nil
}

// SetQuantity sobreescribe la cantidad en absoluto (ajuste de stocktake),
// creando el artículo si no existe.
func (r *LedgerRepo) SetQuantity(ctx context.Context, userID, name string, quantity decimal.Decimal, unit string) (*entity.InventoryItem, error) {
	canonical := intent.StandardizeItemName(name)
	if canonical == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := r.Find(ctx, userID, canonical)
	if err != nil && !errors.Is(err, domain.ErrItemNotFound) {
		return nil, err
	}

	if existing != nil {
		query := fmt.Sprintf(`UPDATE inventory_items
			SET quantity = $1,
			    unit = COALESCE(NULLIF($2, ''), unit),
			    updated_at = now(),
			    updated_by = $3
			WHERE id = $4
			RETURNING %s`, itemColumns)
		it, err := scanItem(r.db.QueryRow(ctx, query, quantity, unit, userID, existing.ID))
		if err != nil {
			return nil, fmt.Errorf("ajustar stock: %w", err)
		}
		return it, nil
	}

	query := fmt.Sprintf(`INSERT INTO inventory_items (id, user_id, name, quantity, unit, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, COALESCE(NULLIF($5, ''), $6), now(), $7)
		ON CONFLICT (user_id, name) DO UPDATE
		SET quantity = EXCLUDED.quantity,
		    unit = COALESCE(NULLIF($5, ''), inventory_items.unit),
		    updated_at = now(),
		    updated_by = EXCLUDED.updated_by
		RETURNING %s`, itemColumns)
	it, err := scanItem(r.db.QueryRow(ctx, query, uuid.NewString(), userID, canonical, quantity, unit, entity.DefaultUnit, userID))
	if err != nil {
		return nil, fmt.Errorf("crear artículo en ajuste: %w", err)
	}
	return it, nil
}

// Delete elimina el artículo resuelto con Find (borrado desde el dashboard).
func (r *LedgerRepo) Delete(ctx context.Context, userID, name string) error {
	existing, err := r.Find(ctx, userID, name)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, existing.ID)
	if err != nil {
		return fmt.Errorf("borrar artículo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
