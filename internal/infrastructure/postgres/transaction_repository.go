package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/backroom/internal/domain/entity"
	"github.com/tu-usuario/backroom/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo adaptador PostgreSQL del registro de auditoría.
// La tabla es append-only: no hay UPDATE ni DELETE en este repositorio.
type TransactionRepo struct {
	db Querier
}

// NewTransactionRepo crea el repositorio. Acepta pool o transacción.
func NewTransactionRepo(db Querier) *TransactionRepo {
	return &TransactionRepo{db: db}
}

// Append inserta la transacción. El ID y el timestamp se asignan aquí si el
// caller no los trae.
func (r *TransactionRepo) Append(ctx context.Context, tx *entity.Transaction) error {
	id := tx.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := r.db.Exec(ctx, `INSERT INTO transactions (id, action, item_name, quantity, unit, user_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`,
		id, tx.Action, tx.ItemName, tx.Quantity, tx.Unit, tx.UserID, tx.Notes)
	if err != nil {
		return fmt.Errorf("registrar transacción: %w", err)
	}
	return nil
}

// ListRecent devuelve las últimas transacciones del usuario, más recientes primero.
func (r *TransactionRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `SELECT id, action, item_name, quantity, unit, user_id, notes, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("consultar historial: %w", err)
	}
	defer rows.Close()

	txs := make([]*entity.Transaction, 0, limit)
	for rows.Next() {
		var tx entity.Transaction
		if err := rows.Scan(&tx.ID, &tx.Action, &tx.ItemName, &tx.Quantity, &tx.Unit, &tx.UserID, &tx.Notes, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("escanear transacción: %w", err)
		}
		txs = append(txs, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar historial: %w", err)
	}
	return txs, nil
}
