package repository

import (
	"context"

	"github.com/tu-usuario/backroom/internal/domain/entity"
)

// TransactionRepository es el puerto del registro de auditoría append-only.
type TransactionRepository interface {
	// Append inserta una transacción. El caller (chat.AuditLog) trata el error
	// como best-effort: nunca bloquea la mutación de inventario que lo originó.
	Append(ctx context.Context, tx *entity.Transaction) error

	// ListRecent devuelve las últimas transacciones del usuario, más recientes
	// primero (historial del dashboard).
	ListRecent(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error)
}
