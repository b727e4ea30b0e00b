package chat

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/backroom/internal/domain/entity"
	"github.com/tu-usuario/backroom/internal/domain/repository"
	"github.com/tu-usuario/backroom/pkg/logger"
)

// AuditLog escribe el rastro de auditoría con contrato explícito best-effort:
// un fallo al persistir la transacción se registra en el log operacional y se
// traga. La mutación de inventario que lo originó jamás se revierte ni se
// bloquea por un fallo de auditoría.
type AuditLog struct {
	repo repository.TransactionRepository
	log  *logger.Logger
}

// NewAuditLog construye el registro de auditoría.
func NewAuditLog(repo repository.TransactionRepository, log *logger.Logger) *AuditLog {
	return &AuditLog{repo: repo, log: log}
}

// Record inserta una transacción. No devuelve error: el resultado se observa
// solo para logging.
func (a *AuditLog) Record(ctx context.Context, action, itemName string, quantity decimal.Decimal, unit, userID, notes string) {
	tx := &entity.Transaction{
		Action:    action,
		ItemName:  itemName,
		Quantity:  quantity,
		Unit:      unit,
		UserID:    userID,
		Notes:     notes,
		CreatedAt: time.Now(),
	}
	if err := a.repo.Append(ctx, tx); err != nil {
		a.log.Warn().Err(err).
			Str("action", action).
			Str("item", itemName).
			Msg("fallo al registrar transacción de auditoría (ignorado)")
		return
	}
	a.log.Debug().Str("action", action).Str("item", itemName).Msg("transacción registrada")
}
