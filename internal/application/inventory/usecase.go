package inventory

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/tu-usuario/backroom/internal/application/chat"
	"github.com/tu-usuario/backroom/internal/application/dto"
	"github.com/tu-usuario/backroom/internal/application/ports"
	"github.com/tu-usuario/backroom/internal/domain"
	"github.com/tu-usuario/backroom/internal/domain/entity"
	"github.com/tu-usuario/backroom/internal/domain/repository"
)

// UseCase casos de uso del dashboard: listado, ajustes manuales, historial y
// exportación. Comparte ledger y auditoría con el pipeline de WhatsApp: un
// ajuste desde el dashboard se audita igual que uno por mensaje.
type UseCase struct {
	ledger  repository.LedgerRepository
	txRepo  repository.TransactionRepository
	users   repository.UserRepository
	audit   *chat.AuditLog
	reports ports.ReportGenerator
}

// NewUseCase construye el caso de uso del dashboard.
func NewUseCase(
	ledger repository.LedgerRepository,
	txRepo repository.TransactionRepository,
	users repository.UserRepository,
	audit *chat.AuditLog,
	reports ports.ReportGenerator,
) *UseCase {
	return &UseCase{ledger: ledger, txRepo: txRepo, users: users, audit: audit, reports: reports}
}

// List devuelve el inventario completo del usuario.
func (uc *UseCase) List(ctx context.Context, userID string) (*dto.InventoryResponse, error) {
	items, err := uc.ledger.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := &dto.InventoryResponse{
		Items: make([]dto.ItemResponse, 0, len(items)),
		Total: len(items),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, toItemResponse(it))
	}
	return resp, nil
}

// SetQuantity sobreescribe la cantidad de un artículo (corrección manual).
func (uc *UseCase) SetQuantity(ctx context.Context, userID string, in dto.SetQuantityRequest) (*dto.ItemResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	it, err := uc.ledger.SetQuantity(ctx, userID, in.Name, in.Quantity, in.Unit)
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, entity.TxActionADJUST, it.Name, in.Quantity, it.Unit, userID, "Manual adjustment from dashboard")
	resp := toItemResponse(it)
	return &resp, nil
}

// Delete elimina un artículo del inventario.
func (uc *UseCase) Delete(ctx context.Context, userID, name string) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	return uc.ledger.Delete(ctx, userID, name)
}

// Transactions devuelve el historial reciente del usuario.
func (uc *UseCase) Transactions(ctx context.Context, userID string, limit int) (*dto.TransactionsResponse, error) {
	txs, err := uc.txRepo.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.TransactionsResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(txs)),
		Total:        len(txs),
	}
	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, dto.TransactionResponse{
			ID:        tx.ID,
			Action:    tx.Action,
			ItemName:  tx.ItemName,
			Quantity:  tx.Quantity,
			Unit:      tx.Unit,
			Notes:     tx.Notes,
			CreatedAt: tx.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

// ExportCSV serializa el inventario como CSV (descarga del dashboard).
func (uc *UseCase) ExportCSV(ctx context.Context, userID string) ([]byte, error) {
	items, err := uc.ledger.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Item Name", "Quantity", "Unit", "Last Updated", "Updated By"}); err != nil {
		return nil, fmt.Errorf("escribir cabecera CSV: %w", err)
	}
	for _, it := range items {
		updated := ""
		if !it.UpdatedAt.IsZero() {
			updated = it.UpdatedAt.Format(time.RFC3339)
		}
		if err := w.Write([]string{it.Name, it.Quantity.String(), it.Unit, updated, it.UpdatedBy}); err != nil {
			return nil, fmt.Errorf("escribir fila CSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("volcar CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportPDF genera el reporte PDF del inventario.
func (uc *UseCase) ExportPDF(ctx context.Context, userID string) ([]byte, error) {
	items, err := uc.ledger.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	businessName := ""
	if user, err := uc.users.GetByPhone(ctx, userID); err == nil {
		businessName = user.BusinessName
	}
	return uc.reports.GenerateInventoryReport(ctx, businessName, items)
}

func toItemResponse(it *entity.InventoryItem) dto.ItemResponse {
	resp := dto.ItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Quantity:  it.Quantity,
		Unit:      it.Unit,
		UpdatedBy: it.UpdatedBy,
	}
	if !it.UpdatedAt.IsZero() {
		resp.UpdatedAt = it.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
