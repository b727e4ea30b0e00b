package sheets

import (
	"context"
	"fmt"
	"strconv"
	"time"

	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/tu-usuario/backroom/internal/domain/entity"
	"github.com/tu-usuario/backroom/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo registro de auditoría sobre la pestaña Transactions.
// Append-only por construcción: solo se usa values.Append.
type TransactionRepo struct {
	svc           *sheetsv4.Service
	spreadsheetID string
}

// NewTransactionRepo crea el adaptador.
func NewTransactionRepo(svc *sheetsv4.Service, spreadsheetID string) *TransactionRepo {
	return &TransactionRepo{svc: svc, spreadsheetID: spreadsheetID}
}

func (r *TransactionRepo) Append(ctx context.Context, tx *entity.Transaction) error {
	createdAt := tx.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.svc.Spreadsheets.Values.Append(r.spreadsheetID, transactionsSheet+"!A:G", &sheetsv4.ValueRange{
		Values: [][]any{{
			createdAt.Format(time.RFC3339),
			tx.Action,
			tx.ItemName,
			tx.Quantity.String(),
			tx.Unit,
			tx.UserID,
			tx.Notes,
		}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("registrar transacción: %w", err)
	}
	return nil
}

// ListRecent lee la pestaña completa y devuelve las últimas filas invertidas
// (la hoja crece hacia abajo; lo más reciente está al final).
func (r *TransactionRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, transactionsSheet+"!A2:G").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("leer historial: %w", err)
	}

	txs := make([]*entity.Transaction, 0, limit)
	for i := len(resp.Values) - 1; i >= 0 && len(txs) < limit; i-- {
		raw := resp.Values[i]
		tx := &entity.Transaction{
			ID:       strconv.Itoa(i + 2),
			Action:   cellString(raw, 1),
			ItemName: cellString(raw, 2),
			Quantity: cellDecimal(raw, 3),
			Unit:     cellString(raw, 4),
			UserID:   cellString(raw, 5),
			Notes:    cellString(raw, 6),
		}
		if tx.Action == "" {
			continue
		}
		if ts := cellString(raw, 0); ts != "" {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				tx.CreatedAt = t
			}
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
