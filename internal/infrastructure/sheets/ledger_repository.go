package sheets

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/tu-usuario/backroom/internal/domain"
	"github.com/tu-usuario/backroom/internal/domain/entity"
	"github.com/tu-usuario/backroom/internal/domain/intent"
	"github.com/tu-usuario/backroom/internal/domain/inventory"
	"github.com/tu-usuario/backroom/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo adaptador del ledger sobre Google Sheets. La hoja no ofrece
// mutaciones atómicas, así que todo read-modify-write se serializa con un
// mutex de proceso (el backend Sheets asume una sola instancia del servicio).
type LedgerRepo struct {
	svc           *sheetsv4.Service
	spreadsheetID string
	mu            sync.Mutex
}

// NewLedgerRepo crea el adaptador sobre un spreadsheet ya inicializado con EnsureLayout.
func NewLedgerRepo(svc *sheetsv4.Service, spreadsheetID string) *LedgerRepo {
	return &LedgerRepo{svc: svc, spreadsheetID: spreadsheetID}
}

// sheetRow es un artículo junto a su fila física (1-indexed, cabecera en la 1).
type sheetRow struct {
	item *entity.InventoryItem
	row  int
}

func (r *LedgerRepo) readAll(ctx context.Context) ([]sheetRow, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, inventorySheet+"!A2:E").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("leer inventario: %w", err)
	}

	rows := make([]sheetRow, 0, len(resp.Values))
	for i, raw := range resp.Values {
		rowIndex := i + 2
		it := &entity.InventoryItem{
			ID:       strconv.Itoa(rowIndex),
			Name:     cellString(raw, 0),
			Quantity: cellDecimal(raw, 1),
			Unit:     cellString(raw, 2),
		}
		if it.Name == "" {
			continue
		}
		if it.Unit == "" {
			it.Unit = entity.DefaultUnit
		}
		if ts := cellString(raw, 3); ts != "" {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				it.UpdatedAt = t
			}
		}
		it.UpdatedBy = cellString(raw, 4)
		it.UserID = it.UpdatedBy
		rows = append(rows, sheetRow{item: it, row: rowIndex})
	}
	return rows, nil
}

func (r *LedgerRepo) writeRow(ctx context.Context, row int, it *entity.InventoryItem) error {
	rng := fmt.Sprintf("%s!A%d:E%d", inventorySheet, row, row)
	_, err := r.svc.Spreadsheets.Values.Update(r.spreadsheetID, rng, &sheetsv4.ValueRange{
		Values: [][]any{{it.Name, it.Quantity.String(), it.Unit, it.UpdatedAt.Format(time.RFC3339), it.UpdatedBy}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("actualizar fila %d: %w", row, err)
	}
	return nil
}

func (r *LedgerRepo) appendRow(ctx context.Context, it *entity.InventoryItem) error {
	_, err := r.svc.Spreadsheets.Values.Append(r.spreadsheetID, inventorySheet+"!A:E", &sheetsv4.ValueRange{
		Values: [][]any{{it.Name, it.Quantity.String(), it.Unit, it.UpdatedAt.Format(time.RFC3339), it.UpdatedBy}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("añadir fila: %w", err)
	}
	return nil
}

func (r *LedgerRepo) find(ctx context.Context, name string) (*sheetRow, error) {
	rows, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]*entity.InventoryItem, len(rows))
	for i, sr := range rows {
		items[i] = sr.item
	}
	best := inventory.FindBestMatch(items, name)
	if best == nil {
		return nil, domain.ErrItemNotFound
	}
	for i := range rows {
		if rows[i].item == best {
			return &rows[i], nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (r *LedgerRepo) Find(ctx context.Context, userID, name string) (*entity.InventoryItem, error) {
	sr, err := r.find(ctx, name)
	if err != nil {
		return nil, err
	}
	return sr.item, nil
}

func (r *LedgerRepo) Search(ctx context.Context, userID, query string) ([]*entity.InventoryItem, error) {
	rows, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]*entity.InventoryItem, len(rows))
	for i, sr := range rows {
		items[i] = sr.item
	}
	out := inventory.FilterByQuery(items, query)
	if out == nil {
		out = []*entity.InventoryItem{}
	}
	return out, nil
}

func (r *LedgerRepo) ListAll(ctx context.Context, userID string) ([]*entity.InventoryItem, error) {
	rows, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]*entity.InventoryItem, len(rows))
	for i, sr := range rows {
		items[i] = sr.item
	}
	return items, nil
}

func (r *LedgerRepo) UpsertAdd(ctx context.Context, userID, name string, quantity decimal.Decimal, unit string) (*entity.InventoryItem, error) {
	canonical := intent.StandardizeItemName(name)
	if canonical == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sr, err := r.find(ctx, canonical)
	if err == nil {
		it := sr.item
		it.Quantity = it.Quantity.Add(quantity)
		if unit != "" {
			it.Unit = unit
		}
		it.UpdatedAt = time.Now().UTC()
		it.UpdatedBy = userID
		if err := r.writeRow(ctx, sr.row, it); err != nil {
			return nil, err
		}
		return it, nil
	}
	if err != domain.ErrItemNotFound {
		return nil, err
	}

	it := &entity.InventoryItem{
		UserID:    userID,
		Name:      canonical,
		Quantity:  quantity,
		Unit:      unit,
		UpdatedAt: time.Now().UTC(),
		UpdatedBy: userID,
	}
	if it.Unit == "" {
		it.Unit = entity.DefaultUnit
	}
	if err := r.appendRow(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (r *LedgerRepo) RemoveQuantity(ctx context.Context, userID, name string, quantity decimal.Decimal) (*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sr, err := r.find(ctx, name)
	if err != nil {
		return nil, err
	}
	it := sr.item
	it.Quantity = it.Quantity.Sub(quantity)
	if it.Quantity.IsNegative() {
		it.Quantity = decimal.Zero
	}
	it.UpdatedAt = time.Now().UTC()
	it.UpdatedBy = userID
	if err := r.writeRow(ctx, sr.row, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (r *LedgerRepo) SetQuantity(ctx context.Context, userID, name string, quantity decimal.Decimal, unit string) (*entity.InventoryItem, error) {
	canonical := intent.StandardizeItemName(name)
	if canonical == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sr, err := r.find(ctx, canonical)
	if err == nil {
		it := sr.item
		it.Quantity = quantity
		if unit != "" {
			it.Unit = unit
		}
		it.UpdatedAt = time.Now().UTC()
		it.UpdatedBy = userID
		if err := r.writeRow(ctx, sr.row, it); err != nil {
			return nil, err
		}
		return it, nil
	}
	if err != domain.ErrItemNotFound {
		return nil, err
	}

	it := &entity.InventoryItem{
		UserID:    userID,
		Name:      canonical,
		Quantity:  quantity,
		Unit:      unit,
		UpdatedAt: time.Now().UTC(),
		UpdatedBy: userID,
	}
	if it.Unit == "" {
		it.Unit = entity.DefaultUnit
	}
	if err := r.appendRow(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Delete vacía la fila del artículo (la API de values no elimina filas; una
// fila en blanco se ignora en las lecturas).
func (r *LedgerRepo) Delete(ctx context.Context, userID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sr, err := r.find(ctx, name)
	if err != nil {
		return err
	}
	rng := fmt.Sprintf("%s!A%d:E%d", inventorySheet, sr.row, sr.row)
	_, err = r.svc.Spreadsheets.Values.Clear(r.spreadsheetID, rng, &sheetsv4.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("vaciar fila %d: %w", sr.row, err)
	}
	return nil
}

func cellString(row []any, idx int) string {
	if idx >= len(row) {
		return ""
	}
	s, _ := row[idx].(string)
	return s
}

func cellDecimal(row []any, idx int) decimal.Decimal {
	s := cellString(row, idx)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
