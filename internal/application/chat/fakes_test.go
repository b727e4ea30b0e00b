package chat_test

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/backroom/internal/domain"
	"github.com/tu-usuario/backroom/internal/domain/entity"
	"github.com/tu-usuario/backroom/internal/domain/inventory"
)

// fakeLedger implementación en memoria del ledger con la misma semántica que
// los adaptadores reales: clave canónica, recorte en cero, unidad que solo se
// reemplaza si viene no vacía.
type fakeLedger struct {
	items map[string]*entity.InventoryItem
	errOn string // nombre que fuerza un error de almacenamiento
	panic bool   // fuerza un panic en cualquier operación
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{items: make(map[string]*entity.InventoryItem)}
}

func (f *fakeLedger) seed(name string, qty int64, unit string) {
	f.items[name] = &entity.InventoryItem{
		Name:     name,
		Quantity: decimal.NewFromInt(qty),
		Unit:     unit,
	}
}

func (f *fakeLedger) check(name string) error {
	if f.panic {
		panic("fallo simulado del ledger")
	}
	if f.errOn != "" && name == f.errOn {
		return fmt.Errorf("storage caído: %s", name)
	}
	return nil
}

func (f *fakeLedger) all() []*entity.InventoryItem {
	out := make([]*entity.InventoryItem, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (f *fakeLedger) Find(_ context.Context, _, name string) (*entity.InventoryItem, error) {
	if err := f.check(name); err != nil {
		return nil, err
	}
	if it := inventory.FindBestMatch(f.all(), name); it != nil {
		return it, nil
	}
	return nil, domain.ErrItemNotFound
}

func (f *fakeLedger) Search(_ context.Context, _, query string) ([]*entity.InventoryItem, error) {
	if err := f.check(query); err != nil {
		return nil, err
	}
	return inventory.FilterByQuery(f.all(), query), nil
}

func (f *fakeLedger) ListAll(_ context.Context, _ string) ([]*entity.InventoryItem, error) {
	if err := f.check(""); err != nil {
		return nil, err
	}
	return f.all(), nil
}

func (f *fakeLedger) UpsertAdd(_ context.Context, _, name string, qty decimal.Decimal, unit string) (*entity.InventoryItem, error) {
	if err := f.check(name); err != nil {
		return nil, err
	}
	if it := inventory.FindBestMatch(f.all(), name); it != nil {
		it.Quantity = it.Quantity.Add(qty)
		if unit != "" {
			it.Unit = unit
		}
		return it, nil
	}
	if unit == "" {
		unit = entity.DefaultUnit
	}
	it := &entity.InventoryItem{Name: strings.ToLower(name), Quantity: qty, Unit: unit}
	f.items[it.Name] = it
	return it, nil
}

func (f *fakeLedger) RemoveQuantity(_ context.Context, _, name string, qty decimal.Decimal) (*entity.InventoryItem, error) {
	if err := f.check(name); err != nil {
		return nil, err
	}
	it := inventory.FindBestMatch(f.all(), name)
	if it == nil {
		return nil, domain.ErrItemNotFound
	}
	it.Quantity = it.Quantity.Sub(qty)
	if it.Quantity.IsNegative() {
		it.Quantity = decimal.Zero
	}
	return it, nil
}

func (f *fakeLedger) SetQuantity(_ context.Context, _, name string, qty decimal.Decimal, unit string) (*entity.InventoryItem, error) {
	if err := f.check(name); err != nil {
		return nil, err
	}
	if it := inventory.FindBestMatch(f.all(), name); it != nil {
		it.Quantity = qty
		if unit != "" {
			it.Unit = unit
		}
		return it, nil
	}
	if unit == "" {
		unit = entity.DefaultUnit
	}
	it := &entity.InventoryItem{Name: strings.ToLower(name), Quantity: qty, Unit: unit}
	f.items[it.Name] = it
	return it, nil
}

func (f *fakeLedger) Delete(_ context.Context, _, name string) error {
	if err := f.check(name); err != nil {
		return err
	}
	it := inventory.FindBestMatch(f.all(), name)
	if it == nil {
		return domain.ErrItemNotFound
	}
	delete(f.items, it.Name)
	return nil
}

// fakeTxRepo registra los appends del log de auditoría.
type fakeTxRepo struct {
	appended []*entity.Transaction
	failAll  bool
}

func (f *fakeTxRepo) Append(_ context.Context, tx *entity.Transaction) error {
	if f.failAll {
		return fmt.Errorf("audit storage caído")
	}
	f.appended = append(f.appended, tx)
	return nil
}

func (f *fakeTxRepo) ListRecent(_ context.Context, _ string, _ int) ([]*entity.Transaction, error) {
	return f.appended, nil
}

// fakeNLU parser de intents programable; cuenta las llamadas.
type fakeNLU struct {
	intent *entity.ParsedIntent
	err    error
	calls  int
}

func (f *fakeNLU) ParseInventoryMessage(_ context.Context, message string) (*entity.ParsedIntent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := *f.intent
	out.OriginalMessage = message
	return &out, nil
}

// fakeMessenger canal de mensajería de prueba.
type fakeMessenger struct {
	audio    []byte
	audioErr error
	sent     []string
}

func (f *fakeMessenger) SendMessage(_ context.Context, _, body string) error {
	f.sent = append(f.sent, body)
	return nil
}

func (f *fakeMessenger) SendReply(_ context.Context, _, body, _ string) error {
	f.sent = append(f.sent, body)
	return nil
}

func (f *fakeMessenger) DownloadMedia(_ context.Context, _ string) ([]byte, error) {
	return f.audio, f.audioErr
}

// fakeTranscriber transcriptor programable.
type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return f.text, f.err
}
