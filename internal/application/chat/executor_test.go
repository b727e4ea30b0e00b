package chat_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/backroom/internal/application/chat"
	"github.com/tu-usuario/backroom/internal/domain/entity"
	"github.com/tu-usuario/backroom/pkg/logger"
)

const testUser = "27839300255"

func newExecutor(ledger *fakeLedger, txRepo *fakeTxRepo) *chat.Executor {
	audit := chat.NewAuditLog(txRepo, logger.Nop())
	return chat.NewExecutor(ledger, audit)
}

func addIntent(items ...entity.IntentItem) *entity.ParsedIntent {
	return &entity.ParsedIntent{Action: entity.ActionAdd, Items: items, Confidence: 0.9}
}

func item(name string, qty int64, unit string) entity.IntentItem {
	return entity.IntentItem{Name: name, Quantity: decimal.NewFromInt(qty), Unit: unit}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestExecute_AddCreaYAcumula(t *testing.T) {
	ledger := newFakeLedger()
	txRepo := &fakeTxRepo{}
	exec := newExecutor(ledger, txRepo)

	result, err := exec.Execute(context.Background(), addIntent(item("coke bottles", 50, "bottles")), testUser)
	require.NoError(t, err)
	assert.True(t, result.Success)

	// Segunda alta del mismo artículo: acumula, no duplica.
	result, err = exec.Execute(context.Background(), addIntent(item("coke bottles", 10, "")), testUser)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "60", result.Items[0].Quantity.String())
}

func TestExecute_AddSinUnidadConservaLaExistente(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed("nails", 5, "boxes")
	exec := newExecutor(ledger, &fakeTxRepo{})

	result, err := exec.Execute(context.Background(), addIntent(item("nails", 10, "")), testUser)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "boxes", result.Items[0].Unit,
		"un alta sin unidad no debe pisar la unidad registrada")
	assert.Equal(t, "15", result.Items[0].Quantity.String())
}

func TestExecute_AddSinArticulosFallaSinError(t *testing.T) {
	exec := newExecutor(newFakeLedger(), &fakeTxRepo{})

	result, err := exec.Execute(context.Background(), addIntent(), testUser)
	require.NoError(t, err, "lista vacía es fallo de validación, no error de sistema")
	assert.False(t, result.Success)
	assert.Equal(t, "No items to add", result.Error)
}

func TestExecute_AddErrorDeStorageAbortaElLote(t *testing.T) {
	ledger := newFakeLedger()
	ledger.errOn = "cables"
	txRepo := &fakeTxRepo{}
	exec := newExecutor(ledger, txRepo)

	_, err := exec.Execute(context.Background(),
		addIntent(item("screws", 10, "boxes"), item("cables", 5, "")), testUser)
	require.Error(t, err, "un fallo de almacenamiento en add es fail-fast")
	assert.Len(t, txRepo.appended, 1, "solo la mutación aplicada antes del fallo queda auditada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Baja de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestExecute_RemoveRecortaEnCero(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed("batteries", 3, "units")
	exec := newExecutor(ledger, &fakeTxRepo{})

	result, err := exec.Execute(context.Background(), &entity.ParsedIntent{
		Action: entity.ActionRemove,
		Items:  []entity.IntentItem{item("batteries", 10, "")},
	}, testUser)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "0", result.Items[0].Quantity.String(),
		"el stock nunca queda negativo: la baja se recorta en cero")
}

func TestExecute_RemoveParcialConWarnings(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed("screws", 20, "boxes")
	txRepo := &fakeTxRepo{}
	exec := newExecutor(ledger, txRepo)

	result, err := exec.Execute(context.Background(), &entity.ParsedIntent{
		Action: entity.ActionRemove,
		Items: []entity.IntentItem{
			item("screws", 5, ""),
			item("unobtainium", 1, ""),
		},
	}, testUser)
	require.NoError(t, err)
	assert.True(t, result.Success, "éxito parcial: al menos un artículo se procesó")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "unobtainium: not found in inventory")
	assert.Len(t, txRepo.appended, 1, "el artículo inexistente no genera transacción")
}

func TestExecute_RemoveTodosInexistentesFalla(t *testing.T) {
	exec := newExecutor(newFakeLedger(), &fakeTxRepo{})

	result, err := exec.Execute(context.Background(), &entity.ParsedIntent{
		Action: entity.ActionRemove,
		Items:  []entity.IntentItem{item("a", 1, ""), item("b", 2, "")},
	}, testUser)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "a: not found in inventory")
	assert.Contains(t, result.Error, "b: not found in inventory")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste, consulta y auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestExecute_AdjustSobreescribeEnAbsoluto(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed("screws", 80, "boxes")
	txRepo := &fakeTxRepo{}
	exec := newExecutor(ledger, txRepo)

	result, err := exec.Execute(context.Background(), &entity.ParsedIntent{
		Action: entity.ActionAdjust,
		Items:  []entity.IntentItem{item("screws", 100, "")},
	}, testUser)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "100", result.Items[0].Quantity.String(), "adjust es absoluto, no delta")

	require.Len(t, txRepo.appended, 1)
	assert.Equal(t, entity.TxActionADJUST, txRepo.appended[0].Action)
	assert.Equal(t, "Stock adjustment/stocktake", txRepo.appended[0].Notes)
}

func TestExecute_CheckYListNoGeneranTransacciones(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed("batteries", 12, "units")
	txRepo := &fakeTxRepo{}
	exec := newExecutor(ledger, txRepo)

	_, err := exec.Execute(context.Background(), &entity.ParsedIntent{
		Action: entity.ActionCheck, SearchQuery: "batteries",
	}, testUser)
	require.NoError(t, err)

	_, err = exec.Execute(context.Background(), &entity.ParsedIntent{
		Action: entity.ActionList,
	}, testUser)
	require.NoError(t, err)

	assert.Empty(t, txRepo.appended, "las lecturas no tocan el log de auditoría")
}

func TestExecute_CheckUsaPrimerItemSiNoHayQuery(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed("batteries", 12, "units")
	exec := newExecutor(ledger, &fakeTxRepo{})

	result, err := exec.Execute(context.Background(), &entity.ParsedIntent{
		Action: entity.ActionCheck,
		Items:  []entity.IntentItem{{Name: "batteries"}},
	}, testUser)
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "batteries", result.Data[0].Name)
}

func TestExecute_AuditoriaEsBestEffort(t *testing.T) {
	ledger := newFakeLedger()
	txRepo := &fakeTxRepo{failAll: true}
	exec := newExecutor(ledger, txRepo)

	result, err := exec.Execute(context.Background(), addIntent(item("nails", 10, "boxes")), testUser)
	require.NoError(t, err, "un fallo del log de auditoría nunca bloquea la mutación")
	assert.True(t, result.Success)
}

func TestExecute_UnknownFallaSinTocarElLedger(t *testing.T) {
	txRepo := &fakeTxRepo{}
	exec := newExecutor(newFakeLedger(), txRepo)

	result, err := exec.Execute(context.Background(), &entity.ParsedIntent{
		Action: entity.ActionUnknown,
	}, testUser)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Empty(t, txRepo.appended)
}
