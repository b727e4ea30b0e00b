package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tu-usuario/backroom/internal/domain"
	"github.com/tu-usuario/backroom/internal/domain/entity"
	"github.com/tu-usuario/backroom/internal/domain/repository"
)

// Executor aplica un ParsedIntent contra el ledger, registrando cada mutación
// en el AuditLog. Los fallos de validación (lista de artículos vacía) vuelven
// como resultado con Success=false; los fallos del backend de almacenamiento
// vuelven como error y los convierte el pipeline en la disculpa genérica.
type Executor struct {
	ledger repository.LedgerRepository
	audit  *AuditLog
}

// NewExecutor construye el ejecutor de acciones.
func NewExecutor(ledger repository.LedgerRepository, audit *AuditLog) *Executor {
	return &Executor{ledger: ledger, audit: audit}
}

// Execute hace switch exhaustivo sobre la acción del intent.
//
// Asimetría deliberada: add/adjust fallan el lote completo al primer error
// (no se espera que fallen en condiciones normales), mientras que remove
// captura ErrItemNotFound por artículo y sigue con el resto — es la única
// acción con una precondición por artículo (debe existir) que puede fallar
// legítimamente de forma independiente, y los mensajes por voz suelen mezclar
// referencias válidas con nombres que ya no existen.
func (e *Executor) Execute(ctx context.Context, intent *entity.ParsedIntent, userID string) (*entity.ActionResult, error) {
	switch intent.Action {
	case entity.ActionAdd:
		return e.addItems(ctx, intent.Items, userID)
	case entity.ActionRemove:
		return e.removeItems(ctx, intent.Items, userID)
	case entity.ActionCheck:
		query := intent.SearchQuery
		if query == "" && len(intent.Items) > 0 {
			query = intent.Items[0].Name
		}
		return e.queryStock(ctx, entity.ActionCheck, query, userID)
	case entity.ActionAdjust:
		return e.adjustItems(ctx, intent.Items, userID)
	case entity.ActionList:
		return e.queryStock(ctx, entity.ActionList, intent.SearchQuery, userID)
	case entity.ActionHelp:
		return &entity.ActionResult{Action: entity.ActionHelp, Success: true}, nil
	case entity.ActionUnknown:
		return &entity.ActionResult{Action: entity.ActionUnknown, Success: false}, nil
	default:
		return &entity.ActionResult{Action: entity.ActionUnknown, Success: false}, nil
	}
}

// addItems suma cada artículo al ledger y audita un ADD por mutación.
func (e *Executor) addItems(ctx context.Context, items []entity.IntentItem, userID string) (*entity.ActionResult, error) {
	if len(items) == 0 {
		return &entity.ActionResult{Action: entity.ActionAdd, Success: false, Error: "No items to add"}, nil
	}
	results := make([]*entity.InventoryItem, 0, len(items))
	for _, it := range items {
		updated, err := e.ledger.UpsertAdd(ctx, userID, it.Name, it.Quantity, it.Unit)
		if err != nil {
			return nil, fmt.Errorf("add %q: %w", it.Name, err)
		}
		results = append(results, updated)
		e.audit.Record(ctx, entity.TxActionADD, it.Name, it.Quantity, unitOf(it, updated), userID, it.Notes)
	}
	return &entity.ActionResult{Action: entity.ActionAdd, Success: true, Items: results}, nil
}

// removeItems resta cada artículo, acumulando en warnings los que no existen.
// Tiene éxito (con warnings) si al menos uno se procesó; falla solo si todos fallaron.
func (e *Executor) removeItems(ctx context.Context, items []entity.IntentItem, userID string) (*entity.ActionResult, error) {
	if len(items) == 0 {
		return &entity.ActionResult{Action: entity.ActionRemove, Success: false, Error: "No items to remove"}, nil
	}
	results := make([]*entity.InventoryItem, 0, len(items))
	var warnings []string
	for _, it := range items {
		updated, err := e.ledger.RemoveQuantity(ctx, userID, it.Name, it.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrItemNotFound) {
				warnings = append(warnings, fmt.Sprintf("%s: not found in inventory", it.Name))
				continue
			}
			return nil, fmt.Errorf("remove %q: %w", it.Name, err)
		}
		results = append(results, updated)
		e.audit.Record(ctx, entity.TxActionREMOVE, it.Name, it.Quantity, unitOf(it, updated), userID, it.Notes)
	}
	if len(results) == 0 {
		return &entity.ActionResult{
			Action:  entity.ActionRemove,
			Success: false,
			Error:   strings.Join(warnings, "; "),
		}, nil
	}
	return &entity.ActionResult{
		Action:   entity.ActionRemove,
		Success:  true,
		Items:    results,
		Warnings: warnings,
	}, nil
}

// adjustItems sobreescribe cantidades en absoluto (stocktake) y audita ADJUST.
func (e *Executor) adjustItems(ctx context.Context, items []entity.IntentItem, userID string) (*entity.ActionResult, error) {
	if len(items) == 0 {
		return &entity.ActionResult{Action: entity.ActionAdjust, Success: false, Error: "No items to adjust"}, nil
	}
	results := make([]*entity.InventoryItem, 0, len(items))
	for _, it := range items {
		updated, err := e.ledger.SetQuantity(ctx, userID, it.Name, it.Quantity, it.Unit)
		if err != nil {
			return nil, fmt.Errorf("adjust %q: %w", it.Name, err)
		}
		results = append(results, updated)
		e.audit.Record(ctx, entity.TxActionADJUST, it.Name, it.Quantity, unitOf(it, updated), userID, "Stock adjustment/stocktake")
	}
	return &entity.ActionResult{Action: entity.ActionAdjust, Success: true, Items: results}, nil
}

// queryStock busca por término o lista todo. Un resultado vacío no es error.
func (e *Executor) queryStock(ctx context.Context, action entity.Action, query, userID string) (*entity.ActionResult, error) {
	var (
		data []*entity.InventoryItem
		err  error
	)
	if query == "" {
		data, err = e.ledger.ListAll(ctx, userID)
	} else {
		data, err = e.ledger.Search(ctx, userID, query)
	}
	if err != nil {
		return nil, fmt.Errorf("query stock: %w", err)
	}
	return &entity.ActionResult{Action: action, Success: true, Data: data}, nil
}

// unitOf prefiere la unidad declarada en el mensaje; si venía vacía, la del
// artículo tras la mutación.
func unitOf(it entity.IntentItem, updated *entity.InventoryItem) string {
	if it.Unit != "" {
		return it.Unit
	}
	return updated.Unit
}
