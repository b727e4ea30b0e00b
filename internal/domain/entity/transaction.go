package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de inventario. CHECK y LIST no generan transacciones.
const (
	TxActionADD    = "ADD"
	TxActionREMOVE = "REMOVE"
	TxActionADJUST = "ADJUST"
)

// Transaction es un registro de auditoría inmutable de una mutación del ledger.
// Solo se inserta, nunca se actualiza ni se borra. La referencia al artículo es
// por nombre (referencia blanda: un renombre posterior no reescribe el historial).
type Transaction struct {
	ID        string
	Action    string
	ItemName  string
	Quantity  decimal.Decimal
	Unit      string
	UserID    string
	Notes     string
	CreatedAt time.Time
}
