package dto

import "github.com/shopspring/decimal"

// ItemResponse artículo del inventario en respuestas del dashboard.
type ItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UpdatedAt string          `json:"updated_at"`
	UpdatedBy string          `json:"updated_by,omitempty"`
}

// InventoryResponse listado completo del inventario.
type InventoryResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// SetQuantityRequest ajuste manual de cantidad desde el dashboard.
type SetQuantityRequest struct {
	Name     string          `json:"name" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// TransactionResponse registro del historial.
type TransactionResponse struct {
	ID        string          `json:"id"`
	Action    string          `json:"action"`
	ItemName  string          `json:"item_name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt string          `json:"created_at"`
}

// TransactionsResponse historial de transacciones.
type TransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}
