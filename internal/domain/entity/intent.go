package entity

import "github.com/shopspring/decimal"

// Action es el conjunto cerrado de acciones que puede expresar un mensaje.
// El Executor hace switch exhaustivo sobre este tipo; una acción nueva se
// añade aquí y el compilador obliga a decidir su comportamiento.
type Action string

const (
	ActionAdd     Action = "add"
	ActionRemove  Action = "remove"
	ActionCheck   Action = "check"
	ActionAdjust  Action = "adjust"
	ActionList    Action = "list"
	ActionHelp    Action = "help"
	ActionUnknown Action = "unknown"
)

// ParseAction normaliza un string de acción al enum; cualquier valor no
// reconocido colapsa a ActionUnknown.
func ParseAction(s string) Action {
	switch Action(s) {
	case ActionAdd, ActionRemove, ActionCheck, ActionAdjust, ActionList, ActionHelp:
		return Action(s)
	default:
		return ActionUnknown
	}
}

// IntentItem es una línea de artículo extraída del mensaje.
type IntentItem struct {
	Name     string
	Quantity decimal.Decimal
	Unit     string
	Notes    string
}

// ParsedIntent es la interpretación estructurada de un mensaje libre.
// Es efímero: se construye por mensaje y nunca se persiste. El parser
// garantiza que siempre está bien formado; los fallos del NLU se degradan
// a {ActionUnknown, Confidence 0} en lugar de propagarse como error.
type ParsedIntent struct {
	Action          Action
	Items           []IntentItem
	SearchQuery     string
	Confidence      float64
	OriginalMessage string
}

// ActionResult es el resultado de ejecutar un intent contra el ledger.
// Items lleva los snapshots post-mutación (add/remove/adjust); Data lleva
// los resultados de consulta (check/list). Efímero, lo consume el formatter.
type ActionResult struct {
	Action   Action
	Success  bool
	Items    []*InventoryItem
	Data     []*InventoryItem
	Warnings []string
	Error    string
}
