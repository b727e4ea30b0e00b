package chat_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/backroom/internal/application/chat"
	"github.com/tu-usuario/backroom/internal/domain/entity"
)

func invItem(name string, qty int64, unit string) *entity.InventoryItem {
	return &entity.InventoryItem{Name: name, Quantity: decimal.NewFromInt(qty), Unit: unit}
}

func TestFormatResult_Add(t *testing.T) {
	reply := chat.FormatResult(&entity.ActionResult{
		Action:  entity.ActionAdd,
		Success: true,
		Items:   []*entity.InventoryItem{invItem("nails", 10, "boxes")},
	})
	assert.Contains(t, reply, "✅ Added to inventory:")
	assert.Contains(t, reply, "10 boxes of nails")
	assert.Contains(t, reply, "📊 Your inventory has been updated!")
}

func TestFormatResult_RemoveConWarnings(t *testing.T) {
	reply := chat.FormatResult(&entity.ActionResult{
		Action:   entity.ActionRemove,
		Success:  true,
		Items:    []*entity.InventoryItem{invItem("screws", 15, "boxes")},
		Warnings: []string{"unobtainium: not found in inventory"},
	})
	assert.Contains(t, reply, "✅ Removed from inventory:")
	assert.Contains(t, reply, "⚠️ Couldn't find: unobtainium: not found in inventory")
}

func TestFormatResult_CheckVacio(t *testing.T) {
	reply := chat.FormatResult(&entity.ActionResult{
		Action:  entity.ActionCheck,
		Success: true,
		Data:    nil,
	})
	assert.Equal(t, "🔍 No items found matching your search.", reply)
}

func TestFormatResult_ListRecortaEnDiez(t *testing.T) {
	data := make([]*entity.InventoryItem, 0, 13)
	for i := 0; i < 13; i++ {
		data = append(data, invItem(fmt.Sprintf("item-%02d", i), int64(i), "units"))
	}
	reply := chat.FormatResult(&entity.ActionResult{
		Action:  entity.ActionList,
		Success: true,
		Data:    data,
	})
	assert.Contains(t, reply, "• item-09:", "los primeros 10 se enumeran")
	assert.NotContains(t, reply, "• item-10:", "a partir del 11 solo se cuentan")
	assert.Contains(t, reply, "... and 3 more items")
}

func TestFormatResult_ListVacio(t *testing.T) {
	reply := chat.FormatResult(&entity.ActionResult{Action: entity.ActionList, Success: true})
	assert.Equal(t, "📦 Your inventory is empty. Send me items to add!", reply)
}

func TestFormatResult_FalloConMensaje(t *testing.T) {
	reply := chat.FormatResult(&entity.ActionResult{
		Action:  entity.ActionRemove,
		Success: false,
		Error:   "a: not found in inventory",
	})
	assert.Equal(t, "❌ a: not found in inventory", reply)
}

func TestFormatResult_UnknownSinErrorDaEjemplos(t *testing.T) {
	reply := chat.FormatResult(&entity.ActionResult{Action: entity.ActionUnknown, Success: false})
	assert.Contains(t, reply, "🤔 I'm not sure what you mean")
	assert.Contains(t, reply, "Added 10 boxes of screws")
}
