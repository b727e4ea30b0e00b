package chat

import (
	"fmt"
	"strings"

	"github.com/tu-usuario/backroom/internal/domain/entity"
)

// listDisplayCap máximo de artículos enumerados en una respuesta de listado;
// el resto se resume como "... and N more items".
const listDisplayCap = 10

// Textos fijos del pipeline (no generados por LLM). Todo el copy de cara al
// usuario vive en este archivo.
const (
	helpReply = "👋 Welcome to The Backroom!\n\n" +
		"I help you manage inventory via WhatsApp. Just tell me:\n\n" +
		"📥 *Add stock:* \"Got 50 bottles of Coke\"\n" +
		"📤 *Remove stock:* \"Sold 3 solar panels\"\n" +
		"🔍 *Check stock:* \"How many batteries?\"\n" +
		"📋 *List all:* \"What's in stock?\"\n\n" +
		"I understand natural language - just chat like normal!"

	unknownReply = "🤔 I'm not sure what you mean. Try saying things like:\n" +
		"• \"Added 10 boxes of screws\"\n" +
		"• \"Sold 5 batteries\"\n" +
		"• \"How many cables do we have?\""

	apologyReply = "❌ Sorry, something went wrong. Please try again in a moment."

	voiceFailedReply = "🎤 Sorry, I couldn't understand that voice note. " +
		"Please try again or send a text message."
)

// clarificationReply cita el mensaje original y muestra ejemplos de uso.
// Lo emite la puerta de confianza, nunca el Executor.
func clarificationReply(original string) string {
	return fmt.Sprintf("🤔 I'm not quite sure what you mean by:\n%q\n\n"+
		"Try being more specific, like:\n"+
		"• \"Added 10 boxes of screws\"\n"+
		"• \"Sold 5 batteries\"\n"+
		"• \"Check cable stock\"", original)
}

// FormatResult convierte un ActionResult en la respuesta para el usuario.
// Función pura: plantillas deterministas, sin llamadas externas.
func FormatResult(result *entity.ActionResult) string {
	if !result.Success {
		if result.Action == entity.ActionUnknown && result.Error == "" {
			return unknownReply
		}
		msg := result.Error
		if msg == "" {
			msg = "Something went wrong. Please try again."
		}
		return "❌ " + msg
	}

	switch result.Action {
	case entity.ActionAdd:
		return "✅ Added to inventory:\n" + joinItems(result.Items) +
			"\n\n📊 Your inventory has been updated!"

	case entity.ActionRemove:
		reply := "✅ Removed from inventory:\n" + joinItems(result.Items) +
			"\n\n📊 Your inventory has been updated!"
		if len(result.Warnings) > 0 {
			reply += "\n\n⚠️ Couldn't find: " + strings.Join(result.Warnings, "; ")
		}
		return reply

	case entity.ActionCheck:
		if len(result.Data) == 0 {
			return "🔍 No items found matching your search."
		}
		return "📦 Current stock levels:\n" + bulletList(result.Data, len(result.Data))

	case entity.ActionAdjust:
		return "✅ Stock levels adjusted!\n📊 Your inventory has been updated with the new counts."

	case entity.ActionList:
		if len(result.Data) == 0 {
			return "📦 Your inventory is empty. Send me items to add!"
		}
		reply := "📦 Inventory list:\n" + bulletList(result.Data, listDisplayCap)
		if extra := len(result.Data) - listDisplayCap; extra > 0 {
			reply += fmt.Sprintf("\n... and %d more items", extra)
		}
		return reply

	case entity.ActionHelp:
		return helpReply

	default:
		return unknownReply
	}
}

// joinItems enumera "cantidad unidad of nombre" separados por coma.
func joinItems(items []*entity.InventoryItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s %s of %s", it.Quantity.String(), it.Unit, it.Name))
	}
	return strings.Join(parts, ", ")
}

// bulletList lista "• nombre: cantidad unidad" hasta max entradas.
func bulletList(items []*entity.InventoryItem, max int) string {
	if max > len(items) {
		max = len(items)
	}
	lines := make([]string, 0, max)
	for _, it := range items[:max] {
		lines = append(lines, fmt.Sprintf("• %s: %s %s", it.Name, it.Quantity.String(), it.Unit))
	}
	return strings.Join(lines, "\n")
}
