package ports

import (
	"context"

	"github.com/tu-usuario/backroom/internal/domain/entity"
)

// IntentParser define el puerto de salida hacia el servicio NLU que convierte
// un mensaje libre en un intent estructurado. Cualquier adaptador (Gemini,
// OpenAI, mock) debe implementar esta interfaz; la aplicación solo conoce el
// contrato. El contexto debe llevar un timeout corto: el caller trata timeout,
// JSON malformado, status no-2xx y credenciales ausentes de forma idéntica
// (degradación, nunca excepción).
type IntentParser interface {
	ParseInventoryMessage(ctx context.Context, message string) (*entity.ParsedIntent, error)
}

// SupportAssistant es el puerto del bot de soporte del sitio (chat con
// contexto de negocio y guardrails aplicados por el caso de uso).
type SupportAssistant interface {
	SupportReply(ctx context.Context, question string) (string, error)
}
