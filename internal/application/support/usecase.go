package support

import (
	"context"
	"strings"
	"time"

	"github.com/tu-usuario/backroom/internal/application/dto"
	"github.com/tu-usuario/backroom/internal/application/ports"
	"github.com/tu-usuario/backroom/internal/domain"
	"github.com/tu-usuario/backroom/pkg/logger"
)

const replyTimeout = 15 * time.Second

// redirectReply respuesta fija cuando la pregunta cae fuera del negocio.
// El filtro corre antes de llamar al modelo: temas vetados ni siquiera llegan a la IA.
const redirectReply = "I'm here to help with questions about The Backroom inventory management system. " +
	"I can answer questions about our features, pricing, how to get started, and more. " +
	"What would you like to know about The Backroom?"

// blockedTopics temas que se cortan en seco, aunque el prompt también los prohíbe.
var blockedTopics = []string{
	"politics", "election", "government", "president",
	"religion", "god", "bible", "quran",
	"medical", "doctor", "medicine", "health",
	"legal", "lawyer", "law", "court",
	"personal advice", "relationship", "dating",
	"write code", "hack", "exploit",
}

// UseCase chat de soporte del sitio público, con guardrails de doble capa:
// filtro léxico local y reglas estrictas en el prompt del asistente.
type UseCase struct {
	assistant ports.SupportAssistant
	log       *logger.Logger
}

// NewUseCase construye el caso de uso de soporte.
func NewUseCase(assistant ports.SupportAssistant, log *logger.Logger) *UseCase {
	return &UseCase{assistant: assistant, log: log}
}

// Chat responde la pregunta del visitante. Preguntas fuera de tema reciben la
// redirección fija sin tocar el modelo.
func (uc *UseCase) Chat(ctx context.Context, in dto.SupportRequest) (*dto.SupportResponse, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, domain.ErrInvalidInput
	}

	if !isBusinessRelated(message) {
		return &dto.SupportResponse{Reply: redirectReply}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, replyTimeout)
	defer cancel()

	reply, err := uc.assistant.SupportReply(ctx, message)
	if err != nil {
		uc.log.Error().Err(err).Msg("fallo del asistente de soporte")
		return nil, err
	}

	uc.log.Info().Int("reply_len", len(reply)).Msg("respuesta de soporte generada")
	return &dto.SupportResponse{Reply: reply}, nil
}

// isBusinessRelated filtro léxico previo al modelo. Los temas vetados cortan;
// el resto pasa (el prompt del asistente maneja lo ambiguo).
func isBusinessRelated(message string) bool {
	lower := strings.ToLower(message)
	for _, topic := range blockedTopics {
		if strings.Contains(lower, topic) {
			return false
		}
	}
	return true
}
