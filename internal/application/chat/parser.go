package chat

import (
	"context"
	"time"

	"github.com/tu-usuario/backroom/internal/application/ports"
	"github.com/tu-usuario/backroom/internal/domain/entity"
	domainintent "github.com/tu-usuario/backroom/internal/domain/intent"
	"github.com/tu-usuario/backroom/pkg/logger"
)

// nluTimeout tope duro para la llamada al NLU. Si Gemini no responde en este
// plazo el mensaje se interpreta con el parser de respaldo.
const nluTimeout = 5 * time.Second

// IntentService convierte un mensaje libre en un ParsedIntent bien formado.
// Ruta primaria: el puerto NLU. Ante timeout, JSON malformado, status no-2xx
// o credenciales ausentes NO propaga el error: degrada al parser de respaldo
// por regex y, si tampoco hay match estructural, a {unknown, 0}. El Executor
// nunca ve intents nulos ni parciales.
type IntentService struct {
	nlu ports.IntentParser // nil = NLU deshabilitado, solo respaldo
	log *logger.Logger
}

// NewIntentService construye el servicio. nlu puede ser nil (modo respaldo).
func NewIntentService(nlu ports.IntentParser, log *logger.Logger) *IntentService {
	return &IntentService{nlu: nlu, log: log}
}

// Parse nunca devuelve error: todos los modos de fallo externos colapsan en
// un intent de baja confianza.
func (s *IntentService) Parse(ctx context.Context, message string) *entity.ParsedIntent {
	if s.nlu == nil {
		return domainintent.ParseFallback(message)
	}

	nluCtx, cancel := context.WithTimeout(ctx, nluTimeout)
	defer cancel()

	parsed, err := s.nlu.ParseInventoryMessage(nluCtx, message)
	if err != nil {
		s.log.Warn().Err(err).Msg("NLU degradado, usando parser de respaldo")
		return domainintent.ParseFallback(message)
	}
	return sanitize(parsed, message)
}

// sanitize normaliza lo que devuelve el NLU: acción al enum cerrado, nombres
// canónicos, confianza en [0,1] y slices nunca nil.
func sanitize(p *entity.ParsedIntent, original string) *entity.ParsedIntent {
	out := &entity.ParsedIntent{
		Action:          entity.ParseAction(string(p.Action)),
		SearchQuery:     p.SearchQuery,
		Confidence:      clamp01(p.Confidence),
		OriginalMessage: original,
	}
	out.Items = make([]entity.IntentItem, 0, len(p.Items))
	for _, it := range p.Items {
		name := domainintent.StandardizeItemName(it.Name)
		if name == "" {
			continue
		}
		it.Name = name
		out.Items = append(out.Items, it)
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
