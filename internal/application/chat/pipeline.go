package chat

import (
	"context"
	"strings"

	"github.com/tu-usuario/backroom/internal/application/ports"
	"github.com/tu-usuario/backroom/internal/domain/entity"
	"github.com/tu-usuario/backroom/pkg/logger"
)

// confidenceThreshold por debajo de este valor el intent no llega al Executor:
// se responde pidiendo aclaración. La acción help está exenta.
const confidenceThreshold = 0.5

// helpCommands atajos que devuelven el menú de ayuda sin invocar al parser
// (comparación exacta, case-insensitive, tras recortar espacios).
var helpCommands = map[string]struct{}{
	"help": {}, "hi": {}, "hello": {}, "hey": {}, "start": {}, "?": {}, "menu": {},
}

// IncomingMessage es la entrada del pipeline, ya extraída del payload del canal.
type IncomingMessage struct {
	UserID       string // teléfono normalizado del remitente
	Text         string
	IsVoiceNote  bool
	AudioID      string // media ID de la nota de voz
	AudioMIME    string
}

// Pipeline es el orquestador de mensajes entrantes: máquina de estados lineal
// sin aristas de retorno. Es la única frontera de errores del núcleo: ningún
// error ni panic escapa a su caller; todo colapsa en una respuesta segura.
type Pipeline struct {
	parser      *IntentService
	executor    *Executor
	transcriber ports.Transcriber // nil = notas de voz no soportadas
	messenger   ports.Messenger
	log         *logger.Logger
}

// NewPipeline construye el orquestador.
func NewPipeline(parser *IntentService, executor *Executor, transcriber ports.Transcriber, messenger ports.Messenger, log *logger.Logger) *Pipeline {
	return &Pipeline{parser: parser, executor: executor, transcriber: transcriber, messenger: messenger, log: log}
}

// ProcessMessage procesa un mensaje de principio a fin y devuelve la respuesta
// a enviar. Nunca devuelve error.
func (p *Pipeline) ProcessMessage(ctx context.Context, msg IncomingMessage) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Str("user", msg.UserID).Msg("panic procesando mensaje")
			reply = apologyReply
		}
	}()

	p.log.Info().
		Str("user", msg.UserID).
		Bool("voice", msg.IsVoiceNote).
		Int("body_len", len(msg.Text)).
		Msg("procesando mensaje")

	// 1. Normalización: transcribir notas de voz. Un fallo aquí termina con
	// una respuesta fija, sin llegar al parser.
	text := msg.Text
	if msg.IsVoiceNote {
		transcribed, ok := p.transcribeVoiceNote(ctx, msg)
		if !ok {
			return voiceFailedReply
		}
		text = transcribed
	}

	// 2-3. Mensaje vacío o comando de ayuda: atajo al menú, sin NLU.
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return helpReply
	}
	if _, ok := helpCommands[strings.ToLower(trimmed)]; ok {
		return helpReply
	}

	// 4. Interpretación (NLU con degradación interna).
	parsed := p.parser.Parse(ctx, text)
	p.log.Info().
		Str("action", string(parsed.Action)).
		Float64("confidence", parsed.Confidence).
		Int("items", len(parsed.Items)).
		Msg("mensaje interpretado")

	// 5. Puerta de confianza: interpretaciones dudosas no mutan el ledger.
	if parsed.Confidence < confidenceThreshold && parsed.Action != entity.ActionHelp {
		return clarificationReply(text)
	}

	// 6. Ejecución y formato.
	result, err := p.executor.Execute(ctx, parsed, msg.UserID)
	if err != nil {
		p.log.Error().Err(err).Str("action", string(parsed.Action)).Msg("fallo ejecutando acción")
		return apologyReply
	}
	p.log.Info().Bool("success", result.Success).Msg("acción ejecutada")

	return FormatResult(result)
}

// transcribeVoiceNote descarga el audio y lo transcribe. Cualquier fallo
// (descarga, transcripción, servicio no configurado) es irrecuperable para
// este mensaje.
func (p *Pipeline) transcribeVoiceNote(ctx context.Context, msg IncomingMessage) (string, bool) {
	if p.transcriber == nil || msg.AudioID == "" {
		p.log.Warn().Msg("nota de voz recibida sin transcriptor configurado")
		return "", false
	}
	audio, err := p.messenger.DownloadMedia(ctx, msg.AudioID)
	if err != nil {
		p.log.Error().Err(err).Str("media_id", msg.AudioID).Msg("fallo descargando nota de voz")
		return "", false
	}
	text, err := p.transcriber.Transcribe(ctx, audio, msg.AudioMIME)
	if err != nil {
		p.log.Error().Err(err).Msg("fallo transcribiendo nota de voz")
		return "", false
	}
	p.log.Info().Int("text_len", len(text)).Msg("nota de voz transcrita")
	return text, true
}
