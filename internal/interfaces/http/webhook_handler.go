package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/backroom/internal/application/chat"
	"github.com/tu-usuario/backroom/internal/application/ports"
	"github.com/tu-usuario/backroom/internal/infrastructure/whatsapp"
	"github.com/tu-usuario/backroom/pkg/logger"
)

// processTimeout presupuesto total por mensaje una vez desacoplado del webhook
// (transcripción + NLU + ledger + envío de la respuesta).
const processTimeout = 90 * time.Second

// WebhookHandler recibe los eventos de la Cloud API de Meta. El POST responde
// 200 de inmediato y procesa en background: si la respuesta tarda, Meta
// reintenta la entrega y duplicaría el mensaje.
type WebhookHandler struct {
	pipeline    *chat.Pipeline
	messenger   ports.Messenger
	deduper     ports.Deduper
	verifyToken string
	log         *logger.Logger
}

// NewWebhookHandler construye el handler.
func NewWebhookHandler(pipeline *chat.Pipeline, messenger ports.Messenger, deduper ports.Deduper, verifyToken string, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		pipeline:    pipeline,
		messenger:   messenger,
		deduper:     deduper,
		verifyToken: verifyToken,
		log:         log,
	}
}

// Verify responde el reto de suscripción de Meta (GET con hub.mode,
// hub.verify_token y hub.challenge).
func (h *WebhookHandler) Verify(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken && challenge != "" {
		h.log.Info().Msg("webhook verificado")
		return c.SendString(challenge)
	}
	h.log.Warn().Str("mode", mode).Msg("verificación de webhook rechazada")
	return c.SendStatus(fiber.StatusForbidden)
}

// Receive procesa un evento entrante. Siempre responde 200 (un error nuestro
// no debe provocar reintentos de Meta); los eventos sin mensaje se ignoran.
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	var payload whatsapp.WebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		h.log.Warn().Err(err).Msg("payload de webhook no parseable")
		return c.SendStatus(fiber.StatusOK)
	}

	data := whatsapp.ExtractMessageData(&payload)
	if data == nil {
		// Acks de entrega, estados, etc.
		return c.SendStatus(fiber.StatusOK)
	}

	seen, err := h.deduper.Seen(c.Context(), data.MessageID)
	if err != nil {
		h.log.Warn().Err(err).Msg("dedup no disponible, procesando de todas formas")
	}
	if seen {
		h.log.Info().Str("message_id", data.MessageID).Msg("mensaje duplicado descartado")
		return c.SendStatus(fiber.StatusOK)
	}

	go h.process(data)
	return c.SendStatus(fiber.StatusOK)
}

func (h *WebhookHandler) process(data *whatsapp.MessageData) {
	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	reply := h.pipeline.ProcessMessage(ctx, chat.IncomingMessage{
		UserID:      whatsapp.FormatPhoneNumber(data.From),
		Text:        data.Text,
		IsVoiceNote: data.IsVoiceNote,
		AudioID:     data.AudioID,
		AudioMIME:   data.AudioMIME,
	})
	if reply == "" {
		return
	}
	if err := h.messenger.SendReply(ctx, data.From, reply, data.MessageID); err != nil {
		h.log.Error().Err(err).Str("to", data.From).Msg("fallo enviando respuesta")
	}
}
