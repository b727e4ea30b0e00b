package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/tu-usuario/backroom/internal/application/ports"
	"github.com/tu-usuario/backroom/internal/domain"
	"github.com/tu-usuario/backroom/pkg/config"
	"github.com/tu-usuario/backroom/pkg/logger"
)

var _ ports.Messenger = (*Client)(nil)

const graphBaseURL = "https://graph.facebook.com"

// maxMediaSize límite de descarga de adjuntos (las notas de voz de WhatsApp
// rondan decenas de KB por minuto).
const maxMediaSize = 16 << 20

// Client adaptador de la Cloud API de Meta (mensajes de texto y descarga de media).
type Client struct {
	phoneNumberID string
	accessToken   string
	apiVersion    string
	httpClient    *http.Client
	log           *logger.Logger
}

// NewClient construye el cliente. Sin credenciales los envíos fallan con
// domain.ErrNotConfigured (útil en desarrollo local sin número de prueba).
func NewClient(cfg config.WhatsAppConfig, log *logger.Logger) *Client {
	return &Client{
		phoneNumberID: cfg.PhoneNumberID,
		accessToken:   cfg.AccessToken,
		apiVersion:    cfg.APIVersion,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		log:           log,
	}
}

type textPayload struct {
	MessagingProduct string       `json:"messaging_product"`
	RecipientType    string       `json:"recipient_type"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             textBody     `json:"text"`
	Context          *replyTarget `json:"context,omitempty"`
}

type textBody struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

type replyTarget struct {
	MessageID string `json:"message_id"`
}

type readPayload struct {
	MessagingProduct string `json:"messaging_product"`
	Status           string `json:"status"`
	MessageID        string `json:"message_id"`
}

// SendMessage envía un texto simple.
func (c *Client) SendMessage(ctx context.Context, to, body string) error {
	return c.postMessage(ctx, textPayload{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               FormatPhoneNumber(to),
		Type:             "text",
		Text:             textBody{Body: body},
	})
}

// SendReply marca el mensaje original como leído (best-effort) y envía el
// texto enlazado al hilo vía context.message_id.
func (c *Client) SendReply(ctx context.Context, to, body, replyToMessageID string) error {
	c.markAsRead(ctx, replyToMessageID)
	return c.postMessage(ctx, textPayload{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               FormatPhoneNumber(to),
		Type:             "text",
		Text:             textBody{Body: body},
		Context:          &replyTarget{MessageID: replyToMessageID},
	})
}

// markAsRead no es crítico: si falla solo se pierde el doble check azul.
func (c *Client) markAsRead(ctx context.Context, messageID string) {
	if messageID == "" {
		return
	}
	err := c.post(ctx, c.messagesURL(), readPayload{
		MessagingProduct: "whatsapp",
		Status:           "read",
		MessageID:        messageID,
	}, nil)
	if err != nil {
		c.log.Debug().Err(err).Str("message_id", messageID).Msg("no se pudo marcar como leído")
	}
}

// DownloadMedia descarga un adjunto en dos pasos: resuelve la URL temporal del
// media ID y luego baja el archivo con el mismo token.
func (c *Client) DownloadMedia(ctx context.Context, mediaID string) ([]byte, error) {
	if c.accessToken == "" {
		return nil, fmt.Errorf("whatsapp: token no configurado: %w", domain.ErrNotConfigured)
	}

	var meta struct {
		URL string `json:"url"`
	}
	url := fmt.Sprintf("%s/%s/%s", graphBaseURL, c.apiVersion, mediaID)
	if err := c.get(ctx, url, &meta); err != nil {
		return nil, fmt.Errorf("resolver URL del media %s: %w", mediaID, err)
	}
	if meta.URL == "" {
		return nil, fmt.Errorf("media %s sin URL de descarga", mediaID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, meta.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("descargar media: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("descargar media: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMediaSize))
	if err != nil {
		return nil, fmt.Errorf("leer media: %w", err)
	}
	c.log.Info().Str("media_id", mediaID).Int("size", len(data)).Msg("media descargado")
	return data, nil
}

func (c *Client) messagesURL() string {
	return fmt.Sprintf("%s/%s/%s/messages", graphBaseURL, c.apiVersion, c.phoneNumberID)
}

func (c *Client) postMessage(ctx context.Context, payload textPayload) error {
	if c.accessToken == "" || c.phoneNumberID == "" {
		return fmt.Errorf("whatsapp: Cloud API no configurada: %w", domain.ErrNotConfigured)
	}
	var result struct {
		Messages []struct {
			ID string `json:"id"`
		} `json:"messages"`
	}
	if err := c.post(ctx, c.messagesURL(), payload, &result); err != nil {
		c.log.Error().Err(err).Str("to", payload.To).Msg("fallo al enviar mensaje de WhatsApp")
		return err
	}
	if len(result.Messages) > 0 {
		c.log.Info().Str("message_id", result.Messages[0].ID).Str("to", payload.To).Msg("mensaje enviado")
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("llamada a Graph API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("leer respuesta Graph API: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("Graph API HTTP %d: %s", resp.StatusCode, string(raw))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

var phoneCleaner = regexp.MustCompile(`[\s\-\+]`)

// FormatPhoneNumber normaliza números en distintos formatos al esperado por la
// API: sin prefijo whatsapp:, sin +, espacios ni guiones, sin cero inicial.
func FormatPhoneNumber(phone string) string {
	p := strings.TrimPrefix(phone, "whatsapp:")
	p = phoneCleaner.ReplaceAllString(p, "")
	return strings.TrimPrefix(p, "0")
}
