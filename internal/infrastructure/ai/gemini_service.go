package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/backroom/internal/application/ports"
	"github.com/tu-usuario/backroom/internal/domain"
	"github.com/tu-usuario/backroom/internal/domain/entity"
)

// Verificar en tiempo de compilación que GeminiService implementa los puertos.
var _ ports.IntentParser = (*GeminiService)(nil)
var _ ports.SupportAssistant = (*GeminiService)(nil)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

	// intentPrompt define el rol del modelo y el esquema JSON exacto de salida.
	// Con response_mime_type=application/json Gemini devuelve JSON puro; el
	// fence-stripping posterior es solo defensa extra.
	intentPrompt = `You are an AI assistant for "The Backroom" - an inventory management system for small businesses. Your job is to parse natural language messages about inventory into structured data.

Users will send messages about:
1. ADDING stock (received items, deliveries, purchases)
2. REMOVING stock (sales, used items, damaged goods, theft)
3. CHECKING stock levels
4. ADJUSTING stock (corrections, stocktake)
5. LISTING all items or searching for items

Parse the user's message and respond with a JSON object. Always respond ONLY with valid JSON, no other text or markdown.

Response format:
{
  "action": "add" | "remove" | "check" | "adjust" | "list" | "help" | "unknown",
  "items": [
    {
      "name": "item name (standardized, lowercase)",
      "quantity": number,
      "unit": "units" | "kg" | "liters" | "boxes" | "packs" | "pieces" | etc,
      "notes": "any additional context"
    }
  ],
  "searchQuery": "search term if action is list or check",
  "confidence": 0.0 to 1.0,
  "originalMessage": "the original message for reference"
}

Examples:
- "Got 50 bottles of Coke" -> action: "add", items: [{name: "coke bottles", quantity: 50, unit: "bottles"}]
- "Sold 3 solar panels" -> action: "remove", items: [{name: "solar panels", quantity: 3, unit: "pieces"}]
- "How many batteries do we have?" -> action: "check", searchQuery: "batteries"
- "Stock count: 100 screws, 50 bolts" -> action: "adjust", items: [...]
- "What's in stock?" -> action: "list"

Handle slang and common misspellings. Be smart about inferring units when not specified.`

	// supportPrompt contexto de negocio para el bot de soporte del sitio.
	supportPrompt = `You are a helpful customer support assistant for "The Backroom" - a WhatsApp-based inventory management system.

ABOUT THE BACKROOM:
- Product: inventory management via WhatsApp messages (text or voice notes)
- AI processes natural language and updates the inventory database in real time
- Features: voice notes, transaction history, web dashboard, CSV/PDF export
- Free trial: 14 days, no credit card required

STRICT RULES:
1. ONLY answer questions about The Backroom business
2. NEVER provide personal, medical, legal, or financial advice
3. NEVER discuss politics, religion, or controversial topics
4. If asked about unrelated topics, politely redirect to business questions
5. If you don't know something, admit it and suggest contacting support
6. Keep responses concise and helpful (2-3 paragraphs max)`
)

// GeminiService adaptador que implementa los puertos de IA llamando a la API
// REST de Google Gemini. Usa únicamente net/http para no añadir dependencias.
type GeminiService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-2.0-flash-lite".
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 20 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// intentPayload es el JSON que esperamos recibir del modelo.
type intentPayload struct {
	Action string `json:"action"`
	Items  []struct {
		Name     string          `json:"name"`
		Quantity decimal.Decimal `json:"quantity"`
		Unit     string          `json:"unit"`
		Notes    string          `json:"notes"`
	} `json:"items"`
	SearchQuery     string  `json:"searchQuery"`
	Confidence      float64 `json:"confidence"`
	OriginalMessage string  `json:"originalMessage"`
}

// ── Implementación de los puertos ─────────────────────────────────────────────

// ParseInventoryMessage envía el mensaje con el prompt de parsing y decodifica
// el intent. Cualquier error (timeout, JSON inválido, status no-2xx, key
// ausente) vuelve como error; el caller degrada, aquí no se decide política.
func (s *GeminiService) ParseInventoryMessage(ctx context.Context, message string) (*entity.ParsedIntent, error) {
	raw, err := s.generate(ctx, intentPrompt, fmt.Sprintf("User message: %q\n\nRespond with JSON only:", message), true)
	if err != nil {
		return nil, err
	}
	return decodeIntentPayload(raw, message)
}

// SupportReply responde una pregunta de soporte con el contexto de negocio.
func (s *GeminiService) SupportReply(ctx context.Context, question string) (string, error) {
	raw, err := s.generate(ctx, supportPrompt, "USER QUESTION: "+question, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// generate hace la llamada a generateContent y devuelve el texto del primer candidato.
func (s *GeminiService) generate(ctx context.Context, system, user string, jsonOutput bool) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: GEMINI_API_KEY no configurado: %w", domain.ErrNotConfigured)
	}

	cfg := genConfig{
		Temperature:     0.1, // baja temperatura para parsing consistente
		MaxOutputTokens: 500,
	}
	if jsonOutput {
		cfg.ResponseMIMEType = "application/json"
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: system}}},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: user}}},
		},
		GenerationConfig: cfg,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	url := fmt.Sprintf(geminiBaseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Gemini error %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}

	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}
	return gemResp.Candidates[0].Content.Parts[0].Text, nil
}

// decodeIntentPayload limpia posibles fences de markdown y decodifica el JSON
// del modelo al intent de dominio. La confianza se recorta a [0,1].
func decodeIntentPayload(raw, original string) (*entity.ParsedIntent, error) {
	cleaned := stripCodeFences(raw)

	var p intentPayload
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return nil, fmt.Errorf("AI: respuesta del modelo no es JSON válido: %w", err)
	}

	intent := &entity.ParsedIntent{
		Action:          entity.ParseAction(p.Action),
		SearchQuery:     p.SearchQuery,
		Confidence:      p.Confidence,
		OriginalMessage: original,
	}
	if intent.Confidence < 0 {
		intent.Confidence = 0
	} else if intent.Confidence > 1 {
		intent.Confidence = 1
	}
	intent.Items = make([]entity.IntentItem, 0, len(p.Items))
	for _, it := range p.Items {
		intent.Items = append(intent.Items, entity.IntentItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Unit:     it.Unit,
			Notes:    it.Notes,
		})
	}
	return intent, nil
}

// stripCodeFences elimina envoltorios ```json ... ``` que algunos modelos
// añaden aunque se pida JSON puro.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
