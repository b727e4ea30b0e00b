package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/tu-usuario/backroom/internal/application/ports"
	"github.com/tu-usuario/backroom/internal/domain"
)

var _ ports.Transcriber = (*WhisperService)(nil)

// WhisperService transcribe notas de voz contra un servidor Whisper con API
// compatible OpenAI (POST /v1/audio/transcriptions, multipart). El original
// corría whisper-base local; aquí el modelo vive detrás de un endpoint HTTP.
type WhisperService struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewWhisperService construye el adaptador. baseURL vacío = deshabilitado.
func NewWhisperService(baseURL, model string) *WhisperService {
	return &WhisperService{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second, // la transcripción en CPU puede tardar
		},
	}
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe envía el audio y devuelve el texto plano transcrito.
func (s *WhisperService) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if s.baseURL == "" {
		return "", fmt.Errorf("STT: WHISPER_URL no configurado: %w", domain.ErrNotConfigured)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("model", s.model); err != nil {
		return "", fmt.Errorf("STT: escribir campo model: %w", err)
	}
	part, err := mw.CreateFormFile("file", fileNameFor(mimeType))
	if err != nil {
		return "", fmt.Errorf("STT: crear form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("STT: escribir audio: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("STT: cerrar multipart: %w", err)
	}

	url := s.baseURL + "/v1/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("STT: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("STT: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", fmt.Errorf("STT: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("STT: Whisper HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var tr transcriptionResponse
	if err := json.Unmarshal(rawBody, &tr); err != nil {
		return "", fmt.Errorf("STT: deserializar respuesta: %w", err)
	}
	text := strings.TrimSpace(tr.Text)
	if text == "" {
		return "", fmt.Errorf("STT: transcripción vacía")
	}
	return text, nil
}

// fileNameFor da un nombre con extensión coherente con el MIME (las notas de
// voz de WhatsApp llegan como audio/ogg; codecs opus).
func fileNameFor(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "ogg"), strings.Contains(mimeType, "opus"):
		return "voice-note.ogg"
	case strings.Contains(mimeType, "mpeg"), strings.Contains(mimeType, "mp3"):
		return "voice-note.mp3"
	case strings.Contains(mimeType, "mp4"), strings.Contains(mimeType, "m4a"):
		return "voice-note.m4a"
	default:
		return "voice-note.bin"
	}
}
