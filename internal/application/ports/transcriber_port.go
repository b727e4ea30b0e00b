package ports

import "context"

// Transcriber convierte una nota de voz en texto plano. El fallo se trata como
// irrecuperable para ese mensaje: el pipeline responde con un mensaje fijo y
// no llega a invocar al parser.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}
