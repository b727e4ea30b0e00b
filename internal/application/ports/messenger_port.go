package ports

import "context"

// Messenger es el puerto hacia el canal de mensajería (WhatsApp Cloud API).
// Desde el punto de vista del pipeline los envíos son fire-and-forget: un
// fallo de entrega se registra en el adaptador, no se reintenta aquí.
type Messenger interface {
	// SendMessage envía un texto simple al destinatario.
	SendMessage(ctx context.Context, to, body string) error
	// SendReply envía un texto enlazado al mensaje original (hilo) y marca
	// el original como leído.
	SendReply(ctx context.Context, to, body, replyToMessageID string) error
	// DownloadMedia descarga un adjunto (nota de voz) por su media ID.
	DownloadMedia(ctx context.Context, mediaID string) ([]byte, error)
}
