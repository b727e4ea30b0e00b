package ports

import (
	"context"
	"time"
)

// OTPStore guarda el hash del código de verificación con TTL. Implementaciones:
// Redis (producción) y memoria (desarrollo).
type OTPStore interface {
	// Put guarda el hash del código para el teléfono, pisando cualquier código previo.
	Put(ctx context.Context, phone, codeHash string, ttl time.Duration) error
	// Take devuelve el hash y lo invalida (un código solo se puede canjear una vez).
	// Devuelve "" si no hay código vigente.
	Take(ctx context.Context, phone string) (string, error)
}

// Deduper suprime entregas duplicadas del webhook (Meta reintenta si la
// respuesta tarda). Seen devuelve true si el ID ya fue procesado.
type Deduper interface {
	Seen(ctx context.Context, messageID string) (bool, error)
}
