package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/tu-usuario/backroom/internal/application/dto"
)

// keyedLimiter mantiene un rate.Limiter por clave (IP) con limpieza perezosa.
type keyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newKeyedLimiter(limit rate.Limit, burst int) *keyedLimiter {
	return &keyedLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    limit,
		burst:    burst,
	}
}

func (kl *keyedLimiter) allow(key string) bool {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	now := time.Now()
	entry, ok := kl.limiters[key]
	if !ok {
		// Limpieza de claves inactivas antes de crear una nueva.
		for k, e := range kl.limiters {
			if now.Sub(e.lastSeen) > 10*time.Minute {
				delete(kl.limiters, k)
			}
		}
		entry = &limiterEntry{limiter: rate.NewLimiter(kl.limit, kl.burst)}
		kl.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.Allow()
}

// RateLimitMiddleware limita peticiones por IP. Se usa en las rutas públicas
// sensibles: OTP (evita spam de códigos por WhatsApp) y chat de soporte
// (cada pregunta cuesta una llamada al modelo).
func RateLimitMiddleware(perMinute int, burst int) fiber.Handler {
	kl := newKeyedLimiter(rate.Limit(float64(perMinute)/60.0), burst)
	return func(c *fiber.Ctx) error {
		if !kl.allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas peticiones, intenta de nuevo en un momento",
			})
		}
		return c.Next()
	}
}
