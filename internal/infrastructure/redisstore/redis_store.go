package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/backroom/internal/application/ports"
)

const (
	otpKeyPrefix   = "otp:"
	dedupKeyPrefix = "wamid:"

	// Meta reintenta webhooks durante horas; con 24h de memoria sobra.
	dedupTTL = 24 * time.Hour
)

var (
	_ ports.OTPStore = (*Store)(nil)
	_ ports.Deduper  = (*Store)(nil)
)

// Store implementa OTPStore y Deduper sobre Redis.
type Store struct {
	client *redis.Client
}

// NewStore crea el adaptador a partir de una URL (redis://host:port/db).
func NewStore(ctx context.Context, url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsear REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping Redis: %w", err)
	}
	return &Store{client: client}, nil
}

// Put guarda el hash del OTP con TTL, pisando cualquier código previo.
func (s *Store) Put(ctx context.Context, phone, codeHash string, ttl time.Duration) error {
	return s.client.Set(ctx, otpKeyPrefix+phone, codeHash, ttl).Err()
}

// Take devuelve el hash y lo borra en la misma operación (GETDEL): un código
// solo se canjea una vez, incluso con dos verificaciones concurrentes.
func (s *Store) Take(ctx context.Context, phone string) (string, error) {
	hash, err := s.client.GetDel(ctx, otpKeyPrefix+phone).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("leer OTP: %w", err)
	}
	return hash, nil
}

// Seen marca el message ID con SETNX: el primero en llegar gana y los
// reintentos del webhook se descartan.
func (s *Store) Seen(ctx context.Context, messageID string) (bool, error) {
	ok, err := s.client.SetNX(ctx, dedupKeyPrefix+messageID, 1, dedupTTL).Result()
	if err != nil {
		return false, fmt.Errorf("dedup webhook: %w", err)
	}
	return !ok, nil
}

// Close libera la conexión.
func (s *Store) Close() error {
	return s.client.Close()
}
