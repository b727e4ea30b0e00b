package redisstore

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/backroom/internal/application/ports"
)

var (
	_ ports.OTPStore = (*MemoryStore)(nil)
	_ ports.Deduper  = (*MemoryStore)(nil)
)

// MemoryStore variante en memoria para desarrollo (REDIS_URL vacío).
// No sobrevive reinicios ni sirve con más de una instancia.
type MemoryStore struct {
	mu    sync.Mutex
	otps  map[string]memoryEntry
	seen  map[string]time.Time
	clock func() time.Time
}

type memoryEntry struct {
	hash      string
	expiresAt time.Time
}

// NewMemoryStore crea el store en memoria.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		otps:  make(map[string]memoryEntry),
		seen:  make(map[string]time.Time),
		clock: time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, phone, codeHash string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otps[phone] = memoryEntry{hash: codeHash, expiresAt: s.clock().Add(ttl)}
	return nil
}

func (s *MemoryStore) Take(_ context.Context, phone string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.otps[phone]
	if !ok {
		return "", nil
	}
	delete(s.otps, phone)
	if s.clock().After(entry.expiresAt) {
		return "", nil
	}
	return entry.hash, nil
}

func (s *MemoryStore) Seen(_ context.Context, messageID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	// Limpieza perezosa de entradas vencidas.
	for id, exp := range s.seen {
		if now.After(exp) {
			delete(s.seen, id)
		}
	}
	if _, ok := s.seen[messageID]; ok {
		return true, nil
	}
	s.seen[messageID] = now.Add(dedupTTL)
	return false, nil
}
