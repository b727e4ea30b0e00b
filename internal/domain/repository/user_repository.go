package repository

import (
	"context"

	"github.com/tu-usuario/backroom/internal/domain/entity"
)

// UserRepository persistencia de usuarios del dashboard (clave: teléfono).
type UserRepository interface {
	GetByPhone(ctx context.Context, phone string) (*entity.User, error)
	// UpsertByPhone crea el usuario en su primer login y actualiza LastLoginAt.
	UpsertByPhone(ctx context.Context, phone string) (*entity.User, error)
}
