package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/backroom/internal/domain"
	"github.com/tu-usuario/backroom/internal/domain/entity"
	"github.com/tu-usuario/backroom/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo adaptador PostgreSQL de usuarios del dashboard.
type UserRepo struct {
	db Querier
}

// NewUserRepo crea el repositorio. Acepta pool o transacción.
func NewUserRepo(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	var u entity.User
	err := r.db.QueryRow(ctx, `SELECT id, phone, business_name, created_at, last_login_at
		FROM users WHERE phone = $1`, phone).
		Scan(&u.ID, &u.Phone, &u.BusinessName, &u.CreatedAt, &u.LastLoginAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	return &u, nil
}

// UpsertByPhone crea el usuario en su primer login verificado y marca
// last_login_at en los siguientes.
func (r *UserRepo) UpsertByPhone(ctx context.Context, phone string) (*entity.User, error) {
	var u entity.User
	err := r.db.QueryRow(ctx, `INSERT INTO users (id, phone, business_name, created_at, last_login_at)
		VALUES ($1, $2, '', now(), now())
		ON CONFLICT (phone) DO UPDATE SET last_login_at = now()
		RETURNING id, phone, business_name, created_at, last_login_at`,
		uuid.NewString(), phone).
		Scan(&u.ID, &u.Phone, &u.BusinessName, &u.CreatedAt, &u.LastLoginAt)
	if err != nil {
		return nil, fmt.Errorf("upsert usuario: %w", err)
	}
	return &u, nil
}
