package repository

import (
	"context"

	"github.com/zhihern080614/mochibay-backend/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create persiste el usuario; devuelve domain.ErrEmailAlreadyExists si el email ya existe.
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail devuelve (nil, nil) si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// List devuelve todos los usuarios ordenados por created_at descendente.
	List(ctx context.Context) ([]*entity.User, error)
	// UpdateRole cambia el rol; devuelve domain.ErrNotFound si el email no existe.
	UpdateRole(ctx context.Context, email, role string) error
}
