package repository

import (
	"context"

	"github.com/zhihern080614/mochibay-backend/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// List devuelve todos los pedidos ordenados por created_at descendente.
	List(ctx context.Context) ([]*entity.Order, error)
	// Delete elimina por ID; devuelve domain.ErrNotFound si ninguna fila coincide.
	Delete(ctx context.Context, id string) error
}
